package cli

import (
	"fmt"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newReflectCmd(rc *RootConfig) *cobra.Command {
	var plan, didWell, mistakes, emotion, tomorrow string
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Record or show the post-trade reflection",
		Long: `Record how the session went. Without flags the current reflection is
printed.`,
		Example: `  tradebook reflect --followed-plan partially --emotion anxious --tomorrow "no trades before 10:00"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			r := s.data.PostTrade
			fl := cmd.Flags()
			if !anyChanged(fl, "followed-plan", "did-well", "mistakes", "emotion", "tomorrow") {
				printReflection(cmd, r)
				return nil
			}
			if fl.Changed("followed-plan") {
				if r.FollowedPlan, err = journal.ParsePlanAnswer(plan); err != nil {
					return err
				}
			}
			if fl.Changed("emotion") {
				if r.Emotion, err = journal.ParseEmotion(emotion); err != nil {
					return err
				}
			}
			if fl.Changed("did-well") {
				r.DidWell = didWell
			}
			if fl.Changed("mistakes") {
				r.Mistakes = mistakes
			}
			if fl.Changed("tomorrow") {
				r.TomorrowPlan = tomorrow
			}
			s.data.PostTrade = r
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			printReflection(cmd, r)
			return nil
		},
	}
	cmd.Flags().StringVar(&plan, "followed-plan", "", "yes|partially|no")
	cmd.Flags().StringVar(&didWell, "did-well", "", "what went well")
	cmd.Flags().StringVar(&mistakes, "mistakes", "", "what went wrong")
	cmd.Flags().StringVar(&emotion, "emotion", "", "happy|neutral|frustrated|anxious|angry")
	cmd.Flags().StringVar(&tomorrow, "tomorrow", "", "plan for the next session")
	return cmd
}

func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if fs.Changed(n) {
			return true
		}
	}
	return false
}

func printReflection(cmd *cobra.Command, r journal.Reflection) {
	out := cmd.OutOrStdout()
	if r.IsZero() {
		fmt.Fprintln(out, "no reflection recorded")
		return
	}
	fmt.Fprintf(out, "followed plan: %s\n", r.FollowedPlan)
	fmt.Fprintf(out, "emotion:       %s\n", r.Emotion)
	fmt.Fprintf(out, "did well:      %s\n", r.DidWell)
	fmt.Fprintf(out, "mistakes:      %s\n", r.Mistakes)
	fmt.Fprintf(out, "tomorrow:      %s\n", r.TomorrowPlan)
}
