package journal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPlanAnswer = errors.New("followed plan must be yes, partially or no")
	ErrUnknownEmotion    = errors.New("unknown emotion")
)

// PlanAnswer records whether the day's trading plan was followed.
type PlanAnswer string

const (
	PlanYes       PlanAnswer = "yes"
	PlanPartially PlanAnswer = "partially"
	PlanNo        PlanAnswer = "no"
)

func ParsePlanAnswer(s string) (PlanAnswer, error) {
	switch a := PlanAnswer(strings.ToLower(strings.TrimSpace(s))); a {
	case "", PlanYes, PlanPartially, PlanNo:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlanAnswer, s)
}

type Emotion string

const (
	Happy      Emotion = "happy"
	Neutral    Emotion = "neutral"
	Frustrated Emotion = "frustrated"
	Anxious    Emotion = "anxious"
	Angry      Emotion = "angry"
)

var Emotions = []Emotion{Happy, Neutral, Frustrated, Anxious, Angry}

func ParseEmotion(s string) (Emotion, error) {
	e := Emotion(strings.ToLower(strings.TrimSpace(s)))
	if e == "" {
		return "", nil
	}
	for _, known := range Emotions {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, s)
}

// Reflection is the post-session review the trader writes after the close.
type Reflection struct {
	FollowedPlan PlanAnswer `json:"followedPlan,omitempty"`
	DidWell      string     `json:"didWell,omitempty"`
	Mistakes     string     `json:"mistakes,omitempty"`
	Emotion      Emotion    `json:"emotion,omitempty"`
	TomorrowPlan string     `json:"tomorrowPlan,omitempty"`
}

func (r Reflection) IsZero() bool { return r == Reflection{} }

// JournalData is everything stored next to the trades.
type JournalData struct {
	PostTrade Reflection `json:"postTrade"`
}
