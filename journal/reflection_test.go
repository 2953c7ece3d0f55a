package journal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanAnswer(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]PlanAnswer{"Yes": PlanYes, " partially ": PlanPartially, "NO": PlanNo, "": ""} {
		got, err := ParsePlanAnswer(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePlanAnswer("mostly")
	assert.ErrorIs(t, err, ErrUnknownPlanAnswer)
}

func TestParseEmotion(t *testing.T) {
	t.Parallel()

	got, err := ParseEmotion("Frustrated")
	require.NoError(t, err)
	assert.Equal(t, Frustrated, got)

	_, err = ParseEmotion("euphoric")
	assert.ErrorIs(t, err, ErrUnknownEmotion)
}

func TestJournalDataJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(JournalData{PostTrade: Reflection{FollowedPlan: PlanYes, Emotion: Happy}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"postTrade":{"followedPlan":"yes","emotion":"happy"}}`, string(raw))
}
