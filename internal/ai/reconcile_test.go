package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullAnalysisJSON = `{
	"key_points": ["a", "b"],
	"opportunities": ["c"],
	"cooperation_model": "joint venture",
	"credibility_score": 9,
	"usefulness_score": 6,
	"success_probability": 80,
	"priority_level": "high",
	"next_actions": ["d"],
	"red_flags": ["e"],
	"strengths": ["f"]
}`

func TestReconcileAnalysis_CleanPayload(t *testing.T) {
	out, backfilled, err := reconcileAnalysis(fullAnalysisJSON)
	require.NoError(t, err)
	assert.Empty(t, backfilled)
	assert.Equal(t, []string{"a", "b"}, out.KeyPoints)
	assert.Equal(t, "joint venture", out.CooperationModel)
	assert.Equal(t, 9, out.CredibilityScore)
	assert.Equal(t, "high", out.PriorityLevel)
	assert.Equal(t, []string{"e"}, out.RedFlags)
}

func TestReconcileAnalysis_MissingFieldBackfilled(t *testing.T) {
	out, backfilled, err := reconcileAnalysis(`{
		"key_points": ["only point"],
		"credibility_score": 3,
		"usefulness_score": 4,
		"success_probability": 50,
		"priority_level": "low"
	}`)
	require.NoError(t, err)

	// Present fields survive untouched.
	assert.Equal(t, []string{"only point"}, out.KeyPoints)
	assert.Equal(t, 3, out.CredibilityScore)
	assert.Equal(t, "low", out.PriorityLevel)

	// Absent fields take the fallback default, one at a time.
	fb := FallbackAnalysis()
	assert.Equal(t, fb.Opportunities, out.Opportunities)
	assert.Equal(t, fb.CooperationModel, out.CooperationModel)
	assert.Equal(t, fb.NextActions, out.NextActions)
	assert.Contains(t, backfilled, "opportunities")
	assert.Contains(t, backfilled, "red_flags")
	assert.NotContains(t, backfilled, "key_points")
}

func TestReconcileAnalysis_MistypedFieldBackfilled(t *testing.T) {
	out, backfilled, err := reconcileAnalysis(`{
		"key_points": "should be a list",
		"opportunities": ["ok"],
		"cooperation_model": "ok",
		"credibility_score": "nine",
		"usefulness_score": 5,
		"success_probability": 60,
		"priority_level": "medium",
		"next_actions": [],
		"red_flags": [],
		"strengths": []
	}`)
	require.NoError(t, err)

	fb := FallbackAnalysis()
	assert.Equal(t, fb.KeyPoints, out.KeyPoints)
	assert.Equal(t, fb.CredibilityScore, out.CredibilityScore)
	assert.Equal(t, []string{"ok"}, out.Opportunities)
	assert.ElementsMatch(t, []string{"key_points", "credibility_score"}, backfilled)
}

func TestReconcileAnalysis_NullFieldBackfilled(t *testing.T) {
	out, backfilled, err := reconcileAnalysis(`{"red_flags": null, "credibility_score": 5}`)
	require.NoError(t, err)
	assert.Equal(t, FallbackAnalysis().RedFlags, out.RedFlags)
	assert.Equal(t, 5, out.CredibilityScore)
	assert.Contains(t, backfilled, "red_flags")
}

func TestReconcileAnalysis_ScoresClamped(t *testing.T) {
	out, _, err := reconcileAnalysis(`{
		"credibility_score": 42,
		"usefulness_score": -3,
		"success_probability": 150
	}`)
	require.NoError(t, err)
	assert.Equal(t, 10, out.CredibilityScore)
	assert.Equal(t, 0, out.UsefulnessScore)
	assert.Equal(t, 100, out.SuccessProbability)
}

func TestReconcileAnalysis_UnknownPriorityBackfilled(t *testing.T) {
	out, backfilled, err := reconcileAnalysis(`{"priority_level": "urgent"}`)
	require.NoError(t, err)
	assert.Equal(t, FallbackAnalysis().PriorityLevel, out.PriorityLevel)
	assert.Contains(t, backfilled, "priority_level")
}

func TestReconcileAnalysis_WrongShape(t *testing.T) {
	for _, payload := range []string{`[1, 2, 3]`, `"just a string"`, `not json at all`} {
		_, _, err := reconcileAnalysis(payload)
		assert.ErrorIs(t, err, ErrExtractionFailed, "payload %q", payload)
	}
}

func TestReconcileStrategy_CleanPayload(t *testing.T) {
	out, backfilled, err := reconcileStrategy(`{
		"opening": "Hello",
		"key_topics": ["t1"],
		"questions": ["q1"],
		"value_propositions": ["v1"],
		"objections": {"too busy": "keep it short"},
		"closing": "Bye",
		"follow_up": ["f1"]
	}`)
	require.NoError(t, err)
	assert.Empty(t, backfilled)
	assert.Equal(t, "Hello", out.Opening)
	assert.Equal(t, map[string]string{"too busy": "keep it short"}, out.Objections)
}

func TestReconcileStrategy_PartialPayload(t *testing.T) {
	out, backfilled, err := reconcileStrategy(`{"opening": "Hi there"}`)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", out.Opening)
	fb := FallbackStrategy()
	assert.Equal(t, fb.KeyTopics, out.KeyTopics)
	assert.Equal(t, fb.Objections, out.Objections)
	assert.Contains(t, backfilled, "closing")
	assert.NotContains(t, backfilled, "opening")
}

func TestReconcileActions_CleanPayload(t *testing.T) {
	out, backfilled, err := reconcileActions(`[
		{"action": "send deck", "responsible": "user", "deadline": "friday", "priority": "high", "status": "pending"}
	]`)
	require.NoError(t, err)
	assert.Empty(t, backfilled)
	require.Len(t, out, 1)
	assert.Equal(t, "send deck", out[0].Action)
	assert.Equal(t, "friday", out[0].Deadline)
}

func TestReconcileActions_PerItemDefaults(t *testing.T) {
	out, backfilled, err := reconcileActions(`[
		{"action": "call back"},
		{"priority": "low", "deadline": 7}
	]`)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "call back", out[0].Action)
	assert.Equal(t, "user", out[0].Responsible)
	assert.Equal(t, "pending", out[0].Status)

	assert.Equal(t, "Follow up on the conversation", out[1].Action)
	assert.Equal(t, "low", out[1].Priority)
	assert.Equal(t, "unspecified", out[1].Deadline)

	assert.Contains(t, backfilled, "responsible")
	assert.Contains(t, backfilled, "deadline")
}

func TestReconcileActions_EmptyArray(t *testing.T) {
	out, backfilled, err := reconcileActions(`[]`)
	require.NoError(t, err)
	assert.Empty(t, backfilled)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestReconcileActions_WrongShape(t *testing.T) {
	_, _, err := reconcileActions(`{"action": "not an array"}`)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}
