package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackAnalysis_SchemaComplete(t *testing.T) {
	a := FallbackAnalysis()
	assert.NotEmpty(t, a.KeyPoints)
	assert.NotEmpty(t, a.Opportunities)
	assert.NotEmpty(t, a.CooperationModel)
	assert.NotEmpty(t, a.NextActions)
	assert.NotEmpty(t, a.Strengths)
	assert.NotNil(t, a.RedFlags)

	assert.GreaterOrEqual(t, a.CredibilityScore, 0)
	assert.LessOrEqual(t, a.CredibilityScore, 10)
	assert.GreaterOrEqual(t, a.UsefulnessScore, 0)
	assert.LessOrEqual(t, a.UsefulnessScore, 10)
	assert.GreaterOrEqual(t, a.SuccessProbability, 0)
	assert.LessOrEqual(t, a.SuccessProbability, 100)
	assert.Contains(t, []string{"low", "medium", "high"}, a.PriorityLevel)
}

func TestFallbackStrategy_SchemaComplete(t *testing.T) {
	s := FallbackStrategy()
	assert.NotEmpty(t, s.Opening)
	assert.NotEmpty(t, s.KeyTopics)
	assert.NotEmpty(t, s.Questions)
	assert.NotEmpty(t, s.ValuePropositions)
	assert.NotEmpty(t, s.Objections)
	assert.NotEmpty(t, s.Closing)
	assert.NotEmpty(t, s.FollowUp)
}

func TestFallbackActions_SchemaComplete(t *testing.T) {
	items := FallbackActions()
	assert.NotEmpty(t, items)
	for _, item := range items {
		assert.NotEmpty(t, item.Action)
		assert.NotEmpty(t, item.Responsible)
		assert.NotEmpty(t, item.Deadline)
		assert.NotEmpty(t, item.Priority)
		assert.NotEmpty(t, item.Status)
	}
}

func TestFallbacks_Deterministic(t *testing.T) {
	assert.Equal(t, FallbackAnalysis(), FallbackAnalysis())
	assert.Equal(t, FallbackStrategy(), FallbackStrategy())
	assert.Equal(t, FallbackActions(), FallbackActions())
	assert.Equal(t, FallbackSummary(), FallbackSummary())
	assert.NotEmpty(t, FallbackSummary())
}
