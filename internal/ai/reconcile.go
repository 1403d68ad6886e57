package ai

import (
	"bytes"
	"encoding/json"

	"github.com/collabohq/collabo/pkg/models"
)

// Reconciliation validates an extracted payload field by field. A live
// response missing or mistyping one field keeps its nine good fields; only
// the bad field is backfilled from the fallback default. Only a payload of
// the wrong overall shape (not a JSON object / array) is rejected outright.

var nullToken = []byte("null")

// fieldSet wraps the decoded top-level object and records which fields had
// to be backfilled.
type fieldSet struct {
	fields     map[string]json.RawMessage
	backfilled []string
}

func newFieldSet(payload string) (*fieldSet, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, ErrExtractionFailed
	}
	return &fieldSet{fields: fields}, nil
}

// take decodes fields[key] into dst, falling back to def when the field is
// absent, null, or of the wrong type.
func (f *fieldSet) take(key string, dst, def any) {
	raw, ok := f.fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), nullToken) {
		f.miss(key, dst, def)
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		f.miss(key, dst, def)
	}
}

func (f *fieldSet) miss(key string, dst, def any) {
	f.backfilled = append(f.backfilled, key)
	b, _ := json.Marshal(def)
	_ = json.Unmarshal(b, dst)
}

func reconcileAnalysis(payload string) (models.ConversationAnalysis, []string, error) {
	fs, err := newFieldSet(payload)
	if err != nil {
		return models.ConversationAnalysis{}, nil, err
	}

	fb := FallbackAnalysis()
	var out models.ConversationAnalysis
	fs.take("key_points", &out.KeyPoints, fb.KeyPoints)
	fs.take("opportunities", &out.Opportunities, fb.Opportunities)
	fs.take("cooperation_model", &out.CooperationModel, fb.CooperationModel)
	fs.take("credibility_score", &out.CredibilityScore, fb.CredibilityScore)
	fs.take("usefulness_score", &out.UsefulnessScore, fb.UsefulnessScore)
	fs.take("success_probability", &out.SuccessProbability, fb.SuccessProbability)
	fs.take("priority_level", &out.PriorityLevel, fb.PriorityLevel)
	fs.take("next_actions", &out.NextActions, fb.NextActions)
	fs.take("red_flags", &out.RedFlags, fb.RedFlags)
	fs.take("strengths", &out.Strengths, fb.Strengths)

	// Clamp numeric ranges; a wrong type backfills, an out-of-range value
	// is still usable signal.
	out.CredibilityScore = clampInt(out.CredibilityScore, 0, 10)
	out.UsefulnessScore = clampInt(out.UsefulnessScore, 0, 10)
	out.SuccessProbability = clampInt(out.SuccessProbability, 0, 100)

	// Clamping an unknown enum value has no meaning; treat it as a miss.
	switch out.PriorityLevel {
	case "low", "medium", "high":
	default:
		out.PriorityLevel = fb.PriorityLevel
		fs.backfilled = append(fs.backfilled, "priority_level")
	}

	ensureLists(&out)
	return out, fs.backfilled, nil
}

func reconcileStrategy(payload string) (models.ConversationStrategy, []string, error) {
	fs, err := newFieldSet(payload)
	if err != nil {
		return models.ConversationStrategy{}, nil, err
	}

	fb := FallbackStrategy()
	var out models.ConversationStrategy
	fs.take("opening", &out.Opening, fb.Opening)
	fs.take("key_topics", &out.KeyTopics, fb.KeyTopics)
	fs.take("questions", &out.Questions, fb.Questions)
	fs.take("value_propositions", &out.ValuePropositions, fb.ValuePropositions)
	fs.take("objections", &out.Objections, fb.Objections)
	fs.take("closing", &out.Closing, fb.Closing)
	fs.take("follow_up", &out.FollowUp, fb.FollowUp)

	if out.KeyTopics == nil {
		out.KeyTopics = []string{}
	}
	if out.Questions == nil {
		out.Questions = []string{}
	}
	if out.ValuePropositions == nil {
		out.ValuePropositions = []string{}
	}
	if out.Objections == nil {
		out.Objections = map[string]string{}
	}
	if out.FollowUp == nil {
		out.FollowUp = []string{}
	}
	return out, fs.backfilled, nil
}

func reconcileActions(payload string) ([]models.ActionItem, []string, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, nil, ErrExtractionFailed
	}

	out := make([]models.ActionItem, 0, len(items))
	var backfilled []string
	for _, fields := range items {
		fs := &fieldSet{fields: fields}
		var item models.ActionItem
		fs.take("action", &item.Action, "Follow up on the conversation")
		fs.take("responsible", &item.Responsible, "user")
		fs.take("deadline", &item.Deadline, "unspecified")
		fs.take("priority", &item.Priority, "medium")
		fs.take("status", &item.Status, "pending")
		out = append(out, item)
		backfilled = append(backfilled, fs.backfilled...)
	}
	return out, backfilled, nil
}

// ensureLists replaces nil slices so serialized results never contain null.
func ensureLists(a *models.ConversationAnalysis) {
	if a.KeyPoints == nil {
		a.KeyPoints = []string{}
	}
	if a.Opportunities == nil {
		a.Opportunities = []string{}
	}
	if a.NextActions == nil {
		a.NextActions = []string{}
	}
	if a.RedFlags == nil {
		a.RedFlags = []string{}
	}
	if a.Strengths == nil {
		a.Strengths = []string{}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
