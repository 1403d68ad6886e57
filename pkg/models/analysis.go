package models

// Operation identifies one of the four analysis operations.
type Operation string

const (
	OpAnalyze        Operation = "analyze"
	OpStrategy       Operation = "strategy"
	OpExtractActions Operation = "extract_actions"
	OpSummarize      Operation = "summarize"
)

// Valid reports whether o is one of the four known operations.
func (o Operation) Valid() bool {
	switch o {
	case OpAnalyze, OpStrategy, OpExtractActions, OpSummarize:
		return true
	}
	return false
}

// ResultSource tags whether a result came from the live provider path or
// from the deterministic fallback.
type ResultSource string

const (
	SourceLive     ResultSource = "live"
	SourceFallback ResultSource = "fallback"
)

// Counterpart is the person the analyzed conversation is with. All fields
// are optional; empty values are embedded in prompts as-is.
type Counterpart struct {
	Name        string   `json:"name,omitempty"`
	Domain      string   `json:"domain,omitempty"`
	Occasion    string   `json:"occasion,omitempty"`
	PriorTopics []string `json:"prior_topics,omitempty"`
}

// ConversationAnalysis is the structured assessment of a transcript.
// Every field always holds a type-correct value; missing or mistyped fields
// in a provider response are backfilled individually from the fallback.
type ConversationAnalysis struct {
	KeyPoints          []string `json:"key_points"`
	Opportunities      []string `json:"opportunities"`
	CooperationModel   string   `json:"cooperation_model"`
	CredibilityScore   int      `json:"credibility_score"`   // 0-10
	UsefulnessScore    int      `json:"usefulness_score"`    // 0-10
	SuccessProbability int      `json:"success_probability"` // 0-100
	PriorityLevel      string   `json:"priority_level"`      // low | medium | high
	NextActions        []string `json:"next_actions"`
	RedFlags           []string `json:"red_flags"`
	Strengths          []string `json:"strengths"`
}

// ConversationStrategy is a suggested plan for an upcoming conversation.
type ConversationStrategy struct {
	Opening           string            `json:"opening"`
	KeyTopics         []string          `json:"key_topics"`
	Questions         []string          `json:"questions"`
	ValuePropositions []string          `json:"value_propositions"`
	Objections        map[string]string `json:"objections"`
	Closing           string            `json:"closing"`
	FollowUp          []string          `json:"follow_up"`
}

// ActionItem is a single commitment extracted from a transcript.
type ActionItem struct {
	Action      string `json:"action"`
	Responsible string `json:"responsible"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}
