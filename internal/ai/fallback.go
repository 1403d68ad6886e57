package ai

import "github.com/collabohq/collabo/pkg/models"

// Fallback results are fixed, schema-complete placeholders returned whenever
// the live provider path cannot complete. They depend on the operation
// alone, never on the failed request, so producing one cannot itself fail.
// They pass the same validation as live results; callers distinguish the two
// only via the source tag.

// FallbackAnalysis returns the placeholder conversation analysis.
func FallbackAnalysis() models.ConversationAnalysis {
	return models.ConversationAnalysis{
		KeyPoints: []string{
			"Discussed potential collaboration opportunities",
			"Exchanged expertise and backgrounds",
			"Planned next steps together",
		},
		Opportunities: []string{
			"Potential joint project",
			"Network sharing",
		},
		CooperationModel:   "Strategic partnership",
		CredibilityScore:   8,
		UsefulnessScore:    7,
		SuccessProbability: 75,
		PriorityLevel:      "medium",
		NextActions: []string{
			"Schedule a follow-up call",
			"Share relevant documents",
			"Introduce key contacts",
		},
		RedFlags: []string{},
		Strengths: []string{
			"Clear communication",
			"Aligned interests",
			"Complementary skills",
		},
	}
}

// FallbackStrategy returns the placeholder conversation strategy.
func FallbackStrategy() models.ConversationStrategy {
	return models.ConversationStrategy{
		Opening:   "Great to reconnect — I have been looking forward to catching up.",
		KeyTopics: []string{"Project progress", "New opportunities", "Industry updates"},
		Questions: []string{
			"What challenges are you facing right now?",
			"How can I help?",
			"What are your priorities for the coming months?",
		},
		ValuePropositions: []string{"Complementary expertise", "Extended network", "Relevant experience"},
		Objections: map[string]string{
			"Lack of time":   "Suggest a short format",
			"Limited budget": "Start with an exploratory phase",
		},
		Closing:  "Excellent exchange — let's schedule the next touchpoint.",
		FollowUp: []string{"Send a recap", "Share resources", "Book the next meeting"},
	}
}

// FallbackActions returns the placeholder action items.
func FallbackActions() []models.ActionItem {
	return []models.ActionItem{
		{Action: "Send presentation deck", Responsible: "user", Deadline: "3 days", Priority: "high", Status: "pending"},
		{Action: "Organize a meeting", Responsible: "both", Deadline: "1 week", Priority: "medium", Status: "pending"},
	}
}

// FallbackSummary returns the placeholder meeting summary.
func FallbackSummary() string {
	return `Conversation Summary

Context:
Exploratory meeting to discuss collaboration opportunities.

Main Topics:
- Introduction of respective activities
- Identification of potential synergies
- Discussion of sector challenges

Decisions:
- Continue regular exchanges
- Explore a joint project

Agreed Actions:
- Share documentation
- Plan the next touchpoint

Next Steps:
Keep the momentum going and firm up the identified leads.`
}
