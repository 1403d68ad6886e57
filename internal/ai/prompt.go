package ai

import (
	"fmt"
	"strings"

	"github.com/collabohq/collabo/pkg/models"
)

// Prompt builders are pure functions of their inputs: the same request
// always yields the same prompt, so calls are idempotent and reproducible
// in tests. Counterpart metadata and transcripts are embedded verbatim.

func buildAnalyzePrompt(transcript string, c models.Counterpart) string {
	name := c.Name
	if name == "" {
		name = "a contact"
	}
	return fmt.Sprintf(`Analyze this professional conversation between the user and %s.

Contact context:
- Name: %s
- Domain: %s
- How they met: %s

Conversation:
%s

Provide a structured analysis as a JSON object with:
1. "key_points": list of the 3-5 key points
2. "opportunities": collaboration opportunities
3. "cooperation_model": suggested cooperation model
4. "credibility_score": integer 0-10
5. "usefulness_score": integer 0-10
6. "success_probability": integer 0-100
7. "priority_level": "low", "medium" or "high"
8. "next_actions": the next 3 actions
9. "red_flags": any warning signs
10. "strengths": strong points

Respond with only the JSON object.`, name, c.Name, c.Domain, c.Occasion, transcript)
}

func buildStrategyPrompt(c models.Counterpart, goal string) string {
	return fmt.Sprintf(`Create a professional conversation strategy to reach this goal: %s

Contact context:
- Name: %s
- Domain: %s
- Previous topics: %s

Provide a JSON object with:
1. "opening": suggested opening line
2. "key_topics": list of topics to cover
3. "questions": questions to ask
4. "value_propositions": value propositions to highlight
5. "objections": object mapping likely objections to responses
6. "closing": suggested closing line
7. "follow_up": follow-up actions

Respond with only the JSON object.`, goal, c.Name, c.Domain, strings.Join(c.PriorTopics, ", "))
}

func buildActionsPrompt(transcript string) string {
	return fmt.Sprintf(`Extract every action item from this conversation:

%s

Return a JSON array where each element has:
"action", "responsible", "deadline", "priority", "status"

Respond with only the JSON array.`, transcript)
}

func buildSummaryPrompt(transcript, counterpartName string) string {
	name := counterpartName
	if name == "" {
		name = "the contact"
	}
	return fmt.Sprintf(`Write a professional summary of this conversation with %s:

%s

Include:
1. Meeting context
2. Main topics
3. Decisions
4. Agreed actions
5. Next steps

Format: structured professional text.`, name, transcript)
}
