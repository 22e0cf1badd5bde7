// File path: internal/outreach/objective.go
package outreach

import "strings"

// objectiveGuidance maps the known objective labels to behavioral guidance
// appended to the objective line of the prompt. Free-text objectives outside
// this set pass through untouched.
var objectiveGuidance = map[string]string{
	"first_touch": "This is our first contact. Keep it warm, personalized, and non-salesy.",
	"follow_up":   "Following up on a previous message that got no response. Be brief, add value.",
	"value_add":   "Share something genuinely useful without asking for anything.",
	"pitch":       "Present a specific service or idea. Lead with value, include soft CTA.",
	"advance":     "Move the relationship forward. Goal is to get to the next stage.",
	"close":       "Ask for the commitment. Be direct but not pushy.",
	"maintain":    "Keep the relationship warm. Check in genuinely.",
	"reactivate":  "Re-engage after silence. Acknowledge the gap, add value.",
	"thank":       "Express genuine gratitude. Reinforce the relationship.",
}

// ObjectiveGuidance returns the guidance string for a known objective label,
// or "" for free-text objectives.
func ObjectiveGuidance(objective string) string {
	return objectiveGuidance[strings.ToLower(strings.TrimSpace(objective))]
}
