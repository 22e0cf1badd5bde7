// File path: internal/channel/policy.go
package channel

import "strings"

// Channel identifies an outreach delivery channel. The set is closed; unknown
// identifiers still resolve to fallback guidance rather than failing.
type Channel string

const (
	LinkedInDM         Channel = "linkedin_dm"
	LinkedInComment    Channel = "linkedin_comment"
	LinkedInConnection Channel = "linkedin_connection"
	Email              Channel = "email"
	EmailFollowup      Channel = "email_followup"
	WhatsApp           Channel = "whatsapp"
	SMS                Channel = "sms"
)

// FallbackGuidance is returned for channels outside the known set.
const FallbackGuidance = "Adapt length and tone appropriately for the platform."

var guidelines = map[Channel]string{
	LinkedInDM:         "Keep under 300 characters for best engagement. Be professional but warm. No formal salutations needed.",
	LinkedInComment:    "Keep brief (1-3 sentences). Add value to their post. Reference something specific they said.",
	LinkedInConnection: "MUST be under 300 characters. Give a compelling reason to connect. Be specific, not generic.",
	Email:              "Can be longer (150-250 words). Include a subject line suggestion at the start. Professional format but personable.",
	EmailFollowup:      "Shorter than initial email. Reference the previous touchpoint. Add new value or angle.",
	WhatsApp:           "Casual and conversational. Use line breaks for readability. Keep it mobile-friendly. Can use occasional emoji.",
	SMS:                "Very short (under 160 chars). Get to the point immediately. Include your name.",
}

// GuidanceFor returns the formatting and tone guidance for a channel
// identifier. Lookup is case-insensitive on the trimmed identifier.
func GuidanceFor(ch string) string {
	if g, ok := guidelines[Channel(strings.ToLower(strings.TrimSpace(ch)))]; ok {
		return g
	}
	return FallbackGuidance
}

// Known reports whether the identifier names a channel in the closed set.
func Known(ch string) bool {
	_, ok := guidelines[Channel(strings.ToLower(strings.TrimSpace(ch)))]
	return ok
}

// All returns the enumerable channel set in a stable order.
func All() []Channel {
	return []Channel{
		LinkedInDM,
		LinkedInComment,
		LinkedInConnection,
		Email,
		EmailFollowup,
		WhatsApp,
		SMS,
	}
}
