// File path: internal/outreach/prompt.go
package outreach

import (
	"fmt"
	"strings"

	"github.com/outreachready/backend/internal/channel"
)

// DraftSystemPrompt is the system instruction for the drafting call. The
// no-markdown demand is advisory; the parser still strips fencing.
const DraftSystemPrompt = "You are an expert B2B sales copywriter. Return ONLY valid JSON arrays. No markdown code blocks, no explanations."

const coldOutreachMarker = "No previous communications - this is COLD outreach. Be extra compelling."

// ComposePrompt deterministically renders the full drafting instruction.
// Missing inputs become explicit Unknown/Not provided markers so the backend
// never has to guess what is absent versus unimportant, and so the rendered
// prompt is testable without a backend.
func ComposePrompt(req GenerationRequest, contactBusinessInfo, sellerOfferings string) string {
	var b strings.Builder

	b.WriteString("You are an expert B2B sales strategist. Analyze everything and create personalized outreach.\n\n")
	b.WriteString("## AUTOMATED ANALYSIS RESULTS\n\n")

	fmt.Fprintf(&b, "### BUYER ANALYSIS (%s at %s)\n", orUnknown(req.Contact.Name), orUnknown(req.Contact.Company))
	fmt.Fprintf(&b, "Title: %s\n", orUnknown(req.Contact.Title))
	fmt.Fprintf(&b, "Website: %s\n", orNotProvided(req.Contact.Website))
	if contactBusinessInfo != "" {
		b.WriteString("\n**AI-ANALYZED BUYER BUSINESS:**\n")
		b.WriteString(contactBusinessInfo)
		b.WriteString("\n")
	} else {
		b.WriteString("No website data available - use company name to infer.\n")
	}

	b.WriteString("\n### COMMUNICATION HISTORY\n")
	if history := strings.TrimSpace(req.Communications); history != "" {
		b.WriteString(history)
		b.WriteString("\n")
	} else {
		b.WriteString(coldOutreachMarker)
		b.WriteString("\n")
	}

	sellerName := strings.TrimSpace(req.Seller.Company)
	if sellerName == "" {
		sellerName = "Our Company"
	}
	fmt.Fprintf(&b, "\n### SELLER OFFERINGS (%s)\n", sellerName)
	fmt.Fprintf(&b, "Website: %s\n", orNotSpecified(req.Seller.Website))
	if sellerOfferings != "" {
		b.WriteString("\n**PRODUCTS/SERVICES AVAILABLE:**\n")
		b.WriteString(sellerOfferings)
		b.WriteString("\n")
	} else {
		b.WriteString("General business solutions.\n")
	}

	objective := strings.TrimSpace(req.Objective)
	if guidance := ObjectiveGuidance(objective); guidance != "" {
		objective = objective + " - " + guidance
	}
	b.WriteString("\n## YOUR TASK - DO ALL OF THIS:\n\n")
	b.WriteString("1. **MATCH**: Based on buyer's business, which seller offering(s) are most relevant?\n")
	b.WriteString("2. **IDENTIFY PAIN**: What specific problem can we solve for them?\n")
	b.WriteString("3. **CRAFT MESSAGE**: Create a message that:\n")
	b.WriteString("   - Shows we understand THEIR business\n")
	b.WriteString("   - Connects our solution to THEIR specific needs\n")
	b.WriteString("   - Builds on previous communications (if any)\n")
	fmt.Fprintf(&b, "   - Moves toward: %q\n", objective)

	tone := strings.TrimSpace(req.Tone)
	if tone == "" {
		tone = "professional"
	}
	product := strings.TrimSpace(req.Product)
	if product == "" {
		product = "Best match from our offerings"
	}
	b.WriteString("\n## MESSAGE REQUIREMENTS\n")
	fmt.Fprintf(&b, "- Channel: %s (%s)\n", req.Channel, channel.GuidanceFor(req.Channel))
	fmt.Fprintf(&b, "- Tone: %s\n", tone)
	fmt.Fprintf(&b, "- Product focus: %s\n", product)

	b.WriteString("\nGenerate 4 variants with different approaches:\n")
	b.WriteString("- **direct**: Clear value prop + specific ask\n")
	b.WriteString("- **value**: Lead with insight about THEIR business challenge\n")
	b.WriteString("- **curiosity**: Thought-provoking question about their situation\n")
	b.WriteString("- **relationship**: Connection-focused, softer approach\n")

	b.WriteString("\nReturn ONLY JSON (no markdown):\n")
	b.WriteString(`[
  {"variant": "direct", "content": "message", "matchReason": "why this offering fits their needs"},
  {"variant": "value", "content": "message", "matchReason": "why this offering fits"},
  {"variant": "curiosity", "content": "message", "matchReason": "why this offering fits"},
  {"variant": "relationship", "content": "message", "matchReason": "why this offering fits"}
]`)

	return b.String()
}

func orUnknown(s string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return "Unknown"
}

func orNotProvided(s string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return "Not provided"
}

func orNotSpecified(s string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return "Not specified"
}
