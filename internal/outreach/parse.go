// File path: internal/outreach/parse.go
package outreach

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/outreachready/backend/internal/common"
)

type rawVariant struct {
	Variant     string `json:"variant"`
	Content     string `json:"content"`
	MatchReason string `json:"matchReason"`
}

// StripCodeFence removes markdown code-fence wrappers around model output.
// Backends are known to ignore no-markdown instructions. Idempotent.
func StripCodeFence(s string) string {
	cleaned := strings.TrimSpace(s)
	for {
		stripped := cleaned
		if strings.HasPrefix(stripped, "```json") {
			stripped = strings.TrimPrefix(stripped, "```json")
		} else if strings.HasPrefix(stripped, "```") {
			stripped = strings.TrimPrefix(stripped, "```")
		}
		stripped = strings.TrimSuffix(strings.TrimSpace(stripped), "```")
		stripped = strings.TrimSpace(stripped)
		if stripped == cleaned {
			return cleaned
		}
		cleaned = stripped
	}
}

// ParseVariants converts raw model output into validated message variants.
// Malformed JSON fails the whole batch. Entries with an empty content or an
// unknown variant tag are dropped; the dropped count is returned for
// observability. Zero surviving entries fails closed like a parse failure.
func ParseVariants(raw string) ([]MessageVariant, int, error) {
	cleaned := StripCodeFence(raw)
	var parsed []rawVariant
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnparsableOutput, err)
	}
	variants := make([]MessageVariant, 0, len(parsed))
	dropped := 0
	for _, entry := range parsed {
		tag, err := ParseVariantTag(entry.Variant)
		if err != nil {
			common.Logger().Warn("parse: dropping variant with unknown tag", "tag", entry.Variant)
			dropped++
			continue
		}
		content := strings.TrimSpace(entry.Content)
		if content == "" {
			common.Logger().Warn("parse: dropping variant with empty content", "tag", tag)
			dropped++
			continue
		}
		variants = append(variants, MessageVariant{
			Variant:     tag,
			Content:     content,
			MatchReason: strings.TrimSpace(entry.MatchReason),
		})
	}
	if len(variants) == 0 {
		return nil, dropped, fmt.Errorf("%w: no valid variants in output", ErrUnparsableOutput)
	}
	return variants, dropped, nil
}
