// File path: internal/outreach/types.go
package outreach

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// VariantTag names one of the four fixed rhetorical approaches requested per
// generation. The set is closed; unknown tags are rejected at parse time.
type VariantTag string

const (
	VariantDirect       VariantTag = "direct"
	VariantValue        VariantTag = "value"
	VariantCuriosity    VariantTag = "curiosity"
	VariantRelationship VariantTag = "relationship"
)

// AllVariantTags returns the closed variant set in prompt order.
func AllVariantTags() []VariantTag {
	return []VariantTag{VariantDirect, VariantValue, VariantCuriosity, VariantRelationship}
}

// ParseVariantTag validates a raw tag against the closed set.
func ParseVariantTag(raw string) (VariantTag, error) {
	tag := VariantTag(strings.ToLower(strings.TrimSpace(raw)))
	switch tag {
	case VariantDirect, VariantValue, VariantCuriosity, VariantRelationship:
		return tag, nil
	}
	return "", fmt.Errorf("unknown variant tag %q", raw)
}

// ContactProfile is the recipient-side context for one generation request.
// All fields may be empty; missing data degrades to explicit placeholders in
// the composed prompt.
type ContactProfile struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Website     string `json:"website,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// SellerProfile is the sender-side context. When ProductDescription is empty
// and ProductsURL is set, the enricher derives a description from the page.
type SellerProfile struct {
	Company            string `json:"company,omitempty"`
	Website            string `json:"website,omitempty"`
	ProductsURL        string `json:"products_url,omitempty"`
	ProductDescription string `json:"product_description,omitempty"`
}

// GenerationRequest carries everything one generation call needs. Objective
// and Channel are mandatory; the rest degrades gracefully.
type GenerationRequest struct {
	UserID         string
	ContactID      string
	Contact        ContactProfile
	Seller         SellerProfile
	Communications string
	Channel        string
	Objective      string
	Tone           string
	Product        string
}

// Validate enforces the request invariant before any network activity.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Objective) == "" {
		return &ValidationError{Field: "objective"}
	}
	if strings.TrimSpace(r.Channel) == "" {
		return &ValidationError{Field: "channel"}
	}
	return nil
}

// MessageVariant is one generated message plus the rationale the model gave
// for matching the offering to the recipient.
type MessageVariant struct {
	Variant     VariantTag `json:"variant"`
	Content     string     `json:"content"`
	MatchReason string     `json:"matchReason,omitempty"`
}

// GenerationResult groups one batch of variants under a fresh session id.
// Dropped counts model entries discarded during shape validation.
type GenerationResult struct {
	SessionID string           `json:"session_id"`
	Variants  []MessageVariant `json:"variants"`
	Dropped   int              `json:"dropped,omitempty"`
}

// MessageRecord is the persisted form of one variant, linked to the
// originating contact, user, and session.
type MessageRecord struct {
	ID             string     `db:"id" json:"id"`
	ContactID      string     `db:"contact_id" json:"contact_id,omitempty"`
	UserID         string     `db:"user_id" json:"user_id"`
	SessionID      string     `db:"session_id" json:"session_id"`
	Channel        string     `db:"channel" json:"channel,omitempty"`
	Tone           string     `db:"tone" json:"tone,omitempty"`
	Variant        VariantTag `db:"variant" json:"variant"`
	Content        string     `db:"content" json:"content"`
	MatchReason    string     `db:"match_reason" json:"match_reason,omitempty"`
	ProductPitched string     `db:"product_pitched" json:"product_pitched,omitempty"`
	BuyerContext   string     `db:"buyer_context" json:"buyer_context,omitempty"`
	SellerContext  string     `db:"seller_context" json:"seller_context,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// MessageStore persists generated variants. Failures are absorbed by the
// service as best-effort writes.
type MessageStore interface {
	InsertMessageVariants(ctx context.Context, records []MessageRecord) error
}

// QuotaGate is the external usage-limit collaborator. CheckQuota runs before
// any generation call; IncrementUsage after a successful cycle.
type QuotaGate interface {
	CheckQuota(ctx context.Context, userID, resource string) (bool, error)
	IncrementUsage(ctx context.Context, userID, resource string) error
}

// ResourceMessages is the quota resource consumed by message generation.
const ResourceMessages = "messages"
