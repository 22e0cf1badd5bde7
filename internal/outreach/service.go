// File path: internal/outreach/service.go
package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/common/telemetry"
	"github.com/outreachready/backend/internal/llm"
	"github.com/outreachready/backend/internal/webfetch"
)

const (
	draftTemperature = 0.8
	draftMaxTokens   = 2500
)

// Service orchestrates one generation request: quota gate, enrichment,
// prompt composition, the generation call, parsing, and session recording.
// Each request is a stateless unit of work; Service is safe for concurrent use.
type Service struct {
	provider llm.Provider
	enricher *Enricher
	store    MessageStore
	quota    QuotaGate
}

func NewService(provider llm.Provider, fetcher webfetch.Fetcher, store MessageStore, quota QuotaGate) *Service {
	return &Service{
		provider: provider,
		enricher: NewEnricher(fetcher, provider),
		store:    store,
		quota:    quota,
	}
}

// GenerateMessages runs the full pipeline and returns a fresh session id with
// the validated variants. Everything through parsing fails closed; the
// session write and usage increment are best-effort.
func (s *Service) GenerateMessages(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	logger := common.Logger()
	ctx, endSpan := telemetry.StartSpan(ctx, "outreach.generate")
	if err := req.Validate(); err != nil {
		telemetry.RecordGenerationFailure("validation")
		return nil, err
	}
	if s.quota != nil {
		allowed, err := s.quota.CheckQuota(ctx, req.UserID, ResourceMessages)
		if err != nil {
			return nil, fmt.Errorf("check quota: %w", err)
		}
		if !allowed {
			logger.Info("outreach: quota exhausted", "user", req.UserID)
			telemetry.RecordGenerationFailure("quota")
			return nil, ErrQuotaExceeded
		}
	}

	contactInfo := s.enricher.ContactSummary(ctx, req.Contact.Website)
	sellerOfferings := s.enricher.SellerOfferings(ctx, req.Seller)

	prompt := ComposePrompt(req, contactInfo, sellerOfferings)
	logger.Debug("outreach: prompt composed",
		"prompt_length", len(prompt),
		"contact_enriched", contactInfo != "",
		"seller_enriched", sellerOfferings != "")

	raw, err := s.provider.Chat(ctx, llm.ChatRequest{
		System:      DraftSystemPrompt,
		Prompt:      prompt,
		Temperature: draftTemperature,
		MaxTokens:   draftMaxTokens,
	})
	if err != nil {
		logger.Error("outreach: generation call failed", "error", err)
		telemetry.RecordGenerationFailure("backend")
		return nil, &BackendError{Err: err}
	}

	variants, dropped, err := ParseVariants(raw)
	if err != nil {
		logger.Error("outreach: model output rejected", "error", err, "dropped", dropped)
		telemetry.RecordGenerationFailure("parse")
		return nil, err
	}
	if dropped > 0 {
		logger.Warn("outreach: dropped malformed variants", "dropped", dropped, "kept", len(variants))
	}

	sessionID := uuid.NewString()
	s.recordSession(ctx, sessionID, req, variants)
	if s.quota != nil {
		if err := s.quota.IncrementUsage(ctx, req.UserID, ResourceMessages); err != nil {
			logger.Warn("outreach: usage increment failed", "user", req.UserID, "error", err)
		}
	}

	telemetry.RecordGeneration(telemetry.SpanDuration(ctx), len(variants), dropped)
	endSpan("session", sessionID, "variants", len(variants))
	logger.Info("outreach: generation complete",
		"session", sessionID, "variants", len(variants), "dropped", dropped)
	return &GenerationResult{SessionID: sessionID, Variants: variants, Dropped: dropped}, nil
}

// recordSession persists each variant as an independent record. The caller
// already holds the generated content, so a failed write is logged, never
// surfaced.
func (s *Service) recordSession(ctx context.Context, sessionID string, req GenerationRequest, variants []MessageVariant) {
	if s.store == nil {
		return
	}
	buyerContext, _ := json.Marshal(req.Contact)
	sellerContext, _ := json.Marshal(req.Seller)
	now := time.Now().UTC()
	records := make([]MessageRecord, 0, len(variants))
	for _, v := range variants {
		records = append(records, MessageRecord{
			ID:             uuid.NewString(),
			ContactID:      req.ContactID,
			UserID:         req.UserID,
			SessionID:      sessionID,
			Channel:        req.Channel,
			Tone:           req.Tone,
			Variant:        v.Variant,
			Content:        v.Content,
			MatchReason:    v.MatchReason,
			ProductPitched: req.Product,
			BuyerContext:   string(buyerContext),
			SellerContext:  string(sellerContext),
			CreatedAt:      now,
		})
	}
	if err := s.store.InsertMessageVariants(ctx, records); err != nil {
		common.Logger().Warn("outreach: failed to save generated messages", "session", sessionID, "error", err)
	}
}
