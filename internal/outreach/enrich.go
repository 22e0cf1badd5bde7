// File path: internal/outreach/enrich.go
package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/common/telemetry"
	"github.com/outreachready/backend/internal/llm"
	"github.com/outreachready/backend/internal/webfetch"
)

// Enrichment is extractive, not creative: low temperature, tight output cap.
const (
	enrichTemperature = 0.3
	enrichMaxTokens   = 400
	enrichSystem      = "Be concise and direct. No fluff."
)

const contactAnalysisPrompt = `Analyze this business website and extract:
1. What does this company do?
2. Who are their customers?
3. What problems do they solve?
4. What challenges might they face?
Be concise (under 150 words).

Website: %s
Content: %s`

const sellerOfferingsPrompt = `Extract products and services from this website. List each with a brief description. Be concise.

Content: %s`

// Enricher turns websites into short business summaries for prompt inclusion.
// Every step degrades: a missing URL, transport failure, or summarization
// failure yields "" and the composer renders an explicit no-data marker.
type Enricher struct {
	fetcher  webfetch.Fetcher
	provider llm.Provider
}

func NewEnricher(fetcher webfetch.Fetcher, provider llm.Provider) *Enricher {
	return &Enricher{fetcher: fetcher, provider: provider}
}

// ContactSummary summarizes the contact's business from their website:
// what they do, their customers, and likely pains.
func (e *Enricher) ContactSummary(ctx context.Context, website string) string {
	content := e.fetch(ctx, website)
	if content == "" {
		return ""
	}
	return e.summarize(ctx, fmt.Sprintf(contactAnalysisPrompt, website, content))
}

// SellerOfferings resolves the seller's product description: an explicit
// description wins; otherwise the products page is crawled and summarized.
func (e *Enricher) SellerOfferings(ctx context.Context, seller SellerProfile) string {
	if desc := strings.TrimSpace(seller.ProductDescription); desc != "" {
		return desc
	}
	content := e.fetch(ctx, seller.ProductsURL)
	if content == "" {
		return ""
	}
	return e.summarize(ctx, fmt.Sprintf(sellerOfferingsPrompt, content))
}

func (e *Enricher) fetch(ctx context.Context, url string) string {
	url = strings.TrimSpace(url)
	if url == "" || e.fetcher == nil {
		return ""
	}
	content, err := e.fetcher.Fetch(ctx, url)
	telemetry.RecordEnrichment(err == nil)
	if err != nil {
		common.Logger().Warn("enrich: website fetch failed", "url", url, "error", err)
		return ""
	}
	return strings.TrimSpace(content)
}

func (e *Enricher) summarize(ctx context.Context, prompt string) string {
	if e.provider == nil {
		return ""
	}
	summary, err := e.provider.Chat(ctx, llm.ChatRequest{
		System:      enrichSystem,
		Prompt:      prompt,
		Temperature: enrichTemperature,
		MaxTokens:   enrichMaxTokens,
	})
	if err != nil {
		common.Logger().Warn("enrich: summarization failed", "error", err)
		return ""
	}
	return strings.TrimSpace(summary)
}
