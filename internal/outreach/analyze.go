// File path: internal/outreach/analyze.go
package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/llm"
	"github.com/outreachready/backend/internal/webfetch"
)

// WebsiteAnalysis is the structured extraction produced by the standalone
// website analyzer.
type WebsiteAnalysis struct {
	CompanyName    string   `json:"company_name"`
	Description    string   `json:"description"`
	Products       []string `json:"products"`
	TargetAudience string   `json:"target_audience"`
}

const analyzeSystem = "You analyze business websites and extract product/service information. Return ONLY valid JSON."

const analyzePrompt = `Analyze this website content and extract:
1. Company name
2. What products or services they offer
3. A brief description of their business (2-3 sentences)
4. List of specific products/services (as array)

Website URL: %s

Website Content:
%s

Return JSON format:
{
  "company_name": "...",
  "description": "...",
  "products": ["Product 1", "Product 2", ...],
  "target_audience": "..."
}`

// Analyzer extracts a structured business profile from a website. Unlike the
// generation pipeline, a fetch failure here is surfaced to the caller; a
// malformed extraction degrades to a placeholder analysis.
type Analyzer struct {
	fetcher  webfetch.Fetcher
	provider llm.Provider
}

func NewAnalyzer(fetcher webfetch.Fetcher, provider llm.Provider) *Analyzer {
	return &Analyzer{fetcher: fetcher, provider: provider}
}

// AnalyzeWebsite fetches the page and extracts the business profile.
func (a *Analyzer) AnalyzeWebsite(ctx context.Context, url string) (*WebsiteAnalysis, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, &ValidationError{Field: "url"}
	}
	content, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch website: %w", err)
	}
	raw, err := a.provider.Chat(ctx, llm.ChatRequest{
		System:      analyzeSystem,
		Prompt:      fmt.Sprintf(analyzePrompt, url, content),
		Temperature: enrichTemperature,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, &BackendError{Err: err}
	}
	var analysis WebsiteAnalysis
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &analysis); err != nil {
		common.Logger().Warn("analyze: extraction output unparsable", "url", url, "error", err)
		return &WebsiteAnalysis{Description: "Could not analyze website", Products: []string{}}, nil
	}
	if analysis.Products == nil {
		analysis.Products = []string{}
	}
	return &analysis, nil
}
