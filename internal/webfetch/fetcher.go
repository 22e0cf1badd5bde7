// File path: internal/webfetch/fetcher.go
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tmc/langchaingo/documentloaders"

	"github.com/outreachready/backend/internal/common"
)

// Fetcher retrieves the readable text content of a web page. Implementations
// return an error on transport failure; callers decide whether that is fatal.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; OutreachReady/1.0)"
	defaultMaxChars  = 5000
	maxBodyBytes     = 2 << 20
)

// Config controls fetch behavior. Zero values fall back to defaults.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	MaxChars  int
}

type Client struct {
	http      *http.Client
	userAgent string
	maxChars  int
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxChars:  maxChars,
	}
}

// Fetch retrieves the page at url, strips markup, collapses whitespace, and
// truncates the result to the configured character budget.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	logger := common.Logger()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	text := ExtractText(ctx, string(body))
	text = Truncate(text, c.maxChars)
	logger.Debug("webfetch: page fetched", "url", url, "chars", len(text))
	return text, nil
}

var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// ExtractText converts raw HTML to plain text. The langchaingo HTML loader is
// tried first; on failure a markup-stripping pass handles malformed input.
func ExtractText(ctx context.Context, html string) string {
	loader := documentloaders.NewHTML(strings.NewReader(html))
	docs, err := loader.Load(ctx)
	if err == nil && len(docs) > 0 {
		parts := make([]string, 0, len(docs))
		for _, doc := range docs {
			if trimmed := strings.TrimSpace(doc.PageContent); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return collapse(strings.Join(parts, " "))
		}
	}
	return collapse(stripMarkup(html))
}

func stripMarkup(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	return tagRe.ReplaceAllString(text, " ")
}

func collapse(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// Truncate cuts text to at most max characters on a rune boundary.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
