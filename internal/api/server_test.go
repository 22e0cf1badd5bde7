// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outreachready/backend/internal/llm"
	"github.com/outreachready/backend/internal/outreach"
	"github.com/outreachready/backend/internal/sqlite"
)

const fourVariants = `[
  {"variant": "direct", "content": "Direct message.", "matchReason": "fit"},
  {"variant": "value", "content": "Value message.", "matchReason": "fit"},
  {"variant": "curiosity", "content": "Curiosity message.", "matchReason": "fit"},
  {"variant": "relationship", "content": "Relationship message.", "matchReason": "fit"}
]`

type stubProvider struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (p *stubProvider) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	p.calls++
	p.prompts = append(p.prompts, req.Prompt)
	if p.err != nil {
		return "", p.err
	}
	if p.response == "" {
		return fourVariants, nil
	}
	return p.response, nil
}

func (p *stubProvider) Name() string { return "stub" }

type stubFetcher struct {
	content string
	err     error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type testEnv struct {
	server   *Server
	store    *sqlite.Store
	provider *stubProvider
	fetcher  *stubFetcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	provider := &stubProvider{}
	fetcher := &stubFetcher{}
	server, err := NewServer(Deps{Store: store, Provider: provider, Fetcher: fetcher})
	require.NoError(t, err)
	return &testEnv{server: server, store: store, provider: provider, fetcher: fetcher}
}

func (e *testEnv) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func generateBody() map[string]interface{} {
	return map[string]interface{}{
		"contact": map[string]interface{}{
			"name":    "Dana Lee",
			"company": "Acme Robotics",
			"title":   "VP Eng",
		},
		"seller": map[string]interface{}{
			"company":             "Tool Co",
			"product_description": "Scheduling software for field teams",
		},
		"channel":   "email",
		"objective": "book a 15-minute call",
		"tone":      "professional",
	}
}

func TestGenerateMessagesEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "user-1", generateBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result outreach.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.SessionID)
	require.Len(t, result.Variants, 4)

	listRec := env.do(t, http.MethodGet, "/v1/messages", "user-1", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var listing struct {
		Messages []outreach.MessageRecord `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listing))
	require.Len(t, listing.Messages, 4)
	for _, msg := range listing.Messages {
		require.Equal(t, result.SessionID, msg.SessionID)
	}
}

func TestGenerateMessagesLoadsContactFromStore(t *testing.T) {
	env := newTestEnv(t)

	createRec := env.do(t, http.MethodPost, "/v1/contacts", "user-1", map[string]string{
		"name": "Dana Lee", "company": "Acme Robotics", "title": "VP Eng",
	})
	require.Equal(t, http.StatusCreated, createRec.Code)
	var contact sqlite.Contact
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &contact))

	commRec := env.do(t, http.MethodPost, "/v1/contacts/"+contact.ID+"/communications", "user-1", map[string]string{
		"channel": "email", "direction": "outbound", "content": "Intro note about scheduling.",
	})
	require.Equal(t, http.StatusCreated, commRec.Code)

	body := map[string]interface{}{
		"contact_id": contact.ID,
		"channel":    "email",
		"objective":  "book a 15-minute call",
	}
	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "user-1", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	prompt := env.provider.prompts[len(env.provider.prompts)-1]
	require.Contains(t, prompt, "Dana Lee")
	require.Contains(t, prompt, "Acme Robotics")
	require.Contains(t, prompt, "Intro note about scheduling.")
	require.NotContains(t, prompt, "COLD outreach")
}

func TestGenerateMessagesContactNotFound(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{
		"contact_id": "missing-contact",
		"channel":    "email",
		"objective":  "book a call",
	}
	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "user-1", body)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, env.provider.calls)
}

func TestGenerateMessagesValidation(t *testing.T) {
	env := newTestEnv(t)
	body := generateBody()
	delete(body, "objective")
	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "user-1", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, env.provider.calls)
}

func TestGenerateMessagesRequiresUser(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "", generateBody())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateMessagesQuotaExceeded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, env.store.IncrementUsage(ctx, "user-1", outreach.ResourceMessages))
	}

	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "user-1", generateBody())
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Zero(t, env.provider.calls, "generation backend must not be invoked")
}

func TestGenerateMessagesUnparsableOutput(t *testing.T) {
	env := newTestEnv(t)
	env.provider.response = "I refuse to emit JSON."

	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "user-1", generateBody())
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	listRec := env.do(t, http.MethodGet, "/v1/messages", "user-1", nil)
	var listing struct {
		Messages []outreach.MessageRecord `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listing))
	require.Empty(t, listing.Messages, "failed parses persist nothing")
}

func TestGenerateMessagesBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.provider.err = errors.New("upstream unavailable")

	rec := env.do(t, http.MethodPost, "/v1/messages/generate", "user-1", generateBody())
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAnalyzeWebsite(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.content = "Tool Co builds scheduling software."
	env.provider.response = `{"company_name": "Tool Co", "description": "Scheduling vendor.", "products": ["Dispatch"], "target_audience": "Field teams"}`

	rec := env.do(t, http.MethodPost, "/v1/website/analyze", "user-1", map[string]string{"url": "https://toolco.example"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Analysis outreach.WebsiteAnalysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Tool Co", resp.Analysis.CompanyName)
}

func TestAnalyzeWebsiteFetchFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.err = errors.New("no such host")

	rec := env.do(t, http.MethodPost, "/v1/website/analyze", "user-1", map[string]string{"url": "https://down.example"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactsScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/contacts", "user-1", map[string]string{"name": "Dana Lee"})
	require.Equal(t, http.StatusCreated, rec.Code)

	otherList := env.do(t, http.MethodGet, "/v1/contacts", "user-2", nil)
	require.Equal(t, http.StatusOK, otherList.Code)
	var listing struct {
		Contacts []sqlite.Contact `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(otherList.Body.Bytes(), &listing))
	require.Empty(t, listing.Contacts)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
