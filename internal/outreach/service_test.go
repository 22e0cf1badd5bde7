// File path: internal/outreach/service_test.go
package outreach

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outreachready/backend/internal/llm"
)

type stubProvider struct {
	responses []string
	err       error
	calls     int
	requests  []llm.ChatRequest
}

func (p *stubProvider) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	p.calls++
	p.requests = append(p.requests, req)
	if p.err != nil {
		return "", p.err
	}
	if len(p.responses) == 0 {
		return wellFormedOutput, nil
	}
	resp := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return resp, nil
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) lastPrompt() string {
	if len(p.requests) == 0 {
		return ""
	}
	return p.requests[len(p.requests)-1].Prompt
}

type stubFetcher struct {
	content string
	err     error
	calls   int
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type stubStore struct {
	inserts [][]MessageRecord
	err     error
}

func (s *stubStore) InsertMessageVariants(ctx context.Context, records []MessageRecord) error {
	s.inserts = append(s.inserts, records)
	return s.err
}

type stubQuota struct {
	allowed    bool
	checkErr   error
	incErr     error
	checks     int
	increments int
}

func (q *stubQuota) CheckQuota(ctx context.Context, userID, resource string) (bool, error) {
	q.checks++
	return q.allowed, q.checkErr
}

func (q *stubQuota) IncrementUsage(ctx context.Context, userID, resource string) error {
	q.increments++
	return q.incErr
}

func newTestService(provider *stubProvider, fetcher *stubFetcher, store *stubStore, quota *stubQuota) *Service {
	return NewService(provider, fetcher, store, quota)
}

func TestGenerateMessagesHappyPath(t *testing.T) {
	provider := &stubProvider{}
	store := &stubStore{}
	quota := &stubQuota{allowed: true}
	svc := newTestService(provider, &stubFetcher{}, store, quota)

	result, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	require.NoError(t, err)
	require.NotEmpty(t, result.SessionID)
	require.Len(t, result.Variants, 4)
	require.Zero(t, result.Dropped)

	tags := make(map[VariantTag]bool)
	for _, v := range result.Variants {
		tags[v.Variant] = true
	}
	require.Len(t, tags, 4)

	// No websites on the request, so the only backend call is the draft.
	require.Equal(t, 1, provider.calls)
	require.Len(t, store.inserts, 1)
	require.Len(t, store.inserts[0], 4)
	require.Equal(t, 1, quota.checks)
	require.Equal(t, 1, quota.increments)

	for _, rec := range store.inserts[0] {
		require.NotEmpty(t, rec.ID)
		require.Equal(t, result.SessionID, rec.SessionID)
		require.Equal(t, "user-1", rec.UserID)
		require.Equal(t, "contact-1", rec.ContactID)
		require.Equal(t, "email", rec.Channel)
		require.Contains(t, rec.BuyerContext, "Dana Lee")
		require.Contains(t, rec.SellerContext, "Tool Co")
	}
}

func TestGenerateMessagesValidation(t *testing.T) {
	provider := &stubProvider{}
	svc := newTestService(provider, &stubFetcher{}, &stubStore{}, &stubQuota{allowed: true})

	req := coldEmailRequest()
	req.Objective = " "
	_, err := svc.GenerateMessages(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "objective", verr.Field)

	req = coldEmailRequest()
	req.Channel = ""
	_, err = svc.GenerateMessages(context.Background(), req)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "channel", verr.Field)

	require.Zero(t, provider.calls)
}

func TestGenerateMessagesQuotaShortCircuits(t *testing.T) {
	provider := &stubProvider{}
	store := &stubStore{}
	quota := &stubQuota{allowed: false}
	svc := newTestService(provider, &stubFetcher{}, store, quota)

	_, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.Zero(t, provider.calls)
	require.Empty(t, store.inserts)
	require.Zero(t, quota.increments)
}

func TestGenerateMessagesBackendFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	store := &stubStore{}
	svc := newTestService(provider, &stubFetcher{}, store, &stubQuota{allowed: true})

	_, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	var berr *BackendError
	require.ErrorAs(t, err, &berr)
	require.NotErrorIs(t, err, ErrUnparsableOutput)
	require.Empty(t, store.inserts)
}

func TestGenerateMessagesParseFailureNoPersistence(t *testing.T) {
	provider := &stubProvider{responses: []string{"sorry, I can't do JSON today"}}
	store := &stubStore{}
	quota := &stubQuota{allowed: true}
	svc := newTestService(provider, &stubFetcher{}, store, quota)

	_, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	require.ErrorIs(t, err, ErrUnparsableOutput)
	require.Empty(t, store.inserts)
	require.Zero(t, quota.increments)
}

func TestGenerateMessagesFetchFailureDegrades(t *testing.T) {
	provider := &stubProvider{}
	fetcher := &stubFetcher{err: fmt.Errorf("dial tcp: i/o timeout")}
	svc := newTestService(provider, fetcher, &stubStore{}, &stubQuota{allowed: true})

	req := coldEmailRequest()
	req.Contact.Website = "https://acme-robotics.example"
	req.Seller.ProductDescription = ""
	req.Seller.ProductsURL = "https://toolco.example/products"

	result, err := svc.GenerateMessages(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Variants, 4)
	require.Equal(t, 2, fetcher.calls)
	require.Contains(t, provider.lastPrompt(), "No website data available")
	require.Contains(t, provider.lastPrompt(), "General business solutions.")
}

func TestGenerateMessagesEnrichmentFlowsIntoPrompt(t *testing.T) {
	provider := &stubProvider{responses: []string{
		"Acme builds warehouse robots for 3PL operators.",
		wellFormedOutput,
	}}
	fetcher := &stubFetcher{content: "Acme Robotics homepage text"}
	svc := newTestService(provider, fetcher, &stubStore{}, &stubQuota{allowed: true})

	req := coldEmailRequest()
	req.Contact.Website = "https://acme-robotics.example"

	result, err := svc.GenerateMessages(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Variants, 4)
	require.Equal(t, 2, provider.calls)

	// Enrichment call runs cool; drafting runs hot.
	require.InDelta(t, 0.3, provider.requests[0].Temperature, 0.001)
	require.InDelta(t, 0.8, provider.requests[1].Temperature, 0.001)
	require.Contains(t, provider.lastPrompt(), "warehouse robots for 3PL operators")
}

func TestGenerateMessagesSessionsNeverReused(t *testing.T) {
	provider := &stubProvider{}
	svc := newTestService(provider, &stubFetcher{}, &stubStore{}, &stubQuota{allowed: true})

	first, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	require.NoError(t, err)
	second, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	require.NoError(t, err)

	require.NotEqual(t, first.SessionID, second.SessionID)
	require.Equal(t, first.Variants, second.Variants)
}

func TestGenerateMessagesPersistenceBestEffort(t *testing.T) {
	provider := &stubProvider{}
	store := &stubStore{err: errors.New("disk full")}
	quota := &stubQuota{allowed: true, incErr: errors.New("counter offline")}
	svc := newTestService(provider, &stubFetcher{}, store, quota)

	result, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	require.NoError(t, err)
	require.Len(t, result.Variants, 4)
	require.Equal(t, 1, quota.increments)
}

func TestGenerateMessagesQuotaStoreError(t *testing.T) {
	provider := &stubProvider{}
	quota := &stubQuota{allowed: true, checkErr: errors.New("db locked")}
	svc := newTestService(provider, &stubFetcher{}, &stubStore{}, quota)

	_, err := svc.GenerateMessages(context.Background(), coldEmailRequest())
	require.Error(t, err)
	require.Zero(t, provider.calls)
}
