package tapatalk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSessionStore is an in-memory SessionStore suitable for tests. It is
// concurrently safe.
type TestSessionStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewTestSessionStore creates an empty TestSessionStore.
func NewTestSessionStore() *TestSessionStore {
	return &TestSessionStore{
		values: map[string]string{},
	}
}

// Get implements SessionStore.Get, returning "" for absent keys.
func (s *TestSessionStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

// Set implements SessionStore.Set.
func (s *TestSessionStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete implements SessionStore.Delete.
func (s *TestSessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// TestProvider is a local token endpoint which makes writing tests for the
// exchange leg of the flow much easier. It records every exchange request it
// receives and replies with a canned body.
type TestProvider struct {
	httpServer *httptest.Server

	mu              sync.Mutex
	replyStatus     int
	replyBody       string
	exchangeCount   int
	lastCode        string
	lastRedirectURL string

	t *testing.T
}

// StartTestProvider creates a disposable TestProvider. It is stopped
// automatically when the test and its subtests complete.
func StartTestProvider(t *testing.T) *TestProvider {
	t.Helper()
	p := &TestProvider{
		t:           t,
		replyStatus: http.StatusOK,
		replyBody:   `{"access_token":"test-access-token","token_type":"bearer"}`,
	}
	p.httpServer = httptest.NewServer(p)
	t.Cleanup(p.httpServer.Close)
	return p
}

// Stop stops the running TestProvider.
func (p *TestProvider) Stop() {
	p.httpServer.Close()
}

// TokenURL returns the provider's token-exchange endpoint, for use with
// WithTokenURL.
func (p *TestProvider) TokenURL() string {
	return p.httpServer.URL + "/token"
}

// SetReply sets the status and body the provider replies with to subsequent
// exchange requests.
func (p *TestProvider) SetReply(status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replyStatus = status
	p.replyBody = body
}

// ExchangeCount reports how many exchange requests the provider has received.
func (p *TestProvider) ExchangeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exchangeCount
}

// LastExchange returns the code and redirect URL carried by the most recent
// exchange request.
func (p *TestProvider) LastExchange() (code string, redirectURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCode, p.lastRedirectURL
}

// ServeHTTP implements the token endpoint: a POST with a JSON body of
// {"code": ..., "redirectUrl": ...}.
func (p *TestProvider) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	p.t.Helper()
	require := require.New(p.t)
	require.Equal(http.MethodPost, req.Method)
	require.Equal("application/json", req.Header.Get("Content-Type"))

	var payload struct {
		Code        string `json:"code"`
		RedirectURL string `json:"redirectUrl"`
	}
	require.NoError(json.NewDecoder(req.Body).Decode(&payload))

	p.mu.Lock()
	defer p.mu.Unlock()
	p.exchangeCount++
	p.lastCode = payload.Code
	p.lastRedirectURL = payload.RedirectURL
	w.WriteHeader(p.replyStatus)
	_, _ = w.Write([]byte(p.replyBody))
}
