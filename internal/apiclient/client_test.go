package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/fixture"
	"github.com/kayacantekin/aidpanel/internal/tokenstore"
)

func newTestClient(t *testing.T, baseURL string, mutate func(cfg *ClientConfig)) (*Client, *tokenstore.MemoryStore) {
	t.Helper()

	tokens := tokenstore.NewMemoryStore()
	cfg := ClientConfig{
		BaseURL:       baseURL,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
		Fixtures:      fixture.NewProvider(),
		Tokens:        tokens,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	return client, tokens
}

func TestClientRequestSuccess(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"id":"don-live-1"}]`))
	}))
	defer server.Close()

	client, tokens := newTestClient(t, server.URL, nil)
	if err := tokens.Save("tok-123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	resp, err := client.Get(context.Background(), "/donations", nil)
	if err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if resp.Synthetic {
		t.Fatal("response should come from the live backend")
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}

	records, err := resp.DecodeList()
	if err != nil {
		t.Fatalf("DecodeList() error = %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "don-live-1" {
		t.Fatalf("records = %v, want live record", records)
	}
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	t.Parallel()

	var sawAuthHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil)

	if _, err := client.Get(context.Background(), "/donations", nil); err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if sawAuthHeader {
		t.Fatal("Authorization header must be omitted when no token is stored")
	}
}

func TestClientRetryBudgetServerError(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil)

	resp, err := client.Get(context.Background(), "/donations", nil)
	if err != nil {
		t.Fatalf("Get() unexpected error = %v, fallback must absorb server failures", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("attempts = %d, want exactly 3 before fallback", got)
	}
	if !resp.Synthetic {
		t.Fatal("exhausted retries must fall back to synthetic data")
	}

	records, err := resp.DecodeList()
	if err != nil {
		t.Fatalf("DecodeList() error = %v", err)
	}
	if len(records) == 0 || records[0]["id"] != "don-001" {
		t.Fatalf("fallback records = %v, want donations fixtures", records)
	}
}

func TestClientClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid amount"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil)

	_, err := client.Post(context.Background(), "/donations", domain.Record{"amount": -1})
	if err == nil {
		t.Fatal("client-class failure must propagate")
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("attempts = %d, want exactly 1 for a client-class failure", got)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Kind != KindClient {
		t.Fatalf("Kind = %s, want client", apiErr.Kind)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if !bytes.Contains(apiErr.Body, []byte("invalid amount")) {
		t.Fatalf("Body = %s, want parsed error body attached", apiErr.Body)
	}
}

func TestClientUnauthorizedClearsToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, tokens := newTestClient(t, server.URL, nil)
	if err := tokens.Save("stale-token"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, err := client.Get(context.Background(), "/donations", nil)
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("error = %v, want 401 APIError", err)
	}

	token, _ := tokens.Token()
	if token != "" {
		t.Fatalf("token = %q, want cleared after 401", token)
	}
}

func TestClientNetworkFailureFallsBack(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable backend

	client, _ := newTestClient(t, server.URL, nil)

	resp, err := client.Get(context.Background(), "/tasks", nil)
	if err != nil {
		t.Fatalf("Get() unexpected error = %v, network failure must degrade silently", err)
	}
	if !resp.Synthetic {
		t.Fatal("network failure must serve synthetic data")
	}

	records, err := resp.DecodeList()
	if err != nil {
		t.Fatalf("DecodeList() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 task fixtures", len(records))
	}
}

func TestClientSyntheticModeSkipsNetwork(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, func(cfg *ClientConfig) {
		cfg.ForceSynthetic = true
	})
	if !client.Synthetic() {
		t.Fatal("Synthetic() should report true")
	}

	first, err := client.Get(context.Background(), "/donations", nil)
	if err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := client.Get(context.Background(), "/donations", nil)
		if err != nil {
			t.Fatalf("Get() unexpected error = %v", err)
		}
		if !bytes.Equal(first.Body, again.Body) {
			t.Fatalf("synthetic responses differ:\nfirst = %s\nagain = %s", first.Body, again.Body)
		}
	}

	if got := attempts.Load(); got != 0 {
		t.Fatalf("network attempts = %d, want 0 in synthetic mode", got)
	}
}

func TestClientSyntheticStats(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, "", nil)

	resp, err := client.Get(context.Background(), "/finance/stats", nil)
	if err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}

	stats, err := resp.DecodeRecord()
	if err != nil {
		t.Fatalf("DecodeRecord() error = %v", err)
	}
	if stats["balance"] != 2530.0 {
		t.Fatalf("balance = %v, want 2530", stats["balance"])
	}
}

func TestClientSearchQueryForwarding(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil)

	query := url.Values{"q": []string{"zakat"}}
	if _, err := client.Get(context.Background(), "/donations/search", query); err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if gotQuery != "zakat" {
		t.Fatalf("q = %q, want zakat", gotQuery)
	}
}

func TestClientEmptyPathIsValidationError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, "", nil)

	_, err := client.Get(context.Background(), "  ", nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     *APIError
		attempt int
		budget  int
		want    decision
	}{
		{name: "server below budget retries", err: &APIError{Kind: KindServer}, attempt: 1, budget: 3, want: decideRetry},
		{name: "server at budget falls back", err: &APIError{Kind: KindServer}, attempt: 3, budget: 3, want: decideFallback},
		{name: "network falls back immediately", err: &APIError{Kind: KindNetwork}, attempt: 1, budget: 3, want: decideFallback},
		{name: "client propagates", err: &APIError{Kind: KindClient, StatusCode: 422}, attempt: 1, budget: 3, want: decidePropagate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := decide(tt.err, tt.attempt, tt.budget); got != tt.want {
				t.Fatalf("decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	apiErr := &APIError{
		Kind:       KindClient,
		StatusCode: 404,
		Message:    "backend returned status 404",
	}
	want := "api error (client): status=404: backend returned status 404"
	if apiErr.Error() != want {
		t.Fatalf("Error() = %q, want %q", apiErr.Error(), want)
	}

	var body map[string]any
	payload := []byte(`{"error":"kayıt bulunamadı"}`)
	if err := json.Unmarshal(payload, &body); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	withBody := &APIError{Kind: KindClient, StatusCode: 404, Body: payload, Message: statusErrorMessage(404, payload)}
	if !IsStatus(withBody, 404) {
		t.Fatal("IsStatus() should match the carried status code")
	}
}
