package authority_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"port-terminal-core/internal/gateway/authority"
	"port-terminal-core/internal/logx"
)

func TestHTTPGateway_FetchDecision(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/declarations/5/decision", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"declaration_id":5,"outcome":"approved","officer":"J. Ruiz","decided_at":"2026-08-01T10:00:00Z"}`))
	}))
	defer srv.Close()

	g := authority.NewHTTPGateway(srv.URL, srv.Client())
	d, err := g.FetchDecision(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, int64(5), d.DeclarationID)
	require.Equal(t, "APPROVED", d.Outcome)
	require.Equal(t, "J. Ruiz", d.Officer)
}

func TestHTTPGateway_FetchDecision_NotRuledYet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	g := authority.NewHTTPGateway(srv.URL, srv.Client())
	d, err := g.FetchDecision(context.Background(), 5)
	require.NoError(t, err)
	require.Nil(t, d)
}

func TestHTTPGateway_FetchDecision_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := authority.NewHTTPGateway(srv.URL, srv.Client())
	_, err := g.FetchDecision(context.Background(), 5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "code 500")
}

type stubGateway struct {
	calls   int
	results []func() (*authority.Decision, error)
}

func (s *stubGateway) FetchDecision(_ context.Context, _ int64) (*authority.Decision, error) {
	fn := s.results[s.calls]
	if s.calls < len(s.results)-1 {
		s.calls++
	}
	return fn()
}

type countingRetries struct{ n int }

func (c *countingRetries) Inc() { c.n++ }

func retryCfg() authority.RetryConfig {
	return authority.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
}

func TestRetryingGateway_RecoversFromTransientFailure(t *testing.T) {
	t.Parallel()

	want := &authority.Decision{DeclarationID: 5, Outcome: "REJECTED"}
	stub := &stubGateway{results: []func() (*authority.Decision, error){
		func() (*authority.Decision, error) { return nil, transientErr(t) },
		func() (*authority.Decision, error) { return want, nil },
	}}
	retries := &countingRetries{}

	g := authority.NewRetryingGateway(stub, logx.Nop(), retries, retryCfg())
	d, err := g.FetchDecision(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, want, d)
	require.Equal(t, 1, retries.n)
}

// transientErr produces a real retryable HTTP 503 error from a live handler.
func transientErr(t *testing.T) error {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := authority.NewHTTPGateway(srv.URL, srv.Client())
	_, err := g.FetchDecision(context.Background(), 1)
	require.Error(t, err)
	return err
}

func TestRetryingGateway_GivesUpOnPermanentFailure(t *testing.T) {
	t.Parallel()

	perm := errors.New("customs authority: decode decision: unexpected EOF")
	stub := &stubGateway{results: []func() (*authority.Decision, error){
		func() (*authority.Decision, error) { return nil, perm },
	}}
	retries := &countingRetries{}

	g := authority.NewRetryingGateway(stub, logx.Nop(), retries, retryCfg())
	_, err := g.FetchDecision(context.Background(), 5)
	require.ErrorIs(t, err, perm)
	require.Equal(t, 0, retries.n)
	require.Equal(t, 0, stub.calls)
}

func TestRetryingGateway_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	stub := &stubGateway{results: []func() (*authority.Decision, error){
		func() (*authority.Decision, error) { return nil, transientErr(t) },
	}}
	retries := &countingRetries{}

	g := authority.NewRetryingGateway(stub, logx.Nop(), retries, retryCfg())
	_, err := g.FetchDecision(context.Background(), 5)
	require.Error(t, err)
	require.Equal(t, 2, retries.n)
}

func TestNewRetryingGateway_NilNext(t *testing.T) {
	t.Parallel()

	require.Nil(t, authority.NewRetryingGateway(nil, logx.Nop(), nil, retryCfg()))
}
