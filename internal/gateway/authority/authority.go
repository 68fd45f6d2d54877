package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Decision is a ruling fetched from the customs authority for one declaration.
type Decision struct {
	DeclarationID int64
	Outcome       string
	Officer       string
	DecidedAt     time.Time
}

type decisionDTO struct {
	DeclarationID int64     `json:"declaration_id"`
	Outcome       string    `json:"outcome"`
	Officer       string    `json:"officer,omitempty"`
	DecidedAt     time.Time `json:"decided_at"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("customs authority: code %d: %s", e.Code, e.Body)
}

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPGateway is a customs authority gateway backed by its JSON API.
type HTTPGateway struct {
	baseURL string
	client  doer
}

// NewHTTPGateway creates a customs authority gateway backed by HTTP.
func NewHTTPGateway(baseURL string, client doer) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// FetchDecision fetches the ruling for a declaration. A nil Decision means
// the authority has not ruled yet.
func (g *HTTPGateway) FetchDecision(ctx context.Context, declarationID int64) (*Decision, error) {
	url := fmt.Sprintf("%s/declarations/%d/decision", g.baseURL, declarationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("customs authority: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customs authority: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode >= 400:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var dto decisionDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("customs authority: decode decision: %w", err)
	}
	return &Decision{
		DeclarationID: dto.DeclarationID,
		Outcome:       strings.ToUpper(strings.TrimSpace(dto.Outcome)),
		Officer:       dto.Officer,
		DecidedAt:     dto.DecidedAt,
	}, nil
}
