package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/teamseven/codeconnect/internal/domain"
)

// ExecFile is one source file in an execution request.
type ExecFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ExecRequest is the provider's execution request body.
type ExecRequest struct {
	Language string     `json:"language"`
	Version  string     `json:"version"`
	Files    []ExecFile `json:"files"`
}

// ExecResponse is the provider's execution response body.
type ExecResponse struct {
	Language string           `json:"language"`
	Version  string           `json:"version"`
	Run      domain.RunResult `json:"run"`
}

// Provider executes code remotely. Implementations must be safe for
// concurrent use.
type Provider interface {
	Execute(ctx context.Context, req ExecRequest) (ExecResponse, error)
}

// PistonClient calls a Piston-compatible execution API over HTTP.
type PistonClient struct {
	url    string
	client *http.Client
}

// NewPiston creates a client for the execute endpoint at url. timeout bounds
// each call end to end; the original upstream had no bound at all, which let
// a hung provider leave rooms without a response forever.
func NewPiston(url string, timeout time.Duration) *PistonClient {
	return &PistonClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Execute posts the request and decodes the provider's response. A non-2xx
// status is returned as an error carrying the provider's message field when
// one is present.
func (p *PistonClient) Execute(ctx context.Context, req ExecRequest) (ExecResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return ExecResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return ExecResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return ExecResponse{}, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return ExecResponse{}, errors.New(apiErr.Message)
		}
		return ExecResponse{}, fmt.Errorf("provider returned status %d", httpResp.StatusCode)
	}

	var resp ExecResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return ExecResponse{}, err
	}
	return resp, nil
}
