// Package provider translates chat requests to the wire formats of the five
// supported language-model backends and normalizes their model catalogs.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hliang/pai/internal/model"
)

// Provider name labels, as returned by Resolve.
const (
	NameAnthropic  = "anthropic"
	NameOpenAI     = "openai"
	NameGoogle     = "google"
	NameXAI        = "xai"
	NamePerplexity = "perplexity"
)

// defaultMaxTokens caps chat replies when the caller does not set a limit.
const defaultMaxTokens = 4096

// ChatRequest is the normalized single-turn request shape. Each provider
// translates it into its own wire format; Google and Perplexity ignore
// SystemPrompt (an intentional asymmetry carried over from the original
// backends, not a gap to fix silently).
type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	MaxTokens    int // 0 means the 4096 default
}

func (r ChatRequest) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

// Provider is one language-model backend.
type Provider interface {
	// Name returns the routing label (see the Name constants).
	Name() string

	// Configured reports whether an API key is present. Chat fails with a
	// NotConfiguredError before any network call when it is not.
	Configured() bool

	// Chat sends a single flattened message and returns the plain-text reply.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// ListModels fetches and normalizes the provider's model catalog.
	ListModels(ctx context.Context) ([]model.ModelInfo, error)
}

// Resolve maps a model identifier to a provider name by prefix. Unmatched
// identifiers default to anthropic. Pure function, no network involved.
func Resolve(modelID string) string {
	switch {
	case strings.HasPrefix(modelID, "claude-"):
		return NameAnthropic
	case strings.HasPrefix(modelID, "gpt-"),
		strings.HasPrefix(modelID, "o1"),
		strings.HasPrefix(modelID, "o3"):
		return NameOpenAI
	case strings.HasPrefix(modelID, "gemini-"):
		return NameGoogle
	case strings.HasPrefix(modelID, "grok-"):
		return NameXAI
	case strings.HasPrefix(modelID, "perplexity-"):
		return NamePerplexity
	default:
		return NameAnthropic
	}
}

// postJSON issues a POST with a JSON body and the given headers.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return client.Do(req)
}

// getJSON issues a GET with the given headers and decodes the response body.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, display string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(display, resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// checkStatus converts a non-2xx response into an HTTPError carrying the
// status code and raw body text. The body is consumed on failure.
func checkStatus(display string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return &HTTPError{Provider: display, Status: resp.StatusCode, Body: string(body)}
}
