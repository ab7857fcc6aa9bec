// Package extractor orchestrates earnings-summary extraction across LLM
// providers and model tiers.
package extractor

import (
	"context"

	"github.com/rotisserie/eris"
)

// Provider performs one extraction attempt against a remote LLM backend and
// returns the raw response text. Implementations handle their own model-tier
// fallback internally.
type Provider interface {
	// Name identifies the provider in logs and aggregated errors.
	Name() string
	// Extract sends the fixed instruction plus the transcript to the backend
	// and returns the raw response text.
	Extract(ctx context.Context, transcript string) (string, error)
}

// ErrMissingCredential means a provider has no API key; the adapter fails
// before any network attempt.
var ErrMissingCredential = eris.New("api key missing")

// ErrAllModelsRateLimited means every model tier of a provider was rejected
// for quota reasons.
var ErrAllModelsRateLimited = eris.New("all models hit rate limits")
