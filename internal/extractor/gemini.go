package extractor

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/earnings-cli/internal/config"
	"github.com/sells-group/earnings-cli/internal/summary"
	"github.com/sells-group/earnings-cli/pkg/gemini"
)

// GeminiProvider extracts summaries via the Gemini generateContent API.
// Unlike Groq, Gemini's failure signaling is unstructured in practice, so
// every per-model failure is treated as retry-eligible; the last error
// surfaces only after all tiers are exhausted.
type GeminiProvider struct {
	client   gemini.Client
	key      string
	models   []string
	maxChars int
}

// NewGeminiProvider creates the Gemini adapter.
func NewGeminiProvider(client gemini.Client, cfg config.GeminiConfig) *GeminiProvider {
	return &GeminiProvider{
		client:   client,
		key:      cfg.Key,
		models:   cfg.Models,
		maxChars: cfg.MaxTranscriptChars,
	}
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// Extract implements Provider.
func (p *GeminiProvider) Extract(ctx context.Context, transcript string) (string, error) {
	if p.key == "" {
		return "", eris.Wrap(ErrMissingCredential, "gemini")
	}
	if len(p.models) == 0 {
		return "", eris.New("gemini: no models configured")
	}

	prompt := summary.SystemPrompt + "\n\nTRANSCRIPT:\n" + summary.Truncate(transcript, p.maxChars)

	var lastErr error
	for _, model := range p.models {
		zap.L().Debug("gemini: trying model", zap.String("model", model))

		resp, err := p.client.GenerateContent(ctx, model, gemini.GenerateContentRequest{
			Contents: []gemini.Content{
				{Parts: []gemini.Part{{Text: prompt}}},
			},
		})
		if err != nil {
			lastErr = eris.Wrapf(err, "gemini: model %s", model)
			zap.L().Warn("gemini: model failed, trying next tier",
				zap.String("model", model),
				zap.Error(err),
			)
			continue
		}

		return resp.Text(), nil
	}

	return "", lastErr
}
