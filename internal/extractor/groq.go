package extractor

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/earnings-cli/internal/config"
	"github.com/sells-group/earnings-cli/internal/resilience"
	"github.com/sells-group/earnings-cli/internal/summary"
	"github.com/sells-group/earnings-cli/pkg/groq"
)

// GroqProvider extracts summaries via the Groq chat-completions API. Models
// are tried in listed order; a rate-limited model falls through to the next
// tier, any other failure propagates immediately. Groq signals quota problems
// explicitly, so non-quota errors are not worth retrying on a slower model.
type GroqProvider struct {
	client   groq.Client
	key      string
	models   []string
	maxChars int
}

// NewGroqProvider creates the Groq adapter.
func NewGroqProvider(client groq.Client, cfg config.GroqConfig) *GroqProvider {
	return &GroqProvider{
		client:   client,
		key:      cfg.Key,
		models:   cfg.Models,
		maxChars: cfg.MaxTranscriptChars,
	}
}

// Name implements Provider.
func (p *GroqProvider) Name() string { return "groq" }

// Extract implements Provider.
func (p *GroqProvider) Extract(ctx context.Context, transcript string) (string, error) {
	if p.key == "" {
		return "", eris.Wrap(ErrMissingCredential, "groq")
	}

	userPrompt := fmt.Sprintf("Extract JSON summary from this text:\n\n%s", summary.Truncate(transcript, p.maxChars))
	temperature := 0.0 // deterministic sampling

	for _, model := range p.models {
		zap.L().Debug("groq: trying model", zap.String("model", model))

		resp, err := p.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
			Model:       model,
			Temperature: &temperature,
			Messages: []groq.Message{
				{Role: "system", Content: summary.SystemPrompt},
				{Role: "user", Content: userPrompt},
			},
		})
		if err != nil {
			if resilience.IsRateLimited(err) {
				zap.L().Warn("groq: model rate limited, trying next tier",
					zap.String("model", model),
					zap.Error(err),
				)
				continue
			}
			return "", eris.Wrapf(err, "groq: model %s", model)
		}

		return resp.Text(), nil
	}

	return "", eris.Wrap(ErrAllModelsRateLimited, "groq")
}
