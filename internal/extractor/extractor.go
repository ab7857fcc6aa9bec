package extractor

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/earnings-cli/internal/summary"
)

// Extractor drives providers in priority order until one yields a schema-valid
// summary. Providers are tried strictly sequentially; a later provider is only
// contacted after the prior one's full failure. An Extractor holds no mutable
// state and is safe for concurrent use across transcripts.
type Extractor struct {
	providers []Provider
}

// New creates an extractor over the given providers, tried in argument order.
func New(providers ...Provider) *Extractor {
	return &Extractor{providers: providers}
}

// ExtractSummary returns a validated summary from the first provider path
// that succeeds end to end (request, sanitize, validate), or an
// *ExtractionError aggregating every failed path. It never returns a partial
// result.
func (e *Extractor) ExtractSummary(ctx context.Context, transcript string) (*summary.EarningsSummary, error) {
	var attempts []Attempt

	for _, p := range e.providers {
		raw, err := p.Extract(ctx, transcript)
		if err != nil {
			zap.L().Warn("extract: provider failed",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})
			continue
		}

		s, err := summary.Validate(summary.Sanitize(raw))
		if err != nil {
			zap.L().Warn("extract: provider returned unusable output",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})
			continue
		}

		zap.L().Info("extract: summary complete",
			zap.String("provider", p.Name()),
			zap.String("tone", string(s.Tone)),
			zap.String("confidence", string(s.Confidence)),
		)
		return s, nil
	}

	return nil, &ExtractionError{Attempts: attempts}
}
