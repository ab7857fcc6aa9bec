package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sells-group/earnings-cli/internal/resilience"
)

// Attempt records one failed provider path: the provider label and the error
// that ended it. Intermediate model-tier failures a provider recovered from
// internally are not recorded here.
type Attempt struct {
	Provider string
	Err      error
}

// ExtractionError is the terminal failure after every provider path has been
// exhausted. Attempts are kept in attempt order so callers can inspect the
// structured history; Error flattens them into one human-readable message.
type ExtractionError struct {
	Attempts []Attempt
}

func (e *ExtractionError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Provider, a.Err))
	}
	return "extraction failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the attempt errors so errors.Is/As see through the aggregate.
func (e *ExtractionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// HasRateLimitSignal reports whether an extraction failure carries a
// quota/rate-limit indication from any provider. Callers use it to hint that
// the condition is typically transient and self-resolving.
func HasRateLimitSignal(err error) bool {
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		return false
	}
	for _, a := range ee.Attempts {
		if resilience.IsRateLimited(a.Err) {
			return true
		}
	}
	return false
}
