// Package summary defines the structured earnings-call summary schema and the
// validation boundary between raw model output and a usable result.
package summary

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rotisserie/eris"
)

// Sentinel marks qualitative fields the transcript never mentions. It is a
// deliberate literal, distinct from an empty string.
const Sentinel = "Not mentioned"

// Tone is the management tone/sentiment category.
type Tone string

// Tone values form a closed set; anything else fails validation.
const (
	ToneOptimistic  Tone = "optimistic"
	ToneCautious    Tone = "cautious"
	ToneNeutral     Tone = "neutral"
	TonePessimistic Tone = "pessimistic"
)

// Valid reports whether t is a member of the closed tone set.
func (t Tone) Valid() bool {
	switch t {
	case ToneOptimistic, ToneCautious, ToneNeutral, TonePessimistic:
		return true
	default:
		return false
	}
}

// Confidence is the management confidence category.
type Confidence string

// Confidence values form a closed set.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is a member of the closed confidence set.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	default:
		return false
	}
}

// List cardinality limits from the extraction rubric.
const (
	MaxKeyPositives      = 5
	MaxKeyConcerns       = 5
	MaxGrowthInitiatives = 3
)

// EarningsSummary is the validated extraction result. Instances returned by
// Validate always satisfy the enum and cardinality constraints; a violating
// object is a validation failure, never a partial result.
type EarningsSummary struct {
	Tone                      Tone       `json:"tone"`
	Confidence                Confidence `json:"confidence"`
	KeyPositives              []string   `json:"key_positives"`
	KeyConcerns               []string   `json:"key_concerns"`
	ForwardGuidance           string     `json:"forward_guidance"`
	CapacityUtilizationTrends string     `json:"capacity_utilization_trends"`
	GrowthInitiatives         []string   `json:"growth_initiatives"`
}

// Validate parses raw JSON text into an EarningsSummary and enforces the
// schema constraints. Malformed JSON gets one repair pass (models occasionally
// emit single quotes or trailing commas) before being rejected.
func Validate(raw string) (*EarningsSummary, error) {
	var s EarningsSummary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return nil, eris.Wrap(err, "summary: parse")
		}
		if err := json.Unmarshal([]byte(repaired), &s); err != nil {
			return nil, eris.Wrap(err, "summary: parse repaired")
		}
	}

	if !s.Tone.Valid() {
		return nil, eris.Errorf("summary: invalid tone %q", string(s.Tone))
	}
	if !s.Confidence.Valid() {
		return nil, eris.Errorf("summary: invalid confidence %q", string(s.Confidence))
	}
	if len(s.KeyPositives) > MaxKeyPositives {
		return nil, eris.Errorf("summary: key_positives has %d items, max %d", len(s.KeyPositives), MaxKeyPositives)
	}
	if len(s.KeyConcerns) > MaxKeyConcerns {
		return nil, eris.Errorf("summary: key_concerns has %d items, max %d", len(s.KeyConcerns), MaxKeyConcerns)
	}
	if len(s.GrowthInitiatives) > MaxGrowthInitiatives {
		return nil, eris.Errorf("summary: growth_initiatives has %d items, max %d", len(s.GrowthInitiatives), MaxGrowthInitiatives)
	}

	return &s, nil
}

// Truncate cuts text to at most max bytes. The cut is a silent prefix cut to
// respect provider input limits, not an error.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	return text[:max]
}
