package summary

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain_json",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "json_fence",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "bare_fence",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "commentary_around",
			input:    "Here is the summary you asked for:\n{\"tone\":\"neutral\"}\nLet me know if you need more.",
			expected: `{"tone":"neutral"}`,
		},
		{
			name:     "no_braces",
			input:    "no json here",
			expected: "no json here",
		},
		{
			name:     "only_open_brace",
			input:    "{ truncated output",
			expected: "{ truncated output",
		},
		{
			name:     "close_before_open",
			input:    "} {",
			expected: "} {",
		},
		{
			name:     "nested_objects",
			input:    "prefix {\"outer\":{\"inner\":true}} suffix",
			expected: `{"outer":{"inner":true}}`,
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		result := Sanitize(tt.input)
		if result != tt.expected {
			t.Errorf("Sanitize(%q) = %q, want %q (case %s)", tt.input, result, tt.expected, tt.name)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		`{"a":1}`,
		"```json\n{\"a\":1}\n```",
		"no json here",
		"prefix {\"k\":\"v\"} suffix",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent on %q: first %q, second %q", in, once, twice)
		}
	}
}
