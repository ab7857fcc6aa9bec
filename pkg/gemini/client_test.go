package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/earnings-cli/internal/resilience"
)

func TestGenerateContent(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantErr       string
		wantTransient bool
		wantText      string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"tone\":"}, {"text": "\"cautious\"}"}]}, "finishReason": "STOP"}],
				"usageMetadata": {"promptTokenCount": 200, "candidatesTokenCount": 40, "totalTokenCount": 240}
			}`,
			wantText: `{"tone":"cautious"}`,
		},
		{
			name:          "quota_exhausted",
			status:        http.StatusTooManyRequests,
			body:          `{"error": {"code": 429, "message": "Resource has been exhausted (e.g. check quota).", "status": "RESOURCE_EXHAUSTED"}}`,
			wantErr:       "exhausted",
			wantTransient: true,
		},
		{
			name:    "invalid_key",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "API key not valid.", "status": "INVALID_ARGUMENT"}}`,
			wantErr: "API key not valid",
		},
		{
			name:          "service_unavailable",
			status:        http.StatusServiceUnavailable,
			body:          `{"error": {"code": 503, "message": "The model is overloaded."}}`,
			wantErr:       "unexpected status 503",
			wantTransient: true,
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/models/gemini-1.5-flash-8b:generateContent", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))

			resp, err := client.GenerateContent(context.Background(), "gemini-1.5-flash-8b", GenerateContentRequest{
				Contents: []Content{{Parts: []Part{{Text: "Hi"}}}},
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, tt.wantTransient, resilience.IsTransient(err))
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantText, resp.Text())
			assert.Equal(t, 40, resp.UsageMetadata.CandidatesTokenCount)
		})
	}
}

func TestGenerateContent_DefaultModelAndPayload(t *testing.T) {
	var gotPath string
	var got GenerateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	temp := 0.0
	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.GenerateContent(context.Background(), "", GenerateContentRequest{
		Contents:         []Content{{Parts: []Part{{Text: "prompt text"}}}},
		GenerationConfig: &GenerationConfig{Temperature: &temp},
	})
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "prompt text", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.GenerationConfig)
	require.NotNil(t, got.GenerationConfig.Temperature)
	assert.Equal(t, 0.0, *got.GenerationConfig.Temperature)
}

func TestText_Empty(t *testing.T) {
	var nilResp *GenerateContentResponse
	assert.Equal(t, "", nilResp.Text())
	assert.Equal(t, "", (&GenerateContentResponse{}).Text())
}
