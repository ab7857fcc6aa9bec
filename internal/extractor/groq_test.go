package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/earnings-cli/internal/config"
	"github.com/sells-group/earnings-cli/internal/resilience"
	"github.com/sells-group/earnings-cli/internal/summary"
	"github.com/sells-group/earnings-cli/pkg/groq"
)

// fakeGroqClient replays a scripted sequence of responses, one per call.
type fakeGroqClient struct {
	calls   []groq.ChatCompletionRequest
	replies []groqReply
}

type groqReply struct {
	text string
	err  error
}

func (f *fakeGroqClient) ChatCompletion(_ context.Context, req groq.ChatCompletionRequest) (*groq.ChatCompletionResponse, error) {
	f.calls = append(f.calls, req)
	if len(f.replies) == 0 {
		return nil, eris.New("fake: no reply scripted")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &groq.ChatCompletionResponse{
		Choices: []groq.Choice{{Message: groq.Message{Role: "assistant", Content: r.text}}},
	}, nil
}

func groqCfg(key string, models ...string) config.GroqConfig {
	return config.GroqConfig{Key: key, Models: models, MaxTranscriptChars: 12000}
}

func rateLimitErr() error {
	return resilience.NewTransientError(eris.New("rate limit reached for model"), 429)
}

func TestGroqExtract_MissingCredential(t *testing.T) {
	client := &fakeGroqClient{}
	p := NewGroqProvider(client, groqCfg("", "llama-3.1-8b-instant"))

	_, err := p.Extract(context.Background(), "transcript")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Empty(t, client.calls, "no network attempt without a credential")
}

func TestGroqExtract_FirstModelSucceeds(t *testing.T) {
	client := &fakeGroqClient{replies: []groqReply{{text: `{"tone":"neutral"}`}}}
	p := NewGroqProvider(client, groqCfg("gsk", "llama-3.1-8b-instant", "llama-3.3-70b-versatile"))

	raw, err := p.Extract(context.Background(), "transcript body")
	require.NoError(t, err)
	assert.Equal(t, `{"tone":"neutral"}`, raw)
	require.Len(t, client.calls, 1, "no further models after success")

	req := client.calls[0]
	assert.Equal(t, "llama-3.1-8b-instant", req.Model)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.0, *req.Temperature)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, summary.SystemPrompt, req.Messages[0].Content)
	assert.Contains(t, req.Messages[1].Content, "transcript body")
}

func TestGroqExtract_RateLimitFallsToNextTier(t *testing.T) {
	client := &fakeGroqClient{replies: []groqReply{
		{err: rateLimitErr()},
		{text: `{"tone":"optimistic"}`},
	}}
	p := NewGroqProvider(client, groqCfg("gsk", "llama-3.1-8b-instant", "llama-3.3-70b-versatile", "mixtral-8x7b-32768"))

	raw, err := p.Extract(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, `{"tone":"optimistic"}`, raw)
	require.Len(t, client.calls, 2)
	assert.Equal(t, "llama-3.1-8b-instant", client.calls[0].Model)
	assert.Equal(t, "llama-3.3-70b-versatile", client.calls[1].Model)
}

func TestGroqExtract_QuotaKeywordFallsThrough(t *testing.T) {
	// No explicit 429 status, just a quota keyword in the message.
	client := &fakeGroqClient{replies: []groqReply{
		{err: eris.New("you have exceeded your quota for this billing period")},
		{text: `{"ok":true}`},
	}}
	p := NewGroqProvider(client, groqCfg("gsk", "a", "b"))

	raw, err := p.Extract(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, raw)
	assert.Len(t, client.calls, 2)
}

func TestGroqExtract_NonRateLimitFailsFast(t *testing.T) {
	client := &fakeGroqClient{replies: []groqReply{
		{err: eris.New("invalid api key")},
	}}
	p := NewGroqProvider(client, groqCfg("gsk", "a", "b", "c"))

	_, err := p.Extract(context.Background(), "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Len(t, client.calls, 1, "other errors must not burn further tiers")
}

func TestGroqExtract_AllModelsRateLimited(t *testing.T) {
	client := &fakeGroqClient{replies: []groqReply{
		{err: rateLimitErr()},
		{err: rateLimitErr()},
		{err: rateLimitErr()},
	}}
	p := NewGroqProvider(client, groqCfg("gsk", "a", "b", "c"))

	_, err := p.Extract(context.Background(), "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllModelsRateLimited)
	assert.Len(t, client.calls, 3)
}

func TestGroqExtract_TruncatesTranscript(t *testing.T) {
	client := &fakeGroqClient{replies: []groqReply{{text: "{}"}}}
	cfg := groqCfg("gsk", "a")
	cfg.MaxTranscriptChars = 100
	p := NewGroqProvider(client, cfg)

	long := strings.Repeat("x", 500)
	_, err := p.Extract(context.Background(), long)
	require.NoError(t, err)

	user := client.calls[0].Messages[1].Content
	assert.Contains(t, user, strings.Repeat("x", 100))
	assert.NotContains(t, user, strings.Repeat("x", 101))
}
