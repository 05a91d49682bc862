package narrative

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-specialty/underwriting-cli/pkg/anthropic"
)

type fakeClient struct {
	resp  *anthropic.MessageResponse
	err   error
	calls int
	last  anthropic.MessageRequest
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestModelGeneratorSummary(t *testing.T) {
	fake := &fakeClient{resp: &anthropic.MessageResponse{Text: "  This property has a **HIGH claim likelihood**.  "}}
	gen := NewModelGenerator(fake, "claude-haiku-4-5-20251001", 512, 0)

	out, err := gen.Summary(context.Background(), highRiskResult())
	require.NoError(t, err)
	assert.Equal(t, "This property has a **HIGH claim likelihood**.", out)
	assert.Equal(t, 1, fake.calls)

	require.Len(t, fake.last.System, 1)
	assert.Contains(t, fake.last.System[0].Text, "Senior Lead Underwriter")
	require.NotNil(t, fake.last.System[0].CacheControl)
	require.Len(t, fake.last.Messages, 1)
	assert.Contains(t, fake.last.Messages[0].Content, "Risk Level: HIGH")
}

func TestModelGeneratorEmptyResponse(t *testing.T) {
	fake := &fakeClient{resp: &anthropic.MessageResponse{Text: "   "}}
	gen := NewModelGenerator(fake, "claude-haiku-4-5-20251001", 512, 0)

	_, err := gen.Summary(context.Background(), highRiskResult())
	assert.Error(t, err)
}

func TestSummaryOrFallback(t *testing.T) {
	res := highRiskResult()

	t.Run("nil generator", func(t *testing.T) {
		assert.Equal(t, Build(res), SummaryOrFallback(context.Background(), nil, res))
	})

	t.Run("generator error", func(t *testing.T) {
		fake := &fakeClient{err: eris.New("rate limited")}
		gen := NewModelGenerator(fake, "claude-haiku-4-5-20251001", 512, 0)
		assert.Equal(t, Build(res), SummaryOrFallback(context.Background(), gen, res))
	})

	t.Run("generator success", func(t *testing.T) {
		fake := &fakeClient{resp: &anthropic.MessageResponse{Text: "model narrative"}}
		gen := NewModelGenerator(fake, "claude-haiku-4-5-20251001", 512, 0)
		assert.Equal(t, "model narrative", SummaryOrFallback(context.Background(), gen, res))
	})
}

func TestPrimeWarmsCache(t *testing.T) {
	fake := &fakeClient{resp: &anthropic.MessageResponse{Text: "ok"}}
	gen := NewModelGenerator(fake, "claude-haiku-4-5-20251001", 512, 30)

	require.NoError(t, gen.Prime(context.Background()))
	assert.Equal(t, 1, fake.calls)
	assert.EqualValues(t, 16, fake.last.MaxTokens)
}
