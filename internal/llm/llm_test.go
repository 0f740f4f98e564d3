package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubCompleter struct {
	reply string
	err   error
	got   []Request
}

func (s *stubCompleter) Complete(ctx context.Context, req Request) (string, error) {
	s.got = append(s.got, req)
	return s.reply, s.err
}

func TestGatewayCallUsesDefaults(t *testing.T) {
	stub := &stubCompleter{reply: "  ```json\n{\"ok\": true}\n```  "}
	gw := NewGateway(stub)

	obj, err := gw.Call(context.Background(), "sys", "user")

	require.NoError(t, err)
	assert.Equal(t, Object{"ok": true}, obj)
	require.Len(t, stub.got, 1)
	assert.Equal(t, Request{System: "sys", User: "user", Temperature: 0.3, MaxTokens: 2048}, stub.got[0])
}

func TestGatewayOptions(t *testing.T) {
	stub := &stubCompleter{reply: "{}"}
	gw := NewGateway(stub, WithTemperature(0.7), WithMaxTokens(512), WithMaxTokens(0))

	_, err := gw.Call(context.Background(), "s", "u")

	require.NoError(t, err)
	assert.Equal(t, float32(0.7), stub.got[0].Temperature)
	assert.Equal(t, 512, stub.got[0].MaxTokens)
}

func TestGatewayWrapsTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	gw := NewGateway(&stubCompleter{err: boom})

	_, err := gw.Call(context.Background(), "s", "u")

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestGatewayLogsParseFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gw := NewGateway(&stubCompleter{reply: "not json " + strings.Repeat("z", 400)}, WithLogger(zap.New(core)))

	_, err := gw.Call(context.Background(), "s", "u")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	entries := logs.FilterMessage("llm.parse_failed").All()
	require.Len(t, entries, 1)
	excerpt, _ := entries[0].ContextMap()["raw_excerpt"].(string)
	assert.True(t, strings.HasSuffix(excerpt, "..."))
}

func TestNilGateway(t *testing.T) {
	var gw *Gateway
	_, err := gw.Call(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestPromptRendering(t *testing.T) {
	assert.Contains(t, SystemPrompt(), "CVAlign Lens")

	jd := RenderJDExtraction("Senior Go engineer")
	assert.Contains(t, jd, "Job Description:\nSenior Go engineer\n")
	assert.Contains(t, jd, `"keywords_for_ats"`)
	assert.NotContains(t, jd, "{{")

	resume := RenderResumeExtraction("Jane Doe")
	assert.Contains(t, resume, "Resume:\nJane Doe\n")
	assert.Contains(t, resume, `"candidate_name"`)

	analysis := RenderAnalysis(`{"role_title": "X"}`, `{"inferred_title": "Y"}`)
	assert.Contains(t, analysis, `{"role_title": "X"}`)
	assert.Contains(t, analysis, `{"inferred_title": "Y"}`)
	assert.Contains(t, analysis, `"bullet_optimizations"`)

	scoring := RenderScoring("A", "J", "R")
	assert.Contains(t, scoring, "Analysis Data:\nA\n")
	assert.Contains(t, scoring, "JD Data:\nJ\n")
	assert.Contains(t, scoring, "Resume Data:\nR\n")
	assert.Contains(t, scoring, `"top_3_actions"`)
}

func TestPromptRenderingDoesNotExpandUserPlaceholders(t *testing.T) {
	out := RenderAnalysis("{{RESUME_DATA}}", "resume")
	assert.Contains(t, out, "Job Description Intelligence:\n{{RESUME_DATA}}\n")
}
