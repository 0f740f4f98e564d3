package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cvalign-lens/internal/llm"
)

// Analyzer compares JD and resume intelligence.
type Analyzer struct {
	caller Caller
}

func NewAnalyzer(c Caller) *Analyzer {
	return &Analyzer{caller: c}
}

func (a *Analyzer) Analyze(ctx context.Context, jd JDIntelligence, resume ResumeIntelligence) (AnalysisResult, error) {
	jdData, err := prettyJSON(jd)
	if err != nil {
		return AnalysisResult{}, err
	}
	resumeData, err := prettyJSON(resume)
	if err != nil {
		return AnalysisResult{}, err
	}

	obj, err := a.caller.Call(ctx, llm.SystemPrompt(), llm.RenderAnalysis(jdData, resumeData))
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("gap analysis: %w", err)
	}
	return NormalizeAnalysis(obj), nil
}

// prettyJSON renders v with two-space indentation for prompt embedding.
func prettyJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode prompt data: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
