package analysis

import (
	"context"
	"fmt"

	"cvalign-lens/internal/llm"
	"cvalign-lens/internal/shared/util"
)

const (
	jdMaxChars     = 6000
	jdMinWords     = 20
	resumeMaxChars = 7000
	resumeMinWords = 50
)

// Caller performs one prompt round-trip and returns the decoded JSON object.
// *llm.Gateway satisfies it.
type Caller interface {
	Call(ctx context.Context, systemPrompt, userPrompt string) (llm.Object, error)
}

// JDParser turns raw job description text into JDIntelligence.
type JDParser struct {
	caller Caller
}

func NewJDParser(c Caller) *JDParser {
	return &JDParser{caller: c}
}

func (p *JDParser) Parse(ctx context.Context, raw string) (JDIntelligence, error) {
	text := util.TruncateText(util.CleanText(raw), jdMaxChars)
	if !util.IsMeaningful(text, jdMinWords) {
		return JDIntelligence{}, &ValidationError{Field: "job_description", Message: msgJDTooShort}
	}

	obj, err := p.caller.Call(ctx, llm.SystemPrompt(), llm.RenderJDExtraction(text))
	if err != nil {
		return JDIntelligence{}, fmt.Errorf("jd extraction: %w", err)
	}
	return NormalizeJD(obj), nil
}
