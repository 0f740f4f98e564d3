package analysis

import (
	"context"
	"fmt"

	"cvalign-lens/internal/llm"
	"cvalign-lens/internal/shared/util"
)

// ResumeParser turns raw resume text into ResumeIntelligence.
type ResumeParser struct {
	caller Caller
}

func NewResumeParser(c Caller) *ResumeParser {
	return &ResumeParser{caller: c}
}

func (p *ResumeParser) Parse(ctx context.Context, raw string) (ResumeIntelligence, error) {
	text := util.TruncateText(util.CleanText(raw), resumeMaxChars)
	if !util.IsMeaningful(text, resumeMinWords) {
		return ResumeIntelligence{}, &ValidationError{Field: "resume_text", Message: msgResumeTooShort}
	}

	obj, err := p.caller.Call(ctx, llm.SystemPrompt(), llm.RenderResumeExtraction(text))
	if err != nil {
		return ResumeIntelligence{}, fmt.Errorf("resume extraction: %w", err)
	}
	return NormalizeResume(obj), nil
}
