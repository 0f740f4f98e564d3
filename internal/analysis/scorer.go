package analysis

import (
	"context"
	"fmt"

	"cvalign-lens/internal/llm"
)

// Scorer produces the numeric alignment score.
type Scorer struct {
	caller Caller
}

func NewScorer(c Caller) *Scorer {
	return &Scorer{caller: c}
}

// Score rates an analysis. jd and resume are optional context and render as
// {} when nil.
func (s *Scorer) Score(ctx context.Context, analysis AnalysisResult, jd *JDIntelligence, resume *ResumeIntelligence) (ScoreResult, error) {
	analysisData, err := prettyJSON(analysis)
	if err != nil {
		return ScoreResult{}, err
	}
	jdData, err := optionalJSON(jd)
	if err != nil {
		return ScoreResult{}, err
	}
	resumeData, err := optionalJSON(resume)
	if err != nil {
		return ScoreResult{}, err
	}

	obj, err := s.caller.Call(ctx, llm.SystemPrompt(), llm.RenderScoring(analysisData, jdData, resumeData))
	if err != nil {
		return ScoreResult{}, fmt.Errorf("scoring: %w", err)
	}
	return NormalizeScore(obj), nil
}

func optionalJSON[T any](v *T) (string, error) {
	if v == nil {
		return "{}", nil
	}
	return prettyJSON(v)
}
