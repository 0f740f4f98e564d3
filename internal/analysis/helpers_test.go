package analysis

import (
	"context"
	"strings"
	"sync"

	"cvalign-lens/internal/llm"
)

type call struct {
	System string
	User   string
}

// scriptedCaller replies with its queued objects in order.
type scriptedCaller struct {
	mu      sync.Mutex
	replies []llm.Object
	errs    []error
	calls   []call
}

func (s *scriptedCaller) Call(ctx context.Context, systemPrompt, userPrompt string) (llm.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.calls)
	s.calls = append(s.calls, call{System: systemPrompt, User: userPrompt})
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return llm.Object{}, nil
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "skill"
	}
	return strings.Join(parts, " ")
}

func fullReplies() []llm.Object {
	return []llm.Object{
		{"role_title": "Backend Engineer", "seniority_level": "Senior", "core_technical_skills": []any{"Go"}},
		{"candidate_name": "Sam", "technical_skills": []any{"Go", "Postgres"}},
		{"strengths": []any{map[string]any{"point": "Go"}}, "overall_assessment": "Good fit."},
		{"overall_score": float64(81), "score_label": "Strong", "top_3_actions": []any{"Add metrics"}},
	}
}
