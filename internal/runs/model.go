package runs

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"cvalign-lens/internal/shared/util"
)

const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"

	SourceText = "text"
	SourceFile = "file"

	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ErrInvalidLimit is returned for a non-positive or unparseable list limit.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// Run is the metadata of one analyze request. The submitted text is never
// stored, only its digest.
type Run struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id"`
	CreatedAt    time.Time `json:"created_at"`
	HTTPStatus   int       `json:"http_status"`
	Outcome      string    `json:"outcome"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	InputSource  string    `json:"input_source"`
	JDHash       string    `json:"jd_sha256"`
	ResumeHash   string    `json:"resume_sha256"`
	OverallScore *int      `json:"overall_score"`
	ScoreLabel   *string   `json:"score_label"`
	DurationMs   int64     `json:"duration_ms"`
}

// NewRun fills the ID and timestamp.
func NewRun(requestID string) Run {
	return Run{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		CreatedAt:   time.Now().UTC(),
		InputSource: SourceText,
	}
}

// HashInputs records digests of the submitted texts.
func (r *Run) HashInputs(jobDescription, resumeText string) {
	if jobDescription != "" {
		r.JDHash = util.SHA256Hex(jobDescription)
	}
	if resumeText != "" {
		r.ResumeHash = util.SHA256Hex(resumeText)
	}
}

// Score attaches the final score to a completed run.
func (r *Run) Score(overall int, label string) {
	r.OverallScore = &overall
	r.ScoreLabel = &label
}

// ClampLimit applies the list defaults: zero means DefaultListLimit, values
// above MaxListLimit are capped, negatives are rejected.
func ClampLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, ErrInvalidLimit
	case limit == 0:
		return DefaultListLimit, nil
	case limit > MaxListLimit:
		return MaxListLimit, nil
	}
	return limit, nil
}
