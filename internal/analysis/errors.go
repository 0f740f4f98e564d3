package analysis

import "errors"

const (
	msgJDTooShort     = "Job description is too short or lacks meaningful content. Please provide a complete job description."
	msgResumeTooShort = "Resume content is too short to analyze meaningfully. Please provide more complete resume content."
)

// ValidationError means the input was present but too thin to analyze.
// Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation reports whether err carries a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
