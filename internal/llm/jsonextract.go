package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"cvalign-lens/internal/shared/util"
)

var (
	leadingFence  = regexp.MustCompile("^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

const rawExcerptChars = 300

// ParseError reports a model reply that did not contain a JSON object.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("LLM response could not be parsed as JSON. Raw response: %s... Error: %v",
		util.HeadRunes(e.Raw, rawExcerptChars), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractJSON decodes a model reply into an Object. Markdown code fences are
// stripped first; when the remainder does not parse, the span from the first
// '{' to the last '}' is tried.
func ExtractJSON(text string) (Object, error) {
	text = strings.TrimSpace(text)
	cleaned := leadingFence.ReplaceAllString(text, "")
	cleaned = trailingFence.ReplaceAllString(strings.TrimSpace(cleaned), "")

	obj, firstErr := decodeObject(cleaned)
	if firstErr == nil {
		return obj, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if obj, err := decodeObject(cleaned[start : end+1]); err == nil {
			return obj, nil
		}
	}

	return nil, &ParseError{Raw: text, Err: firstErr}
}

func decodeObject(s string) (Object, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", jsonKind(v))
	}
	return Object(obj), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
