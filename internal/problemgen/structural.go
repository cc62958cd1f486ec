package problemgen

import (
	"strings"
	"unicode/utf8"
)

const (
	maxQuestionRunes = 200
	maxAnswerRunes   = 20
)

// StructuralValidator checks that both fields are present and short.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	switch {
	case strings.TrimSpace(p.Question) == "":
		return v.fail("question is empty")
	case utf8.RuneCountInString(p.Question) > maxQuestionRunes:
		return v.fail("question exceeds 200 characters")
	case strings.TrimSpace(p.Answer) == "":
		return v.fail("answer is empty")
	case utf8.RuneCountInString(p.Answer) > maxAnswerRunes:
		return v.fail("answer exceeds 20 characters")
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
