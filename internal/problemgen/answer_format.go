package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	integerPattern  = regexp.MustCompile(`^\d+$`)
	fractionPattern = regexp.MustCompile(`^\d+/\d+$`)
)

// AnswerFormatValidator checks that the answer is written the way the
// level expects: non-negative integers for easy and medium; an integer, a
// reduced fraction or a one-decimal number for hard.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(p *Problem) *ValidationError {
	var err error
	switch {
	case integerPattern.MatchString(p.Answer):
		err = validateInteger(p.Answer)
	case p.Level == Easy || p.Level == Medium:
		err = fmt.Errorf("%s answers must be whole numbers", p.Level)
	case fractionPattern.MatchString(p.Answer):
		err = validateFraction(p.Answer)
	case oneDecimalRe.MatchString(p.Answer):
		err = validateDecimal(p.Answer)
	default:
		err = fmt.Errorf("not an integer, fraction or one-decimal number")
	}
	if err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("invalid answer %q: %s", p.Answer, err),
			Retryable: true,
		}
	}
	return nil
}

func validateInteger(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a valid integer")
	}
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("has leading zeros")
	}
	return nil
}

// validateDecimal rejects "6.0"; whole results are written "6".
func validateDecimal(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a valid decimal")
	}
	if normalized := formatNumber(f); normalized != s {
		return fmt.Errorf("not normalized (expected %q)", normalized)
	}
	return nil
}

func validateFraction(s string) error {
	num, den, err := parseFraction(s)
	if err != nil {
		return err
	}
	if den <= 0 {
		return fmt.Errorf("denominator must be positive")
	}
	if gcd(abs(num), den) != 1 {
		return fmt.Errorf("fraction is not in lowest terms")
	}
	return nil
}
