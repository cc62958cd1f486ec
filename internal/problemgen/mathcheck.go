package problemgen

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// MathCheckValidator recomputes bare arithmetic ("a op b = ?") and
// rejects answers that disagree. Word problems pass through unchecked.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem) *ValidationError {
	computed, err := computeAnswer(p.Question)
	if err != nil {
		return nil
	}
	if !answersEqual(computed, p.Answer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but reply claimed %q", computed, p.Answer),
			Retryable: true,
		}
	}
	return nil
}

var (
	// "1/2 + 1/4", "3/4 - 1/4", "1/2 × 2/3", "1/2 ÷ 1/4"
	fractionArithRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(\d+)\s*/\s*(\d+)`)

	// "12 + 7", "12.3 - 4.5", "3 × 6"
	numberArithRe = regexp.MustCompile(`(?:^|[^\d./])(\d+(?:\.\d+)?)\s*([+\-*×])\s*(\d+(?:\.\d+)?)(?:[^\d./]|$)`)

	// "12 ÷ 3" or "12 / 3"; a bare slash needs spaces so "3/4" stays a fraction.
	numberDivRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:÷|\s/\s)\s*(\d+(?:\.\d+)?)`)
)

// computeAnswer evaluates the first arithmetic expression in text.
func computeAnswer(text string) (string, error) {
	if m := fractionArithRe.FindStringSubmatch(text); m != nil {
		return computeFractionOp(m[1], m[2], normalizeOp(m[3]), m[4], m[5])
	}
	if m := numberArithRe.FindStringSubmatch(text); m != nil {
		return computeNumberOp(m[1], normalizeOp(m[2]), m[3])
	}
	if m := numberDivRe.FindStringSubmatch(text); m != nil {
		return computeNumberOp(m[1], "/", m[2])
	}
	return "", fmt.Errorf("not computable")
}

func computeFractionOp(an, ad, op, bn, bd string) (string, error) {
	aN, _ := strconv.ParseInt(an, 10, 64)
	aD, _ := strconv.ParseInt(ad, 10, 64)
	bN, _ := strconv.ParseInt(bn, 10, 64)
	bD, _ := strconv.ParseInt(bd, 10, 64)
	if aD == 0 || bD == 0 {
		return "", fmt.Errorf("zero denominator")
	}

	var rN, rD int64
	switch op {
	case "+":
		rN, rD = aN*bD+bN*aD, aD*bD
	case "-":
		rN, rD = aN*bD-bN*aD, aD*bD
	case "*":
		rN, rD = aN*bN, aD*bD
	case "/":
		if bN == 0 {
			return "", fmt.Errorf("division by zero")
		}
		rN, rD = aN*bD, aD*bN
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}

	g := gcd(abs(rN), rD)
	if g == 0 {
		return "0", nil
	}
	rN /= g
	rD /= g
	if rD == 1 {
		return strconv.FormatInt(rN, 10), nil
	}
	return fmt.Sprintf("%d/%d", rN, rD), nil
}

// computeNumberOp works in float64. When either operand has a decimal
// point the result is rounded to one decimal place, as hard problems are.
func computeNumberOp(aStr, op, bStr string) (string, error) {
	a, err := strconv.ParseFloat(aStr, 64)
	if err != nil {
		return "", err
	}
	b, err := strconv.ParseFloat(bStr, 64)
	if err != nil {
		return "", err
	}

	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return "", fmt.Errorf("division by zero")
		}
		result = a / b
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}

	if strings.Contains(aStr, ".") || strings.Contains(bStr, ".") {
		result = roundOneDecimal(result)
	}
	return formatNumber(result), nil
}

func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

// answersEqual compares two numeric answers by value, so "1/1" equals "1"
// and "2/4" equals "1/2". Non-numeric answers compare as trimmed text.
func answersEqual(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	ra, okA := parseRat(a)
	rb, okB := parseRat(b)
	if !okA || !okB {
		return a == b
	}
	return ra.Cmp(rb) == 0
}

func parseRat(s string) (*big.Rat, bool) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, false
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return r, true
}
