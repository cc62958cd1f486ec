package problemgen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NumericDomain is the number kind an answer is written in.
type NumericDomain int

const (
	DomainInteger NumericDomain = iota
	DomainFraction
	DomainOneDecimal
)

func (d NumericDomain) String() string {
	switch d {
	case DomainFraction:
		return "fraction"
	case DomainOneDecimal:
		return "decimal"
	default:
		return "integer"
	}
}

var (
	fractionRe   = regexp.MustCompile(`^\d+\s*/\s*\d+$`)
	oneDecimalRe = regexp.MustCompile(`^\d+\.\d$`)
)

// ClassifyDomain infers the domain from the literal form of answer.
// Fraction wins over one-decimal, which wins over integer; anything else,
// including "6" or "-3", is an integer.
func ClassifyDomain(answer string) NumericDomain {
	answer = strings.TrimSpace(answer)
	switch {
	case fractionRe.MatchString(answer):
		return DomainFraction
	case oneDecimalRe.MatchString(answer):
		return DomainOneDecimal
	default:
		return DomainInteger
	}
}

// roundOneDecimal rounds half away from zero at the first decimal place.
func roundOneDecimal(x float64) float64 {
	return math.Round(x*10) / 10
}

// formatNumber renders x in its shortest form: 6 not 6.0, 12.3 not 12.30.
func formatNumber(x float64) string {
	if x == 0 {
		x = 0 // normalizes -0
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// leadingInt parses the integer prefix of s ("12", "-3", "7/8" → 7). The
// second result is false when s does not start with a number.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFraction(s string) (int64, int64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return n, d, nil
}

// gcd expects non-negative arguments.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
