package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckAnswer reports whether submitted answers p.
//
// Both sides are trimmed and normalized in the domain of the canonical
// answer:
//   - integers ignore leading zeros ("007" matches "7")
//   - fractions accept equivalent forms and whole numbers ("2/4" and "1/2",
//     "1" and "1/1")
//   - decimals ignore trailing zeros ("3.50" matches "3.5", "6.0" matches "6")
func CheckAnswer(submitted string, p Problem) bool {
	submitted = strings.TrimSpace(submitted)
	canonical := strings.TrimSpace(p.Answer)
	if submitted == "" {
		return false
	}
	if submitted == canonical {
		return true
	}

	domain := ClassifyDomain(canonical)
	if domain == DomainInteger && oneDecimalRe.MatchString(submitted) {
		// "6.0" for a decimal problem whose canonical result is "6"
		domain = DomainOneDecimal
	}

	want, err := normalizeAnswer(canonical, domain)
	if err != nil {
		return false
	}
	got, err := normalizeAnswer(submitted, domain)
	if err != nil {
		return false
	}
	return got == want
}

func normalizeAnswer(answer string, domain NumericDomain) (string, error) {
	answer = strings.TrimSpace(answer)

	switch domain {
	case DomainInteger:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil

	case DomainOneDecimal:
		f, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return formatNumber(f), nil

	case DomainFraction:
		num, den := int64(0), int64(1)
		if strings.Contains(answer, "/") {
			var err error
			num, den, err = parseFraction(answer)
			if err != nil {
				return "", err
			}
		} else {
			n, err := strconv.ParseInt(answer, 10, 64)
			if err != nil {
				return "", fmt.Errorf("invalid fraction: %w", err)
			}
			num = n
		}
		if den == 0 {
			return "", fmt.Errorf("zero denominator")
		}
		if den < 0 {
			num, den = -num, -den
		}
		g := gcd(abs(num), den)
		if g == 0 {
			g = 1
		}
		return fmt.Sprintf("%d/%d", num/g, den/g), nil
	}
	return answer, nil
}
