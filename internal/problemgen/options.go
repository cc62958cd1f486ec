package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Rand is the randomness used by the local generator and option builder.
// *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRand returns a clock-seeded Rand that is safe for concurrent use.
func NewRand() Rand {
	seed := uint64(time.Now().UnixNano())
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// OptionCount is the size of every option set.
const OptionCount = 4

var (
	easyPool    = []string{"0", "1", "2", "3", "4", "5"}
	generalPool = []string{"0", "1", "2", "3", "4", "5", "1/2", "1/4", "3/4", "0.5", "1.5"}
)

// BuildOptions returns four distinct multiple-choice options for answer,
// one of which is the trimmed answer itself, in random order.
//
// Easy answers get integer neighbours. Otherwise candidates follow the
// answer's domain: neighbouring numerators and the halves/quarters of a
// fraction, ±0.1 and ±0.2 around a decimal written with one decimal
// place, integer neighbours (never below zero) for integers. Short sets
// are topped up from a fixed pool.
func BuildOptions(answer string, level Level, rng Rand) []string {
	ans := strings.TrimSpace(answer)

	var candidates []string
	if level == Easy {
		if n, ok := leadingInt(ans); ok {
			candidates = integerCandidates(n)
		} else {
			candidates = domainCandidates(ans)
		}
	} else {
		candidates = domainCandidates(ans)
	}
	options := unique(candidates)

	pool := generalPool
	if level == Easy {
		pool = easyPool
	}
	for _, v := range pool {
		if len(options) >= OptionCount {
			break
		}
		if !slices.Contains(options, v) {
			options = append(options, v)
		}
	}

	options = options[:OptionCount]
	if !slices.Contains(options, ans) {
		options[0] = ans
	}

	for i := len(options) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		options[i], options[j] = options[j], options[i]
	}
	return options
}

func domainCandidates(ans string) []string {
	switch ClassifyDomain(ans) {
	case DomainFraction:
		return fractionCandidates(ans)
	case DomainOneDecimal:
		return decimalCandidates(ans)
	default:
		if n, ok := leadingInt(ans); ok {
			return integerCandidates(n)
		}
		return nil
	}
}

func integerCandidates(n int) []string {
	out := make([]string, 0, 5)
	for _, d := range []int{0, 1, -1, 2, -2} {
		v := n + d
		if d != 0 {
			v = max(0, v)
		}
		out = append(out, strconv.Itoa(v))
	}
	return out
}

func fractionCandidates(ans string) []string {
	n, d, err := parseFraction(ans)
	if err != nil {
		return []string{ans}
	}
	out := []string{ans}
	add := func(num, den int64) {
		if num > 0 && den > 0 {
			out = append(out, fmt.Sprintf("%d/%d", num, den))
		}
	}
	add(n+1, d)
	add(n-1, d)
	for _, den := range []int64{2, 4} {
		if den != d {
			add(n, den)
		}
	}
	return out
}

func decimalCandidates(ans string) []string {
	v, err := strconv.ParseFloat(ans, 64)
	if err != nil {
		return []string{ans}
	}
	out := []string{ans}
	for _, delta := range []float64{0.1, -0.1, 0.2, -0.2} {
		out = append(out, formatOneDecimal(roundOneDecimal(v+delta)))
	}
	return out
}

// formatOneDecimal keeps the decimal point so candidates read like the
// answer they stand in for ("6.0", not "6").
func formatOneDecimal(x float64) string {
	if x == 0 {
		x = 0
	}
	return strconv.FormatFloat(x, 'f', 1, 64)
}

func unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
