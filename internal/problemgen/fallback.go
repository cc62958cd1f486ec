package problemgen

import (
	"context"
	"fmt"
	"strconv"
)

var (
	childNames = []string{"小明", "小红", "小刚", "小丽"}
	itemNames  = []string{"苹果", "香蕉", "气球", "铅笔", "糖果"}
)

// smallProducts holds every factor pair (a, b) in [0, 20]² with a×b ≤ 20.
var smallProducts = func() [][2]int {
	var out [][2]int
	for a := 0; a <= 20; a++ {
		for b := 0; b <= 20; b++ {
			if a*b <= 20 {
				out = append(out, [2]int{a, b})
			}
		}
	}
	return out
}()

// LocalGenerator builds problems without any network access. It never
// fails.
type LocalGenerator struct {
	rng Rand
}

func NewLocalGenerator(rng Rand) *LocalGenerator {
	if rng == nil {
		rng = NewRand()
	}
	return &LocalGenerator{rng: rng}
}

// Generate implements Generator.
func (g *LocalGenerator) Generate(_ context.Context, level Level) (*Problem, error) {
	p := g.Build(level)
	return &p, nil
}

// Build returns a problem for level. Unknown levels are treated as hard.
func (g *LocalGenerator) Build(level Level) Problem {
	var p Problem
	switch level {
	case Easy:
		p = g.wordProblem()
	case Medium:
		p = g.mixedIntegers()
	default:
		if g.rng.Float64() < 0.5 {
			p = g.fractionSum()
		} else {
			p = g.decimalArithmetic()
		}
		level = Hard
	}
	p.Level = level
	p.Origin = OriginLocal
	return p
}

func (g *LocalGenerator) intIn(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *LocalGenerator) wordProblem() Problem {
	add := g.rng.Float64() < 0.6
	name := childNames[g.rng.IntN(len(childNames))]
	item := itemNames[g.rng.IntN(len(itemNames))]
	a := g.intIn(0, 10)
	b := g.intIn(1, 10)

	if add {
		giver := "老师"
		if name == "小明" {
			giver = "妈妈"
		}
		return Problem{
			Question: fmt.Sprintf("%s有%d个%s，%s又给了他%d个，现在%s有几个%s？", name, a, item, giver, b, name, item),
			Answer:   strconv.Itoa(a + b),
		}
	}

	x, y := max(a, b), min(a, b)
	return Problem{
		Question: fmt.Sprintf("%s有%d个%s，他送出了%d个，现在还剩几个%s？", name, x, item, y, item),
		Answer:   strconv.Itoa(x - y),
	}
}

func (g *LocalGenerator) mixedIntegers() Problem {
	switch g.rng.IntN(4) {
	case 0:
		a, b := g.intIn(0, 20), g.intIn(0, 20)
		return Problem{Question: fmt.Sprintf("%d + %d = ?", a, b), Answer: strconv.Itoa(a + b)}
	case 1:
		a, b := g.intIn(0, 20), g.intIn(0, 20)
		x, y := max(a, b), min(a, b)
		return Problem{Question: fmt.Sprintf("%d - %d = ?", x, y), Answer: strconv.Itoa(x - y)}
	case 2:
		f := smallProducts[g.rng.IntN(len(smallProducts))]
		return Problem{Question: fmt.Sprintf("%d × %d = ?", f[0], f[1]), Answer: strconv.Itoa(f[0] * f[1])}
	default:
		divisor := g.intIn(1, 10)
		quotient := g.intIn(0, 10)
		return Problem{
			Question: fmt.Sprintf("%d ÷ %d = ?", divisor*quotient, divisor),
			Answer:   strconv.Itoa(quotient),
		}
	}
}

func (g *LocalGenerator) fractionSum() Problem {
	denominators := []int64{2, 4}
	d1 := denominators[g.rng.IntN(len(denominators))]
	d2 := denominators[g.rng.IntN(len(denominators))]
	n1 := int64(g.intIn(1, int(d1)-1))
	n2 := int64(g.intIn(1, int(d2)-1))

	l := d1 * d2 / gcd(d1, d2)
	sum := n1*(l/d1) + n2*(l/d2)
	k := gcd(sum, l)

	return Problem{
		Question: fmt.Sprintf("%d/%d + %d/%d = ?", n1, d1, n2, d2),
		Answer:   fmt.Sprintf("%d/%d", sum/k, l/k),
	}
}

func (g *LocalGenerator) decimalArithmetic() Problem {
	op := g.rng.IntN(3)
	a := roundOneDecimal(float64(g.intIn(0, 100)) + float64(g.intIn(0, 9))/10)
	b := roundOneDecimal(float64(g.intIn(0, 100)) + float64(g.intIn(0, 9))/10)

	switch op {
	case 0:
		return Problem{
			Question: fmt.Sprintf("%s + %s = ?", formatNumber(a), formatNumber(b)),
			Answer:   formatNumber(roundOneDecimal(a + b)),
		}
	case 1:
		x, y := max(a, b), min(a, b)
		return Problem{
			Question: fmt.Sprintf("%s - %s = ?", formatNumber(x), formatNumber(y)),
			Answer:   formatNumber(roundOneDecimal(x - y)),
		}
	default:
		return Problem{
			Question: fmt.Sprintf("%s × %s = ?", formatNumber(a), formatNumber(b)),
			Answer:   formatNumber(roundOneDecimal(a * b)),
		}
	}
}
