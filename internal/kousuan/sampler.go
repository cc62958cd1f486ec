package kousuan

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness used by the engine. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// NewSource returns a PCG-backed Source seeded from the clock.
func NewSource() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Range is an inclusive integer interval.
type Range struct {
	Lo, Hi int
}

// Operation is the concrete arithmetic operation of a single instance.
type Operation int

const (
	Addition Operation = iota
	Subtraction
)

// Symbol returns the full-width operator used in question text.
func (o Operation) Symbol() string {
	if o == Subtraction {
		return "－"
	}
	return "＋"
}

// Apply computes a op b.
func (o Operation) Apply(a, b int) int {
	if o == Subtraction {
		return a - b
	}
	return a + b
}

// Constraint describes how the operands of one instance are drawn and
// which predicate they must satisfy.
type Constraint struct {
	A Range
	// B returns the range for b given the drawn a.
	B func(a int) Range
	// Pred must hold for the pair; nil accepts everything.
	Pred func(a, b int) bool
}

func fixed(r Range) func(int) Range { return func(int) Range { return r } }

func upTo(ceiling int) func(int) Range {
	return func(a int) Range { return Range{0, ceiling - a} }
}

func upToA(a int) Range { return Range{0, a} }

func noCarry(a, b int) bool  { return a%10+b%10 < 10 }
func noBorrow(a, b int) bool { return a%10 >= b%10 }

func carry(a, b int) bool { return a%10+b%10 >= 10 && a+b <= 20 }

func borrow(a, b int) bool { return a%10 < b%10 && a-b >= 0 }

var (
	teenRange = Range{10, 19}
	unitRange = Range{0, 9}
)

// ConstraintFor returns the operand constraint of spec when instantiated
// with the concrete operation op.
func ConstraintFor(spec TypeSpec, op Operation) Constraint {
	c := spec.Ceiling
	if op == Subtraction {
		switch spec.Carry {
		case CarryNone:
			return Constraint{A: teenRange, B: fixed(unitRange), Pred: noBorrow}
		case BorrowRequired, CarryOrBorrow:
			return Constraint{A: teenRange, B: fixed(unitRange), Pred: borrow}
		}
		return Constraint{A: Range{0, c}, B: upToA}
	}

	switch spec.Carry {
	case CarryNone:
		return Constraint{A: teenRange, B: fixed(unitRange), Pred: noCarry}
	case CarryRequired, CarryOrBorrow:
		return Constraint{A: Range{0, 20}, B: fixed(Range{0, 20}), Pred: carry}
	}
	if c <= 10 {
		return Constraint{A: Range{0, c}, B: fixed(Range{0, c})}
	}
	return Constraint{A: Range{0, c}, B: upTo(c)}
}

// Sampler draws operand pairs by rejection sampling. Every constraint
// produced by ConstraintFor has a non-empty solution set, so Sample
// terminates with probability one and no iteration cap is applied.
type Sampler struct {
	src Source
}

// NewSampler creates a Sampler over src.
func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Sample draws (a, b) uniformly from the constraint's ranges until the
// predicate holds.
func (s *Sampler) Sample(c Constraint) (a, b int) {
	for {
		a = s.draw(c.A)
		b = s.draw(c.B(a))
		if c.Pred == nil || c.Pred(a, b) {
			return a, b
		}
	}
}

// Coin returns true with probability one half.
func (s *Sampler) Coin() bool {
	return s.src.IntN(2) == 0
}

// Pick returns a uniform index in [0, n).
func (s *Sampler) Pick(n int) int {
	return s.src.IntN(n)
}

func (s *Sampler) draw(r Range) int {
	return r.Lo + s.src.IntN(r.Hi-r.Lo+1)
}
