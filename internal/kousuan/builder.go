package kousuan

import "fmt"

// DefaultProblem is returned for identifiers outside the taxonomy.
var DefaultProblem = Problem{
	Question: "1＋1＝" + Blank,
	Answer:   2,
	Type:     Add5,
}

// Builder turns a problem type into a concrete Problem.
type Builder struct {
	sampler *Sampler
}

// NewBuilder creates a Builder drawing randomness from src.
func NewBuilder(src Source) *Builder {
	return &Builder{sampler: NewSampler(src)}
}

// Build produces one problem of type t. Unknown types yield DefaultProblem
// instead of an error.
func (b *Builder) Build(t ProblemType) Problem {
	spec, ok := Lookup(t)
	if !ok {
		return DefaultProblem
	}

	switch spec.Op {
	case OpAdd:
		return b.equation(spec, Addition)
	case OpSubtract:
		return b.equation(spec, Subtraction)
	case OpAddOrSubtract:
		return b.equation(spec, b.operation())
	case OpFillBlank:
		return b.fillBlank(spec, b.operation())
	case OpFillBlankMixed:
		// Delegates are validated at init to be non-mixed peers.
		return b.Build(spec.Delegates[b.sampler.Pick(len(spec.Delegates))])
	}
	return DefaultProblem
}

func (b *Builder) operation() Operation {
	if b.sampler.Coin() {
		return Addition
	}
	return Subtraction
}

func (b *Builder) equation(spec TypeSpec, op Operation) Problem {
	x, y := b.sampler.Sample(ConstraintFor(spec, op))
	return Problem{
		Question: fmt.Sprintf("%d%s%d＝%s", x, op.Symbol(), y, Blank),
		Answer:   op.Apply(x, y),
		Type:     spec.ID,
	}
}

func (b *Builder) fillBlank(spec TypeSpec, op Operation) Problem {
	x, y := b.sampler.Sample(ConstraintFor(spec, op))
	result := op.Apply(x, y)
	if b.sampler.Coin() {
		return Problem{
			Question: fmt.Sprintf("%d%s%s＝%d", x, op.Symbol(), Blank, result),
			Answer:   y,
			Type:     spec.ID,
		}
	}
	return Problem{
		Question: fmt.Sprintf("%s%s%d＝%d", Blank, op.Symbol(), y, result),
		Answer:   x,
		Type:     spec.ID,
	}
}
