package kousuan

import "log/slog"

// Generator produces ordered problem sets.
type Generator struct {
	builder *Builder
	sampler *Sampler
	logger  *slog.Logger
}

// NewGenerator creates a Generator using src for every random choice.
// A nil logger uses slog.Default().
func NewGenerator(src Source, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		builder: NewBuilder(src),
		sampler: NewSampler(src),
		logger:  logger,
	}
}

// Generate returns count problems. Each slot independently picks a type
// uniformly (with replacement) from types, or from the full taxonomy when
// types is empty. A non-positive count yields an empty slice.
func (g *Generator) Generate(count int, types []ProblemType) []Problem {
	selected := types
	if len(selected) == 0 {
		selected = AllTypes()
	}
	if count < 0 {
		count = 0
	}

	g.logger.Debug("generating problems", "count", count, "types", len(selected))

	problems := make([]Problem, 0, count)
	for range count {
		t := selected[g.sampler.Pick(len(selected))]
		problems = append(problems, g.builder.Build(t))
	}

	g.logger.Debug("generated problems", "count", len(problems))
	return problems
}

// Build produces a single problem of type t.
func (g *Generator) Build(t ProblemType) Problem {
	return g.builder.Build(t)
}
