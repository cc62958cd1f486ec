package problemgen

import (
	"context"
	"log/slog"
)

// Service picks a problem source per level. Easy problems are always built
// locally; medium and hard problems are requested remotely once and built
// locally when that fails for any reason.
type Service struct {
	remote Generator
	local  *LocalGenerator
	logger *slog.Logger
}

// NewService wires the two branches. remote may be nil, in which case
// every level is served locally.
func NewService(remote Generator, local *LocalGenerator, logger *slog.Logger) *Service {
	if local == nil {
		local = NewLocalGenerator(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{remote: remote, local: local, logger: logger}
}

// Generate always returns a problem.
func (s *Service) Generate(ctx context.Context, level Level) Problem {
	if level == Easy || s.remote == nil {
		return s.local.Build(level)
	}

	p, err := s.remote.Generate(ctx, level)
	if err != nil {
		s.logger.Warn("remote problem generation failed, using local generator",
			"level", level, "error", err)
		return s.local.Build(level)
	}
	s.logger.Debug("remote problem generated", "level", level, "question", p.Question)
	return *p
}

// Quiz is a problem with its shuffled multiple-choice options.
type Quiz struct {
	Problem
	Options []string `json:"options"`
}

// Quiz generates a problem and builds its options.
func (s *Service) Quiz(ctx context.Context, level Level) Quiz {
	p := s.Generate(ctx, level)
	return Quiz{Problem: p, Options: BuildOptions(p.Answer, p.Level, s.local.rng)}
}

// Rand returns the randomness shared by the local generator and option
// builder.
func (s *Service) Rand() Rand {
	return s.local.rng
}
