package runtime

import "go.uber.org/zap"

type settings struct {
	logger   *zap.Logger
	rent     Rent
	programs []Program
}

// Option configures the runtime.
type Option func(*settings)

// WithLogger sets a custom logger for the runtime.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRent overrides DefaultRent.
func WithRent(r Rent) Option {
	return func(s *settings) { s.rent = r }
}

// WithProgram registers a program under its id.
func WithProgram(p Program) Option {
	return func(s *settings) { s.programs = append(s.programs, p) }
}

func applyOptions(opts []Option) settings {
	s := settings{logger: zap.NewNop(), rent: DefaultRent}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}
