// Package almanac solves seed-to-location almanac puzzles.
//
// An almanac lists seed numbers followed by mapping stages such as
// "seed-to-soil". Each stage translates values through piecewise ranges and
// the stages chain by category name until "location" is reached. The answer
// is the lowest location any seed reaches.
//
// # Basic Usage
//
//	solver := almanac.NewSolver()
//
//	answer, err := solver.SolvePart1(ctx, input)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(answer) // "35" for the worked example
//
// # Seed Ranges
//
// Part 2 reads the seed values as (start, length) pairs and resolves whole
// ranges at once:
//
//	answer, err := solver.SolvePart2(ctx, input)
//
// # Lower-Level Access
//
// Parse returns the structured model, and NewResolver walks single seeds:
//
//	a, err := almanac.Parse(input)
//	r := almanac.NewResolver(a)
//	loc, err := r.Resolve(79) // 82
package almanac

import (
	"context"

	"github.com/praetorian-inc/almanac/pkg/parser"
	"github.com/praetorian-inc/almanac/pkg/puzzle"
	"github.com/praetorian-inc/almanac/pkg/resolver"
	"github.com/praetorian-inc/almanac/pkg/types"
	"go.uber.org/zap"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/almanac" without subpackages.
type (
	// Almanac is a parsed puzzle input.
	Almanac = types.Almanac

	// CategoryMapping is one "src-to-dest" stage.
	CategoryMapping = types.CategoryMapping

	// RangeMapping is one range line of a stage.
	RangeMapping = types.RangeMapping

	// SeedRange is a (start, length) pair of seeds.
	SeedRange = types.SeedRange

	// ParseError describes malformed input.
	ParseError = types.ParseError

	// SeedError describes a seed that could not be resolved.
	SeedError = types.SeedError

	// Part selects which half of the puzzle to solve.
	Part = puzzle.Part

	// Resolver walks seeds through a parsed almanac.
	Resolver = resolver.Resolver
)

// Re-export part constants and error sentinels.
const (
	Part1 = puzzle.Part1
	Part2 = puzzle.Part2
)

var (
	ErrInvalidSeeds         = types.ErrInvalidSeeds
	ErrInvalidHeader        = types.ErrInvalidHeader
	ErrChainBroken          = types.ErrChainBroken
	ErrChainDidNotTerminate = types.ErrChainDidNotTerminate
	ErrNoSeeds              = types.ErrNoSeeds
	ErrOddSeedCount         = types.ErrOddSeedCount
)

// Solver answers almanac puzzles.
type Solver struct {
	solver *puzzle.AlmanacSolver
}

// solverConfig holds solver configuration.
type solverConfig struct {
	workers int
	logger  *zap.Logger
}

// Option configures a Solver.
type Option func(*solverConfig)

// WithWorkers bounds how many goroutines resolve seeds in parallel.
// Default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *solverConfig) {
		c.workers = n
	}
}

// WithLogger sets the logger for debug output. Default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *solverConfig) {
		c.logger = l
	}
}

// NewSolver creates a solver.
func NewSolver(opts ...Option) *Solver {
	config := &solverConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(config)
	}
	return &Solver{
		solver: puzzle.NewAlmanacSolver(config.workers, config.logger),
	}
}

// SolvePart1 returns the lowest location of any listed seed.
func (s *Solver) SolvePart1(ctx context.Context, input string) (string, error) {
	return s.solver.Solve(ctx, puzzle.Part1, input)
}

// SolvePart2 returns the lowest location of any seed in the listed ranges.
func (s *Solver) SolvePart2(ctx context.Context, input string) (string, error) {
	return s.solver.Solve(ctx, puzzle.Part2, input)
}

// Solve solves the given part.
func (s *Solver) Solve(ctx context.Context, part Part, input string) (string, error) {
	return s.solver.Solve(ctx, part, input)
}

// Parse parses almanac text.
func Parse(input string) (*Almanac, error) {
	return parser.Parse(input)
}

// NewResolver creates a resolver for a parsed almanac, using the given
// options' worker count and logger.
func NewResolver(a *Almanac, opts ...Option) *Resolver {
	config := &solverConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(config)
	}
	return resolver.New(a, resolver.WithWorkers(config.workers), resolver.WithLogger(config.logger))
}
