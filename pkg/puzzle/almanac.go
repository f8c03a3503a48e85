package puzzle

import (
	"context"
	"fmt"
	"strconv"

	"github.com/praetorian-inc/almanac/pkg/parser"
	"github.com/praetorian-inc/almanac/pkg/resolver"
	"go.uber.org/zap"
)

// AlmanacName is the registry name of the almanac solver.
const AlmanacName = "almanac"

// AlmanacSolver finds the lowest location for the almanac's seeds.
// Part 1 treats every seed value as a seed; part 2 reads them as
// (start, length) pairs.
type AlmanacSolver struct {
	workers int
	logger  *zap.Logger
}

// NewAlmanacSolver creates the almanac solver. workers <= 0 uses the
// resolver default.
func NewAlmanacSolver(workers int, logger *zap.Logger) *AlmanacSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlmanacSolver{workers: workers, logger: logger}
}

// Name implements Solver.
func (s *AlmanacSolver) Name() string {
	return AlmanacName
}

// Solve implements Solver.
func (s *AlmanacSolver) Solve(ctx context.Context, part Part, input string) (string, error) {
	if err := part.Validate(); err != nil {
		return "", err
	}

	a, err := parser.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parsing almanac: %w", err)
	}
	s.logger.Debug("parsed almanac",
		zap.Int("seeds", len(a.Seeds)),
		zap.Int("stages", len(a.Mappings)))

	r := resolver.New(a, resolver.WithWorkers(s.workers), resolver.WithLogger(s.logger))

	var loc uint64
	switch part {
	case Part1:
		loc, err = r.MinLocation(ctx, a.Seeds)
	case Part2:
		ranges, rerr := a.SeedRanges()
		if rerr != nil {
			return "", rerr
		}
		loc, err = r.MinLocationForRanges(ctx, ranges)
	}
	if err != nil {
		return "", fmt.Errorf("resolving locations: %w", err)
	}

	return strconv.FormatUint(loc, 10), nil
}
