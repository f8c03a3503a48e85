package puzzle

import (
	"context"
	"fmt"
	"time"

	"github.com/praetorian-inc/almanac/pkg/types"
	"go.uber.org/zap"
)

// Result is the outcome of one solve.
type Result struct {
	Puzzle   string        `json:"puzzle"`
	Part     Part          `json:"part"`
	InputID  types.InputID `json:"input_id"`
	Answer   string        `json:"answer"`
	Duration time.Duration `json:"duration_ns"`
	Cached   bool          `json:"cached"`
}

// Solution converts the result into a storable record.
func (r *Result) Solution() *types.Solution {
	return types.NewSolution(r.Puzzle, int(r.Part), r.InputID, r.Answer, r.Duration)
}

// Outcome pairs a result with its error, for SolveAsync.
type Outcome struct {
	Result *Result
	Err    error
}

// Engine dispatches inputs to registered solvers with bounded concurrency
// and caches answers by input content.
type Engine struct {
	solvers map[string]Solver
	names   []string
	cache   *ResultCache
	workers int
	sem     chan struct{} // semaphore for bounded concurrency
	logger  *zap.Logger
}

// NewEngine creates an engine with the given solvers. Later solvers with a
// duplicate name are ignored.
func NewEngine(workers int, solvers ...Solver) *Engine {
	if workers <= 0 {
		workers = 4
	}
	e := &Engine{
		solvers: make(map[string]Solver, len(solvers)),
		cache:   NewResultCache(),
		workers: workers,
		sem:     make(chan struct{}, workers),
		logger:  zap.NewNop(),
	}
	for _, s := range solvers {
		if _, dup := e.solvers[s.Name()]; dup {
			continue
		}
		e.solvers[s.Name()] = s
		e.names = append(e.names, s.Name())
	}
	return e
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(l *zap.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Names returns registered solver names in registration order.
func (e *Engine) Names() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// Solve runs the named solver on input. Cached answers are returned without
// running the solver again.
func (e *Engine) Solve(ctx context.Context, name string, part Part, input string) (*Result, error) {
	s, ok := e.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown puzzle: %q", name)
	}
	if err := part.Validate(); err != nil {
		return nil, err
	}

	id := types.ComputeInputID([]byte(input))
	if answer, ok := e.cache.Get(name, part, id); ok {
		e.logger.Debug("cache hit",
			zap.String("puzzle", name),
			zap.Stringer("part", part),
			zap.String("input", id.Short()))
		return &Result{Puzzle: name, Part: part, InputID: id, Answer: answer, Cached: true}, nil
	}

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-e.sem }()

	start := time.Now()
	answer, err := s.Solve(ctx, part, input)
	took := time.Since(start)
	if err != nil {
		e.logger.Debug("solve failed",
			zap.String("puzzle", name),
			zap.Stringer("part", part),
			zap.Error(err))
		return nil, err
	}
	e.cache.Set(name, part, id, answer)

	e.logger.Info("solved",
		zap.String("puzzle", name),
		zap.Stringer("part", part),
		zap.String("input", id.Short()),
		zap.String("answer", answer),
		zap.Duration("took", took))

	return &Result{Puzzle: name, Part: part, InputID: id, Answer: answer, Duration: took}, nil
}

// SolveAsync runs Solve in a goroutine. The returned channel receives
// exactly one Outcome.
func (e *Engine) SolveAsync(ctx context.Context, name string, part Part, input string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		res, err := e.Solve(ctx, name, part, input)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}
