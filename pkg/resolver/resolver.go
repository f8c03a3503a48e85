// Package resolver walks seeds through an almanac's chain of category
// mappings to the terminal "location" category.
package resolver

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/praetorian-inc/almanac/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of seeds a worker resolves between context checks.
const chunkSize = 4096

// Resolver resolves values through an almanac. It is safe for concurrent
// use; the almanac must not be modified after New.
type Resolver struct {
	bySrc   map[string]*types.CategoryMapping
	byPair  map[[2]string]*types.CategoryMapping
	stages  int
	workers int
	logger  *zap.Logger

	chainOnce sync.Once
	chain     []*types.CategoryMapping
	chainErr  error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWorkers sets how many goroutines MinLocation uses.
// Default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New indexes the almanac's stages by source category. When several stages
// share a source category, the first declared one is used.
func New(a *types.Almanac, opts ...Option) *Resolver {
	r := &Resolver{
		bySrc:   make(map[string]*types.CategoryMapping, len(a.Mappings)),
		byPair:  make(map[[2]string]*types.CategoryMapping, len(a.Mappings)),
		stages:  len(a.Mappings),
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i := range a.Mappings {
		m := &a.Mappings[i]
		if _, ok := r.bySrc[m.SrcCat]; !ok {
			r.bySrc[m.SrcCat] = m
		}
		key := [2]string{m.SrcCat, m.DestCat}
		if _, ok := r.byPair[key]; !ok {
			r.byPair[key] = m
		}
	}
	return r
}

// MapCategory translates v from src to dest using the stage between them.
// The second result is false when the almanac has no such stage. Values not
// covered by any range pass through unchanged.
func (r *Resolver) MapCategory(src, dest string, v uint64) (uint64, bool) {
	m, ok := r.byPair[[2]string{src, dest}]
	if !ok {
		return 0, false
	}
	return apply(m, v), true
}

// Resolve maps a seed to its location.
func (r *Resolver) Resolve(seed uint64) (uint64, error) {
	chain, err := r.Chain()
	if err != nil {
		return 0, err
	}

	v := seed
	for _, m := range chain {
		v = apply(m, v)
	}
	return v, nil
}

// Lookup is Resolve without the failure detail.
func (r *Resolver) Lookup(seed uint64) (uint64, bool) {
	v, err := r.Resolve(seed)
	return v, err == nil
}

// Chain returns the stages from "seed" to "location" in walk order.
// The walk takes at most N+1 hops for N stages and fails fast when it
// revisits a category.
func (r *Resolver) Chain() ([]*types.CategoryMapping, error) {
	r.chainOnce.Do(func() {
		r.chain, r.chainErr = r.walk()
		if r.chainErr != nil {
			r.logger.Debug("chain rejected", zap.Error(r.chainErr))
			return
		}
		r.logger.Debug("chain resolved",
			zap.Int("stages", len(r.chain)),
			zap.String("path", describe(r.chain)))
	})
	return r.chain, r.chainErr
}

func (r *Resolver) walk() ([]*types.CategoryMapping, error) {
	var chain []*types.CategoryMapping
	visited := make(map[string]bool, r.stages+1)

	cat := types.SeedCategory
	for hop := 0; hop <= r.stages; hop++ {
		if visited[cat] {
			return nil, fmt.Errorf("%w: category %q revisited", types.ErrChainDidNotTerminate, cat)
		}
		visited[cat] = true

		m, ok := r.bySrc[cat]
		if !ok {
			return nil, fmt.Errorf("%w: no mapping from %q", types.ErrChainBroken, cat)
		}
		chain = append(chain, m)

		if m.DestCat == types.LocationCategory {
			return chain, nil
		}
		cat = m.DestCat
	}
	return nil, fmt.Errorf("%w: exceeded %d hops", types.ErrChainDidNotTerminate, r.stages+1)
}

// MinLocation resolves every seed and returns the smallest location.
// Every seed must resolve; the first failure aborts the computation.
func (r *Resolver) MinLocation(ctx context.Context, seeds []uint64) (uint64, error) {
	if len(seeds) == 0 {
		return 0, types.ErrNoSeeds
	}
	if _, err := r.Chain(); err != nil {
		return 0, &types.SeedError{Seed: seeds[0], Err: err}
	}

	var (
		mu   sync.Mutex
		best uint64
		seen bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for start := 0; start < len(seeds); start += chunkSize {
		chunk := seeds[start:min(start+chunkSize, len(seeds))]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local, err := r.minOf(chunk)
			if err != nil {
				return err
			}
			mu.Lock()
			if !seen || local < best {
				best, seen = local, true
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	r.logger.Debug("resolved seeds",
		zap.Int("seeds", len(seeds)),
		zap.Uint64("min_location", best))
	return best, nil
}

func (r *Resolver) minOf(seeds []uint64) (uint64, error) {
	var best uint64
	for i, s := range seeds {
		v, err := r.Resolve(s)
		if err != nil {
			return 0, &types.SeedError{Seed: s, Err: err}
		}
		if i == 0 || v < best {
			best = v
		}
	}
	return best, nil
}

// apply runs v through one stage: first containing range wins, otherwise
// identity.
func apply(m *types.CategoryMapping, v uint64) uint64 {
	for _, rm := range m.Mappings {
		if rm.Contains(v) {
			return rm.Translate(v)
		}
	}
	return v
}

func describe(chain []*types.CategoryMapping) string {
	if len(chain) == 0 {
		return ""
	}
	names := []string{chain[0].SrcCat}
	for _, m := range chain {
		names = append(names, m.DestCat)
	}
	return strings.Join(names, " -> ")
}
