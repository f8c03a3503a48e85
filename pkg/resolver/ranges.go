package resolver

import (
	"context"
	"math"

	"github.com/praetorian-inc/almanac/pkg/types"
	"go.uber.org/zap"
)

// span is an inclusive interval [lo, hi]. Inclusive bounds keep ranges that
// end at math.MaxUint64 representable.
type span struct {
	lo, hi uint64
}

func lastOf(start, length uint64) uint64 {
	if length > math.MaxUint64-start {
		return math.MaxUint64
	}
	return start + length - 1
}

// MinLocationForRanges returns the smallest location reachable from any
// seed in ranges. Whole intervals are pushed through each stage and split at
// range boundaries instead of resolving seeds one by one.
func (r *Resolver) MinLocationForRanges(ctx context.Context, ranges []types.SeedRange) (uint64, error) {
	spans := make([]span, 0, len(ranges))
	for _, sr := range ranges {
		if sr.Length == 0 {
			continue
		}
		spans = append(spans, span{lo: sr.Start, hi: lastOf(sr.Start, sr.Length)})
	}
	if len(spans) == 0 {
		return 0, types.ErrNoSeeds
	}

	chain, err := r.Chain()
	if err != nil {
		return 0, &types.SeedError{Seed: spans[0].lo, Err: err}
	}

	for _, m := range chain {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		spans = applySpans(m, spans)
		r.logger.Debug("mapped spans",
			zap.String("stage", m.String()),
			zap.Int("spans", len(spans)))
	}

	best := spans[0].lo
	for _, s := range spans[1:] {
		if s.lo < best {
			best = s.lo
		}
	}
	return best, nil
}

// applySpans maps every span through one stage. Each piece of a span is
// consumed by the earliest declared range covering it, matching apply.
// Pieces no range covers pass through unchanged.
func applySpans(m *types.CategoryMapping, in []span) []span {
	pending := in
	var out []span

	for _, rm := range m.Mappings {
		rlo, rhi := rm.SrcStart, lastOf(rm.SrcStart, rm.Length)

		var rest []span
		for _, s := range pending {
			if s.hi < rlo || s.lo > rhi {
				rest = append(rest, s)
				continue
			}
			lo, hi := max(s.lo, rlo), min(s.hi, rhi)
			out = append(out, span{lo: rm.Translate(lo), hi: rm.Translate(hi)})
			if s.lo < lo {
				rest = append(rest, span{lo: s.lo, hi: lo - 1})
			}
			if s.hi > hi {
				rest = append(rest, span{lo: hi + 1, hi: s.hi})
			}
		}
		pending = rest
		if len(pending) == 0 {
			break
		}
	}
	return append(out, pending...)
}
