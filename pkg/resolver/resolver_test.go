package resolver

import (
	"context"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/praetorian-inc/almanac/pkg/parser"
	"github.com/praetorian-inc/almanac/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func loadExample(t *testing.T) *types.Almanac {
	t.Helper()
	data, err := os.ReadFile("testdata/example.txt")
	require.NoError(t, err)
	a, err := parser.Parse(string(data))
	require.NoError(t, err)
	return a
}

func mustParse(t *testing.T, input string) *types.Almanac {
	t.Helper()
	a, err := parser.Parse(input)
	require.NoError(t, err)
	return a
}

func TestMapCategory_Basic(t *testing.T) {
	r := New(mustParse(t, `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48`))

	for i := uint64(1); i < 10; i++ {
		v, ok := r.MapCategory("seed", "soil", i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	cases := map[uint64]uint64{
		49:  49,
		50:  52,
		51:  53,
		62:  64,
		96:  98,
		97:  99,
		98:  50,
		99:  51,
		100: 100,
		101: 101,
	}
	for in, want := range cases {
		v, ok := r.MapCategory("seed", "soil", in)
		require.True(t, ok)
		assert.Equal(t, want, v, "seed %d", in)
	}
}

func TestMapCategory_SingleRule(t *testing.T) {
	a := &types.Almanac{Mappings: []types.CategoryMapping{{
		SrcCat:   "seed",
		DestCat:  "soil",
		Mappings: []types.RangeMapping{{DestStart: 52, SrcStart: 50, Length: 48}},
	}}}
	r := New(a)

	v, _ := r.MapCategory("seed", "soil", 50)
	assert.Equal(t, uint64(52), v)
	v, _ = r.MapCategory("seed", "soil", 97)
	assert.Equal(t, uint64(99), v)
	v, _ = r.MapCategory("seed", "soil", 98)
	assert.Equal(t, uint64(98), v)
}

func TestMapCategory_MissingStage(t *testing.T) {
	r := New(loadExample(t))

	_, ok := r.MapCategory("seed", "water", 1)
	assert.False(t, ok)
	_, ok = r.MapCategory("location", "seed", 1)
	assert.False(t, ok)
}

func TestMapCategory_FirstMatchWins(t *testing.T) {
	a := &types.Almanac{Mappings: []types.CategoryMapping{{
		SrcCat:  "seed",
		DestCat: "location",
		Mappings: []types.RangeMapping{
			{DestStart: 100, SrcStart: 0, Length: 10},
			{DestStart: 200, SrcStart: 5, Length: 10},
		},
	}}}
	r := New(a)

	v, _ := r.MapCategory("seed", "location", 7)
	assert.Equal(t, uint64(107), v)
	v, _ = r.MapCategory("seed", "location", 12)
	assert.Equal(t, uint64(207), v)
}

func TestResolve_Example(t *testing.T) {
	r := New(loadExample(t))

	want := map[uint64]uint64{79: 82, 14: 43, 55: 86, 13: 35}
	for seed, loc := range want {
		got, err := r.Resolve(seed)
		require.NoError(t, err)
		assert.Equal(t, loc, got, "seed %d", seed)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := New(loadExample(t))

	first, err := r.Resolve(79)
	require.NoError(t, err)
	second, err := r.Resolve(79)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := New(loadExample(t)).Resolve(79)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestResolve_OutOfOrderStages(t *testing.T) {
	r := New(mustParse(t, `seeds: 3

soil-to-location map:
100 0 10

seed-to-soil map:
5 3 1`))

	v, err := r.Resolve(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(105), v)
}

func TestResolve_ChainBroken(t *testing.T) {
	r := New(mustParse(t, `seeds: 1

seed-to-soil map:
1 2 3`))

	_, err := r.Resolve(1)
	assert.ErrorIs(t, err, types.ErrChainBroken)

	_, ok := r.Lookup(1)
	assert.False(t, ok)
}

func TestResolve_NoStages(t *testing.T) {
	r := New(&types.Almanac{Seeds: []uint64{1}})

	_, err := r.Resolve(1)
	assert.ErrorIs(t, err, types.ErrChainBroken)
}

func TestResolve_Cycles(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "self loop",
			input: "seeds: 1\n\nseed-to-seed map:\n1 2 3",
		},
		{
			name:  "two stage loop",
			input: "seeds: 1\n\nseed-to-soil map:\n1 2 3\n\nsoil-to-seed map:\n4 5 6",
		},
		{
			name:  "loop after prefix",
			input: "seeds: 1\n\nseed-to-soil map:\n\nsoil-to-water map:\n\nwater-to-soil map:\n\nlocation-to-seed map:\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(mustParse(t, tt.input))
			_, err := r.Resolve(1)
			assert.ErrorIs(t, err, types.ErrChainDidNotTerminate)
		})
	}
}

func TestResolve_DuplicateSourceUsesFirst(t *testing.T) {
	r := New(mustParse(t, `seeds: 1

seed-to-location map:
10 0 5

seed-to-soil map:
20 0 5`))

	v, err := r.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), v)
}

func TestChain(t *testing.T) {
	r := New(loadExample(t))

	chain, err := r.Chain()
	require.NoError(t, err)
	require.Len(t, chain, 7)
	assert.Equal(t, "seed", chain[0].SrcCat)
	assert.Equal(t, "location", chain[6].DestCat)
	assert.Equal(t, "seed -> soil -> fertilizer -> water -> light -> temperature -> humidity -> location", describe(chain))
}

func TestMinLocation_Example(t *testing.T) {
	a := loadExample(t)
	r := New(a)

	got, err := r.MinLocation(context.Background(), a.Seeds)
	require.NoError(t, err)
	assert.Equal(t, uint64(35), got)
}

func TestMinLocation_NoSeeds(t *testing.T) {
	r := New(loadExample(t))

	_, err := r.MinLocation(context.Background(), nil)
	assert.ErrorIs(t, err, types.ErrNoSeeds)
}

func TestMinLocation_BrokenChainFails(t *testing.T) {
	r := New(mustParse(t, "seeds: 4 5\n\nseed-to-soil map:\n1 2 3"))

	_, err := r.MinLocation(context.Background(), []uint64{4, 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrChainBroken)

	var seedErr *types.SeedError
	require.ErrorAs(t, err, &seedErr)
	assert.Equal(t, uint64(4), seedErr.Seed)
}

func TestMinLocation_WorkersAgree(t *testing.T) {
	a := loadExample(t)

	seeds := make([]uint64, 20000)
	for i := range seeds {
		seeds[i] = uint64(i * 7 % 113)
	}

	var want uint64
	seq := New(a, WithWorkers(1))
	for i, s := range seeds {
		v, err := seq.Resolve(s)
		require.NoError(t, err)
		if i == 0 || v < want {
			want = v
		}
	}

	for _, workers := range []int{1, 2, 8} {
		got, err := New(a, WithWorkers(workers)).MinLocation(context.Background(), seeds)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestMinLocation_Canceled(t *testing.T) {
	a := loadExample(t)
	r := New(a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.MinLocation(ctx, a.Seeds)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMinLocationForRanges_Example(t *testing.T) {
	a := loadExample(t)
	r := New(a)

	ranges, err := a.SeedRanges()
	require.NoError(t, err)

	got, err := r.MinLocationForRanges(context.Background(), ranges)
	require.NoError(t, err)
	assert.Equal(t, uint64(46), got)
}

func TestMinLocationForRanges_Empty(t *testing.T) {
	r := New(loadExample(t))

	_, err := r.MinLocationForRanges(context.Background(), nil)
	assert.ErrorIs(t, err, types.ErrNoSeeds)

	_, err = r.MinLocationForRanges(context.Background(), []types.SeedRange{{Start: 3, Length: 0}})
	assert.ErrorIs(t, err, types.ErrNoSeeds)
}

func TestMinLocationForRanges_CycleFails(t *testing.T) {
	r := New(mustParse(t, "seeds: 1 2\n\nseed-to-seed map:\n1 2 3"))

	_, err := r.MinLocationForRanges(context.Background(), []types.SeedRange{{Start: 1, Length: 2}})
	assert.ErrorIs(t, err, types.ErrChainDidNotTerminate)
}

func TestMinLocationForRanges_MaxUint(t *testing.T) {
	r := New(mustParse(t, "seeds: 1\n\nseed-to-location map:\n0 18446744073709551614 2"))

	got, err := r.MinLocationForRanges(context.Background(), []types.SeedRange{
		{Start: 18446744073709551610, Length: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

// TestMinLocationForRanges_MatchesBruteForce checks interval splitting
// against per-seed resolution, including overlapping ranges.
func TestMinLocationForRanges_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 2023))
	cats := []string{"seed", "soil", "water", "location"}

	for trial := 0; trial < 200; trial++ {
		a := &types.Almanac{}
		for i := 0; i+1 < len(cats); i++ {
			m := types.CategoryMapping{SrcCat: cats[i], DestCat: cats[i+1]}
			for n := rng.IntN(4); n > 0; n-- {
				m.Mappings = append(m.Mappings, types.RangeMapping{
					DestStart: rng.Uint64N(60),
					SrcStart:  rng.Uint64N(60),
					Length:    1 + rng.Uint64N(20),
				})
			}
			a.Mappings = append(a.Mappings, m)
		}

		var ranges []types.SeedRange
		for n := 1 + rng.IntN(3); n > 0; n-- {
			ranges = append(ranges, types.SeedRange{Start: rng.Uint64N(70), Length: 1 + rng.Uint64N(15)})
		}

		r := New(a)
		var want uint64
		first := true
		for _, sr := range ranges {
			for s := sr.Start; s < sr.End(); s++ {
				v, err := r.Resolve(s)
				require.NoError(t, err)
				if first || v < want {
					want, first = v, false
				}
			}
		}

		got, err := r.MinLocationForRanges(context.Background(), ranges)
		require.NoError(t, err)
		require.Equal(t, want, got, "trial %d: %+v ranges %+v", trial, a.Mappings, ranges)
	}
}
