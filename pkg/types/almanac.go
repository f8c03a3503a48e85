package types

import "fmt"

// Sentinel categories at the two ends of every chain.
const (
	SeedCategory     = "seed"
	LocationCategory = "location"
)

// RangeMapping is one contiguous rule of a mapping stage. Any source value v
// with SrcStart <= v < SrcStart+Length maps to DestStart + (v - SrcStart).
type RangeMapping struct {
	DestStart uint64 `json:"dest_start" yaml:"dest_start"`
	SrcStart  uint64 `json:"src_start" yaml:"src_start"`
	Length    uint64 `json:"length" yaml:"length"`
}

// Contains reports whether v falls inside the source range.
func (r RangeMapping) Contains(v uint64) bool {
	return v >= r.SrcStart && v-r.SrcStart < r.Length
}

// Translate maps v into the destination range. The caller must check
// Contains first.
func (r RangeMapping) Translate(v uint64) uint64 {
	return r.DestStart + (v - r.SrcStart)
}

// SrcEnd returns the exclusive end of the source range.
func (r RangeMapping) SrcEnd() uint64 {
	return r.SrcStart + r.Length
}

// CategoryMapping is a single stage of the chain, translating values of
// SrcCat into values of DestCat.
type CategoryMapping struct {
	SrcCat   string         `json:"src_cat"`
	DestCat  string         `json:"dest_cat"`
	Mappings []RangeMapping `json:"mappings"`
}

// String returns the stage header as it appears in the input.
func (m CategoryMapping) String() string {
	return fmt.Sprintf("%s-to-%s", m.SrcCat, m.DestCat)
}

// Almanac is a parsed puzzle document. It is never mutated after parsing.
type Almanac struct {
	Seeds    []uint64          `json:"seeds"`
	Mappings []CategoryMapping `json:"mappings"`
}

// SeedRange is a contiguous run of seeds, [Start, Start+Length).
type SeedRange struct {
	Start  uint64 `json:"start"`
	Length uint64 `json:"length"`
}

// End returns the exclusive end of the range.
func (r SeedRange) End() uint64 {
	return r.Start + r.Length
}

// SeedRanges reinterprets the seed list as (start, length) pairs.
// Pairs with zero length are dropped.
func (a *Almanac) SeedRanges() ([]SeedRange, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrOddSeedCount, len(a.Seeds))
	}

	ranges := make([]SeedRange, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		if a.Seeds[i+1] == 0 {
			continue
		}
		ranges = append(ranges, SeedRange{Start: a.Seeds[i], Length: a.Seeds[i+1]})
	}
	return ranges, nil
}
