// Package parser turns almanac text into a types.Almanac.
//
// The document is a seeds line followed by blank-line separated blocks:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// Structural problems (seeds line, block headers) are fatal. Range lines
// that are not three non-negative integers are skipped.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/praetorian-inc/almanac/pkg/types"
)

// Parse parses a full almanac document.
func Parse(input string) (*types.Almanac, error) {
	lines := splitLines(input)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, &types.ParseError{Kind: types.InvalidSeeds, Line: 1}
	}

	seeds, err := parseSeeds(lines[0])
	if err != nil {
		return nil, err
	}

	var mappings []types.CategoryMapping
	for _, b := range splitBlocks(lines[1:], 2) {
		m, err := parseBlock(b)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}

	return &types.Almanac{Seeds: seeds, Mappings: mappings}, nil
}

// ParseCategoryMapping parses a single "<src>-to-<dest> map:" block.
func ParseCategoryMapping(input string) (types.CategoryMapping, error) {
	blocks := splitBlocks(splitLines(input), 1)
	if len(blocks) == 0 {
		return types.CategoryMapping{}, &types.ParseError{Kind: types.InvalidHeader, Line: 1}
	}
	return parseBlock(blocks[0])
}

// block is a run of non-blank lines; first is the 1-based line number of
// lines[0] in the original document.
type block struct {
	first int
	lines []string
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return nil
	}
	return strings.Split(input, "\n")
}

func splitBlocks(lines []string, firstLine int) []block {
	var blocks []block
	var cur *block
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			cur = nil
			continue
		}
		if cur == nil {
			blocks = append(blocks, block{first: firstLine + i})
			cur = &blocks[len(blocks)-1]
		}
		cur.lines = append(cur.lines, line)
	}
	return blocks
}

func parseSeeds(line string) ([]uint64, error) {
	label, list, ok := strings.Cut(line, ":")
	if !ok || strings.TrimSpace(label) != "seeds" {
		return nil, &types.ParseError{Kind: types.InvalidSeeds, Line: 1, Input: line}
	}

	fields := strings.Fields(list)
	if len(fields) == 0 {
		return nil, &types.ParseError{Kind: types.InvalidSeeds, Line: 1, Input: line}
	}

	seeds := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, &types.ParseError{Kind: types.InvalidSeeds, Line: 1, Input: f, Err: err}
		}
		seeds = append(seeds, v)
	}
	return seeds, nil
}

func parseBlock(b block) (types.CategoryMapping, error) {
	src, dest, err := parseHeader(b.lines[0])
	if err != nil {
		return types.CategoryMapping{}, &types.ParseError{
			Kind:  types.InvalidHeader,
			Line:  b.first,
			Input: strings.TrimSpace(b.lines[0]),
			Err:   err,
		}
	}

	m := types.CategoryMapping{SrcCat: src, DestCat: dest}
	for _, line := range b.lines[1:] {
		r, ok := parseRange(line)
		if !ok {
			continue
		}
		m.Mappings = append(m.Mappings, r)
	}
	return m, nil
}

func parseHeader(line string) (src, dest string, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", fmt.Errorf("empty header")
	}

	parts := strings.Split(fields[0], "-")
	if len(parts) != 3 {
		return "", "", fmt.Errorf("expected <src>-to-<dest>, got %d segments", len(parts))
	}
	if parts[1] != "to" {
		return "", "", fmt.Errorf("expected \"to\" between categories, got %q", parts[1])
	}
	if parts[0] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("empty category name")
	}
	return parts[0], parts[2], nil
}

// parseRange reads "<dest_start> <src_start> <length>". Anything else,
// including a zero length, is rejected.
func parseRange(line string) (types.RangeMapping, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return types.RangeMapping{}, false
	}

	var vals [3]uint64
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return types.RangeMapping{}, false
		}
		vals[i] = v
	}
	if vals[2] == 0 {
		return types.RangeMapping{}, false
	}

	return types.RangeMapping{DestStart: vals[0], SrcStart: vals[1], Length: vals[2]}, true
}
