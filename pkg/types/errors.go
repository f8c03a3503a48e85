package types

import (
	"errors"
	"fmt"
)

// ParseErrorKind classifies structural problems in an almanac document.
type ParseErrorKind string

const (
	InvalidSeeds  ParseErrorKind = "invalid_seeds"
	InvalidHeader ParseErrorKind = "invalid_header"
)

// Sentinel errors. ParseError matches ErrInvalidSeeds or ErrInvalidHeader
// under errors.Is depending on its Kind.
var (
	ErrInvalidSeeds         = errors.New("invalid seeds line")
	ErrInvalidHeader        = errors.New("invalid mapping header")
	ErrChainBroken          = errors.New("mapping chain broken")
	ErrChainDidNotTerminate = errors.New("mapping chain did not terminate at location")
	ErrNoSeeds              = errors.New("no seeds to resolve")
	ErrOddSeedCount         = errors.New("seed ranges need an even number of values")
)

// ParseError reports a malformed almanac document.
type ParseError struct {
	Kind  ParseErrorKind
	Line  int    // 1-based line number, 0 if unknown
	Input string // offending text
	Err   error  // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	msg := e.sentinel().Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Input != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Input)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a ParseError against its kind's sentinel.
func (e *ParseError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ParseError) sentinel() error {
	if e.Kind == InvalidHeader {
		return ErrInvalidHeader
	}
	return ErrInvalidSeeds
}

// SeedError wraps a resolution failure with the seed that caused it.
type SeedError struct {
	Seed uint64
	Err  error
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seed %d: %v", e.Seed, e.Err)
}

func (e *SeedError) Unwrap() error {
	return e.Err
}
