package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds the color formatters for human output
type styles struct {
	heading *color.Color
	id      *color.Color
	answer  *color.Color
	pass    *color.Color
	fail    *color.Color
	muted   *color.Color
}

// newStyles creates color formatters. enabled=false strips all color.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		id:      color.New(color.FgHiGreen),
		answer:  color.New(color.Bold, color.FgHiWhite),
		pass:    color.New(color.Bold, color.FgGreen),
		fail:    color.New(color.Bold, color.FgRed),
		muted:   color.New(color.FgHiBlack),
	}

	if !enabled {
		for _, c := range []*color.Color{s.heading, s.id, s.answer, s.pass, s.fail, s.muted} {
			c.DisableColor()
		}
	}

	return s
}

// colorEnabled resolves a --color mode: auto, always or never. Auto colors
// only a terminal stdout with NO_COLOR unset.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}
