// Package terminal reports the width of the attached terminal.
package terminal

import (
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/oakwood-commons/tabletron/pkg/layout"
)

// Prober answers terminal size questions. The zero value is not usable; use
// System or build one with stubbed functions in tests.
type Prober struct {
	GetSize func(fd int) (width, height int, err error)
	Getenv  func(key string) string
	Fds     []uintptr
}

// System probes the process's stdout, stderr and stdin, in that order.
func System() Prober {
	return Prober{
		GetSize: term.GetSize,
		Getenv:  os.Getenv,
		Fds:     []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()},
	}
}

// Width returns the terminal width from the first descriptor attached to a
// terminal, then $COLUMNS. It returns layout.Unbounded when neither answers,
// e.g. when output is piped to a file.
func (p Prober) Width() int {
	w, _ := p.Size()
	return w
}

// Size is like Width but also reports the height, 0 when unknown.
func (p Prober) Size() (int, int) {
	if p.GetSize != nil {
		for _, fd := range p.Fds {
			if w, h, err := p.GetSize(int(fd)); err == nil && w > 0 {
				return w, h
			}
		}
	}
	if p.Getenv != nil {
		if col := p.Getenv("COLUMNS"); col != "" {
			if w, err := strconv.Atoi(col); err == nil && w > 0 {
				return w, 0
			}
		}
	}
	return layout.Unbounded, 0
}

// Width probes the system terminal. See Prober.Width.
func Width() int {
	return System().Width()
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
