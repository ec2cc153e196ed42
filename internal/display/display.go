// Package display routes rendered text to the terminal. Output taller or
// wider than the terminal goes through an external pager; everything else,
// and all non-interactive output, prints directly.
package display

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// DefaultPager is used when no pager is configured. -S disables line
// wrapping, -R passes ANSI styling through.
const DefaultPager = "less -SR"

// Terminal is the sampled state of standard output.
type Terminal struct {
	Interactive bool
	Cols        int
	Rows        int
}

// Detect samples standard output once. A terminal whose size cannot be
// read is treated as non-interactive so output prints directly.
func Detect() Terminal {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return Terminal{}
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return Terminal{}
	}
	return Terminal{Interactive: true, Cols: cols, Rows: rows}
}

// Measurement is the size of one rendered report.
type Measurement struct {
	Lines int
	// GridWidth is the rune width of the line at index 1. In the row-sample
	// view that line is the grid's top border, the widest line of the
	// report. In the schema report it is the blank line after the header,
	// so width never forces paging there.
	GridWidth int
}

// Measure sizes rendered text for the paging decision.
func Measure(text string) Measurement {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	m := Measurement{Lines: len(lines)}
	if len(lines) > 1 {
		m.GridWidth = utf8.RuneCountInString(lines[1])
	}
	return m
}

// NeedsPager reports whether measured output overflows the terminal in
// either dimension. Never true for non-interactive output.
func (t Terminal) NeedsPager(m Measurement) bool {
	if !t.Interactive {
		return false
	}
	return m.Lines > t.Rows || m.GridWidth > t.Cols
}

// Page pipes text through the pager command and waits for it to exit.
// The pager's exit status is ignored; only a pager that could not run at
// all is an error.
func Page(w io.Writer, text, pager string) error {
	parts := strings.Fields(pager)
	if len(parts) == 0 {
		parts = strings.Fields(DefaultPager)
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run pager %q: %w", parts[0], err)
	}
	return nil
}

// Show prints text to w, routing through the pager when the measured
// output overflows the terminal. A pager that fails to start degrades to
// direct output.
func Show(w io.Writer, text, pager string, t Terminal) error {
	if t.NeedsPager(Measure(text)) {
		if err := Page(w, text, pager); err == nil {
			return nil
		}
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
