// Package render turns schema descriptions and row samples into the text
// the terminal shows. Styling is controlled by an explicit Options value
// decided once by the caller; nothing here inspects the terminal.
package render

import (
	"strings"

	"github.com/fatih/color"
)

// Options controls rendering for one invocation.
type Options struct {
	// Color enables ANSI styling.
	Color bool
	// ShowHidden includes hidden virtual-table columns in the report.
	ShowHidden bool
}

// palette holds the styles used across both views.
type palette struct {
	name    *color.Color // table and view names
	column  *color.Color // column names
	trigger *color.Color // trigger names
	ref     *color.Color // foreign key target tables
	strong  *color.Color // file name and table attributes
}

func newPalette(enabled bool) *palette {
	p := &palette{
		name:    color.New(color.FgHiGreen, color.Bold),
		column:  color.New(color.FgCyan),
		trigger: color.New(color.FgHiMagenta),
		ref:     color.New(color.FgHiGreen),
		strong:  color.New(color.Bold),
	}
	// Set each style explicitly so output does not depend on the color
	// package's own terminal detection.
	for _, c := range []*color.Color{p.name, p.column, p.trigger, p.ref, p.strong} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// colNames joins column names with each name styled individually.
func (p *palette) colNames(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = p.column.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
