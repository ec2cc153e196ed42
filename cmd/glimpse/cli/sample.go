package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glimpsedb/glimpse/internal/catalog"
	"github.com/glimpsedb/glimpse/internal/display"
	"github.com/glimpsedb/glimpse/internal/render"
)

// runSample handles `glimpse <database> <table-or-view>`: a bounded sample
// of the object's rows.
func runSample(cmd *cobra.Command, opts rootOptions, s settings, logger *slog.Logger, term display.Terminal) error {
	if opts.format != "text" {
		return fmt.Errorf("--format applies to the schema report")
	}
	ctx := cmd.Context()

	r, err := catalog.Open(opts.path)
	if err != nil {
		return err
	}
	defer r.Close()
	logger.Debug("database opened", "path", opts.path)

	objType, err := r.ObjectType(ctx, opts.object)
	if err != nil {
		return err
	}

	sample, err := r.SampleRows(ctx, opts.object, opts.where, s.limit)
	if err != nil {
		return err
	}
	total, err := r.Count(ctx, opts.object)
	if err != nil {
		return err
	}
	selected := total
	if opts.where != "" {
		if selected, err = r.CountWhere(ctx, opts.object, opts.where); err != nil {
			return err
		}
	}
	logger.Debug("rows sampled",
		"object", opts.object, "type", objType,
		"rows", len(sample.Rows), "total", total)

	out := render.Sample(render.SamplePage{
		Path:     filepath.Base(opts.path),
		Name:     opts.object,
		Type:     objType,
		Columns:  sample.Columns,
		Rows:     sample.Rows,
		Total:    total,
		Selected: selected,
		Filtered: opts.where != "",
	}, render.Options{Color: s.color})
	return dispatch(cmd, out, opts, s, logger, term)
}
