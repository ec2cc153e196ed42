package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/glimpsedb/glimpse/internal/catalog"
	"github.com/glimpsedb/glimpse/internal/display"
	"github.com/glimpsedb/glimpse/internal/render"
	"github.com/glimpsedb/glimpse/internal/schema"
)

// runReport handles `glimpse <database>`: the full schema report.
func runReport(cmd *cobra.Command, opts rootOptions, s settings, logger *slog.Logger, term display.Terminal) error {
	ctx := cmd.Context()

	r, err := catalog.Open(opts.path)
	if err != nil {
		return err
	}
	defer r.Close()
	logger.Debug("database opened", "path", opts.path)

	desc, err := schema.NewBuilder(r).Describe(ctx, opts.hidden)
	if err != nil {
		return err
	}
	logger.Debug("schema described",
		"tables", desc.TableCount(), "views", len(desc.Views))

	// Machine-readable dumps go straight to stdout, unpaged and unstyled.
	switch opts.format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(desc)
	case "yaml":
		data, err := yaml.Marshal(desc)
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	case "text":
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", opts.format)
	}

	// The report heads with the bare filename; the dumps above keep the
	// path as given.
	desc.Path = filepath.Base(opts.path)
	out := render.Schema(desc, render.Options{Color: s.color, ShowHidden: opts.hidden})
	return dispatch(cmd, out, opts, s, logger, term)
}
