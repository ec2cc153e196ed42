package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/glimpsedb/glimpse/internal/config"
	"github.com/glimpsedb/glimpse/internal/display"
)

// defaultLimit is the built-in row-sample size.
const defaultLimit = 12

// settings are the effective values after merging flags, GLIMPSE_*
// environment variables, the config file, and defaults, in that order.
type settings struct {
	pager string
	limit int
	color bool
}

func resolveSettings(opts rootOptions, logger *slog.Logger, term display.Terminal) (settings, error) {
	fileCfg, err := loadFileConfig(logger)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		pager: resolvePager(fileCfg),
		limit: resolveLimit(opts.limit, opts.limitSet, fileCfg),
	}
	if s.limit < 0 {
		return settings{}, fmt.Errorf("invalid limit %d", s.limit)
	}

	switch mode := resolveColorMode(fileCfg); mode {
	case "always":
		s.color = true
	case "never":
		s.color = false
	case "auto":
		s.color = term.Interactive && os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
	default:
		return settings{}, fmt.Errorf("invalid color mode %q (want auto, always, or never)", mode)
	}
	return s, nil
}

// loadFileConfig reads the config file named by --config, or the default
// location. An explicitly named file must load; the default one is optional
// and a broken one is ignored with a warning.
func loadFileConfig(logger *slog.Logger) (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	path := config.DefaultPath()
	if path == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring config file", "path", path, "error", err)
		}
		return &config.Config{}, nil
	}
	return cfg, nil
}

// resolvePager returns the pager command: GLIMPSE_PAGER, the config file,
// PAGER, or the built-in default.
func resolvePager(cfg *config.Config) string {
	if viper.IsSet("pager") {
		return viper.GetString("pager")
	}
	if cfg.Pager != "" {
		return cfg.Pager
	}
	if p := os.Getenv("PAGER"); p != "" {
		return p
	}
	return display.DefaultPager
}

func resolveLimit(flagVal int, flagSet bool, cfg *config.Config) int {
	if flagSet {
		return flagVal
	}
	if viper.IsSet("limit") {
		return viper.GetInt("limit")
	}
	if cfg.Limit != 0 {
		return cfg.Limit
	}
	return defaultLimit
}

func resolveColorMode(cfg *config.Config) string {
	if viper.IsSet("color") {
		return viper.GetString("color")
	}
	if cfg.Color != "" {
		return cfg.Color
	}
	return "auto"
}
