package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glimpsedb/glimpse/internal/display"
)

var cfgFile string

// rootOptions holds the flag and argument values of one invocation.
type rootOptions struct {
	path     string
	object   string
	hidden   bool
	where    string
	limit    int
	limitSet bool
	format   string
	noPager  bool
	verbose  bool
}

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "glimpse <database> [table-or-view]",
		Short: "Take a quick look inside a SQLite database",
		Long: `Glimpse opens a SQLite database file read-only and shows what is inside.

With just a file argument it prints the full schema: every table with its
columns, keys, indexes and triggers, and every view with its defining query.
Name a table or view as the second argument to see a sample of its rows
instead. Output that does not fit the terminal goes through a pager.`,
		Example: `  glimpse app.db
  glimpse app.db users
  glimpse app.db users -w "status = 'active'" -n 30
  glimpse app.db --format json`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.path = args[0]
			if len(args) == 2 {
				opts.object = args[1]
			}
			opts.limitSet = cmd.Flags().Changed("limit")
			return runRoot(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/glimpse/config.yaml)")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "show shadow tables, system tables, and hidden columns")
	cmd.Flags().StringVarP(&opts.where, "where", "w", "", "filter the row sample with a SQL expression")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", defaultLimit, "maximum rows in the sample")
	cmd.Flags().StringVar(&opts.format, "format", "text", "schema report format: text, json, or yaml")
	cmd.Flags().BoolVar(&opts.noPager, "no-pager", false, "never invoke the pager")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() {
	viper.SetEnvPrefix("GLIMPSE")
	viper.AutomaticEnv()
}

func runRoot(cmd *cobra.Command, opts rootOptions) error {
	logLevel := slog.LevelInfo
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Terminal state is sampled once and reused for the color and pager
	// decisions.
	term := display.Detect()

	s, err := resolveSettings(opts, logger, term)
	if err != nil {
		return err
	}

	if opts.object == "" {
		if opts.where != "" {
			return fmt.Errorf("--where needs a table or view argument")
		}
		return runReport(cmd, opts, s, logger, term)
	}
	return runSample(cmd, opts, s, logger, term)
}

// dispatch routes rendered text to the command's output, paging when it
// does not fit the terminal.
func dispatch(cmd *cobra.Command, text string, opts rootOptions, s settings, logger *slog.Logger, term display.Terminal) error {
	if opts.noPager {
		term = display.Terminal{}
	}
	m := display.Measure(text)
	logger.Debug("dispatching output",
		"lines", m.Lines, "grid_width", m.GridWidth,
		"term_rows", term.Rows, "term_cols", term.Cols,
		"paged", term.NeedsPager(m))
	return display.Show(cmd.OutOrStdout(), text, s.pager, term)
}
