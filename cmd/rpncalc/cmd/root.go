// Package cmd implements the rpncalc command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/config"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/journal"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/observability"
	"github.com/spf13/cobra"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	cfgFile     string
	verbose     bool
	logFormat   string
	journalPath string

	settings config.Settings
	logger   *slog.Logger
	journal  journal.Store
}

// NewRootCommand builds the rpncalc command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rpncalc",
		Short: "Infix calculator backed by Reverse Polish Notation",
		Long: `rpncalc evaluates arithmetic expressions with + - * / by converting
them to Reverse Polish Notation.

Examples:
  rpncalc eval "2 + 3 * 4"
  rpncalc eval --postfix 8 - 2 '*' 3 - 1
  rpncalc postfix "1 / 3"
  rpncalc --journal history.db history list`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.yaml, .yml, .json or .toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	root.PersistentFlags().StringVar(&a.journalPath, "journal", "", "SQLite file recording calculation history")

	root.AddCommand(
		newEvalCommand(a),
		newPostfixCommand(a),
		newHistoryCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
}

// setup loads settings, applies flag overrides and opens shared resources.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.FromFile(a.cfgFile)
		if err != nil {
			return err
		}
		settings = loaded
	}

	if a.verbose {
		settings.LogLevel = "debug"
	}
	if a.logFormat != "" {
		settings.LogFormat = a.logFormat
	}
	if a.journalPath != "" {
		settings.Journal = a.journalPath
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	a.settings = settings

	logger, err := observability.NewLogger(cmd.ErrOrStderr(), settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	if settings.Journal != "" {
		store, err := journal.NewSQLiteStore(settings.Journal)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		a.journal = journal.NewRetryStore(store, journal.DefaultRetry)
	}
	return nil
}

// release closes the resources opened by setup.
func (a *app) release() error {
	if a.journal == nil {
		return nil
	}
	err := a.journal.Close()
	a.journal = nil
	return err
}

// finally wraps a RunE so resources are released even when it fails.
// cobra skips post-run hooks after an error.
func (a *app) finally(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if cerr := a.release(); err == nil {
			err = cerr
		}
		return err
	}
}

// calculator builds a Calculator from the loaded settings.
func (a *app) calculator(settings config.Settings) *rpncalc.Calculator {
	opts := []rpncalc.Option{
		rpncalc.WithSettings(settings),
		rpncalc.WithLogger(a.logger),
	}
	if a.journal != nil {
		opts = append(opts, rpncalc.WithJournal(a.journal))
	}
	return rpncalc.New(opts...)
}

// requireJournal returns the open journal or an error naming how to configure one.
func (a *app) requireJournal() (journal.Store, error) {
	if a.journal == nil {
		return nil, fmt.Errorf("no journal configured: pass --journal or set %q in the config file", config.KeyJournal)
	}
	return a.journal, nil
}
