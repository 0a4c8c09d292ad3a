package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc/format"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/journal"
	"github.com/spf13/cobra"
)

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the calculation journal",
		Long: `Inspect the calculation journal.

Requires a journal: pass --journal PATH or set "journal" in the config file.`,
	}

	cmd.AddCommand(
		newHistoryListCommand(a),
		newHistoryShowCommand(a),
		newHistoryClearCommand(a),
	)
	return cmd
}

func newHistoryListCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: a.finally(func(cmd *cobra.Command, _ []string) error {
			store, err := a.requireJournal()
			if err != nil {
				return err
			}
			entries, err := store.List(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("no calculations recorded"))
				return nil
			}
			for _, e := range entries {
				printEntryLine(out, e, a.settings.Precision)
			}
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 for all)")
	return cmd
}

func newHistoryShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one recorded calculation",
		Args:  cobra.ExactArgs(1),
		RunE: a.finally(func(cmd *cobra.Command, args []string) error {
			store, err := a.requireJournal()
			if err != nil {
				return err
			}
			e, err := store.Load(args[0])
			if err != nil {
				return fmt.Errorf("entry %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:       %s\n", e.ID)
			fmt.Fprintf(out, "time:     %s\n", e.CreatedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(out, "infix:    %s\n", strings.Join(e.Tokens, " "))
			fmt.Fprintf(out, "postfix:  %s\n", postfixStyle.Render(strings.Join(e.Postfix, " ")))
			if e.Failed() {
				fmt.Fprintf(out, "error:    %s\n", errorStyle.Render(e.ErrorKind+": "+e.Error))
			} else {
				fmt.Fprintf(out, "result:   %s\n", resultStyle.Render(format.String(e.Value, a.settings.Precision)))
			}
			return nil
		}),
	}
}

func newHistoryClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded calculation",
		Args:  cobra.NoArgs,
		RunE: a.finally(func(cmd *cobra.Command, _ []string) error {
			store, err := a.requireJournal()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("journal cleared"))
			return nil
		}),
	}
}

func printEntryLine(w io.Writer, e journal.Entry, precision int) {
	expr := strings.Join(e.Tokens, " ")
	if e.Failed() {
		fmt.Fprintf(w, "%s  %s = %s\n", mutedStyle.Render(e.ID), expr, errorStyle.Render(e.ErrorKind))
		return
	}
	fmt.Fprintf(w, "%s  %s = %s\n", mutedStyle.Render(e.ID), expr, resultStyle.Render(format.String(e.Value, precision)))
}
