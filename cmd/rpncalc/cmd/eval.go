package cmd

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc/config"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/format"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/token"
	"github.com/spf13/cobra"
)

type evalFlags struct {
	showPostfix    bool
	precision      int
	strict         bool
	collapseErrors bool
}

func newEvalCommand(a *app) *cobra.Command {
	f := &evalFlags{}

	cmd := &cobra.Command{
		Use:   "eval EXPRESSION...",
		Short: "Evaluate an infix expression",
		Long: `Evaluate an infix expression and print the result.

Arguments are joined with spaces before tokenizing, so both forms work:
  rpncalc eval "2 + 3 * 4"
  rpncalc eval 2 + 3 '*' 4`,
		Args: cobra.MinimumNArgs(1),
	}
	cmd.RunE = a.finally(func(cmd *cobra.Command, args []string) error {
		return runEval(cmd, a, f, args)
	})

	cmd.Flags().BoolVarP(&f.showPostfix, "postfix", "p", false, "also print the postfix form")
	cmd.Flags().IntVar(&f.precision, "precision", format.DefaultPlaces, "fractional digits in the result (0-15)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on unknown operators")
	cmd.Flags().BoolVar(&f.collapseErrors, "collapse-errors", false, "report every failure as kind unknown")
	return cmd
}

func runEval(cmd *cobra.Command, a *app, f *evalFlags, args []string) error {
	settings, err := evalSettings(cmd, a.settings, f)
	if err != nil {
		return err
	}

	tokens, err := token.Lex(strings.Join(args, " "))
	if err != nil {
		return err
	}

	res, err := a.calculator(settings).Evaluate(cmd.Context(), tokens)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.showPostfix {
		fmt.Fprintln(out, mutedStyle.Render("postfix:"), postfixStyle.Render(strings.Join(res.Postfix, " ")))
	}
	fmt.Fprintln(out, resultStyle.Render(format.String(res.Value, settings.Precision)))
	return nil
}

// evalSettings applies the flags the user set explicitly on top of s.
func evalSettings(cmd *cobra.Command, s config.Settings, f *evalFlags) (config.Settings, error) {
	flags := cmd.Flags()
	if flags.Changed("precision") {
		s.Precision = f.precision
	}
	if flags.Changed("strict") {
		s.StrictOperators = f.strict
	}
	if flags.Changed("collapse-errors") {
		s.CollapseErrors = f.collapseErrors
	}
	return s, s.Validate()
}
