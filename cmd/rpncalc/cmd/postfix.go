package cmd

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc/postfix"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/token"
	"github.com/spf13/cobra"
)

func newPostfixCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "postfix EXPRESSION...",
		Short: "Print the postfix form of an infix expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.finally(func(cmd *cobra.Command, args []string) error {
			tokens, err := token.Lex(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), postfixStyle.Render(strings.Join(postfix.Convert(tokens), " ")))
			return nil
		}),
	}
}
