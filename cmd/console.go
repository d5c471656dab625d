package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yukesshwaran21/My-Portfolio/internal/console"
)

//nolint:gochecknoglobals // Cobra boilerplate
var consoleCmd = &cobra.Command{
	Use:   "console [command...]",
	Short: "Run console commands without a front end",
	Long: `Runs each argument through the portfolio console and prints its reply and effect.
With no arguments, commands are read one per line from stdin.

Examples:
  portfolio console help about
  echo resume | portfolio console`,
	RunE: runConsole,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) (err error) {
	session := console.NewSession(console.MustDefaultTable())
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		for _, a := range args {
			dispatch(out, session, a)
		}
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		dispatch(out, session, scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		err = errors.Wrap(err, "reading commands")
	}
	return err
}

// dispatch submits one line and prints what a front end would show for it.
func dispatch(w io.Writer, s *console.Session, input string) {
	res := s.Submit(input)
	if res.Cleared {
		fmt.Fprintln(w, "(transcript cleared)")
		return
	}
	// the reply is always the last transcript line
	if n := len(res.Lines); n > 0 {
		fmt.Fprintln(w, res.Lines[n-1])
	}
	switch res.Effect.Kind {
	case console.Navigate:
		fmt.Fprintf(w, "-> #%s\n", res.Effect.Section)
	case console.Download:
		fmt.Fprintln(w, "-> resume download")
	}
}
