package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yukesshwaran21/My-Portfolio/internal/config"
	"github.com/yukesshwaran21/My-Portfolio/internal/console"
	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/tui"
)

//nolint:gochecknoglobals // Cobra boilerplate
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	Long: `Renders the portfolio page in the terminal.

Keys:
  j/k, PgUp/PgDn   scroll
  g/G              top / bottom
  1-7              jump to a section
  Tab              cycle the project filter
  d                download the resume
  Ctrl+K           open the console (Esc closes it)
  q                quit`,
	RunE: runTUI,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) (err error) {
	var cfg *config.Config
	cfg, err = config.Load(getEnvFile())
	if err != nil {
		return err
	}

	var p *content.Portfolio
	p, err = content.Load()
	if err != nil {
		return err
	}

	m := tui.NewModel(p, console.MustDefaultTable(), tui.Options{SplashDuration: cfg.SplashDuration})
	defer m.Close()

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		err = errors.Wrap(err, "running terminal ui")
		return err
	}
	return err
}
