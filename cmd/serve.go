package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yukesshwaran21/My-Portfolio/internal/config"
	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/store"
	"github.com/yukesshwaran21/My-Portfolio/internal/web"
)

//nolint:gochecknoglobals // Cobra boilerplate
var servePort string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio web site",
	Long: `Serves the portfolio page, the console, the resume downloads, the contact form
and the admin dashboard.

Settings come from the environment (PORT, GIN_MODE, DB_PATH, ASSETS_DIR, SMTP_*,
TO_EMAIL, ADMIN_USERNAME, ADMIN_PASSWORD, VISITOR_RETENTION).

Examples:
  portfolio serve
  portfolio serve --port 3000 --env prod.env`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	var cfg *config.Config
	cfg, err = config.Load(getEnvFile())
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	gin.SetMode(cfg.GinMode)

	var p *content.Portfolio
	p, err = content.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	st, err = store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing store")
		}
	}()

	var srv *web.Server
	srv, err = web.New(cfg, p, st, web.Options{})
	if err != nil {
		return err
	}

	err = srv.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}
