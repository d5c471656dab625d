// Package web serves the portfolio page, its HTMX fragments and the admin dashboard.
package web

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/yukesshwaran21/My-Portfolio/internal/config"
	"github.com/yukesshwaran21/My-Portfolio/internal/console"
	"github.com/yukesshwaran21/My-Portfolio/internal/content"
	"github.com/yukesshwaran21/My-Portfolio/internal/download"
	"github.com/yukesshwaran21/My-Portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server owns the page state shared between requests.
type Server struct {
	cfg       *config.Config
	portfolio *content.Portfolio
	bio       template.HTML
	store     *store.Store
	mailer    Mailer
	commands  *console.Table
	visits    *visits
	admin     *adminAuth

	// tracking holds background visitor writes so Close can wait for them.
	tracking sync.WaitGroup
}

// Options carries the collaborators; zero values get sensible defaults.
type Options struct {
	Mailer Mailer
	// DownloadOptions tunes the per-visit resume download flow.
	DownloadOptions download.Options
	// VisitTTL is how long an idle console session is kept.
	VisitTTL time.Duration
}

// New builds a server over an opened store.
func New(cfg *config.Config, p *content.Portfolio, st *store.Store, opts Options) (*Server, error) {
	if err := p.CheckAssets(cfg.AssetsDir); err != nil {
		return nil, errors.Wrapf(err, "checking assets in %s", cfg.AssetsDir)
	}
	bio, err := content.Markdown(p.Profile.Bio)
	if err != nil {
		return nil, err
	}
	if opts.Mailer == nil {
		opts.Mailer = NewSMTPMailer(cfg.SMTP, cfg.ToEmail)
	}
	if opts.VisitTTL <= 0 {
		opts.VisitTTL = 30 * time.Minute
	}

	admin, err := newAdminAuth(cfg)
	if err != nil {
		return nil, err
	}

	commands := console.MustDefaultTable()
	return &Server{
		cfg:       cfg,
		portfolio: p,
		bio:       bio,
		store:     st,
		mailer:    opts.Mailer,
		commands:  commands,
		visits:    newVisits(opts.VisitTTL, opts.DownloadOptions, commands),
		admin:     admin,
	}, nil
}

// Router wires every route onto a fresh gin engine.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	r.SetHTMLTemplate(tmpl)

	r.Static("/static", s.cfg.AssetsDir+"/static")
	r.Use(s.visitorTrackingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Page and HTMX fragments
	r.GET("/", s.handleIndex)
	r.GET("/projects", s.handleProjects)
	r.GET("/projects/:id", s.handleProjectDetail)

	// Console overlay
	r.POST("/console", s.handleConsoleSubmit)
	r.DELETE("/console", s.handleConsoleClose)
	r.GET("/console/ws", s.handleConsoleSocket)

	// Resume download status and static downloads
	r.POST("/resume/download", s.handleResumeDownload)
	r.GET("/resume/status", s.handleResumeStatus)
	r.GET("/assets/resume", s.handleResumeAsset)
	r.HEAD("/assets/resume", s.handleResumeAsset)
	r.GET("/assets/letters/:id", s.handleLetterAsset)
	r.HEAD("/assets/letters/:id", s.handleLetterAsset)

	r.POST("/theme", s.handleThemeToggle)

	r.POST("/contact", s.handleContact)

	s.setupAdminRoutes(r)
	return r, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	r, err := s.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.visits.janitor(ctx, time.Minute)
	go s.cleanupOldVisitorData(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Portfolio listening on :%s", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving http")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	s.Close()
	return nil
}

// Close stops pending timers and waits for background writes.
func (s *Server) Close() {
	s.visits.closeAll()
	s.tracking.Wait()
}

var templateFuncs = template.FuncMap{
	"stat": content.FormatStat,
	"join": strings.Join,
}
