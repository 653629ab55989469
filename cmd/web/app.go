package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/creotizant/HCM-Landing/internal/catalog"
	"github.com/creotizant/HCM-Landing/internal/cms"
	"github.com/creotizant/HCM-Landing/internal/config"
	"github.com/creotizant/HCM-Landing/internal/handlers"
	"github.com/creotizant/HCM-Landing/internal/mailer"
	mw "github.com/creotizant/HCM-Landing/internal/middleware"
	"github.com/creotizant/HCM-Landing/internal/nav"
	"github.com/creotizant/HCM-Landing/internal/observability"
	"github.com/creotizant/HCM-Landing/internal/seo"
	"github.com/creotizant/HCM-Landing/internal/views"
)

const siteName = "Creotizant"

// app holds the long-lived dependencies shared by handlers.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	catalog  *catalog.Catalog
	views    *views.Registry
	shells   *nav.Store
	builder  *handlers.Builder
	mail     *mailer.Client
	sessions sessions.Store
}

// newApp wires the site. ctx bounds background view loads.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat := catalog.Default()
	if cfg.Site.CatalogFile != "" {
		loaded, err := catalog.LoadFile(cfg.Site.CatalogFile)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}

	registry, err := views.NewRegistry(cfg.Site.TemplatesDir, views.WithLogger(logger.Named("views")))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		// Sessions do not survive a restart without a configured secret.
		secret = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, secret); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
		logger.Warn("WEB_SESSION_SECRET not set; using an ephemeral session key")
	}

	navLogger := logger.Named("nav")
	shells := nav.NewStore(func() *nav.Shell {
		return nav.NewShell(cat, registry, nav.WithLogger(navLogger), nav.WithBaseContext(ctx))
	}, cfg.Nav.SessionIdleTTL)

	site := seo.Site{
		Name:    siteName,
		BaseURL: cfg.Site.BaseURL,
		Twitter: "@creotizant",
	}
	if cfg.Site.BaseURL != "" {
		site.LogoURL = site.Absolute("/assets/img/logo.svg")
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		catalog: cat,
		views:   registry,
		shells:  shells,
		builder: &handlers.Builder{
			Site:    site,
			Catalog: cat,
			CMS:     cms.NewClient(cfg.Site.ContentDir),
			Logger:  logger.Named("content"),
		},
		mail: mailer.NewClient(mailer.Config{
			Endpoint:   cfg.Mail.Endpoint,
			ServiceID:  cfg.Mail.ServiceID,
			TemplateID: cfg.Mail.TemplateID,
			PublicKey:  cfg.Mail.PublicKey,
			PrivateKey: cfg.Mail.PrivateKey,
			Timeout:    cfg.Mail.Timeout,
		}, logger.Named("mailer")),
		sessions: mw.NewCookieStore(secret, cfg.Session.Secure),
	}, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(observability.TraceMiddleware)
	r.Use(observability.RequestLogger(a.logger.Named("http")))
	r.Use(chimw.Recoverer)
	r.Use(mw.HTMX)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/assets/*", mw.AssetsWithCache("/assets", filepath.Join(a.cfg.Site.PublicDir, "assets")))

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))
		r.Use(chimw.Timeout(a.cfg.Server.RequestTimeout))
		r.Use(mw.Session(a.sessions))
		r.Use(mw.CSRF)
		r.Use(mw.Shells(a.shells))

		r.Get("/", a.pageHandler)
		r.Get("/products/{id}", a.productDetailHandler)
		r.Get("/pricing/plans", a.pricingPlansFrag)
		r.Get("/resources/items", a.resourceItemsFrag)

		r.Post("/chrome/menu", a.toggleMenuHandler)
		r.Post("/chrome/dropdown/{name}", a.openDropdownHandler)
		r.Post("/chrome/close", a.closeOverlaysHandler)

		r.Post("/contact", a.contactSubmitHandler)
		r.Post("/demo", a.demoSubmitHandler)

		r.Get("/{pageID}", a.pageHandler)
	})
	return r
}
