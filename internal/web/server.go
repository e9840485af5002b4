// Package web serves the Edutor site: public pages, the login and signup
// forms, and the session-gated dashboard and account pages.
package web

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/dmitrijs2005/edutor/internal/accounts"
	"github.com/dmitrijs2005/edutor/internal/content"
	"github.com/dmitrijs2005/edutor/internal/logging"
	"github.com/dmitrijs2005/edutor/internal/session"
	"github.com/dmitrijs2005/edutor/internal/storage"
	"github.com/gin-gonic/gin"
)

// Options wire the site to its collaborators.
type Options struct {
	Resolver storage.Resolver
	Session  session.Options
	Accounts *accounts.Service
	Catalog  *content.Catalog
	Logger   logging.Logger

	// Ping reports storage health for /healthz. Nil means always healthy.
	Ping func(ctx context.Context) error
}

type Server struct {
	resolve     storage.Resolver
	sessionOpts session.Options
	accounts    *accounts.Service
	catalog     *content.Catalog
	logger      logging.Logger
	ping        func(ctx context.Context) error
}

// NewRouter returns the gin engine serving the whole site.
func NewRouter(o Options) (*gin.Engine, error) {
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	if o.Resolver == nil {
		o.Resolver = storage.CookieResolver(storage.DefaultCookieOptions())
	}
	if o.Accounts == nil {
		o.Accounts = accounts.NewService(o.Logger)
	}
	if o.Catalog == nil {
		o.Catalog = content.NewCatalog(nil, o.Logger)
	}
	if o.Session.Logger == nil {
		o.Session.Logger = o.Logger.With("module", "session")
	}

	s := &Server{
		resolve:     o.Resolver,
		sessionOpts: o.Session,
		accounts:    o.Accounts,
		catalog:     o.Catalog,
		logger:      o.Logger.With("module", "web"),
		ping:        o.Ping,
	}

	tmpl, err := loadTemplates(templateFS)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = tmpl
	r.Use(gin.Recovery(), s.requestLogger())

	r.StaticFS("/static", http.FS(static))
	r.GET("/healthz", s.healthz)
	r.NoRoute(s.withSession(), s.notFound)

	site := r.Group("")
	site.Use(s.withSession())
	{
		site.GET("/", s.home)
		site.GET("/logout", s.logout)
		site.POST("/logout", s.logout)

		guest := site.Group("")
		guest.Use(requireGuest())
		guest.GET("/login", s.loginForm)
		guest.POST("/login", s.login)
		guest.GET("/signup", s.signupForm)
		guest.POST("/signup", s.signup)

		protected := site.Group("")
		protected.Use(requireSession())
		protected.GET("/dashboard", s.dashboard)
		protected.GET("/account", s.account)
	}

	return r, nil
}
