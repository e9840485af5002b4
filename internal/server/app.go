// Package server wires the Edutor site together: configuration, logging,
// tracing, the storage backend, the HTTP site and the gRPC health service,
// and shuts everything down on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/edutor/internal/accounts"
	"github.com/dmitrijs2005/edutor/internal/common"
	"github.com/dmitrijs2005/edutor/internal/content"
	"github.com/dmitrijs2005/edutor/internal/filex"
	"github.com/dmitrijs2005/edutor/internal/logging"
	"github.com/dmitrijs2005/edutor/internal/obs"
	"github.com/dmitrijs2005/edutor/internal/server/config"
	"github.com/dmitrijs2005/edutor/internal/session"
	"github.com/dmitrijs2005/edutor/internal/storage"
	"github.com/dmitrijs2005/edutor/internal/web"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/edutor/internal/server/grpc"
)

// Version is reported to the trace collector.
var Version = "dev"

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Minute
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(c.LogBackend)
	if err != nil {
		return nil, err
	}
	gin.SetMode(gin.ReleaseMode)

	return &App{config: c, logger: logger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// openBackend returns the server-side backend selected in the config, or
// nil when state is kept in browser cookies.
func openBackend(ctx context.Context, c *config.Config) (storage.Backend, error) {
	switch c.StorageBackend {
	case config.StorageCookie:
		return nil, nil
	case config.StorageMemory:
		return storage.NewMemoryBackend(), nil
	case config.StorageSQLite:
		if err := filex.EnsureParentDir(c.SQLitePath); err != nil {
			return nil, err
		}
		return storage.OpenSQLBackend(ctx, storage.SQLite, c.SQLitePath)
	case config.StoragePostgres:
		return storage.OpenSQLBackend(ctx, storage.Postgres, c.DatabaseDSN)
	case config.StorageRedis:
		return storage.OpenRedisBackend(ctx, storage.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnsupported, c.StorageBackend)
	}
}

func sessionOptions(c *config.Config, logger logging.Logger) session.Options {
	o := session.Options{TTL: c.SessionTTL, Logger: logger.With("module", "session")}
	if c.TokenCodec == config.CodecJWT {
		o.Codec = session.NewJWTCodec([]byte(c.SecretKey), c.SessionTTL)
	} else {
		o.Codec = session.PlainCodec{}
	}
	return o
}

func (app *App) newCatalog(ctx context.Context) (*content.Catalog, error) {
	c := app.config
	if !c.S3Enabled {
		return content.NewCatalog(nil, app.logger), nil
	}
	media, err := content.NewS3Media(ctx, content.S3Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
		Expires:      c.S3PresignTTL,
	})
	if err != nil {
		return nil, err
	}
	return content.NewCatalog(media, app.logger), nil
}

func (app *App) newRouter(ctx context.Context, backend storage.Backend) (*gin.Engine, error) {
	cookieOpts := storage.DefaultCookieOptions()
	cookieOpts.Secure = app.config.CookieSecure

	opts := web.Options{
		Resolver: storage.CookieResolver(cookieOpts),
		Session:  sessionOptions(app.config, app.logger),
		Accounts: accounts.NewService(app.logger),
		Logger:   app.logger,
	}
	if backend != nil {
		opts.Resolver = storage.DeviceResolver(backend, cookieOpts)
		opts.Ping = backend.Ping
	}

	catalog, err := app.newCatalog(ctx)
	if err != nil {
		return nil, err
	}
	opts.Catalog = catalog

	return web.NewRouter(opts)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc, h http.Handler) {
	srv := &http.Server{Addr: app.config.EndpointAddrHTTP, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc, ping func(context.Context) error) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, ping)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	shutdownTracer, err := obs.InitTracer(ctx, "edutor", Version, app.config.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			app.logger.Warn(ctx, "tracer shutdown", "error", err)
		}
	}()

	backend, err := openBackend(ctx, app.config)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	var ping func(context.Context) error
	if backend != nil {
		ping = backend.Ping
		defer func() {
			if err := backend.Close(); err != nil {
				app.logger.Warn(ctx, "storage close", "error", err)
			}
		}()
	}

	router, err := app.newRouter(ctx, backend)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	if p, ok := backend.(storage.Purger); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			storage.RunJanitor(ctx, p, janitorInterval, app.logger.With("module", "janitor"))
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc, router)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc, ping)
	}()

	wg.Wait()

	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
	return nil
}
