package app

import (
	"context"

	"log/slog"

	"github.com/avelora/salesboard/config"
	httpapi "github.com/avelora/salesboard/internal/api/http"
	"github.com/avelora/salesboard/internal/apisrv/dashboard"
	"github.com/avelora/salesboard/internal/cache"
	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/report"
	"github.com/avelora/salesboard/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting salesboard")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	// directory reads go through the TTL cache; everything else hits the
	// store directly
	repo := withCachedDirectory(a.db, cache.NewDirectory(a.db.Directory(), &a.c.Cache))

	engine := report.New(&a.c.Report, repo)

	dashboardS := dashboard.New(engine)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, dashboardS, a.db); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	a.db.Close()
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}

type cachedDirectoryRepo struct {
	dependency.Repository
	dir dependency.Directory
}

func withCachedDirectory(repo dependency.Repository, dir dependency.Directory) dependency.Repository {
	return &cachedDirectoryRepo{Repository: repo, dir: dir}
}

func (r *cachedDirectoryRepo) Directory() dependency.Directory {
	return r.dir
}
