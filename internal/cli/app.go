// Package cli implements the interactive back-office screens: login,
// organization CRUD, company profile, and the message inbox. Every protected
// screen is gated through the session guard before it runs.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/eventora/backoffice/internal/backend"
	"github.com/eventora/backoffice/internal/config"
	"github.com/eventora/backoffice/internal/logging"
	"github.com/eventora/backoffice/internal/session"
)

type App struct {
	config *config.Config
	client backend.Client
	store  session.Store
	guard  *session.Guard
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu      sync.Mutex
	watcher *session.Watcher
	expired bool
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := session.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewSQLiteStore(db)

	tokenSource := func(ctx context.Context) string {
		sess, err := store.Load(ctx)
		if err != nil {
			return ""
		}
		return sess.Token
	}
	client := backend.NewHTTPClient(cfg.BackendBaseURL, cfg.HTTPTimeout, tokenSource, log)

	guard := session.NewGuard(store, session.NewValidator(nil), log)

	return &App{
		config: cfg,
		client: client,
		store:  store,
		guard:  guard,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	defer a.stopWatcher()
	a.Root(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return false
	}
	return sess.Present()
}

// protected runs fn only when the guard authorizes the screen. A redirect
// outcome sends the user back to the login prompt instead.
func (a *App) protected(ctx context.Context, required session.RequiredRole, fn func(ctx context.Context) error) error {
	state := a.guard.Authorize(ctx, required)
	if !state.Authorized {
		a.stopWatcher()
		fmt.Fprintf(a.out, "This screen needs a matching session (%s). Please login.\n", state.Redirect)
		return nil
	}
	return fn(ctx)
}

// startWatcher begins background token revalidation. An expiring session
// clears the markers and flags the REPL so the next prompt reflects the
// logged-out state.
func (a *App) startWatcher() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.watcher != nil {
		return
	}
	a.expired = false
	a.watcher = a.guard.Watch(a.config.RevalidationInterval, func() {
		a.mu.Lock()
		first := !a.expired
		a.expired = true
		a.mu.Unlock()
		if first {
			fmt.Fprintln(a.out, "Session expired, please login again.")
		}
	})
}

func (a *App) stopWatcher() {
	a.mu.Lock()
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

func (a *App) sessionExpired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expired
}
