package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
	"github.com/dmitrijs2005/tripcart/internal/client/config"
	"github.com/dmitrijs2005/tripcart/internal/client/metrics"
	"github.com/dmitrijs2005/tripcart/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tripcart/internal/client/services"
	"github.com/dmitrijs2005/tripcart/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the interactive client: the services plus the terminal they talk
// through.
type App struct {
	config *config.Config
	log    logging.Logger

	store      metadata.Repository
	closeStore func() error
	metrics    *metrics.Metrics
	metricsSrv *metrics.Server

	session    *services.AuthService
	settings   *services.SettingsService
	profile    *services.ProfileService
	groups     *services.GroupsService
	inbox      *services.Inbox
	appearance *terminalAppearance

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured store and builds the services over an HTTP
// API client. Metrics go to reg; nil means a private registry. With
// MetricsAddr set they are also served at /metrics until Run returns.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, reg prometheus.Registerer) (*App, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "error initializing store", "backend", cfg.StoreBackend, "error", err)
		return nil, err
	}

	m := metrics.New(reg)
	var srv *metrics.Server
	if cfg.MetricsAddr != "" {
		srv, err = metrics.Listen(ctx, cfg.MetricsAddr, m, logger)
		if err != nil {
			logger.Error(ctx, "error starting metrics listener", "error", err)
			_ = closeStore()
			return nil, err
		}
	}

	a := newApp(ctx, cfg, logger, store, m, os.Stdin, os.Stdout)
	a.closeStore = closeStore
	a.metricsSrv = srv
	return a, nil
}

// newApp wires the services over an already open store.
func newApp(
	ctx context.Context,
	cfg *config.Config,
	logger logging.Logger,
	store metadata.Repository,
	m *metrics.Metrics,
	in io.Reader,
	out io.Writer,
) *App {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	a := &App{
		config:     cfg,
		log:        logger,
		store:      store,
		closeStore: func() error { return nil },
		metrics:    m,
		appearance: &terminalAppearance{},
		reader:     bufio.NewReader(in),
		out:        out,
	}

	api := client.NewHTTPClient(cfg.APIBaseURL, storedToken(store),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithMetrics(m),
		client.WithLogger(logger.With("component", "api")),
	)

	a.session = services.NewAuthService(ctx, api, store, logger)
	a.settings = services.NewSettingsService(ctx, store, a.appearance, logger)
	a.profile = services.NewProfileService(api, a.session, logger)
	a.groups = services.NewGroupsService(api, a.session, logger)
	a.inbox = services.NewInbox(nil, logger)
	return a
}

// Run restores the stored session, runs the REPL until the user exits, and
// releases the store and the metrics listener.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := a.metricsSrv.Shutdown(shutdownCtx); err != nil {
				a.log.Warn(ctx, "stop metrics listener", "error", err)
			}
		}
		if err := a.closeStore(); err != nil {
			a.log.Warn(ctx, "close store", "error", err)
		}
	}()

	a.println("Welcome to tripcart (type 'help' for commands)")
	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "restore session", "error", err)
	}
	if u := a.session.User(); u != nil {
		a.println("Signed in as", u.Username)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// storedToken reads the bearer token from the store on every request.
func storedToken(store metadata.Repository) client.TokenFunc {
	return func(ctx context.Context) (string, error) {
		tok, err := store.Get(ctx, metadata.KeyToken)
		if err != nil {
			return "", err
		}
		return string(tok), nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status is shown in the prompt: the username and a dark-mode marker.
func (a *App) status() string {
	s := "guest"
	if u := a.session.User(); u != nil {
		s = u.Username
	}
	if a.appearance.Dark() {
		s += " ☾"
	}
	return s
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
