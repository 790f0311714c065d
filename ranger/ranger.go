package ranger

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/http/template"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	errView                = "error"
	maintenanceView        = "maintenance"
	maintenanceRetryAfter  = 10 * time.Minute
	readHeaderTimeout      = 5 * time.Second
	idleTimeout            = 120 * time.Second
)

//go:embed tmpl/*.tmpl
var pkgTmpls embed.FS

// A Ranger manages and exposes all components of a trailhead app to one another.
type Ranger struct {
	*router.Router

	cfg       trailhead.Config
	l         logger.Logger
	parser    template.Parser
	responder *resp.Responder
	sessions  session.SessionStorer
	srv       *http.Server
}

// New constructs a Ranger from cfg and the provided options.
// Options supplied to New overwrite default configurations.
//
// Without WithSessionStore, sessions are stored in cookies, or Redis when cfg.RedisURI is set.
// Sessions are disabled when cfg lacks session keys.
func New(cfg trailhead.Config, opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{cfg: cfg}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}
	}

	if r.l == nil {
		r.l = logger.New(logger.WithEnv(cfg.Env.String()), logger.WithLevel(cfg.LogLevel))
	}

	if r.sessions == nil {
		store, err := r.defaultSessions()
		if err != nil {
			return nil, err
		}

		r.sessions = store
	}

	assetsBase := path.Base(filepath.ToSlash(cfg.AssetsDir))
	if r.parser == nil {
		r.parser = template.NewParser(
			template.WithFS(os.DirFS(cfg.TemplateDir)),
			template.WithFn(template.Env(cfg.Env)),
			template.WithFn(template.Nonce()),
			template.WithFn(template.RootURL(cfg.BaseURL)),
			template.WithFn(template.AssetURI(cfg.Env, os.DirFS(filepath.Dir(cfg.AssetsDir)), assetsBase)),
		)
	}

	pkgFS, err := fs.Sub(pkgTmpls, "tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
	}

	ropts := []resp.ResponderOptFn{
		resp.WithLogger(r.l),
		resp.WithErrView(errView),
		resp.WithResolvers(
			view.NewTemplateResolver(r.parser),
			view.NewTemplateResolver(template.NewParser(template.WithFS(pkgFS))),
		),
	}

	if r.sessions != nil {
		ropts = append(ropts, resp.WithSessions(r.sessions))
	}

	r.responder = resp.NewResponder(ropts...)

	r.Router = router.New(cfg.Env, r.responder, middleware.LogRequest(r.l))
	r.Router.OnEveryRequest(
		middleware.Recover(r.l),
		middleware.ReportPanic(cfg.Env),
		middleware.InjectIPAddress(),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.RequestID(),
		middleware.LogRequest(r.l),
		middleware.CORS(origin(cfg.BaseURL)),
	)

	if cfg.BaseURL != nil && cfg.BaseURL.Scheme == "https" {
		r.Router.OnEveryRequest(middleware.ForceHTTPS(cfg.Env))
	}

	if r.sessions != nil {
		r.Router.OnEveryRequest(middleware.InjectSession(r.sessions))
	}

	r.Router.Static("/"+assetsBase+"/", os.DirFS(cfg.AssetsDir))

	if cfg.MaintenanceMode {
		r.l.Warn("maintenance mode on, answering every request with 503", nil)
		r.Router.CatchAll(MaintModeHandler())
	}

	if r.srv == nil {
		r.srv = &http.Server{
			Addr:              cfg.Addr,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		}
	}

	r.srv.Handler = r.Router
	return r, nil
}

func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitResponder() *resp.Responder          { return r.responder }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	return r.GuideContext(ctx)
}

// GuideContext begins the web server, shutting it down once ctx is done.
func (r *Ranger) GuideContext(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		defer close(errs)

		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	case err := <-errs:
		return err
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server, waiting on open requests for up to the configured ShutdownTimeout.
func (r *Ranger) Shutdown() error {
	timeout := r.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	if err := r.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

// MaintModeHandler answers every request with 503 Service Unavailable,
// rendering the "maintenance" view.
func MaintModeHandler() resp.HandlerFunc {
	retry := fmt.Sprint(int(maintenanceRetryAfter.Seconds()))
	return func(*http.Request) (*resp.Response, error) {
		return resp.WithStatus(resp.Status(http.StatusServiceUnavailable)).
			Header("Retry-After", retry).
			CacheControl(resp.NoStore()).
			Render(maintenanceView, nil), nil
	}
}

func (r *Ranger) defaultSessions() (session.SessionStorer, error) {
	if r.cfg.SessionAuthKey == "" || r.cfg.SessionEncryptKey == "" {
		r.l.Warn("no session keys configured, sessions are disabled", nil)
		return nil, nil
	}

	var opts []session.ServiceOpt
	if r.cfg.RedisURI != "" {
		opts = append(opts, session.WithRedis(r.cfg.RedisURI, r.cfg.RedisPass))
	}

	store, err := session.NewStoreService(session.Config{
		Env:         r.cfg.Env,
		SessionName: r.cfg.SessionName,
		AuthKey:     r.cfg.SessionAuthKey,
		EncryptKey:  r.cfg.SessionEncryptKey,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
	}

	return store, nil
}

// origin is the scheme and host of u, or empty if u is nil.
func origin(u *url.URL) string {
	if u == nil {
		return ""
	}

	return u.Scheme + "://" + u.Host
}
