package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/notedeck/notedeck/handler"
	"github.com/notedeck/notedeck/pkg/clientip"
	"github.com/notedeck/notedeck/pkg/config"
	"github.com/notedeck/notedeck/pkg/environment"
	"github.com/notedeck/notedeck/pkg/httpserver"
	"github.com/notedeck/notedeck/pkg/logger"
	"github.com/notedeck/notedeck/pkg/ratelimiter"
	"github.com/notedeck/notedeck/pkg/requestid"
	"github.com/notedeck/notedeck/pkg/toast"
	"github.com/notedeck/notedeck/pkg/viewport"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"notedeck"`
}

type serveOptions struct {
	addr    string
	presets string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the toast HTTP server",
		Long: `serve runs until SIGINT or SIGTERM. On shutdown the toast engine is
closed first so open viewport streams end, then in-flight requests drain.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, overrides HTTP_ADDR")
	cmd.Flags().StringVar(&opts.presets, "presets", "", "YAML presets file, overrides TOAST_PRESETS_FILE")
	return cmd
}

func serve(ctx context.Context, opts serveOptions) error {
	var (
		app      appConfig
		toastCfg toast.Config
		httpCfg  httpserver.Config
		limitCfg ratelimiter.Config
	)
	if err := errors.Join(
		config.Load(&app),
		config.Load(&toastCfg),
		config.Load(&httpCfg),
		config.Load(&limitCfg),
	); err != nil {
		return err
	}
	limiter, err := ratelimiter.NewBucket(limitCfg)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		httpCfg.Addr = opts.addr
	}
	if opts.presets != "" {
		toastCfg.PresetsFile = opts.presets
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := toast.NewFromConfig(toastCfg,
		toast.WithLogger(log),
		toast.WithMetrics(toast.NewMetrics(toast.WithRegistry(registry))),
	)
	if err != nil {
		return err
	}
	defer engine.Close()

	router := newRouter(log, engine, environment.Parse(app.Env), registry, limiter)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithDrain(func() { _ = engine.Close() }),
	)
	log.InfoContext(ctx, "starting notedeck",
		slog.String("version", version),
		logger.Duration(toastCfg.DefaultDuration),
	)
	return srv.Run(ctx, router)
}

func newRouter(
	log *slog.Logger,
	engine *toast.Engine,
	env environment.Environment,
	registry *prometheus.Registry,
	limiter *ratelimiter.Bucket,
) chi.Router {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(env),
		middleware.Recoverer,
	)

	vp := viewport.New(engine,
		viewport.WithBasePath("/toasts"),
		viewport.WithLogger(log),
		viewport.WithPublishMiddleware(ratelimiter.Middleware(limiter, clientip.Key)),
	)
	r.Mount("/toasts", vp.Routes())

	r.Get("/", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Templ(page("/toasts"))
	}))
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, engine.Ping))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return r
}
