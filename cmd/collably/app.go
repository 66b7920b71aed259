package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ramsey-B/collably/config"
	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/dashboard"
	"github.com/Ramsey-B/collably/pkg/events"
	"github.com/Ramsey-B/collably/pkg/httpclient"
	"github.com/Ramsey-B/collably/pkg/metrics"
	"github.com/Ramsey-B/collably/pkg/session"
	"github.com/Ramsey-B/collably/pkg/startup"
	"github.com/Ramsey-B/collably/pkg/tracing"
	"github.com/Ramsey-B/collably/pkg/transfer"
)

// app is what a command needs once the graph is built
type app struct {
	Config    *config.Config
	Logger    ectologger.Logger
	Dashboard *dashboard.Dashboard
	Importer  *transfer.Importer
	HTTP      *httpclient.Client
}

// dependencies are the components started by pkg/startup before a command runs
type dependencies struct {
	fx.Out

	Dependencies []startup.Dependency `group:"dependencies,flatten"`
}

type sessionResult struct {
	fx.Out

	Store        session.Store
	Dependencies []startup.Dependency `group:"dependencies,flatten"`
}

type lifecycleParams struct {
	fx.In

	Lifecycle    fx.Lifecycle
	Config       *config.Config
	Logger       ectologger.Logger
	Dependencies []startup.Dependency `group:"dependencies"`
}

// run builds the object graph, starts its dependencies, runs fn and tears everything down
func run(ctx context.Context, opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	var a *app
	fxApp := fx.New(
		fx.NopLogger,
		fx.StartTimeout(2*time.Minute),
		fx.Supply(opts),
		fx.Provide(
			loadConfig,
			newLogger,
			newSessionStore,
			newSession,
			newHTTPClient,
			newAPIClient,
			newDashboard,
			newPublisher,
			newMetricsServer,
			newImporter,
			newApp,
		),
		fx.Invoke(registerTracing, registerStartup),
		fx.Populate(&a),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fxApp.Stop(stopCtx); err != nil {
			a.Logger.WithError(err).Warnf("Shutdown did not complete cleanly")
		}
	}()

	return fn(ctx, a)
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	return config.Load(opts.envFiles...)
}

// newLogger writes to stderr so command output on stdout stays machine readable
func newLogger(cfg *config.Config, lc fx.Lifecycle) (ectologger.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.InitialFields = map[string]interface{}{"app": cfg.AppName}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stderr sync fails on some terminals
			_ = zapLogger.Sync()
			return nil
		},
	})

	return zapadapter.NewZapEctoLogger(zapLogger, nil), nil
}

func newSessionStore(cfg *config.Config, logger ectologger.Logger) (sessionResult, error) {
	switch cfg.SessionBackend {
	case "memory":
		return sessionResult{Store: session.WithMetrics("memory", session.NewMemoryStore())}, nil
	case "redis":
		redisStore := session.NewRedisStore(session.RedisConfig{
			Host:      cfg.RedisHost,
			Port:      cfg.RedisPort,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.SessionKeyPrefix,
		}, logger)
		return sessionResult{
			Store:        session.WithMetrics("redis", redisStore),
			Dependencies: []startup.Dependency{redisStore},
		}, nil
	case "file", "":
		path := cfg.SessionFile
		if path == "" {
			var err error
			if path, err = session.DefaultPath(); err != nil {
				return sessionResult{}, err
			}
		}
		return sessionResult{Store: session.WithMetrics("file", session.NewFileStore(path))}, nil
	default:
		return sessionResult{}, fmt.Errorf("unknown SESSION_BACKEND %q (want file, memory or redis)", cfg.SessionBackend)
	}
}

func newSession(store session.Store, logger ectologger.Logger) *session.Session {
	return session.New(store, logger)
}

func newHTTPClient(cfg *config.Config, logger ectologger.Logger) *httpclient.Client {
	return httpclient.NewClient(httpclient.Config{
		Timeout:         cfg.HTTPClientTimeout,
		MaxIdleConns:    cfg.HTTPClientMaxIdleConns,
		IdleConnTimeout: cfg.HTTPClientIdleConnTimeout,
	}, logger)
}

func newAPIClient(cfg *config.Config, httpClient *httpclient.Client, sess *session.Session, logger ectologger.Logger) (*api.Client, error) {
	return api.NewClient(cfg.APIBaseURL, httpClient, sess, logger)
}

func newDashboard(client *api.Client, sess *session.Session, logger ectologger.Logger) *dashboard.Dashboard {
	return dashboard.New(client, sess, logger)
}

func newPublisher(cfg *config.Config, dash *dashboard.Dashboard, logger ectologger.Logger) dependencies {
	kafkaConfig := events.ParseConfig(cfg.KafkaBrokers, cfg.KafkaActionsTopic)
	if !kafkaConfig.Enabled() {
		return dependencies{}
	}

	publisher := events.NewPublisher(kafkaConfig, logger)
	publisher.Attach(dash.Store())
	return dependencies{Dependencies: []startup.Dependency{publisher}}
}

func newMetricsServer(cfg *config.Config, logger ectologger.Logger) dependencies {
	if cfg.MetricsAddr == "" {
		return dependencies{}
	}
	return dependencies{Dependencies: []startup.Dependency{metrics.NewServer(cfg.MetricsAddr, logger)}}
}

func newImporter(logger ectologger.Logger) *transfer.Importer {
	return transfer.NewImporter(logger)
}

func newApp(cfg *config.Config, logger ectologger.Logger, dash *dashboard.Dashboard, importer *transfer.Importer, httpClient *httpclient.Client) *app {
	return &app{Config: cfg, Logger: logger, Dashboard: dash, Importer: importer, HTTP: httpClient}
}

func registerTracing(lc fx.Lifecycle, cfg *config.Config, logger ectologger.Logger) {
	if !cfg.OTLPEnabled {
		return
	}

	var shutdown func(context.Context) error
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = tracing.Setup(ctx, tracing.OTLPConfig{
				ServiceName: cfg.AppName,
				Endpoint:    cfg.OTLPEndpoint,
				Protocol:    cfg.OTLPProtocol,
				Insecure:    cfg.OTLPInsecure,
				Timeout:     10 * time.Second,
			})
			if err != nil {
				return fmt.Errorf("failed to set up tracing: %w", err)
			}
			logger.Debugf("Exporting traces to %s over %s", cfg.OTLPEndpoint, cfg.OTLPProtocol)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}

func registerStartup(p lifecycleParams) {
	if len(p.Dependencies) == 0 {
		return
	}

	starter := startup.NewStartup(p.Logger, p.Config.StartupMaxAttempts)
	for _, dependency := range p.Dependencies {
		starter.AddDependency(dependency)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: starter.Start,
		OnStop:  starter.Stop,
	})
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}
