package main

import (
	"context"
	"fmt"

	"github.com/pradeshm/infinispan-console/internal/auth"
	"github.com/pradeshm/infinispan-console/internal/config"
	"github.com/pradeshm/infinispan-console/internal/console"
	"github.com/pradeshm/infinispan-console/internal/encoding"
	"github.com/pradeshm/infinispan-console/internal/observability"
	"github.com/pradeshm/infinispan-console/internal/rest"
)

// application holds all application components.
type application struct {
	config     *config.ConsoleConfig
	logger     observability.Logger
	metrics    *observability.Metrics
	tracer     *observability.Tracer
	tokenStore *auth.FileTokenStore
	identity   auth.Identity
	containers *console.ContainerService
	caches     *console.CacheService
	normalizer *rest.Normalizer
}

// initApplication initializes all application components.
func initApplication(ctx context.Context, cfg *config.ConsoleConfig, logger observability.Logger) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: observability.NewMetrics(cfg.Observability.Metrics.Namespace),
	}

	tracer, err := initTracer(cfg)
	if err != nil {
		return nil, err
	}
	app.tracer = tracer

	httpClient := rest.NewHTTPClient(cfg.Server.Timeout.Duration())

	identity, capability, err := app.initSecurity(ctx, httpClient)
	if err != nil {
		app.close(context.Background())
		return nil, err
	}
	app.identity = identity

	dispatcher := rest.NewDispatcher(identity, capability,
		rest.WithLogger(logger),
		rest.WithMetrics(app.metrics),
		rest.WithTracer(tracer),
		rest.WithHTTPClient(httpClient),
	)
	app.normalizer = rest.NewNormalizer(
		rest.WithNormalizerLogger(logger),
		rest.WithNormalizerMetrics(app.metrics),
	)
	codec := encoding.NewCodec(
		encoding.WithCodecLogger(logger),
		encoding.WithCodecMetrics(app.metrics),
	)

	opts := []console.Option{
		console.WithLogger(logger),
		console.WithNormalizer(app.normalizer),
		console.WithCodec(codec),
	}
	app.containers = console.NewContainerService(cfg.Server.URL, dispatcher, opts...)
	app.caches = console.NewCacheService(cfg.Server.URL, dispatcher, opts...)

	logger.Debug("console initialized",
		observability.String("version", version),
		observability.String("server", cfg.Server.URL),
		observability.String("security_mode", cfg.Security.Mode),
	)

	return app, nil
}

// initTracer initializes the tracer.
func initTracer(cfg *config.ConsoleConfig) (*observability.Tracer, error) {
	tracing := cfg.Observability.Tracing
	tracer, err := observability.NewTracer(observability.TracerConfig{
		ServiceName:  tracing.ServiceName,
		OTLPEndpoint: tracing.OTLPEndpoint,
		SamplingRate: tracing.SamplingRate,
		Enabled:      tracing.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	return tracer, nil
}

// close releases the token watcher, writes the metrics file and flushes
// traces.
func (a *application) close(ctx context.Context) {
	if a.tokenStore != nil {
		_ = a.tokenStore.Close()
	}
	if path := a.config.Observability.Metrics.File; path != "" {
		if err := a.metrics.WriteToTextfile(path); err != nil {
			a.logger.Warn("failed to write metrics file",
				observability.String("path", path),
				observability.Error(err),
			)
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.Warn("failed to shut down tracer", observability.Error(err))
		}
	}
}
