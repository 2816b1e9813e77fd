// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package planner provides the motion planning HTTP service.
//
// This package contains the main Service type that coordinates all
// components of the service: HTTP routing, the scenario library with
// hot reload, the plan history store, and observability infrastructure
// (OpenTelemetry tracing and Prometheus metrics).
//
// # Usage
//
//	cfg := planner.Config{Port: 12320, ScenarioDir: "./scenarios"}
//	svc, err := planner.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
//
// The planning algorithms themselves live in pkg/planner; this package
// only exposes them over HTTP.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/AleutianMotion/services/planner/observability"
	"github.com/AleutianAI/AleutianMotion/services/planner/routes"
	"github.com/AleutianAI/AleutianMotion/services/planner/scenario"
	"github.com/AleutianAI/AleutianMotion/services/planner/storage"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Service defines the contract for the motion planning service.
//
// # Description
//
// Service abstracts the service lifecycle, enabling testing and
// alternative implementations. The interface follows the minimal surface
// area principle - only essential lifecycle methods are exposed.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run() blocks and should
// only be called once per instance.
//
// # Limitations
//
//   - No graceful shutdown method yet (planned for future)
//   - Run() blocks until server error
//
// # Assumptions
//
//   - Service is fully initialized before Run() is called
//   - Run() is called at most once per Service instance
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	//
	// # Outputs
	//
	//   - error: Non-nil if server fails to start or encounters fatal error
	//
	// # Examples
	//
	//   if err := svc.Run(); err != nil {
	//       log.Fatalf("server error: %v", err)
	//   }
	Run() error

	// Router returns the underlying Gin engine for testing.
	//
	// # Description
	//
	// Provides access to the configured Gin router, primarily for
	// integration testing where direct HTTP calls are needed.
	//
	// # Outputs
	//
	//   - *gin.Engine: The configured router with all routes registered
	//
	// # Assumptions
	//
	//   - Caller will not modify the router
	Router() *gin.Engine
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds motion planning service configuration options.
//
// # Description
//
// Config centralizes all configuration for the planning service.
// Values can be populated from environment variables, command line
// flags, or programmatically for testing.
//
// # Required Fields
//
// None - all fields have sensible defaults. A service without a
// scenario directory still plans inline specs; a service without a
// history path keeps history in memory.
//
// # Examples
//
//	// Minimal config (uses all defaults)
//	cfg := Config{}
//
//	// Full configuration
//	cfg := Config{
//	    Port:         12320,
//	    ScenarioDir:  "/etc/motion/scenarios",
//	    HistoryPath:  "/var/lib/motion/history",
//	    OTelEndpoint: "aleutian-otel-collector:4317",
//	    RateLimit:    10,
//	    RateBurst:    20,
//	}
type Config struct {
	// Port is the HTTP server port. Default: 12320
	Port int

	// GinMode sets the Gin framework mode.
	// Valid values: "debug", "release", "test"
	// Default: uses GIN_MODE env var or "debug"
	GinMode string

	// DisableMetrics turns off the Prometheus metrics endpoint and
	// counters. Metrics are on by default.
	DisableMetrics bool

	// OTelEndpoint is the OpenTelemetry collector endpoint.
	// Empty disables tracing export. The container entrypoint defaults
	// this to "aleutian-otel-collector:4317".
	OTelEndpoint string

	// ScenarioDir points at the scenario library directory.
	// Empty runs the service without stored scenarios.
	ScenarioDir string

	// DisableWatch turns off the fsnotify hot reload of ScenarioDir.
	// Watching is on by default when a scenario directory is set.
	DisableWatch bool

	// HistoryPath is the BadgerDB directory for plan history.
	// Empty keeps history in memory (lost on restart).
	HistoryPath string

	// HistoryLimit is the default page size of the history listing.
	// Default: storage.DefaultRecentLimit
	HistoryLimit int

	// HistoryTTL expires plan records after this duration.
	// Zero keeps records indefinitely.
	HistoryTTL time.Duration

	// RateLimit is the sustained request rate (requests/second) allowed
	// on the plan endpoint. Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the burst capacity of the plan rate limiter.
	// Default: 2x RateLimit when rate limiting is enabled.
	RateBurst int
}

// =============================================================================
// Implementation
// =============================================================================

// service implements Service for production use.
//
// # Description
//
// service is the main implementation that coordinates:
//   - HTTP routing via Gin
//   - Scenario library with fsnotify hot reload
//   - Plan history persistence via BadgerDB
//   - OpenTelemetry tracing
//   - Prometheus metrics
//
// # Thread Safety
//
// Thread-safe after construction. All fields are read-only after New()
// returns.
//
// # Limitations
//
//   - No hot-reload of configuration (scenario files do hot-reload)
type service struct {
	config        Config
	router        *gin.Engine
	library       *scenario.Library
	watcher       *scenario.Watcher
	history       *storage.HistoryStore
	limiter       *rate.Limiter
	tracerCleanup func(context.Context)
}

// =============================================================================
// Constructor
// =============================================================================

// New creates a new motion planning Service with the given configuration.
//
// # Description
//
// New initializes all service components:
//  1. Applies default configuration for missing values
//  2. Initializes OpenTelemetry tracing (if an endpoint is configured)
//  3. Initializes Prometheus metrics
//  4. Loads the scenario library and starts the file watcher
//  5. Opens the plan history store
//  6. Sets up HTTP routes
//
// The scenario library, watcher and history store are optional: their
// initialization failures degrade the service with a warning instead of
// aborting startup, so a planner with a bad volume mount still serves
// inline specs.
//
// # Inputs
//
//   - cfg: Service configuration. Zero values use defaults.
//
// # Outputs
//
//   - Service: Ready-to-run planning service
//   - error: Non-nil if initialization fails
//
// # Examples
//
//	cfg := Config{Port: 12320, ScenarioDir: "./scenarios"}
//	svc, err := New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
//
// # Assumptions
//
//   - The OTel collector is reachable if an endpoint is configured
//   - HistoryPath (when set) is on a writable volume
func New(cfg Config) (Service, error) {
	s := &service{
		config: applyConfigDefaults(cfg),
	}

	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	// Initialize OpenTelemetry tracer
	if s.config.OTelEndpoint != "" {
		cleanup, err := s.initTracer()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		s.tracerCleanup = cleanup
	}

	// Initialize Prometheus metrics
	if !s.config.DisableMetrics {
		observability.InitMetrics()
		slog.Info("Initialized Prometheus metrics for planning")
	}

	// Load the scenario library (optional)
	if err := s.initScenarios(); err != nil {
		slog.Warn("Scenario library initialization failed, serving inline specs only",
			"dir", s.config.ScenarioDir,
			"error", err)
		// Not fatal - continue without stored scenarios
	}

	// Open the plan history store (optional)
	if err := s.initHistory(); err != nil {
		slog.Warn("History store initialization failed, plans will not be recorded",
			"path", s.config.HistoryPath,
			"error", err)
		// Not fatal - continue without history
	}

	if s.config.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(s.config.RateLimit), s.config.RateBurst)
	}

	// Setup HTTP router
	s.initRouter()

	return s, nil
}

// =============================================================================
// Service Interface Methods
// =============================================================================

// Run starts the HTTP server and blocks until shutdown or error.
//
// # Outputs
//
//   - error: Non-nil if server fails to start or encounters fatal error
//
// # Limitations
//
//   - Blocks until server stops
//   - Cleanup is automatic on return
func (s *service) Run() error {
	defer s.cleanup()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting motion planning server",
		"port", s.config.Port,
		"scenarios", s.config.ScenarioDir,
		"history", s.config.HistoryPath)

	return s.router.Run(addr)
}

// Router returns the underlying Gin engine for testing.
func (s *service) Router() *gin.Engine {
	return s.router
}

// =============================================================================
// Private Initialization Methods
// =============================================================================

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12320
	}
	if cfg.RateLimit > 0 && cfg.RateBurst == 0 {
		cfg.RateBurst = int(2 * cfg.RateLimit)
		if cfg.RateBurst < 1 {
			cfg.RateBurst = 1
		}
	}
	return cfg
}

// initTracer initializes OpenTelemetry distributed tracing.
//
// # Description
//
// Sets up OTLP trace exporter to send spans to the configured collector.
//
// # Outputs
//
//   - func(context.Context): Cleanup function to call on shutdown
//   - error: Non-nil if tracer setup fails
//
// # Limitations
//
//   - Uses insecure gRPC connection (appropriate for internal networks)
//
// # Assumptions
//
//   - OTel collector is reachable at configured endpoint
func (s *service) initTracer() (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(s.config.OTelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("motion-planner-service")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}

	return cleanup, nil
}

// initScenarios loads the scenario library and starts the file watcher.
//
// # Description
//
// Loads every scenario file under ScenarioDir and, unless watching is
// disabled, starts an fsnotify watcher that reloads the library when
// files change. Individual bad files are skipped by Reload; only a
// missing or unreadable directory fails initialization.
//
// # Outputs
//
//   - error: Non-nil if the directory cannot be read
//
// # Limitations
//
//   - Returns nil if ScenarioDir is empty (optional dependency)
func (s *service) initScenarios() error {
	if s.config.ScenarioDir == "" {
		slog.Info("Scenario directory not configured, serving inline specs only")
		return nil
	}

	lib := scenario.NewLibrary(s.config.ScenarioDir)
	if err := lib.Reload(); err != nil {
		return err
	}
	s.library = lib
	observability.DefaultMetrics.RecordScenarioReload(true)
	slog.Info("Scenario library loaded",
		"dir", s.config.ScenarioDir,
		"scenarios", lib.Len())

	if s.config.DisableWatch {
		return nil
	}

	watcher, err := scenario.NewWatcher(s.config.ScenarioDir, scenario.DefaultDebounce, func() {
		if err := lib.Reload(); err != nil {
			slog.Warn("Scenario reload failed", "error", err)
			observability.DefaultMetrics.RecordScenarioReload(false)
			return
		}
		observability.DefaultMetrics.RecordScenarioReload(true)
		slog.Info("Scenario library reloaded", "scenarios", lib.Len())
	})
	if err != nil {
		slog.Warn("Scenario watcher unavailable, edits need a restart", "error", err)
		return nil
	}
	if err := watcher.Start(context.Background()); err != nil {
		slog.Warn("Scenario watcher failed to start, edits need a restart", "error", err)
		return nil
	}
	s.watcher = watcher

	return nil
}

// initHistory opens the plan history store.
//
// # Description
//
// Opens a persistent BadgerDB store at HistoryPath, or an in-memory
// store when the path is empty.
//
// # Outputs
//
//   - error: Non-nil if the database cannot be opened
func (s *service) initHistory() error {
	store, err := storage.NewHistoryStore(storage.HistoryConfig{
		Path:        s.config.HistoryPath,
		TTL:         s.config.HistoryTTL,
		RecentLimit: s.config.HistoryLimit,
		Logger:      slog.Default(),
	})
	if err != nil {
		return err
	}
	s.history = store

	mode := "persistent"
	if store.InMemory() {
		mode = "in-memory"
	}
	slog.Info("Plan history store opened", "mode", mode, "path", s.config.HistoryPath)
	return nil
}

// initRouter sets up the Gin HTTP router with all routes.
//
// # Description
//
// Creates the Gin engine, applies middleware, and registers all routes.
// Endpoints whose dependency is missing degrade instead of disappearing,
// so the route table is identical across deployments.
//
// # Assumptions
//
//   - Library, history and limiter are initialized (possibly nil)
func (s *service) initRouter() {
	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("motion-planner-service"))

	routes.SetupRoutes(s.router, routes.Deps{
		Library:       s.library,
		History:       s.history,
		PlanLimiter:   s.limiter,
		ExposeMetrics: !s.config.DisableMetrics,
	})
}

// cleanup releases all resources held by the service.
//
// # Description
//
// Called when Run() exits or on initialization failure.
// Stops the scenario watcher, closes the history store, and shuts down
// the tracer.
func (s *service) cleanup() {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	if s.history != nil {
		if err := s.history.Close(); err != nil {
			slog.Warn("History store close error", "error", err)
		}
	}

	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}

// =============================================================================
// Compile-time Interface Compliance
// =============================================================================

var _ Service = (*service)(nil)
