package router

import (
	"time"

	"github.com/finops/backend/internal/infrastructure/auth"
	"github.com/finops/backend/internal/infrastructure/config"
	"github.com/finops/backend/internal/infrastructure/logger"
	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/finops/backend/internal/interfaces/http/handler"
	"github.com/finops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Public auth endpoints reached without a token
var publicAuthPaths = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/refresh",
}

// Auth endpoints every signed-in role may call, viewers included
var selfServicePaths = []string{
	"/api/auth/logout",
	"/api/auth/password",
}

// Options carries the infrastructure the HTTP stack depends on
type Options struct {
	HTTP           config.HTTPConfig
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	MeterProvider  *telemetry.MeterProvider
	Tracing        middleware.TracingConfig
	Profiling      middleware.ProfilingConfig
	// RateLimiter is used when HTTP.RateLimitEnabled is set. The caller owns
	// it and stops it on shutdown.
	RateLimiter *middleware.RateLimiter
}

// Handlers are the mounted API handlers
type Handlers struct {
	System             *handler.SystemHandler
	Auth               *handler.AuthHandler
	Dashboard          *handler.DashboardHandler
	Resources          []RouteRegistrar
	Receipts           *handler.ReceiptHandler
	IncomeStatementPDF *handler.StatementPDFHandler
	BalanceSheetPDF    *handler.StatementPDFHandler
}

// NewEngine builds the gin engine with the full middleware stack and routes
func NewEngine(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(opts.Tracing))
	engine.Use(middleware.Profiling(opts.Profiling))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: opts.MeterProvider,
		Logger:        log,
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(opts.HTTP)))
	if opts.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))
	}
	if opts.HTTP.RateLimitEnabled && opts.RateLimiter != nil {
		engine.Use(middleware.RateLimit(opts.RateLimiter))
	}

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine)
	r.Use(
		middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     opts.JWTService,
			TokenBlacklist: opts.TokenBlacklist,
			SkipPaths:      publicAuthPaths,
			Logger:         log,
		}),
		middleware.SpanAttributes(),
		middleware.RequireWriteAccess(middleware.PermissionConfig{
			Logger:    log,
			SkipPaths: append(append([]string{}, publicAuthPaths...), selfServicePaths...),
		}),
	)

	if h.Auth != nil {
		r.Register(h.Auth)
	}
	if h.Dashboard != nil {
		r.Register(h.Dashboard)
	}
	for _, res := range h.Resources {
		r.Register(res)
	}
	if h.Receipts != nil {
		r.Register(NewDomainGroup("receipts", "/expense-reports/:id").
			POST("/receipt", h.Receipts.Upload).
			GET("/receipt", h.Receipts.URL))
	}
	if h.IncomeStatementPDF != nil {
		r.Register(NewDomainGroup("income-statement-pdf", "/income-statements/:id").
			GET("/pdf", h.IncomeStatementPDF.Download))
	}
	if h.BalanceSheetPDF != nil {
		r.Register(NewDomainGroup("balance-sheet-pdf", "/balance-sheets/:id").
			GET("/pdf", h.BalanceSheetPDF.Download))
	}
	r.Setup()

	return engine
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	cors.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"}
	cors.MaxAge = 12 * time.Hour
	return cors
}
