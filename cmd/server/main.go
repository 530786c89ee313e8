package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dashboardapp "github.com/finops/backend/internal/application/dashboard"
	financeapp "github.com/finops/backend/internal/application/finance"
	identityapp "github.com/finops/backend/internal/application/identity"
	"github.com/finops/backend/internal/infrastructure/auth"
	"github.com/finops/backend/internal/infrastructure/cache"
	"github.com/finops/backend/internal/infrastructure/config"
	"github.com/finops/backend/internal/infrastructure/logger"
	"github.com/finops/backend/internal/infrastructure/persistence"
	"github.com/finops/backend/internal/infrastructure/printing"
	"github.com/finops/backend/internal/infrastructure/storage"
	"github.com/finops/backend/internal/infrastructure/telemetry"
	"github.com/finops/backend/internal/interfaces/http/handler"
	"github.com/finops/backend/internal/interfaces/http/middleware"
	"github.com/finops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry providers degrade to no-ops when disabled
	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		MetricsEnabled:    cfg.Telemetry.MetricsEnabled,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		ProfilingEnabled:  cfg.Telemetry.ProfilingEnabled,
		ProfilingEndpoint: cfg.Telemetry.ProfilingEndpoint,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Re-create the logger with the OTLP log bridge attached
	log := bootLog
	if providers.Logs.IsEnabled() {
		log, err = logger.New(logCfg, providers.Logs.ZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			bootLog.Fatal("Failed to initialize logger", zap.Error(err))
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting finops backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:          dbSystemName(cfg.Database.Driver),
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Redis backs the dashboard cache and the token blacklist when enabled
	cacheBackend, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()

	var blacklist auth.TokenBlacklist
	if cacheBackend.Client != nil {
		blacklist = auth.NewRedisTokenBlacklist(cacheBackend.Client)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	financeMetrics, err := telemetry.NewFinanceMetrics(providers.Meter)
	if err != nil {
		log.Warn("Finance metrics disabled", zap.Error(err))
	}

	// Repositories
	payableRepo := persistence.NewGormAccountPayableRepository(db.DB)
	receivableRepo := persistence.NewGormAccountReceivableRepository(db.DB)
	balanceSheetRepo := persistence.NewGormBalanceSheetRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	forecastRepo := persistence.NewGormCashFlowForecastRepository(db.DB)
	cashFlowStatementRepo := persistence.NewGormCashFlowStatementRepository(db.DB)
	expenseReportRepo := persistence.NewGormExpenseReportRepository(db.DB)
	incomeStatementRepo := persistence.NewGormIncomeStatementRepository(db.DB)
	journalEntryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	workingCapitalRepo := persistence.NewGormWorkingCapitalRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Optional collaborators
	printer, closePrinter := newStatementPrinter(cfg.PDF, log)
	defer closePrinter()
	receiptStorage := newReceiptStorage(ctx, cfg.Storage, log)
	if receiptStorage == nil && cfg.App.Env == "development" {
		log.Info("Receipts kept in memory")
		receiptStorage = storage.NewMemoryReceiptStorage()
	}

	threshold := decimal.NewFromFloat(cfg.Dashboard.CashShortfallThreshold)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)

	payableService := financeapp.NewAccountPayableService(payableRepo)
	receivableService := financeapp.NewAccountReceivableService(receivableRepo)
	balanceSheetService := financeapp.NewBalanceSheetService(balanceSheetRepo, printer)
	budgetService := financeapp.NewBudgetService(budgetRepo)
	forecastService := financeapp.NewCashFlowForecastService(forecastRepo, financeapp.WithShortfallThreshold(threshold))
	cashFlowStatementService := financeapp.NewCashFlowStatementService(cashFlowStatementRepo)
	expenseOpts := []financeapp.ExpenseReportServiceOption{financeapp.WithExpenseReportLogger(log)}
	if receiptStorage != nil {
		expenseOpts = append(expenseOpts, financeapp.WithReceiptStorage(receiptStorage, cfg.Storage.MaxReceiptSize))
	}
	expenseReportService := financeapp.NewExpenseReportService(expenseReportRepo, expenseOpts...)
	incomeStatementService := financeapp.NewIncomeStatementService(incomeStatementRepo, printer)
	journalEntryService := financeapp.NewJournalEntryService(journalEntryRepo)
	purchaseOrderService := financeapp.NewPurchaseOrderService(purchaseOrderRepo)
	workingCapitalService := financeapp.NewWorkingCapitalService(workingCapitalRepo)

	dashboardService := dashboardapp.NewService(dashboardapp.Repositories{
		Payables:         payableRepo,
		Receivables:      receivableRepo,
		Budgets:          budgetRepo,
		Forecasts:        forecastRepo,
		IncomeStatements: incomeStatementRepo,
		WorkingCapital:   workingCapitalRepo,
	}, dashboardapp.Config{
		CashShortfallThreshold: threshold,
		UpcomingDays:           cfg.Dashboard.UpcomingDays,
		SevereOverdueDays:      cfg.Dashboard.SevereOverdueDays,
		BudgetWarningPercent:   decimal.NewFromFloat(cfg.Dashboard.BudgetWarningPercent),
		CacheTTL:               cfg.Dashboard.CacheTTL,
	},
		dashboardapp.WithCache(cacheBackend.Store),
		dashboardapp.WithMetrics(financeMetrics),
		dashboardapp.WithLogger(log),
	)

	// Handlers
	resources := []router.RouteRegistrar{
		handler.NewResourceHandler[financeapp.CreateJournalEntryRequest, financeapp.UpdateJournalEntryRequest, financeapp.JournalEntryListFilter, financeapp.JournalEntryResponse](
			"journal-entries", journalEntryService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateAccountPayableRequest, financeapp.UpdateAccountPayableRequest, financeapp.AccountPayableListFilter, financeapp.AccountPayableResponse](
			"accounts-payable", payableService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateAccountReceivableRequest, financeapp.UpdateAccountReceivableRequest, financeapp.AccountReceivableListFilter, financeapp.AccountReceivableResponse](
			"accounts-receivable", receivableService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateBalanceSheetRequest, financeapp.UpdateBalanceSheetRequest, financeapp.StatementListFilter, financeapp.BalanceSheetResponse](
			"balance-sheets", balanceSheetService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateBudgetRequest, financeapp.UpdateBudgetRequest, financeapp.BudgetListFilter, financeapp.BudgetResponse](
			"budgets", budgetService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateCashFlowForecastRequest, financeapp.UpdateCashFlowForecastRequest, financeapp.CashFlowForecastListFilter, financeapp.CashFlowForecastResponse](
			"cash-flow-forecasts", forecastService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateCashFlowStatementRequest, financeapp.UpdateCashFlowStatementRequest, financeapp.StatementListFilter, financeapp.CashFlowStatementResponse](
			"cash-flow-statements", cashFlowStatementService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateIncomeStatementRequest, financeapp.UpdateIncomeStatementRequest, financeapp.StatementListFilter, financeapp.IncomeStatementResponse](
			"income-statements", incomeStatementService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreatePurchaseOrderRequest, financeapp.UpdatePurchaseOrderRequest, financeapp.PurchaseOrderListFilter, financeapp.PurchaseOrderResponse](
			"purchase-orders", purchaseOrderService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateExpenseReportRequest, financeapp.UpdateExpenseReportRequest, financeapp.ExpenseReportListFilter, financeapp.ExpenseReportResponse](
			"expense-reports", expenseReportService, financeMetrics),
		handler.NewResourceHandler[financeapp.CreateWorkingCapitalRequest, financeapp.UpdateWorkingCapitalRequest, financeapp.StatementListFilter, financeapp.WorkingCapitalResponse](
			"working-capital", workingCapitalService, financeMetrics),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine := router.NewEngine(router.Options{
		HTTP:           cfg.HTTP,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		MeterProvider:  providers.Meter,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Profiling: middleware.ProfilingConfig{
			Enabled:   cfg.Telemetry.ProfilingEnabled,
			SkipPaths: []string{"/health"},
		},
		RateLimiter: rateLimiter,
	}, router.Handlers{
		System:             handler.NewSystemHandler(db),
		Auth:               handler.NewAuthHandler(authService),
		Dashboard:          handler.NewDashboardHandler(dashboardService),
		Resources:          resources,
		Receipts:           handler.NewReceiptHandler(expenseReportService, financeMetrics),
		IncomeStatementPDF: handler.NewStatementPDFHandler("income-statement", incomeStatementService),
		BalanceSheetPDF:    handler.NewStatementPDFHandler("balance-sheet", balanceSheetService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newStatementPrinter returns nil when PDF export is disabled or Chrome
// cannot be set up; the statement services then answer PDF_UNAVAILABLE.
func newStatementPrinter(cfg config.PDFConfig, log *zap.Logger) (financeapp.StatementPrinter, func()) {
	noop := func() {}
	if !cfg.Enabled {
		return nil, noop
	}

	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Timeout,
		ExecPath:       cfg.ChromePath,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Warn("PDF export disabled", zap.Error(err))
		return nil, noop
	}
	printer, err := printing.NewStatementPrinter(renderer, log)
	if err != nil {
		_ = renderer.Close()
		log.Warn("PDF export disabled", zap.Error(err))
		return nil, noop
	}

	log.Info("PDF export enabled")
	return printer, func() { _ = renderer.Close() }
}

// newReceiptStorage returns nil when receipt storage is disabled or the
// bucket cannot be reached.
func newReceiptStorage(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) financeapp.ReceiptStorage {
	if !cfg.Enabled {
		return nil
	}

	s3, err := storage.NewS3ReceiptStorage(ctx, &cfg, storage.WithLogger(log))
	if err != nil {
		log.Warn("Receipt storage disabled", zap.Error(err))
		return nil
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Warn("Receipt storage disabled", zap.String("bucket", s3.Bucket()), zap.Error(err))
		return nil
	}

	log.Info("Receipt storage enabled", zap.String("bucket", s3.Bucket()))
	return s3
}

func dbSystemName(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
