package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/ansolutions0125/nexmailer/config"
	"github.com/ansolutions0125/nexmailer/internal/database"
	"github.com/ansolutions0125/nexmailer/internal/domain"
	apphttp "github.com/ansolutions0125/nexmailer/internal/http"
	"github.com/ansolutions0125/nexmailer/internal/repository"
	"github.com/ansolutions0125/nexmailer/internal/service"
	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

// App wires configuration, storage, services and HTTP handlers
// together and owns the server lifecycle.
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mux    *http.ServeMux
	server *http.Server

	// repositories
	contactRepo     domain.ContactRepository
	listRepo        domain.ListRepository
	contactListRepo domain.ContactListRepository
	flowRepo        domain.FlowRepository
	assocRepo       domain.AssociationRepository
	templateRepo    domain.TemplateRepository
	serverRepo      domain.ServerRepository
	queueRepo       domain.EmailQueueRepository
	logRepo         domain.EmailLogRepository
	statsRepo       domain.StatsRepository

	// services
	engagement *service.EngagementService
	scheduler  *service.FlowScheduler
	worker     *service.DeliveryWorker
	tracker    *service.TrackingService
	runners    []*service.SweepRunner
}

// AppOption configures the app before initialization
type AppOption func(*App)

// WithMockDB injects a database connection, used by tests
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger injects a custom logger
func WithLogger(log logger.Logger) AppOption {
	return func(a *App) {
		a.logger = log
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.NewLogger(cfg.LogLevel)
	}
	return a
}

// InitDB connects to Postgres and bootstraps the schema
func (a *App) InitDB() error {
	if a.db == nil {
		db, err := sql.Open("postgres", a.config.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		a.db = db
	}

	if err := database.InitializeSchema(a.db); err != nil {
		return err
	}

	a.logger.WithField("db_name", a.config.Database.DBName).Info("Database initialized")
	return nil
}

// InitRepositories creates the repository layer
func (a *App) InitRepositories() {
	a.contactRepo = repository.NewContactRepository(a.db)
	a.listRepo = repository.NewListRepository(a.db)
	a.contactListRepo = repository.NewContactListRepository(a.db)
	a.flowRepo = repository.NewFlowRepository(a.db)
	a.assocRepo = repository.NewAssociationRepository(a.db)
	a.templateRepo = repository.NewTemplateRepository(a.db)
	a.serverRepo = repository.NewServerRepository(a.db)
	a.queueRepo = repository.NewEmailQueueRepository(a.db)
	a.logRepo = repository.NewEmailLogRepository(a.db)
	a.statsRepo = repository.NewStatsRepository(a.db)
}

// InitServices creates the service layer
func (a *App) InitServices() {
	a.engagement = service.NewEngagementService(a.contactRepo, a.logger)

	executors := []service.StepExecutor{
		service.NewWaitStepExecutor(),
		service.NewWebhookStepExecutor(a.config.Automation.WebhookTimeout, a.logger),
		service.NewMailStepExecutor(a.templateRepo, a.queueRepo, a.config.Delivery.MaxAttempts),
		service.NewMoveStepExecutor(a.listRepo, a.contactListRepo),
		service.NewRemoveStepExecutor(a.contactListRepo),
		service.NewDeleteStepExecutor(a.contactRepo, a.contactListRepo),
	}
	a.scheduler = service.NewFlowScheduler(a.assocRepo, a.flowRepo, a.contactRepo, a.statsRepo, executors, a.logger)

	a.worker = service.NewDeliveryWorker(
		a.queueRepo,
		a.logRepo,
		a.templateRepo,
		a.flowRepo,
		a.serverRepo,
		a.statsRepo,
		a.engagement,
		nil,
		service.DeliveryConfig{
			BackoffBase:      a.config.Delivery.BackoffBase,
			BackoffMax:       a.config.Delivery.BackoffMax,
			StaleAfter:       a.config.Delivery.StaleAfter,
			TransportTimeout: a.config.Delivery.TransportTimeout,
			MaxOpens:         a.config.Tracking.MaxOpens,
			TrackingEndpoint: a.config.Tracking.Endpoint,
			SecretKey:        a.config.SecretKey,
		},
		a.logger,
	)

	a.tracker = service.NewTrackingService(a.logRepo, a.queueRepo, a.serverRepo, a.statsRepo, a.engagement, a.logger)

	if a.config.Automation.TickerEnabled {
		a.runners = append(a.runners, service.NewSweepRunner("automation", func(ctx context.Context, batchSize int) error {
			_, err := a.scheduler.RunSweep(ctx, batchSize)
			return err
		}, a.logger, a.config.Automation.SweepInterval, a.config.Automation.BatchSize))
	}
	if a.config.Delivery.TickerEnabled {
		a.runners = append(a.runners, service.NewSweepRunner("delivery", func(ctx context.Context, batchSize int) error {
			_, err := a.worker.ProcessBatch(ctx, batchSize)
			return err
		}, a.logger, a.config.Delivery.SweepInterval, a.config.Delivery.BatchSize))
	}
}

// InitHandlers registers the HTTP routes
func (a *App) InitHandlers() {
	cronHandler := apphttp.NewCronHandler(
		a.scheduler,
		a.worker,
		a.config.Automation.BatchSize,
		a.config.Delivery.BatchSize,
		a.logger,
	)
	cronHandler.RegisterRoutes(a.mux)

	trackHandler := apphttp.NewTrackHandler(a.tracker, a.logger)
	trackHandler.RegisterRoutes(a.mux)
}

// Initialize runs the full startup sequence
func (a *App) Initialize() error {
	if err := a.InitDB(); err != nil {
		return err
	}
	a.InitRepositories()
	a.InitServices()
	a.InitHandlers()
	return nil
}

// Start runs the HTTP server and the optional in-process tickers.
// It blocks until the server stops.
func (a *App) Start() error {
	ctx := context.Background()
	for _, runner := range a.runners {
		runner.Start(ctx)
	}

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:    addr,
		Handler: a.mux,
	}

	a.logger.WithField("address", addr).Info("Server starting")
	return a.server.ListenAndServe()
}

// Shutdown stops the tickers and drains the HTTP server
func (a *App) Shutdown(ctx context.Context) error {
	for _, runner := range a.runners {
		runner.Stop()
	}

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	a.logger.Info("Server shut down gracefully")
	return nil
}

// GetMux exposes the route mux, used by tests
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}
