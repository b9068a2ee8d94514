package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"fixitnow/services/marketplace-api/internal/config"
	"fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/domain/chat"
	"fixitnow/services/marketplace-api/internal/domain/conversation"
	"fixitnow/services/marketplace-api/internal/domain/message"
	"fixitnow/services/marketplace-api/internal/infrastructure/auth"
	"fixitnow/services/marketplace-api/internal/infrastructure/database"
	"fixitnow/services/marketplace-api/internal/infrastructure/logger"
	"fixitnow/services/marketplace-api/internal/infrastructure/observability"
	bidrepo "fixitnow/services/marketplace-api/internal/infrastructure/repository/bid"
	messagerepo "fixitnow/services/marketplace-api/internal/infrastructure/repository/message"
	"fixitnow/services/marketplace-api/internal/infrastructure/requirementapi"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/handlers"
	"fixitnow/services/marketplace-api/internal/realtime"
)

// Application bundles the long-running pieces of the service.
type Application struct {
	httpServer *httpserver.HttpServer
	hub        *realtime.Hub
	log        zerolog.Logger
}

// NewApplication assembles the application from its wired parts.
func NewApplication(httpServer *httpserver.HttpServer, hub *realtime.Hub, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		hub:        hub,
		log:        log,
	}
}

// Start runs the HTTP server until the context is cancelled, then drains the
// live channel hub so every open stream observes its channel close.
func (a *Application) Start(ctx context.Context) error {
	defer a.hub.Close()
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	bidRepository := bidrepo.NewPostgresRepository(db)
	messageRepository := messagerepo.NewPostgresRepository(db)
	requirementReader := requirementapi.NewClient(cfg.RequirementAPIURL, cfg.RequirementAPITimeout, log)

	bidService := bid.NewService(bidRepository, requirementReader, log)
	messageService := message.NewService(messageRepository, log)
	authorizer := conversation.NewAuthorizer(bidRepository, requirementReader)

	hub := realtime.NewHub(cfg.ChannelBufferSize, log)
	controller := chat.NewController(authorizer, messageService, hub, log)

	handlerProvider := handlers.NewProvider(
		bidService,
		messageService,
		authorizer,
		controller,
		cfg.ChannelHeartbeatInterval,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator, db)
	app := NewApplication(httpServer, hub, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
