//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fixitnow/services/marketplace-api/internal/config"
	"fixitnow/services/marketplace-api/internal/domain/bid"
	"fixitnow/services/marketplace-api/internal/domain/chat"
	"fixitnow/services/marketplace-api/internal/domain/conversation"
	"fixitnow/services/marketplace-api/internal/domain/message"
	"fixitnow/services/marketplace-api/internal/domain/requirement"
	"fixitnow/services/marketplace-api/internal/infrastructure/auth"
	"fixitnow/services/marketplace-api/internal/infrastructure/database"
	"fixitnow/services/marketplace-api/internal/infrastructure/logger"
	bidrepo "fixitnow/services/marketplace-api/internal/infrastructure/repository/bid"
	messagerepo "fixitnow/services/marketplace-api/internal/infrastructure/repository/message"
	"fixitnow/services/marketplace-api/internal/infrastructure/requirementapi"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver"
	"fixitnow/services/marketplace-api/internal/interfaces/httpserver/handlers"
	"fixitnow/services/marketplace-api/internal/realtime"
)

var marketplaceSet = wire.NewSet(
	bidrepo.NewPostgresRepository,
	wire.Bind(new(bid.Repository), new(*bidrepo.PostgresRepository)),
	messagerepo.NewPostgresRepository,
	wire.Bind(new(message.Repository), new(*messagerepo.PostgresRepository)),
	newRequirementClient,
	wire.Bind(new(requirement.Reader), new(*requirementapi.Client)),
	bid.NewService,
	message.NewService,
	conversation.NewAuthorizer,
	newHub,
	chat.NewController,
	newHandlerProvider,
)

// BuildApplication assembles the marketplace service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		marketplaceSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newRequirementClient(cfg *config.Config, log zerolog.Logger) *requirementapi.Client {
	return requirementapi.NewClient(cfg.RequirementAPIURL, cfg.RequirementAPITimeout, log)
}

func newHub(cfg *config.Config, log zerolog.Logger) *realtime.Hub {
	return realtime.NewHub(cfg.ChannelBufferSize, log)
}

func newHandlerProvider(
	bidService bid.Service,
	messageService message.Service,
	authorizer *conversation.Authorizer,
	controller *chat.Controller,
	cfg *config.Config,
	log zerolog.Logger,
) *handlers.Provider {
	return handlers.NewProvider(bidService, messageService, authorizer, controller, cfg.ChannelHeartbeatInterval, log)
}
