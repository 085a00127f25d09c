package server

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/WaqarAhmad321/smart-city-sol/internal/auth"
	"github.com/WaqarAhmad321/smart-city-sol/internal/config"
	"github.com/WaqarAhmad321/smart-city-sol/internal/database"
	"github.com/WaqarAhmad321/smart-city-sol/internal/events"
	"github.com/WaqarAhmad321/smart-city-sol/internal/polling"
)

type App struct {
	router    *gin.Engine
	db        *gorm.DB
	publisher *events.VoteEventPublisher
}

func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return nil, err
	}

	publisher := events.NewVoteEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.VoteTopic)

	// Auth
	authRepo := auth.NewAuthRepository(db)
	authService := auth.NewAuthService(authRepo, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	authHandler := auth.NewAuthHandler(authService)

	// Polling
	proposalRepo := polling.NewProposalRepository(db)
	voteRepo := polling.NewVoteRepository(db)
	pollingService := polling.NewPollingService(proposalRepo, voteRepo, publisher)
	pollingHandler := polling.NewPollingHandler(pollingService)

	router := gin.Default()
	SetupRoutes(router, cfg, authHandler, pollingHandler)

	return &App{
		router:    router,
		db:        db,
		publisher: publisher,
	}, nil
}

func (a *App) Engine() *gin.Engine {
	return a.router
}

func (a *App) Close() error {
	if err := a.publisher.Close(); err != nil {
		return err
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
