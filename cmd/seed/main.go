package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/WaqarAhmad321/smart-city-sol/internal/auth"
	"github.com/WaqarAhmad321/smart-city-sol/internal/config"
	"github.com/WaqarAhmad321/smart-city-sol/internal/database"
	"github.com/WaqarAhmad321/smart-city-sol/internal/polling"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	ctx := context.Background()

	authService := auth.NewAuthService(auth.NewAuthRepository(db), cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	admin, err := authService.Register(ctx, auth.RegisterRequest{
		Username: "admin",
		Email:    "admin@civic.local",
		Password: "123456",
	})
	if err != nil {
		slog.Warn("Admin user might already exist", "error", err)
	} else {
		slog.Info("Created admin user", "id", admin.ID)
	}

	pollingService := polling.NewPollingService(
		polling.NewProposalRepository(db),
		polling.NewVoteRepository(db),
		nil,
	)

	var creatorID uint = 1
	if admin != nil {
		creatorID = admin.ID
	}

	proposal, err := pollingService.CreateProposal(ctx, creatorID, polling.CreateProposalRequest{
		Title:          "Extend park opening hours",
		Description:    "Keep the riverside park open until 22:00 during summer months.",
		VotingDeadline: time.Now().Add(7 * 24 * time.Hour),
		Options:        []string{"Yes", "No"},
	})
	if err != nil {
		slog.Warn("Failed to seed proposal", "error", err)
	} else {
		slog.Info("Created demo proposal", "id", proposal.ID)
	}

	slog.Info("Seeding completed")
}
