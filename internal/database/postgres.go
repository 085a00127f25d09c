package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/WaqarAhmad321/smart-city-sol/internal/auth"
	"github.com/WaqarAhmad321/smart-city-sol/internal/config"
	"github.com/WaqarAhmad321/smart-city-sol/internal/polling"
)

// NewPostgresConnection opens the database and prepares the schema.
// TranslateError is required: the vote ledger relies on the driver mapping
// unique-index violations to gorm.ErrDuplicatedKey.
func NewPostgresConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs schema migrations for all models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&auth.UserModel{},
		&polling.Proposal{},
		&polling.ProposalOption{},
		&polling.Vote{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return addIndexes(db)
}

func addIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		columns string
	}{
		{"proposals", "created_at"},
		{"proposal_options", "proposal_id"},
		{"votes", "option_id"},
	}

	for _, idx := range indexes {
		name := fmt.Sprintf("idx_%s_%s", idx.table, idx.columns)
		if err := db.Exec(fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			name, idx.table, idx.columns)).Error; err != nil {
			return err
		}
	}

	// The one-vote-per-user invariant lives here, not in application code.
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_proposal_user ON votes (proposal_id, user_id)").Error
}
