package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/calmcoin/penny/internal/config"
	"github.com/calmcoin/penny/internal/service"
	"github.com/calmcoin/penny/internal/session"
	"github.com/calmcoin/penny/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/penny/penny.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initSession opens storage and builds a session over it. The caller owns
// the returned storage and must close it.
func initSession(ctx context.Context) (*session.Session, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	sess, err := session.New(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return sess, store, nil
}
