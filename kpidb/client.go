package kpidb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"scorecard.bizops.dev/internal/appconf"
)

//go:embed schema.sql
var ddl string

// Client is the persistent store behind the KPI dataset.
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the database and applies the schema.
func NewClient(config Config) (*Client, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, errors.New("test database must use in-memory storage")
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// every connection to ":memory:" is a separate database
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := performDatabaseMigration(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	level := slog.LevelWarn
	if config.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("component", "kpidb"))

	return &Client{config: config, DB: db, logger: logger}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}
