package postgres

import (
	"database/sql"
	"fmt"

	"stockcompare/config"

	_ "github.com/lib/pq"
)

// CreateDatabase connects to the maintenance database and creates dbName if
// it doesn't exist. Each ticker routes to its own database, so this runs once
// per configured ticker.
func CreateDatabase(cfg config.PostgresConfig, env, dbName string) error {
	dsn := cfg.DSNFor(env, "postgres")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	defer db.Close()

	// Check if database exists
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1);`
	if err := db.QueryRow(query, dbName).Scan(&exists); err != nil {
		return fmt.Errorf("check db exists failed: %w", err)
	}

	if exists {
		return nil // DB already exists
	}

	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", dbName))
	if err != nil {
		return fmt.Errorf("create db failed: %w", err)
	}

	return nil
}
