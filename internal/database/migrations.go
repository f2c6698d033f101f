package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Schema migrations, applied in order on startup
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_track_points",
		SQL: `
			CREATE TABLE IF NOT EXISTS track_points (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				group_id TEXT NOT NULL,
				data_time INTEGER NOT NULL,
				longitude REAL NOT NULL,
				latitude REAL NOT NULL,
				heading REAL DEFAULT 0,
				distance REAL DEFAULT 0,
				easting REAL DEFAULT 0,
				northing REAL DEFAULT 0,
				utm_zone INTEGER DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_track_points_group_time
				ON track_points (group_id, data_time);
		`,
	},
	{
		Version: 2,
		Name:    "create_home_range_estimates",
		SQL: `
			CREATE TABLE IF NOT EXISTS home_range_estimates (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				group_id TEXT NOT NULL,
				estimator TEXT NOT NULL,
				percent REAL NOT NULL,
				area REAL NOT NULL,
				unit TEXT NOT NULL,
				point_count INTEGER NOT NULL,
				bandwidth REAL DEFAULT 0,
				vertices_json TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_estimates_group
				ON home_range_estimates (group_id, estimator);
		`,
	},
	{
		Version: 3,
		Name:    "create_analysis_tasks",
		SQL: `
			CREATE TABLE IF NOT EXISTS analysis_tasks (
				id TEXT PRIMARY KEY,
				task_type TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				progress_percent INTEGER NOT NULL DEFAULT 0,
				params_json TEXT DEFAULT '',
				result_summary TEXT DEFAULT '',
				error_message TEXT DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
}

// Migrate applies every pending migration in version order
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		log.Printf("[Migrations] Applied %d_%s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
