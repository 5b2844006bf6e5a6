package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			project_id   TEXT,
			assignee_id  TEXT,
			created_by   TEXT NOT NULL,
			status       TEXT NOT NULL,
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL,
			due_date     TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS projects (
			id           TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			branch_id    TEXT,
			name         TEXT NOT NULL,
			status       TEXT NOT NULL,
			created_at   TEXT NOT NULL,
			due_date     TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id           TEXT NOT NULL,
			workspace_id TEXT NOT NULL,
			branch_id    TEXT,
			region_id    TEXT,
			name         TEXT NOT NULL,
			role         TEXT NOT NULL,
			PRIMARY KEY (id, workspace_id)
		)`,

		`CREATE TABLE IF NOT EXISTS branches (
			id           TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			name         TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS workspaces (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			workspace_type      TEXT NOT NULL,
			parent_workspace_id TEXT,
			branch_id           TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS replica_meta (
			workspace_id TEXT PRIMARY KEY,
			synced_at    TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_tasks_workspace ON tasks(workspace_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(workspace_id, assignee_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_creator ON tasks(workspace_id, created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_workspace ON projects(workspace_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_workspace ON users(workspace_id)`,
		`CREATE INDEX IF NOT EXISTS idx_branches_workspace ON branches(workspace_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
