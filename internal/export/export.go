// Package export writes a point-in-time copy of the task store to a SQLite
// file for use by other tools. Nothing in tasklist reads it back.
package export

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/dori/tasklist/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Summary describes what a snapshot contains
type Summary struct {
	Path     string
	Projects int
	Tasks    int
	TakenAt  time.Time
}

// Snapshot is the data written to the file
type Snapshot struct {
	Projects   []model.Project
	LastTaskID int64
	TakenAt    time.Time
}

// Write creates (or replaces the contents of) the SQLite file at path
func Write(ctx context.Context, path string, snap Snapshot) (Summary, error) {
	db, err := open(ctx, path)
	if err != nil {
		return Summary{}, err
	}
	defer db.Close()

	summary := Summary{Path: path, TakenAt: snap.TakenAt}
	err = transaction(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range []string{`DELETE FROM tasks`, `DELETE FROM projects`, `DELETE FROM snapshot`} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		for pos, p := range snap.Projects {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO projects (id, name, position) VALUES (?, ?, ?)
			`, p.ID, p.Name, pos); err != nil {
				return fmt.Errorf("failed to insert project %q: %w", p.Name, err)
			}
			summary.Projects++

			for tpos, t := range p.Tasks {
				var deadline any
				if t.Deadline != nil {
					deadline = t.Deadline.Format(time.RFC3339)
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO tasks (id, project_id, description, done, deadline, position)
					VALUES (?, ?, ?, ?, ?, ?)
				`, t.ID, p.ID, t.Description, t.Done, deadline, tpos); err != nil {
					return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
				}
				summary.Tasks++
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot (id, taken_at, last_task_id) VALUES (1, ?, ?)
		`, snap.TakenAt.Format(time.RFC3339), snap.LastTaskID)
		return err
	})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return summary, nil
}

// open opens the SQLite file and brings its schema up to date
func open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open export database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to export database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// migrate runs the embedded schema migrations
func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "migrations")
}

// transaction executes fn within a transaction
func transaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
