package storage

import (
	_ "embed"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// RunMigrations executes the database schema and any necessary migrations.
// Idempotent and safe to run multiple times.
func RunMigrations(db *sqlx.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return errors.Wrap(err, "apply schema")
	}

	// Migration: add render_status to DraftRevision if missing, so the
	// render queue can distinguish pending from rendered revisions.
	var colExists int
	err := db.Get(&colExists, `SELECT COUNT(*) FROM pragma_table_info('DraftRevision') WHERE name = 'render_status'`)
	if err != nil {
		return errors.Wrap(err, "inspect DraftRevision columns")
	}
	if colExists == 0 {
		_, err = db.Exec(`ALTER TABLE DraftRevision ADD COLUMN render_status TEXT NOT NULL DEFAULT 'rendered'`)
		if err != nil {
			return errors.Wrap(err, "add render_status column")
		}
	}

	return nil
}
