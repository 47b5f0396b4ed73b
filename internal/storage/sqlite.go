// Package storage implements the sqlite-backed draft store.
package storage

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// PreparedStatements holds the prepared SQL statements used for the hot
// query paths. Exported to allow reuse in test utilities.
type PreparedStatements struct {
	SelectDraftByLatestRevisionStmt *sqlx.Stmt
	SelectDraftRevisionStmt         *sqlx.Stmt
	SelectRevisionHistoryStmt       *sqlx.Stmt
}

// InitializeStatements prepares the statements needed for draft queries.
// Exported to allow reuse in test utilities.
func InitializeStatements(conn *sqlx.DB) (*PreparedStatements, error) {
	stmts := &PreparedStatements{}
	var err error

	q := `SELECT Draft.id, Draft.title, DraftRevision.id AS revision_id, markdown, html, created, previous_id
			FROM Draft
			JOIN DraftRevision ON Draft.id = DraftRevision.draft_id
			WHERE Draft.id = ?`

	stmts.SelectDraftByLatestRevisionStmt, err = conn.Preparex(q + ` ORDER BY DraftRevision.id DESC LIMIT 1`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare latest revision query")
	}

	stmts.SelectDraftRevisionStmt, err = conn.Preparex(
		`SELECT id, draft_id, markdown, html, created, previous_id
			FROM DraftRevision WHERE draft_id = ? AND id = ?`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare revision query")
	}

	stmts.SelectRevisionHistoryStmt, err = conn.Preparex(
		`SELECT id, draft_id, created, previous_id, length(markdown) AS size
			FROM DraftRevision WHERE draft_id = ? ORDER BY id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare history query")
	}

	return stmts, nil
}

// sqliteDb is the draft store. Draft and revision operations live in
// draft_repo.go.
type sqliteDb struct {
	*PreparedStatements
	conn *sqlx.DB
}

// Open opens the database file and applies migrations.
func Open(dbfile string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("sqlite", dbfile)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := RunMigrations(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Init initializes the storage layer with an existing database connection.
// The connection should already have migrations applied.
func Init(conn *sqlx.DB) (*sqliteDb, error) {
	stmts, err := InitializeStatements(conn)
	if err != nil {
		return nil, err
	}
	return &sqliteDb{PreparedStatements: stmts, conn: conn}, nil
}
