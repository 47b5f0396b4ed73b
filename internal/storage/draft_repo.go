package storage

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hiveblocks/hiverender/hive"
)

// draftResult is used for scanning draft queries that join the latest
// revision.
type draftResult struct {
	ID         int64
	Title      string
	RevisionID int64     `db:"revision_id"`
	Markdown   string
	HTML       string    `db:"html"`
	Created    time.Time
	PreviousID int64     `db:"previous_id"`
}

func (r *draftResult) toDraft() *hive.Draft {
	return &hive.Draft{
		ID:    r.ID,
		Title: r.Title,
		DraftRevision: &hive.DraftRevision{
			ID:         r.RevisionID,
			DraftID:    r.ID,
			Markdown:   r.Markdown,
			HTML:       r.HTML,
			Created:    r.Created,
			PreviousID: r.PreviousID,
		},
	}
}

func (db *sqliteDb) SelectDraft(id int64) (*hive.Draft, error) {
	result := &draftResult{}
	err := db.SelectDraftByLatestRevisionStmt.Get(result, id)
	if err == sql.ErrNoRows {
		return nil, hive.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return result.toDraft(), nil
}

func (db *sqliteDb) SelectDraftRevision(draftID, revisionID int64) (*hive.DraftRevision, error) {
	rev := &hive.DraftRevision{}
	x := &struct {
		ID         int64
		DraftID    int64  `db:"draft_id"`
		Markdown   string
		HTML       string `db:"html"`
		Created    time.Time
		PreviousID int64 `db:"previous_id"`
	}{}
	err := db.SelectDraftRevisionStmt.Get(x, draftID, revisionID)
	if err == sql.ErrNoRows {
		return nil, hive.ErrRevisionNotFound
	}
	if err != nil {
		return nil, err
	}
	rev.ID = x.ID
	rev.DraftID = x.DraftID
	rev.Markdown = x.Markdown
	rev.HTML = x.HTML
	rev.Created = x.Created
	rev.PreviousID = x.PreviousID
	return rev, nil
}

func (db *sqliteDb) SelectRevisionHistory(draftID int64) ([]*hive.DraftRevision, error) {
	rows, err := db.SelectRevisionHistoryStmt.Queryx(draftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := struct {
		ID         int64
		DraftID    int64 `db:"draft_id"`
		Created    time.Time
		PreviousID int64 `db:"previous_id"`
		Size       int64 `db:"size"`
	}{}
	revisions := make([]*hive.DraftRevision, 0)
	for rows.Next() {
		if err := rows.StructScan(&result); err != nil {
			return nil, err
		}
		revisions = append(revisions, &hive.DraftRevision{
			ID:         result.ID,
			DraftID:    result.DraftID,
			Created:    result.Created,
			PreviousID: result.PreviousID,
		})
	}
	return revisions, rows.Err()
}

func (db *sqliteDb) SelectDraftIDs() ([]int64, error) {
	ids := make([]int64, 0)
	if err := db.conn.Select(&ids, `SELECT id FROM Draft ORDER BY id`); err != nil {
		return nil, err
	}
	return ids, nil
}

func (db *sqliteDb) InsertDraft(title, markdown, html string) (*hive.Draft, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return nil, errors.Wrap(err, "begin insert draft")
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO Draft (title) VALUES (?)`, title)
	if err != nil {
		return nil, errors.Wrap(err, "insert draft")
	}
	draftID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	created := time.Now().UTC()
	res, err = tx.Exec(
		`INSERT INTO DraftRevision (draft_id, markdown, html, created, previous_id) VALUES (?, ?, ?, ?, 0)`,
		draftID, markdown, html, created)
	if err != nil {
		return nil, errors.Wrap(err, "insert first revision")
	}
	revisionID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &hive.Draft{
		ID:    draftID,
		Title: title,
		DraftRevision: &hive.DraftRevision{
			ID:       revisionID,
			DraftID:  draftID,
			Markdown: markdown,
			HTML:     html,
			Created:  created,
		},
	}, nil
}

func (db *sqliteDb) InsertRevision(draftID int64, markdown, html string) (*hive.DraftRevision, error) {
	prev, err := db.SelectDraft(draftID)
	if err != nil {
		return nil, err
	}

	created := time.Now().UTC()
	res, err := db.conn.Exec(
		`INSERT INTO DraftRevision (draft_id, markdown, html, created, previous_id) VALUES (?, ?, ?, ?, ?)`,
		draftID, markdown, html, created, prev.DraftRevision.ID)
	if err != nil {
		return nil, errors.Wrap(err, "insert revision")
	}
	revisionID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &hive.DraftRevision{
		ID:         revisionID,
		DraftID:    draftID,
		Markdown:   markdown,
		HTML:       html,
		Created:    created,
		PreviousID: prev.DraftRevision.ID,
	}, nil
}

func (db *sqliteDb) UpdateRevisionHTML(revisionID int64, html string) error {
	res, err := db.conn.Exec(
		`UPDATE DraftRevision SET html = ?, render_status = 'rendered' WHERE id = ?`,
		html, revisionID)
	if err != nil {
		return errors.Wrap(err, "update revision html")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return hive.ErrRevisionNotFound
	}
	return nil
}

func (db *sqliteDb) DeleteDraft(id int64) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin delete draft")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM DraftRevision WHERE draft_id = ?`, id); err != nil {
		return errors.Wrap(err, "delete revisions")
	}
	res, err := tx.Exec(`DELETE FROM Draft WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete draft")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return hive.ErrDraftNotFound
	}
	return tx.Commit()
}
