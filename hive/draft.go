package hive

import (
	"fmt"
	"time"
)

// Draft is an unpublished post body being edited locally. Each save creates
// a new DraftRevision; the draft itself only tracks identity.
type Draft struct {
	ID    int64
	Title string
	*DraftRevision
}

// DraftRevision is one saved state of a draft.
type DraftRevision struct {
	ID         int64
	DraftID    int64
	Markdown   string
	HTML       string
	Created    time.Time
	PreviousID int64
}

func NewDraft(title, markdown string) *Draft {
	return &Draft{
		Title:         title,
		DraftRevision: &DraftRevision{Markdown: markdown},
	}
}

func (d *Draft) String() string {
	return fmt.Sprintf("draft %d %q (rev %d)", d.ID, d.Title, d.DraftRevision.ID)
}
