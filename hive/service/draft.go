package service

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/hiveblocks/hiverender/hive"
	"github.com/hiveblocks/hiverender/internal/renderqueue"
)

// DraftStore is the persistence interface the draft service depends on.
type DraftStore interface {
	SelectDraft(id int64) (*hive.Draft, error)
	SelectDraftRevision(draftID, revisionID int64) (*hive.DraftRevision, error)
	SelectRevisionHistory(draftID int64) ([]*hive.DraftRevision, error)
	SelectDraftIDs() ([]int64, error)
	InsertDraft(title, markdown, html string) (*hive.Draft, error)
	InsertRevision(draftID int64, markdown, html string) (*hive.DraftRevision, error)
	UpdateRevisionHTML(revisionID int64, html string) error
	DeleteDraft(id int64) error
}

// DraftService manages draft lifecycle: saves create revisions, rendering
// happens through the render queue, and revision pairs can be diffed.
type DraftService interface {
	Create(title, markdown string) (*hive.Draft, error)
	Get(id int64) (*hive.Draft, error)
	Save(id int64, markdown string) (*hive.DraftRevision, error)
	History(id int64) ([]*hive.DraftRevision, error)
	Diff(draftID, fromRevision, toRevision int64) (string, error)
	Delete(id int64) error
	RerenderAll(ctx context.Context) (int, error)
}

type draftService struct {
	store     DraftStore
	rendering RenderingService
	queue     *renderqueue.Queue
}

// NewDraftService creates a new DraftService.
func NewDraftService(store DraftStore, rendering RenderingService, queue *renderqueue.Queue) DraftService {
	return &draftService{store: store, rendering: rendering, queue: queue}
}

// Create renders the body synchronously so the first revision is stored
// complete.
func (s *draftService) Create(title, markdown string) (*hive.Draft, error) {
	if markdown == "" {
		return nil, hive.ErrEmptyDraft
	}
	rendered, err := s.rendering.Render(markdown)
	if err != nil {
		return nil, err
	}
	return s.store.InsertDraft(title, markdown, rendered)
}

func (s *draftService) Get(id int64) (*hive.Draft, error) {
	return s.store.SelectDraft(id)
}

// Save stores a new revision immediately and hands rendering to the queue
// at interactive priority. The revision's HTML is filled in when the job
// completes.
func (s *draftService) Save(id int64, markdown string) (*hive.DraftRevision, error) {
	if markdown == "" {
		return nil, hive.ErrEmptyDraft
	}

	rev, err := s.store.InsertRevision(id, markdown, "")
	if err != nil {
		return nil, err
	}

	s.enqueue(rev, renderqueue.TierInteractive)
	return rev, nil
}

func (s *draftService) History(id int64) ([]*hive.DraftRevision, error) {
	if _, err := s.store.SelectDraft(id); err != nil {
		return nil, err
	}
	return s.store.SelectRevisionHistory(id)
}

// Diff renders the change between two revisions of a draft as inline
// ins/del markup over escaped text.
func (s *draftService) Diff(draftID, fromRevision, toRevision int64) (string, error) {
	from, err := s.store.SelectDraftRevision(draftID, fromRevision)
	if err != nil {
		return "", err
	}
	to, err := s.store.SelectDraftRevision(draftID, toRevision)
	if err != nil {
		return "", err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from.Markdown, to.Markdown, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var buff bytes.Buffer
	for _, diff := range diffs {
		text := html.EscapeString(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			_, _ = buff.WriteString(`<ins style="background:#e6ffe6;">`)
			_, _ = buff.WriteString(text)
			_, _ = buff.WriteString(`</ins>`)
		case diffmatchpatch.DiffDelete:
			_, _ = buff.WriteString(`<del style="background:#ffe6e6;">`)
			_, _ = buff.WriteString(text)
			_, _ = buff.WriteString(`</del>`)
		case diffmatchpatch.DiffEqual:
			_, _ = buff.WriteString(`<span>`)
			_, _ = buff.WriteString(text)
			_, _ = buff.WriteString(`</span>`)
		}
	}

	return buff.String(), nil
}

func (s *draftService) Delete(id int64) error {
	return s.store.DeleteDraft(id)
}

// RerenderAll queues every draft's latest revision at background priority,
// for use after a rendering profile change. Returns the number of drafts
// queued.
func (s *draftService) RerenderAll(ctx context.Context) (int, error) {
	ids, err := s.store.SelectDraftIDs()
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return queued, ctx.Err()
		default:
		}

		draft, err := s.store.SelectDraft(id)
		if err != nil {
			slog.Warn("skipping draft during rerender", "draft", id, "error", err)
			continue
		}
		s.enqueue(draft.DraftRevision, renderqueue.TierBackground)
		queued++
	}
	return queued, nil
}

// enqueue submits a render job and persists its HTML when the result
// arrives.
func (s *draftService) enqueue(rev *hive.DraftRevision, tier renderqueue.Tier) {
	waitCh := make(chan renderqueue.Result, 1)
	job := renderqueue.Job{
		DraftID:     rev.DraftID,
		RevisionID:  rev.ID,
		Markdown:    rev.Markdown,
		Tier:        tier,
		SubmittedAt: time.Now(),
	}

	if err := s.queue.Submit(context.Background(), job, waitCh); err != nil {
		slog.Warn("render queue rejected job", "draft", rev.DraftID, "error", err)
		return
	}

	go func() {
		result := <-waitCh
		if result.Err != nil {
			slog.Warn("render job failed", "draft", rev.DraftID, "revision", result.RevisionID, "error", result.Err)
			return
		}
		if err := s.store.UpdateRevisionHTML(result.RevisionID, result.HTML); err != nil {
			slog.Warn("failed to store rendered html", "revision", result.RevisionID, "error", err)
		}
	}()
}
