package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hiveblocks/hiverender/hive"
)

type previewRequest struct {
	Markdown string `json:"markdown"`
	Author   string `json:"author,omitempty"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

// PreviewHandler renders a markdown body without persisting anything. The
// optional author becomes the default emoji owner for the call.
func (a *App) PreviewHandler(rw http.ResponseWriter, req *http.Request) {
	var body previewRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(rw, http.StatusBadRequest, "invalid request body")
		return
	}

	rendered, err := a.Rendering.PreviewMarkdown(body.Markdown, hive.RenderContext{
		DefaultEmojiOwner: body.Author,
	})
	if err != nil {
		writeError(rw, http.StatusInternalServerError, "render failed")
		return
	}

	writeJSON(rw, http.StatusOK, previewResponse{HTML: rendered})
}

type draftRequest struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

type draftResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title,omitempty"`
	RevisionID int64  `json:"revision_id"`
	Markdown   string `json:"markdown,omitempty"`
	HTML       string `json:"html,omitempty"`
}

func (a *App) CreateDraftHandler(rw http.ResponseWriter, req *http.Request) {
	var body draftRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(rw, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := a.Drafts.Create(body.Title, body.Markdown)
	if errors.Is(err, hive.ErrEmptyDraft) {
		writeError(rw, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		serverError(rw, "create draft", err)
		return
	}

	writeJSON(rw, http.StatusCreated, draftJSON(draft))
}

func (a *App) GetDraftHandler(rw http.ResponseWriter, req *http.Request) {
	id, ok := draftID(rw, req)
	if !ok {
		return
	}

	draft, err := a.Drafts.Get(id)
	if errors.Is(err, hive.ErrDraftNotFound) {
		writeError(rw, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		serverError(rw, "get draft", err)
		return
	}

	writeJSON(rw, http.StatusOK, draftJSON(draft))
}

func (a *App) SaveDraftHandler(rw http.ResponseWriter, req *http.Request) {
	id, ok := draftID(rw, req)
	if !ok {
		return
	}

	var body draftRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(rw, http.StatusBadRequest, "invalid request body")
		return
	}

	rev, err := a.Drafts.Save(id, body.Markdown)
	switch {
	case errors.Is(err, hive.ErrDraftNotFound):
		writeError(rw, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, hive.ErrEmptyDraft):
		writeError(rw, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		serverError(rw, "save draft", err)
		return
	}

	writeJSON(rw, http.StatusAccepted, draftResponse{
		ID:         rev.DraftID,
		RevisionID: rev.ID,
	})
}

type revisionResponse struct {
	ID         int64  `json:"id"`
	Created    string `json:"created"`
	PreviousID int64  `json:"previous_id"`
}

func (a *App) DraftHistoryHandler(rw http.ResponseWriter, req *http.Request) {
	id, ok := draftID(rw, req)
	if !ok {
		return
	}

	history, err := a.Drafts.History(id)
	if errors.Is(err, hive.ErrDraftNotFound) {
		writeError(rw, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		serverError(rw, "draft history", err)
		return
	}

	out := make([]revisionResponse, 0, len(history))
	for _, rev := range history {
		out = append(out, revisionResponse{
			ID:         rev.ID,
			Created:    rev.Created.Format(time.RFC3339),
			PreviousID: rev.PreviousID,
		})
	}
	writeJSON(rw, http.StatusOK, out)
}

func (a *App) DraftDiffHandler(rw http.ResponseWriter, req *http.Request) {
	id, ok := draftID(rw, req)
	if !ok {
		return
	}

	from, err1 := strconv.ParseInt(req.URL.Query().Get("from"), 10, 64)
	to, err2 := strconv.ParseInt(req.URL.Query().Get("to"), 10, 64)
	if err1 != nil || err2 != nil {
		writeError(rw, http.StatusBadRequest, "from and to revision IDs are required")
		return
	}

	diff, err := a.Drafts.Diff(id, from, to)
	if errors.Is(err, hive.ErrRevisionNotFound) || errors.Is(err, hive.ErrDraftNotFound) {
		writeError(rw, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		serverError(rw, "draft diff", err)
		return
	}

	writeJSON(rw, http.StatusOK, map[string]string{"diff": diff})
}

func (a *App) DeleteDraftHandler(rw http.ResponseWriter, req *http.Request) {
	id, ok := draftID(rw, req)
	if !ok {
		return
	}

	err := a.Drafts.Delete(id)
	if errors.Is(err, hive.ErrDraftNotFound) {
		writeError(rw, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		serverError(rw, "delete draft", err)
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

func (a *App) RerenderAllHandler(rw http.ResponseWriter, req *http.Request) {
	queued, err := a.Drafts.RerenderAll(req.Context())
	if err != nil {
		serverError(rw, "rerender all", err)
		return
	}
	writeJSON(rw, http.StatusAccepted, map[string]int{"queued": queued})
}

func draftID(rw http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		writeError(rw, http.StatusBadRequest, "invalid draft id")
		return 0, false
	}
	return id, true
}

func draftJSON(draft *hive.Draft) draftResponse {
	return draftResponse{
		ID:         draft.ID,
		Title:      draft.Title,
		RevisionID: draft.DraftRevision.ID,
		Markdown:   draft.DraftRevision.Markdown,
		HTML:       draft.DraftRevision.HTML,
	}
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(rw http.ResponseWriter, status int, msg string) {
	writeJSON(rw, status, map[string]string{"error": msg})
}

func serverError(rw http.ResponseWriter, op string, err error) {
	slog.Error("handler error", "op", op, "error", err)
	writeError(rw, http.StatusInternalServerError, "internal error")
}
