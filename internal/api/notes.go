package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"inboxd/internal/db"
)

const defaultListLimit = 50

// createNoteRequest is the body for POST /inbox/notes
type createNoteRequest struct {
	Content   string     `json:"content" validate:"required"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// updateNoteRequest is the body for PUT /inbox/notes/{id}. Content and tags
// replace the stored record wholesale; there is no partial patch.
type updateNoteRequest struct {
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// noteID pulls the {id} route parameter. A zero return means the response
// was already written.
func (a *API) noteID(w http.ResponseWriter, r *http.Request) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		a.respondError(w, http.StatusBadRequest, "invalid note id")
		return 0
	}
	return id
}

// createNote handles POST /inbox/notes
func (a *API) createNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		a.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		a.respondError(w, http.StatusBadRequest, "content cannot be empty")
		return
	}

	opts := db.CreateNoteOpts{Tags: req.Tags}
	if req.CreatedAt != nil {
		opts.CreatedAt = *req.CreatedAt
	}

	note, err := a.store.CreateNote(r.Context(), req.Content, opts)
	if err != nil {
		a.respondStoreError(w, r, err, "create note failed")
		return
	}
	a.respondJSON(w, http.StatusCreated, note)
}

// getNote handles GET /inbox/notes/{id}
func (a *API) getNote(w http.ResponseWriter, r *http.Request) {
	id := a.noteID(w, r)
	if id == 0 {
		return
	}

	note, err := a.store.GetNote(r.Context(), id)
	if err != nil {
		a.respondStoreError(w, r, err, "get note failed")
		return
	}
	a.respondJSON(w, http.StatusOK, note)
}

// listNotes handles GET /inbox/notes
func (a *API) listNotes(w http.ResponseWriter, r *http.Request) {
	filter := db.ListNotesFilter{Limit: defaultListLimit, Tag: r.URL.Query().Get("tag")}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			a.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("created_after"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			a.respondError(w, http.StatusBadRequest, "created_after must be an RFC3339 timestamp")
			return
		}
		filter.CreatedAfter = ts
	}
	if v := r.URL.Query().Get("created_before"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			a.respondError(w, http.StatusBadRequest, "created_before must be an RFC3339 timestamp")
			return
		}
		filter.CreatedBefore = ts
	}

	notes, err := a.store.ListNotes(r.Context(), filter)
	if err != nil {
		a.respondStoreError(w, r, err, "list notes failed")
		return
	}
	if notes == nil {
		notes = []db.Note{}
	}
	a.respondJSON(w, http.StatusOK, notes)
}

// updateNote handles PUT /inbox/notes/{id}
func (a *API) updateNote(w http.ResponseWriter, r *http.Request) {
	id := a.noteID(w, r)
	if id == 0 {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		a.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		a.respondError(w, http.StatusBadRequest, "content cannot be empty")
		return
	}

	note, err := a.store.UpdateNote(r.Context(), id, req.Content, req.Tags)
	if err != nil {
		a.respondStoreError(w, r, err, "update note failed")
		return
	}
	a.respondJSON(w, http.StatusOK, note)
}

// deleteNote handles DELETE /inbox/notes/{id}
func (a *API) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := a.noteID(w, r)
	if id == 0 {
		return
	}

	deleted, err := a.store.DeleteNote(r.Context(), id)
	if err != nil {
		a.respondStoreError(w, r, err, "delete note failed")
		return
	}
	if !deleted {
		a.respondError(w, http.StatusNotFound, "note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
