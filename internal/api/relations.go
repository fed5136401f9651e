package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"inboxd/internal/db"
)

// createRelationRequest is the body for POST /inbox/relations
type createRelationRequest struct {
	SourceNoteID int64  `json:"source_note_id" validate:"required"`
	TargetNoteID int64  `json:"target_note_id" validate:"required"`
	RelationType string `json:"relation_type" validate:"required,oneof=Comment Reference Link"`
}

// addCommentRequest is the body for POST /inbox/notes/{id}/comments
type addCommentRequest struct {
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// addCommentResponse pairs the created note with its Comment edge
type addCommentResponse struct {
	Note     *db.Note     `json:"note"`
	Relation *db.Relation `json:"relation"`
}

// createRelation handles POST /inbox/relations
func (a *API) createRelation(w http.ResponseWriter, r *http.Request) {
	var req createRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		a.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	typ, err := db.ParseRelationType(req.RelationType)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	relation, err := a.store.CreateRelation(r.Context(), req.SourceNoteID, req.TargetNoteID, typ)
	if err != nil {
		a.respondStoreError(w, r, err, "create relation failed")
		return
	}
	a.respondJSON(w, http.StatusCreated, relation)
}

// listRelations handles GET /inbox/notes/{id}/relations
func (a *API) listRelations(w http.ResponseWriter, r *http.Request) {
	id := a.noteID(w, r)
	if id == 0 {
		return
	}

	typ := db.RelationType(r.URL.Query().Get("type"))
	relations, err := a.store.RelationsForNote(r.Context(), id, typ)
	if err != nil {
		a.respondStoreError(w, r, err, "list relations failed")
		return
	}
	if relations == nil {
		relations = []db.Relation{}
	}
	a.respondJSON(w, http.StatusOK, relations)
}

// addComment handles POST /inbox/notes/{id}/comments
func (a *API) addComment(w http.ResponseWriter, r *http.Request) {
	id := a.noteID(w, r)
	if id == 0 {
		return
	}

	var req addCommentRequest
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

	note, relation, err := a.store.AddComment(r.Context(), id, req.Content, req.Tags)
	if err != nil {
		a.respondStoreError(w, r, err, "add comment failed")
		return
	}
	a.respondJSON(w, http.StatusCreated, addCommentResponse{Note: note, Relation: relation})
}

// listComments handles GET /inbox/notes/{id}/comments. The edge is an
// implementation detail of the thread; only the note bodies go out.
func (a *API) listComments(w http.ResponseWriter, r *http.Request) {
	id := a.noteID(w, r)
	if id == 0 {
		return
	}

	comments, err := a.store.CommentsForNote(r.Context(), id)
	if err != nil {
		a.respondStoreError(w, r, err, "list comments failed")
		return
	}

	notes := make([]db.Note, 0, len(comments))
	for _, c := range comments {
		notes = append(notes, c.Note)
	}
	a.respondJSON(w, http.StatusOK, notes)
}
