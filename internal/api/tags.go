package api

import (
	"net/http"

	"inboxd/internal/db"
)

// listTags handles GET /inbox/tags
func (a *API) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.store.AllTags(r.Context())
	if err != nil {
		a.respondStoreError(w, r, err, "list tags failed")
		return
	}
	if tags == nil {
		tags = []string{}
	}
	a.respondJSON(w, http.StatusOK, tags)
}

// detailedTags handles GET /inbox/tags/detailed
func (a *API) detailedTags(w http.ResponseWriter, r *http.Request) {
	stats, err := a.store.DetailedTags(r.Context())
	if err != nil {
		a.respondStoreError(w, r, err, "detailed tags failed")
		return
	}
	if stats == nil {
		stats = []db.TagStat{}
	}
	a.respondJSON(w, http.StatusOK, stats)
}
