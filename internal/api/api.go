package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"inboxd/internal/db"
)

// API serves the inbox HTTP surface over the note store.
type API struct {
	store  *db.DB
	logger *zap.Logger
}

// New creates a new API instance
func New(store *db.DB, logger *zap.Logger) *API {
	return &API{store: store, logger: logger}
}

// Router configures all routes and middleware
func (a *API) Router(allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger(a.logger))
	router.Use(chimiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", a.health)

	router.Route("/inbox", func(r chi.Router) {
		r.Get("/", a.welcome)

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", a.createNote)
			r.Get("/", a.listNotes)
			r.Get("/{id}", a.getNote)
			r.Put("/{id}", a.updateNote)
			r.Delete("/{id}", a.deleteNote)
			r.Get("/{id}/comments", a.listComments)
			r.Post("/{id}/comments", a.addComment)
			r.Get("/{id}/relations", a.listRelations)
		})

		r.Get("/tags", a.listTags)
		r.Get("/tags/detailed", a.detailedTags)
		r.Post("/relations", a.createRelation)
	})

	return router
}

// health handles GET /health
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// welcome handles GET /inbox/
func (a *API) welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "📥 Welcome to the Inbox server")
}
