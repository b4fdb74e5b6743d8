package handlers

import (
	"log"
	"net/http"

	"github.com/helpbeacon/helpbeacon/internal/api"
	"github.com/helpbeacon/helpbeacon/internal/api/middleware"
	"github.com/helpbeacon/helpbeacon/internal/service"
)

type SearchHandler struct {
	search *service.SearchService
}

func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Searchbox returns the search box state: whether an action URL is
// configured, the template itself, the session's log token and the
// setup notice flag.
func (h *SearchHandler) Searchbox(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.search.Searchbox(r.Context(), session)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to load searchbox")
		return
	}

	api.Success(w, http.StatusOK, view)
}

type ResolveRequest struct {
	Term string `json:"term"`
}

type ResolveResponse struct {
	URL string `json:"url"`
}

// Resolve builds the destination URL for a search term without
// logging it. Clients that cannot resolve locally use this before
// opening the help site.
func (h *SearchHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		api.Error(w, http.StatusBadRequest, "term is required")
		return
	}

	url, err := h.search.Resolve(r.Context(), term)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ResolveResponse{URL: url})
}

// Log records a search event. Clients fire this as a beacon right
// before navigating away, so the response is always 204 with an empty
// body, whatever the outcome. Failures are logged server-side only.
func (h *SearchHandler) Log(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusNoContent)

	session := middleware.GetSession(r.Context())
	if session == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("search_log_parse_error: %v", err)
		return
	}

	_, err := h.search.Record(r.Context(), service.RecordInput{
		Session:   session,
		LogToken:  r.PostFormValue("security"),
		Term:      r.PostFormValue("search"),
		SearchURL: r.PostFormValue("search_url"),
	})
	if err != nil {
		log.Printf("search_log_record_error: request_id=%s err=%v", middleware.GetRequestID(r.Context()), err)
	}
}
