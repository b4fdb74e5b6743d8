package handlers

import (
	"net/http"
	"strconv"

	"github.com/helpbeacon/helpbeacon/internal/api"
	"github.com/helpbeacon/helpbeacon/internal/pagination"
	"github.com/helpbeacon/helpbeacon/internal/service"
)

type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// List serves the paginated statistics listing. Supported query
// parameters: s (term filter), orderby, order, page, per_page.
// Unknown sort columns fall back to last_searched descending.
func (h *StatsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	query := service.StatsQuery{
		Filter:  q.Get("s"),
		OrderBy: service.ParseSortColumn(q.Get("orderby")),
		Order:   service.ParseSortOrder(q.Get("order")),
		Page:    pagination.NewPage(page, perPage),
	}

	result, err := h.stats.List(r.Context(), query)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to list statistics")
		return
	}

	api.Success(w, http.StatusOK, result)
}
