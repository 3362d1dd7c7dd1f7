package httpapi

import (
	"net/http"

	"tunecrate/internal/searchagg"
)

// handleSearch runs the unified fan-out. Every query parameter except "q" is
// treated as route context and folded into song hrefs, so the caller's UI can
// reopen the same view with a detail overlay.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("q")

	routeCtx := query
	routeCtx.Del("q")

	ctx, cancel := s.requestContext(r)
	defer cancel()

	items, err := s.search.FilteredItems(ctx, name, routeCtx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Items []searchagg.FilterItem `json:"items"`
	}{Items: items})
}
