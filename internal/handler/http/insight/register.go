package insight

import (
	"net/http"
)

// Register registers the insight routes with the given mux.
// Each middleware in wrap is applied to the route, first listed outermost.
func Register(mux *http.ServeMux, svc Refresher, wrap ...func(http.Handler) http.Handler) {
	var h http.Handler = GetHandler{Svc: svc}
	for i := len(wrap) - 1; i >= 0; i-- {
		h = wrap[i](h)
	}
	mux.Handle("GET /insights", h)
}
