package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func RegisterLocations(r chi.Router, d Deps) {
	r.Get("/locations", func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query().Get("query")
		if query == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "query_required"})
			return
		}
		matches := d.Client.ResolveLocation(req.Context(), query)
		render.JSON(w, req, map[string]any{"ok": true, "count": len(matches), "matches": matches})
	})
}
