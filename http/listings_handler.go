package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func RegisterListings(r chi.Router, d Deps) {
	r.Get("/listings/{listingID}", func(w http.ResponseWriter, req *http.Request) {
		listingID := chi.URLParam(req, "listingID")
		if listingID == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "listing_id_required"})
			return
		}
		detail := d.Client.Detail(req.Context(), listingID)
		if detail == nil {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, map[string]any{"error": "not_found", "listing": listingID})
			return
		}
		render.JSON(w, req, map[string]any{"ok": true, "listing": detail})
	})
}
