package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/john-ds-mc/lettie-cli/rightmove"
)

// Deps is shared by every handler: the one origin client. Each request is an
// independent stateless extraction; nothing is cached between calls.
type Deps struct {
	Client *rightmove.Client
}

func RegisterSearch(r chi.Router, d Deps) {
	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()

		locationID := q.Get("location")
		displayName := ""
		if locationID == "" {
			area := q.Get("area")
			if area == "" {
				render.Status(req, http.StatusBadRequest)
				render.JSON(w, req, map[string]any{"error": "area_required", "detail": "area or location is required"})
				return
			}
			matches := d.Client.ResolveLocation(req.Context(), area)
			if len(matches) == 0 {
				render.Status(req, http.StatusNotFound)
				render.JSON(w, req, map[string]any{"error": "unknown_area", "area": area})
				return
			}
			locationID = matches[0].LocationIdentifier
			displayName = matches[0].DisplayName
		}

		channel := rightmove.ChannelRent
		if q.Get("type") == "buy" {
			channel = rightmove.ChannelBuy
		}
		pageSize := queryInt(q.Get("limit"), 24)
		page := queryInt(q.Get("page"), 1)
		if page < 1 {
			page = 1
		}

		result := d.Client.Search(req.Context(), rightmove.SearchOptions{
			LocationIdentifier: locationID,
			Channel:            channel,
			MinPrice:           queryInt(q.Get("min-price"), 0),
			MaxPrice:           queryInt(q.Get("max-price"), 0),
			MinBedrooms:        queryInt(q.Get("beds"), 0),
			MaxBedrooms:        queryInt(q.Get("beds"), 0),
			SortType:           rightmove.ResolveSortType(q.Get("sort")),
			Index:              (page - 1) * pageSize,
			PageSize:           pageSize,
		})

		render.JSON(w, req, map[string]any{
			"ok":       true,
			"location": displayName,
			"count":    len(result.Results),
			"total":    result.Total,
			"results":  result.Results,
		})
	})
}

func queryInt(v string, def int) int {
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
