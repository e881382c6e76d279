package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/john-ds-mc/lettie-cli/http"
	"github.com/john-ds-mc/lettie-cli/rightmove"
)

func BuildRouter(client *rightmove.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(60, 1*time.Minute)) // the origin rate-limits us; cap our own callers first
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	deps := httpapi.Deps{Client: client}
	httpapi.RegisterLocations(r, deps)
	httpapi.RegisterSearch(r, deps)
	httpapi.RegisterListings(r, deps)

	return r
}
