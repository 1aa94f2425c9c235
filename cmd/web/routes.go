package main

import (
	"errors"
	"net/http"

	"github.com/AdamBeresnev/cue-stats/internal/chart"
	"github.com/AdamBeresnev/cue-stats/internal/export"
	"github.com/AdamBeresnev/cue-stats/internal/httputil"
	"github.com/AdamBeresnev/cue-stats/internal/match"
	"github.com/AdamBeresnev/cue-stats/internal/service"
	"github.com/AdamBeresnev/cue-stats/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const flashKey = "flash"

func newRouter(sessionManager *scs.SessionManager, matchService *service.MatchService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		opts, err := matchService.FormOptions(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load form options", err)
			return
		}
		views.Render(w, r, views.Index(opts))
	})

	r.Post("/submit", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}

		sub, err := match.ParseSubmission(r.PostForm)
		if err != nil {
			httputil.BadRequest(w, err.Error(), err)
			return
		}

		if _, err := matchService.Submit(r.Context(), sub); err != nil {
			if errors.Is(err, match.ErrInvalidSubmission) {
				httputil.BadRequest(w, err.Error(), err)
				return
			}
			httputil.InternalServerError(w, "Failed to save match", err)
			return
		}

		sessionManager.Put(r.Context(), flashKey, "Match saved")
		http.Redirect(w, r, "/matches", http.StatusSeeOther)
	})

	r.Get("/matches", func(w http.ResponseWriter, r *http.Request) {
		matches, err := matchService.ListMatches(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to list matches", err)
			return
		}
		flash := sessionManager.PopString(r.Context(), flashKey)
		views.Render(w, r, views.Matches(matches, flash))
	})

	r.Get("/download", func(w http.ResponseWriter, r *http.Request) {
		body, err := matchService.ExportMatchesCSV(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to export matches", err)
			return
		}
		httputil.WriteFile(w, export.ContentType, export.MatchesFilename, body)
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		body, err := matchService.RenderStatsChart(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to render stats chart", err)
			return
		}
		httputil.WriteFile(w, chart.ContentType, "", body)
	})

	r.Get("/stats.csv", func(w http.ResponseWriter, r *http.Request) {
		body, err := matchService.ExportStatsCSV(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to export stats", err)
			return
		}
		httputil.WriteFile(w, export.ContentType, export.StatsFilename, body)
	})

	return r
}
