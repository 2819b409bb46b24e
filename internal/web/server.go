package web

import (
	"net/http"

	"fairway-app/internal/store"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store     store.Store
	templates *Templates
}

func NewServer(store store.Store, templates *Templates) *Server {
	return &Server{store: store, templates: templates}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", s.handleHome)
	r.Get("/players", s.handlePlayers)
	r.Post("/players", s.handlePlayerCreate)
	r.Get("/players/{playerID}", s.handlePlayerShow)
	r.Post("/players/{playerID}", s.handlePlayerUpdate)
	r.Post("/players/{playerID}/delete", s.handlePlayerDelete)
	r.Get("/seasons", s.handleSeasons)
	r.Post("/seasons", s.handleSeasonCreate)
	r.Get("/seasons/{seasonID}", s.handleSeasonShow)
	r.Post("/seasons/{seasonID}/complete", s.handleSeasonComplete)
	r.Post("/seasons/{seasonID}/delete", s.handleSeasonDelete)
	r.Get("/courses", s.handleCourses)
	r.Post("/courses", s.handleCourseCreate)
	r.Get("/courses/{courseID}", s.handleCourseShow)
	r.Post("/courses/{courseID}", s.handleCourseUpdate)
	r.Post("/courses/{courseID}/delete", s.handleCourseDelete)
	r.Get("/rounds/new", s.handleRoundNew)
	r.Post("/rounds", s.handleRoundCreate)
	r.Get("/rounds/{roundID}", s.handleRoundShow)
	r.Post("/rounds/{roundID}/holes/{hole}", s.handleHoleSave)
	r.Post("/rounds/{roundID}/holes/{hole}/clear", s.handleHoleClear)
	r.Post("/rounds/{roundID}/complete", s.handleRoundComplete)
	r.Post("/rounds/{roundID}/delete", s.handleRoundDelete)
	r.Get("/export/rankings.csv", s.handleExportRankingsCSV)
	r.Get("/export/stats.xlsx", s.handleExportWorkbook)

	return r
}
