package web

import (
	"net/http"
	"strings"
	"time"

	"fairway-app/internal/model"
	"fairway-app/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	view := SeasonsView{
		BaseView:  s.baseView(r, "Seasons"),
		Standings: stats.BuildSeasonStandings(s.snapshot()),
		Players:   s.store.ListPlayers(),
	}
	if err := s.templates.Render(w, "seasons.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSeasonCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	season := model.Season{
		ID:        uuid.NewString(),
		Name:      name,
		PlayerIDs: formIDs(r, "player_ids", playerIDList(s.store.ListPlayers())),
		Status:    model.SeasonActive,
		CreatedAt: time.Now(),
	}
	created, err := s.store.CreateSeason(season)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/seasons/"+created.ID+"?notice=season_added", http.StatusSeeOther)
}

func (s *Server) handleSeasonShow(w http.ResponseWriter, r *http.Request) {
	seasonID := chi.URLParam(r, "seasonID")
	season, ok := s.store.GetSeason(seasonID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	standing, _ := stats.SeasonStandingFor(s.snapshot(), season.ID)
	view := SeasonView{
		BaseView: s.baseView(r, season.Name),
		Standing: standing,
		Rounds:   s.roundListItems(s.store.ListSeasonRounds(season.ID)),
	}
	if err := s.templates.Render(w, "season_show.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSeasonComplete(w http.ResponseWriter, r *http.Request) {
	seasonID := chi.URLParam(r, "seasonID")
	season, ok := s.store.GetSeason(seasonID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if season.Status != model.SeasonCompleted {
		now := time.Now()
		season.Status = model.SeasonCompleted
		season.CompletedAt = &now
		if err := s.store.UpdateSeason(season); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	redirectBack(w, r, "/seasons/"+season.ID, "season_completed")
}

func (s *Server) handleSeasonDelete(w http.ResponseWriter, r *http.Request) {
	seasonID := chi.URLParam(r, "seasonID")
	if err := s.store.DeleteSeason(seasonID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/seasons?notice=season_deleted", http.StatusSeeOther)
}

func playerIDList(players []model.Player) []string {
	ids := make([]string, 0, len(players))
	for _, player := range players {
		ids = append(ids, player.ID)
	}
	return ids
}
