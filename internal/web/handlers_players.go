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

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	view := PlayersView{
		BaseView:  s.baseView(r, "Players"),
		Standings: stats.BuildPlayerStandings(s.snapshot(), stats.AllSeasons),
	}
	if err := s.templates.Render(w, "players.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	player := model.Player{
		ID:        uuid.NewString(),
		Name:      name,
		AvatarURL: strings.TrimSpace(r.FormValue("avatar_url")),
		CreatedAt: time.Now(),
	}
	if _, err := s.store.CreatePlayer(player); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/players?notice=player_added", http.StatusSeeOther)
}

func (s *Server) handlePlayerShow(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	player, ok := s.store.GetPlayer(playerID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	standing := stats.PlayerStanding{Player: player}
	for _, entry := range stats.BuildPlayerStandings(s.snapshot(), stats.AllSeasons) {
		if entry.Player.ID == player.ID {
			standing = entry
			break
		}
	}
	view := PlayerView{
		BaseView: s.baseView(r, player.DisplayName()),
		Standing: standing,
	}
	if err := s.templates.Render(w, "player_show.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	player, ok := s.store.GetPlayer(playerID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	player.Name = name
	player.AvatarURL = strings.TrimSpace(r.FormValue("avatar_url"))
	if err := s.store.UpdatePlayer(player); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/players/"+player.ID+"?notice=player_updated", http.StatusSeeOther)
}

func (s *Server) handlePlayerDelete(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if err := s.store.DeletePlayer(playerID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/players?notice=player_deleted", http.StatusSeeOther)
}
