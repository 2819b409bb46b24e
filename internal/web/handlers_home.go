package web

import (
	"net/http"
	"strings"

	"fairway-app/internal/stats"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("season"))
	snap := s.snapshot()

	rounds := snap.Rounds
	if filter != stats.AllSeasons {
		rounds = s.store.ListSeasonRounds(filter)
	}
	recent := s.roundListItems(rounds)
	if len(recent) > 5 {
		recent = recent[:5]
	}

	view := HomeView{
		BaseView:     s.baseView(r, "Standings"),
		Seasons:      snap.Seasons,
		SeasonFilter: filter,
		Standings:    stats.BuildPlayerStandings(snap, filter),
		RecentRounds: recent,
	}
	if err := s.templates.Render(w, "home.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
