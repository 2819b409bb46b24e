package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fairway-app/internal/model"
	"fairway-app/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleRoundNew(w http.ResponseWriter, r *http.Request) {
	season, ok := s.store.ActiveSeason()
	if !ok {
		http.Redirect(w, r, "/seasons", http.StatusSeeOther)
		return
	}
	members := make([]model.Player, 0, len(season.PlayerIDs))
	for _, id := range season.PlayerIDs {
		if player, ok := s.store.GetPlayer(id); ok {
			members = append(members, player)
		}
	}
	view := RoundNewView{
		BaseView: s.baseView(r, "New round"),
		Season:   season,
		Courses:  s.store.ListCourses(),
		Players:  members,
	}
	if err := s.templates.Render(w, "round_new.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleRoundCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	season, ok := s.store.ActiveSeason()
	if !ok {
		http.Error(w, "no active season", http.StatusBadRequest)
		return
	}
	courseID := strings.TrimSpace(r.FormValue("course_id"))
	if _, ok := s.store.GetCourse(courseID); !ok {
		http.Error(w, "course is required", http.StatusBadRequest)
		return
	}
	playerIDs := formIDs(r, "player_ids", season.PlayerIDs)
	if len(playerIDs) == 0 {
		http.Error(w, "at least one player is required", http.StatusBadRequest)
		return
	}
	round := model.Round{
		ID:        uuid.NewString(),
		SeasonID:  season.ID,
		CourseID:  courseID,
		PlayerIDs: playerIDs,
		Holes:     map[int]model.HoleResult{},
		StartedAt: time.Now(),
	}
	created, err := s.store.CreateRound(round)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/rounds/"+created.ID+"?notice=round_added", http.StatusSeeOther)
}

func (s *Server) handleRoundShow(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	round, ok := s.store.GetRound(roundID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := s.roundShowView(r, round)
	if err := s.templates.Render(w, "round_show.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHoleSave(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	round, ok := s.store.GetRound(roundID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil || hole < 1 {
		http.Error(w, "invalid hole number", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	holes := make(map[int]model.HoleResult, len(round.Holes)+1)
	for number, result := range round.Holes {
		holes[number] = result
	}
	holes[hole] = model.HoleResult{
		Hole:      hole,
		WinnerIDs: formIDs(r, "winner_ids", round.PlayerIDs),
		AceIDs:    formIDs(r, "ace_ids", round.PlayerIDs),
	}
	round.Holes = holes
	if err := s.store.UpdateRound(round); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if isHTMX(r) {
		view := s.roundShowView(r, round)
		if err := s.templates.RenderPartial(w, "scorecard.html", view); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	http.Redirect(w, r, "/rounds/"+round.ID, http.StatusSeeOther)
}

func (s *Server) handleHoleClear(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	round, ok := s.store.GetRound(roundID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil || hole < 1 {
		http.Error(w, "invalid hole number", http.StatusBadRequest)
		return
	}
	holes := make(map[int]model.HoleResult, len(round.Holes))
	for number, result := range round.Holes {
		if number != hole {
			holes[number] = result
		}
	}
	round.Holes = holes
	if err := s.store.UpdateRound(round); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if isHTMX(r) {
		view := s.roundShowView(r, round)
		if err := s.templates.RenderPartial(w, "scorecard.html", view); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	http.Redirect(w, r, "/rounds/"+round.ID, http.StatusSeeOther)
}

func (s *Server) handleRoundComplete(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	round, ok := s.store.GetRound(roundID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if !round.Completed() {
		now := time.Now()
		round.CompletedAt = &now
		if err := s.store.UpdateRound(round); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/rounds/"+round.ID+"?notice=round_completed", http.StatusSeeOther)
}

func (s *Server) handleRoundDelete(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")
	if err := s.store.DeleteRound(roundID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/?notice=round_deleted", http.StatusSeeOther)
}

func (s *Server) roundShowView(r *http.Request, round model.Round) RoundShowView {
	players := make([]model.Player, 0, len(round.PlayerIDs))
	names := map[string]string{}
	for _, id := range round.PlayerIDs {
		if player, ok := s.store.GetPlayer(id); ok {
			players = append(players, player)
			names[id] = player.DisplayName()
		}
	}

	seasonName := ""
	if season, ok := s.store.GetSeason(round.SeasonID); ok {
		seasonName = season.Name
	}
	courseName := stats.UnknownCourseName
	holeCount := 18
	if course, ok := s.store.GetCourse(round.CourseID); ok {
		courseName = course.Name
		holeCount = course.HoleCount
	}
	for hole := range round.Holes {
		if hole > holeCount {
			holeCount = hole
		}
	}

	holes := make([]HoleRow, 0, holeCount)
	for number := 1; number <= holeCount; number++ {
		row := HoleRow{Number: number}
		if result, ok := round.Holes[number]; ok {
			row.Recorded = true
			for _, id := range result.WinnerIDs {
				if name, ok := names[id]; ok {
					row.WinnerNames = append(row.WinnerNames, name)
				}
			}
			for _, id := range result.AceIDs {
				if name, ok := names[id]; ok {
					row.AceNames = append(row.AceNames, name)
				}
			}
		}
		holes = append(holes, row)
	}

	scores := stats.RoundScores(round)
	aces := stats.RoundAces(round)
	entries := make([]RoundScoreEntry, 0, len(players))
	for _, player := range players {
		entries = append(entries, RoundScoreEntry{
			Player: player,
			Score:  scores[player.ID],
			Aces:   aces[player.ID],
		})
	}

	return RoundShowView{
		BaseView:   s.baseView(r, "Round at "+courseName),
		Round:      round,
		SeasonName: seasonName,
		CourseName: courseName,
		Players:    players,
		Holes:      holes,
		Scores:     entries,
	}
}
