package web

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"fairway-app/internal/model"
	"fairway-app/internal/stats"
)

func (s *Server) snapshot() stats.Snapshot {
	return stats.Snapshot{
		Players: s.store.ListPlayers(),
		Seasons: s.store.ListSeasons(),
		Courses: s.store.ListCourses(),
		Rounds:  s.store.ListRounds(),
	}
}

func (s *Server) baseView(r *http.Request, title string) BaseView {
	view := BaseView{
		Title:        title,
		FlashSuccess: flashMessage(r.URL.Query().Get("notice")),
	}
	if season, ok := s.store.ActiveSeason(); ok {
		view.ActiveSeason = &season
	}
	return view
}

func (s *Server) roundListItems(rounds []model.Round) []RoundListItem {
	players := playerNames(s.store.ListPlayers())
	courses := courseNames(s.store.ListCourses())
	seasons := seasonNames(s.store.ListSeasons())

	sorted := append([]model.Round(nil), rounds...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.After(sorted[j].StartedAt)
	})
	items := make([]RoundListItem, 0, len(sorted))
	for _, round := range sorted {
		item := RoundListItem{
			Round:      round,
			SeasonName: seasons[round.SeasonID],
			CourseName: courseNameOr(courses, round.CourseID),
			StatusText: "In progress",
		}
		if round.Completed() {
			item.StatusText = "Completed"
		}
		for _, id := range round.PlayerIDs {
			if name, ok := players[id]; ok {
				item.PlayerNames = append(item.PlayerNames, name)
			}
		}
		items = append(items, item)
	}
	return items
}

func playerNames(players []model.Player) map[string]string {
	names := make(map[string]string, len(players))
	for _, player := range players {
		names[player.ID] = player.DisplayName()
	}
	return names
}

func courseNames(courses []model.Course) map[string]string {
	names := make(map[string]string, len(courses))
	for _, course := range courses {
		names[course.ID] = course.Name
	}
	return names
}

func seasonNames(seasons []model.Season) map[string]string {
	names := make(map[string]string, len(seasons))
	for _, season := range seasons {
		names[season.ID] = season.Name
	}
	return names
}

func courseNameOr(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return stats.UnknownCourseName
}

// formIDs reads a multi-valued form field and keeps only ids present in
// allowed, deduplicated in submission order.
func formIDs(r *http.Request, field string, allowed []string) []string {
	permitted := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		permitted[id] = true
	}
	seen := map[string]bool{}
	ids := []string{}
	for _, raw := range r.Form[field] {
		id := strings.TrimSpace(raw)
		if id == "" || !permitted[id] || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// isHTMX reports whether the request came from an htmx swap, so handlers can
// answer with a partial instead of a redirect.
func isHTMX(r *http.Request) bool {
	return strings.ToLower(r.Header.Get("HX-Request")) == "true"
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string, notice string) {
	ref := strings.TrimSpace(r.Referer())
	if ref != "" {
		if notice == "" {
			http.Redirect(w, r, ref, http.StatusSeeOther)
			return
		}
		if u, err := url.Parse(ref); err == nil {
			q := u.Query()
			q.Set("notice", notice)
			u.RawQuery = q.Encode()
			http.Redirect(w, r, u.String(), http.StatusSeeOther)
			return
		}
	}
	target := fallback
	if notice != "" {
		target += "?notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
