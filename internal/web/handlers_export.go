package web

import (
	"net/http"
	"strings"
	"time"

	"fairway-app/internal/export"
	"fairway-app/internal/stats"
)

const exportTimestampLayout = "20060102-150405"

func (s *Server) handleExportRankingsCSV(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("season"))
	payload := export.PlayerRankingsCSV(stats.BuildPlayerStandings(s.snapshot(), filter))

	filename := "rankings-" + time.Now().Format(exportTimestampLayout) + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}

func (s *Server) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("season"))
	snap := s.snapshot()
	payload, err := export.Workbook(
		stats.BuildPlayerStandings(snap, filter),
		stats.BuildCourseStandings(snap, filter),
		stats.BuildSeasonStandings(snap),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := "stats-" + time.Now().Format(exportTimestampLayout) + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}
