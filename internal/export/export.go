package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"fairway-app/internal/stats"
)

const dateLayout = "2006-01-02"

var playerHeader = []string{"Rank", "Player", "Holes Won", "Round Wins", "Hole-in-Ones", "Rounds Played"}

// PlayerRankingsCSV renders the player ranking table as UTF-8 delimited
// text. The header row is always emitted, even for an empty snapshot. Names
// pass through the formula guard before the writer applies standard CSV
// quoting on top.
func PlayerRankingsCSV(entries []stats.PlayerStanding) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(playerHeader)
	for _, row := range playerRows(entries) {
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

// Workbook renders up to three sheets: player rankings, per-course best
// scores (one row per player per course) and season standings (one row per
// player per season). Empty course or season views drop their sheet rather
// than erroring.
func Workbook(players []stats.PlayerStanding, courses []stats.CourseStanding, seasons []stats.SeasonStanding) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Players"); err != nil {
		return nil, err
	}
	if err := fillSheet(f, "Players", playerHeader, playerRows(players)); err != nil {
		return nil, err
	}
	if rows := courseRows(courses); len(rows) > 0 {
		if _, err := f.NewSheet("Courses"); err != nil {
			return nil, err
		}
		if err := fillSheet(f, "Courses", []string{"Course", "Rank", "Player", "Best Score", "Date"}, rows); err != nil {
			return nil, err
		}
	}
	if rows := seasonRows(seasons); len(rows) > 0 {
		if _, err := f.NewSheet("Seasons"); err != nil {
			return nil, err
		}
		if err := fillSheet(f, "Seasons", []string{"Season", "Rank", "Player", "Holes Won", "Hole-in-Ones"}, rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func playerRows(entries []stats.PlayerStanding) [][]string {
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			guardFormula(entry.Player.Name),
			strconv.Itoa(entry.HolesWon),
			strconv.Itoa(entry.RoundWins),
			strconv.Itoa(entry.HoleInOnes),
			strconv.Itoa(entry.RoundsPlayed),
		})
	}
	return rows
}

func courseRows(standings []stats.CourseStanding) [][]string {
	rows := [][]string{}
	for _, standing := range standings {
		for i, entry := range standing.Best {
			rows = append(rows, []string{
				guardFormula(standing.Course.Name),
				strconv.Itoa(i + 1),
				guardFormula(entry.Player.Name),
				strconv.Itoa(entry.Score),
				entry.PlayedAt.Format(dateLayout),
			})
		}
	}
	return rows
}

func seasonRows(standings []stats.SeasonStanding) [][]string {
	rows := [][]string{}
	for _, standing := range standings {
		for i, leader := range standing.Leaders {
			rows = append(rows, []string{
				guardFormula(standing.Season.Name),
				strconv.Itoa(i + 1),
				guardFormula(leader.Player.Name),
				strconv.Itoa(leader.HolesWon),
				strconv.Itoa(leader.HoleInOnes),
			})
		}
	}
	return rows
}

func fillSheet(f *excelize.File, name string, header []string, rows [][]string) error {
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// guardFormula neutralizes spreadsheet formula interpretation by prefixing
// a single quote. Applied to every free-text field on every sheet and in
// the CSV; a missed prefix here is a security defect, not a cosmetic one.
func guardFormula(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\t':
		return "'" + value
	}
	return value
}
