package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"fairway-app/internal/model"
	"fairway-app/internal/stats"
)

func TestGuardFormula(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Ala Kowalska", "Ala Kowalska"},
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+48 123", "'+48 123"},
		{"-minus", "'-minus"},
		{"@cmd", "'@cmd"},
		{"\tTAB", "'\tTAB"},
		{"a=b", "a=b"},
	}
	for _, c := range cases {
		if got := guardFormula(c.in); got != c.want {
			t.Errorf("guardFormula(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPlayerRankingsCSVHeaderOnly(t *testing.T) {
	payload := PlayerRankingsCSV(nil)
	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("empty export should still carry the header, got %d rows", len(records))
	}
	if records[0][0] != "Rank" || records[0][1] != "Player" {
		t.Fatalf("header = %v", records[0])
	}
}

func TestPlayerRankingsCSVGuardsHostileNames(t *testing.T) {
	entries := []stats.PlayerStanding{
		{Player: model.Player{ID: "p1", Name: "=SUM(A1:A9)"}, HolesWon: 4},
		{Player: model.Player{ID: "p2", Name: `+dangerous,"quoted"`}, HolesWon: 2},
	}
	payload := PlayerRankingsCSV(entries)
	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d", len(records))
	}
	if records[1][1] != "'=SUM(A1:A9)" {
		t.Fatalf("formula name not guarded: %q", records[1][1])
	}
	// The csv writer's quoting must layer on top of the guard, round-tripping
	// the prefixed value intact.
	if records[2][1] != `'+dangerous,"quoted"` {
		t.Fatalf("guarded name mangled by quoting: %q", records[2][1])
	}
}

func TestWorkbookSheets(t *testing.T) {
	playedAt := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	players := []stats.PlayerStanding{
		{Player: model.Player{ID: "p1", Name: "=HYPERLINK(evil)"}, HolesWon: 7, RoundWins: 1},
	}
	courses := []stats.CourseStanding{
		{
			Course: model.Course{ID: "c1", Name: "@Pirate Cove"},
			Best:   []stats.CourseBestEntry{{Player: model.Player{ID: "p1", Name: "Ala"}, Score: 5, PlayedAt: playedAt}},
		},
	}
	seasons := []stats.SeasonStanding{
		{
			Season:  model.Season{ID: "s1", Name: "Summer League"},
			Leaders: []stats.SeasonLeader{{Player: model.Player{ID: "p1", Name: "Ala"}, HolesWon: 7}},
		},
	}

	payload, err := Workbook(players, courses, seasons)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if strings.Join(sheets, ",") != "Players,Courses,Seasons" {
		t.Fatalf("sheets = %v", sheets)
	}

	name, err := f.GetCellValue("Players", "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != "'=HYPERLINK(evil)" {
		t.Fatalf("player name not guarded in workbook: %q", name)
	}
	courseName, err := f.GetCellValue("Courses", "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if courseName != "'@Pirate Cove" {
		t.Fatalf("course name not guarded in workbook: %q", courseName)
	}
	date, err := f.GetCellValue("Courses", "E2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if date != "2024-06-02" {
		t.Fatalf("date = %q", date)
	}
}

func TestWorkbookDropsEmptySheets(t *testing.T) {
	payload, err := Workbook(nil, nil, nil)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Players" {
		t.Fatalf("empty export should keep only the Players sheet, got %v", sheets)
	}
	header, err := f.GetCellValue("Players", "A1")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if header != "Rank" {
		t.Fatalf("header = %q", header)
	}
}
