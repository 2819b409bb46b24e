package stats

import (
	"reflect"
	"testing"
	"time"

	"fairway-app/internal/model"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func donePtr(t time.Time) *time.Time { return &t }

func leagueSnapshot() Snapshot {
	r1 := model.Round{
		ID: "r1", SeasonID: "s1", CourseID: "c1",
		PlayerIDs: []string{"p1", "p2"},
		Holes: map[int]model.HoleResult{
			1: {Hole: 1, WinnerIDs: []string{"p1"}},
			2: {Hole: 2, WinnerIDs: []string{"p2"}},
			3: {Hole: 3, WinnerIDs: []string{"p1", "p2"}},
			4: {Hole: 4, WinnerIDs: []string{"p1"}, AceIDs: []string{"p1"}},
		},
		StartedAt:   base,
		CompletedAt: donePtr(base.Add(2 * time.Hour)),
	}
	r2 := model.Round{
		ID: "r2", SeasonID: "s1", CourseID: "c2",
		PlayerIDs: []string{"p1", "p2", "p3"},
		Holes: map[int]model.HoleResult{
			1: {Hole: 1, WinnerIDs: []string{"p3"}, AceIDs: []string{"p3"}},
			2: {Hole: 2, WinnerIDs: []string{"p3"}},
			3: {Hole: 3, WinnerIDs: []string{"p2"}},
		},
		StartedAt:   base.AddDate(0, 0, 7),
		CompletedAt: donePtr(base.AddDate(0, 0, 7).Add(time.Hour)),
	}
	r3 := model.Round{
		ID: "r3", SeasonID: "s1", CourseID: "c1",
		PlayerIDs: []string{"p2", "p3"},
		Holes: map[int]model.HoleResult{
			1: {Hole: 1, WinnerIDs: []string{"p2"}},
			2: {Hole: 2, WinnerIDs: []string{"p2"}},
		},
		StartedAt: base.AddDate(0, 0, 14),
	}
	return Snapshot{
		Players: []model.Player{
			{ID: "p1", Name: "Ala"},
			{ID: "p2", Name: "Bartek"},
			{ID: "p3", Name: "Celina"},
			{ID: "p4", Name: "Darek"},
		},
		Seasons: []model.Season{
			{ID: "s1", Name: "Summer League", PlayerIDs: []string{"p1", "p2", "p3"}, Status: model.SeasonActive, CreatedAt: base},
		},
		Courses: []model.Course{
			{ID: "c1", Name: "Pirate Cove", HoleCount: 18},
			{ID: "c2", Name: "Windmill Park", HoleCount: 12},
		},
		Rounds: []model.Round{r1, r2, r3},
	}
}

func TestBuildPlayerStandings(t *testing.T) {
	snap := leagueSnapshot()
	standings := BuildPlayerStandings(snap, AllSeasons)

	if len(standings) != 4 {
		t.Fatalf("expected every roster player listed, got %d", len(standings))
	}
	order := []string{}
	for _, entry := range standings {
		order = append(order, entry.Player.ID)
	}
	if want := []string{"p2", "p1", "p3", "p4"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}

	byID := map[string]PlayerStanding{}
	for _, entry := range standings {
		byID[entry.Player.ID] = entry
	}

	p1 := byID["p1"]
	if p1.HolesWon != 3 || p1.RoundWins != 1 || p1.HoleInOnes != 1 || p1.RoundsPlayed != 2 {
		t.Fatalf("p1 = %+v", p1)
	}
	p2 := byID["p2"]
	if p2.HolesWon != 5 || p2.RoundWins != 0 || p2.RoundsPlayed != 3 {
		t.Fatalf("p2 = %+v", p2)
	}
	p3 := byID["p3"]
	if p3.HolesWon != 2 || p3.RoundWins != 1 || p3.HoleInOnes != 1 {
		t.Fatalf("p3 = %+v", p3)
	}
	p4 := byID["p4"]
	if p4.HolesWon != 0 || p4.RoundWins != 0 || p4.RoundsPlayed != 0 || len(p4.History) != 0 {
		t.Fatalf("player without rounds should have zero counts, got %+v", p4)
	}
}

func TestInProgressRoundsAwardNoRoundWin(t *testing.T) {
	snap := leagueSnapshot()
	standings := BuildPlayerStandings(snap, AllSeasons)
	for _, entry := range standings {
		if entry.Player.ID != "p2" {
			continue
		}
		// p2 leads the unfinished r3 but only completed rounds award wins.
		if entry.RoundWins != 0 {
			t.Fatalf("p2 round wins = %d, want 0", entry.RoundWins)
		}
		if len(entry.History) != 2 {
			t.Fatalf("history should only cover completed rounds, got %d entries", len(entry.History))
		}
	}
}

func TestRoundWinSharedOnTie(t *testing.T) {
	round := model.Round{
		ID: "r1", SeasonID: "s1", CourseID: "c1",
		PlayerIDs: []string{"p1", "p2"},
		Holes: map[int]model.HoleResult{
			1: {Hole: 1, WinnerIDs: []string{"p1"}},
			2: {Hole: 2, WinnerIDs: []string{"p2"}},
		},
		StartedAt:   base,
		CompletedAt: donePtr(base.Add(time.Hour)),
	}
	snap := Snapshot{
		Players: []model.Player{{ID: "p1", Name: "Ala"}, {ID: "p2", Name: "Bartek"}},
		Rounds:  []model.Round{round},
	}
	for _, entry := range BuildPlayerStandings(snap, AllSeasons) {
		if entry.RoundWins != 1 {
			t.Fatalf("%s round wins = %d, want shared win", entry.Player.ID, entry.RoundWins)
		}
	}
}

func TestRoundWithNoHoleWinnersCrownsNobody(t *testing.T) {
	round := model.Round{
		ID: "r1", PlayerIDs: []string{"p1", "p2"},
		Holes:       map[int]model.HoleResult{1: {Hole: 1}},
		StartedAt:   base,
		CompletedAt: donePtr(base.Add(time.Hour)),
	}
	snap := Snapshot{
		Players: []model.Player{{ID: "p1", Name: "Ala"}, {ID: "p2", Name: "Bartek"}},
		Rounds:  []model.Round{round},
	}
	for _, entry := range BuildPlayerStandings(snap, AllSeasons) {
		if entry.RoundWins != 0 {
			t.Fatalf("%s round wins = %d, want 0", entry.Player.ID, entry.RoundWins)
		}
	}
}

func TestSeasonFilter(t *testing.T) {
	snap := leagueSnapshot()
	other := model.Round{
		ID: "r9", SeasonID: "s2", CourseID: "c1",
		PlayerIDs:   []string{"p4"},
		Holes:       map[int]model.HoleResult{1: {Hole: 1, WinnerIDs: []string{"p4"}}},
		StartedAt:   base.AddDate(0, 1, 0),
		CompletedAt: donePtr(base.AddDate(0, 1, 0).Add(time.Hour)),
	}
	snap.Rounds = append(snap.Rounds, other)

	for _, entry := range BuildPlayerStandings(snap, "s1") {
		if entry.Player.ID == "p4" && entry.HolesWon != 0 {
			t.Fatalf("season filter leaked rounds from another season: %+v", entry)
		}
	}
	for _, entry := range BuildPlayerStandings(snap, "s2") {
		switch entry.Player.ID {
		case "p4":
			if entry.HolesWon != 1 || entry.RoundWins != 1 {
				t.Fatalf("p4 in s2 = %+v", entry)
			}
		default:
			if entry.HolesWon != 0 || entry.RoundsPlayed != 0 {
				t.Fatalf("%s should be empty in s2, got %+v", entry.Player.ID, entry)
			}
		}
	}
}

func TestDanglingReferencesAreTolerated(t *testing.T) {
	round := model.Round{
		ID: "r1", SeasonID: "s1", CourseID: "missing-course",
		PlayerIDs: []string{"p1", "ghost"},
		Holes: map[int]model.HoleResult{
			1: {Hole: 1, WinnerIDs: []string{"ghost"}},
			2: {Hole: 2, WinnerIDs: []string{"p1"}},
		},
		StartedAt:   base,
		CompletedAt: donePtr(base.Add(time.Hour)),
	}
	snap := Snapshot{
		Players: []model.Player{{ID: "p1", Name: "Ala"}},
		Seasons: []model.Season{{ID: "s1", Name: "Summer League", PlayerIDs: []string{"p1", "ghost"}}},
		Rounds:  []model.Round{round},
	}

	standings := BuildPlayerStandings(snap, AllSeasons)
	if len(standings) != 1 || standings[0].Player.ID != "p1" {
		t.Fatalf("unresolvable players must not appear, got %+v", standings)
	}
	p1 := standings[0]
	if p1.HolesWon != 1 || p1.RoundWins != 1 {
		t.Fatalf("p1 = %+v", p1)
	}
	if len(p1.History) != 1 || p1.History[0].CourseName != UnknownCourseName {
		t.Fatalf("missing course should resolve to placeholder, got %+v", p1.History)
	}

	for _, standing := range BuildSeasonStandings(snap) {
		for _, leader := range standing.Leaders {
			if leader.Player.ID == "ghost" {
				t.Fatal("ghost player leaked into season leaderboard")
			}
		}
	}
}

func TestBuildCourseStandings(t *testing.T) {
	snap := leagueSnapshot()
	standings := BuildCourseStandings(snap, AllSeasons)
	if len(standings) != 2 {
		t.Fatalf("expected a standing per course, got %d", len(standings))
	}

	c1 := standings[0]
	if c1.Course.ID != "c1" || c1.CompletedRounds != 1 {
		t.Fatalf("c1 = %+v", c1)
	}
	if len(c1.Best) != 2 || c1.Best[0].Player.ID != "p1" || c1.Best[0].Score != 3 {
		t.Fatalf("c1 best = %+v", c1.Best)
	}

	c2 := standings[1]
	if c2.CompletedRounds != 1 || len(c2.Best) != 3 {
		t.Fatalf("c2 = %+v", c2)
	}
	if c2.Best[0].Player.ID != "p3" || c2.Best[2].Score != 0 {
		t.Fatalf("c2 best = %+v", c2.Best)
	}
}

func TestCourseBestTieKeepsEarliestDate(t *testing.T) {
	early := base
	late := base.AddDate(0, 0, 10)
	mk := func(id string, at time.Time) model.Round {
		return model.Round{
			ID: id, CourseID: "c1", PlayerIDs: []string{"p1"},
			Holes: map[int]model.HoleResult{
				1: {Hole: 1, WinnerIDs: []string{"p1"}},
				2: {Hole: 2, WinnerIDs: []string{"p1"}},
			},
			StartedAt:   at,
			CompletedAt: donePtr(at.Add(time.Hour)),
		}
	}
	snap := Snapshot{
		Players: []model.Player{{ID: "p1", Name: "Ala"}},
		Courses: []model.Course{{ID: "c1", Name: "Pirate Cove"}},
		Rounds:  []model.Round{mk("r-late", late), mk("r-early", early)},
	}
	standings := BuildCourseStandings(snap, AllSeasons)
	best := standings[0].Best
	if len(best) != 1 || best[0].Score != 2 {
		t.Fatalf("best = %+v", best)
	}
	if !best[0].PlayedAt.Equal(early) {
		t.Fatalf("tie should keep the earliest date, got %v", best[0].PlayedAt)
	}
}

func TestBuildSeasonStandings(t *testing.T) {
	snap := leagueSnapshot()
	standings := BuildSeasonStandings(snap)
	if len(standings) != 1 {
		t.Fatalf("expected one season, got %d", len(standings))
	}
	s1 := standings[0]
	if s1.MemberCount != 3 || s1.CompletedRounds != 2 {
		t.Fatalf("s1 = %+v", s1)
	}
	if len(s1.Leaders) != 3 {
		t.Fatalf("leaders = %+v", s1.Leaders)
	}
	// In-progress rounds still feed the leaderboard counters.
	if s1.Leaders[0].Player.ID != "p2" || s1.Leaders[0].HolesWon != 5 {
		t.Fatalf("leader = %+v", s1.Leaders[0])
	}
}

func TestRoundScoresSumMatchesWinnerEntries(t *testing.T) {
	snap := leagueSnapshot()
	for _, round := range snap.Rounds {
		winnerEntries := 0
		for _, hole := range round.Holes {
			winnerEntries += len(hole.WinnerIDs)
		}
		total := 0
		for _, score := range RoundScores(round) {
			total += score
		}
		// A hole with two winners contributes one increment to each of them.
		if total != winnerEntries {
			t.Fatalf("round %s: scores sum to %d, winner entries %d", round.ID, total, winnerEntries)
		}
	}
}

func TestSeasonWinners(t *testing.T) {
	snap := leagueSnapshot()
	standing, ok := SeasonStandingFor(snap, "s1")
	if !ok {
		t.Fatal("season not found")
	}
	winners := standing.Winners()
	if len(winners) != 1 || winners[0].Player.ID != "p2" {
		t.Fatalf("winners = %+v", winners)
	}

	empty := SeasonStanding{Leaders: []SeasonLeader{
		{Player: model.Player{ID: "p1"}},
		{Player: model.Player{ID: "p2"}},
	}}
	if got := empty.Winners(); len(got) != 0 {
		t.Fatalf("season without holes won should have no winner, got %+v", got)
	}
}

func TestBuildersAreIdempotent(t *testing.T) {
	snap := leagueSnapshot()
	first := BuildPlayerStandings(snap, AllSeasons)
	second := BuildPlayerStandings(snap, AllSeasons)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("player standings differ between runs on the same snapshot")
	}
	if !reflect.DeepEqual(BuildCourseStandings(snap, AllSeasons), BuildCourseStandings(snap, AllSeasons)) {
		t.Fatal("course standings differ between runs on the same snapshot")
	}
	if !reflect.DeepEqual(BuildSeasonStandings(snap), BuildSeasonStandings(snap)) {
		t.Fatal("season standings differ between runs on the same snapshot")
	}
}
