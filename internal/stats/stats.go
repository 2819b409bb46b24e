package stats

import (
	"sort"
	"time"

	"fairway-app/internal/model"
)

// AllSeasons selects rounds from every season.
const AllSeasons = ""

// UnknownCourseName is shown when a round references a course that no
// longer exists in the snapshot.
const UnknownCourseName = "Unknown"

// Snapshot is the full record-store state the engine derives from. The
// builders never mutate it, so calling them twice on the same snapshot
// yields identical results.
type Snapshot struct {
	Players []model.Player
	Seasons []model.Season
	Courses []model.Course
	Rounds  []model.Round
}

type RoundHistoryEntry struct {
	CourseName string
	Score      int
	PlayedAt   time.Time
	Aces       int
}

type PlayerStanding struct {
	Player       model.Player
	RoundWins    int
	HolesWon     int
	HoleInOnes   int
	RoundsPlayed int
	History      []RoundHistoryEntry
}

type CourseBestEntry struct {
	Player   model.Player
	Score    int
	PlayedAt time.Time
}

type CourseStanding struct {
	Course          model.Course
	CompletedRounds int
	Best            []CourseBestEntry
}

type SeasonLeader struct {
	Player     model.Player
	HolesWon   int
	HoleInOnes int
}

type SeasonStanding struct {
	Season          model.Season
	CompletedRounds int
	MemberCount     int
	Leaders         []SeasonLeader
}

// BuildPlayerStandings ranks every roster player by total holes won across
// the filtered rounds. Players with no rounds still appear with zero counts.
// Round wins are only awarded by completed rounds; in-progress rounds still
// feed the hole and ace counters. Equal holes-won keeps roster order.
func BuildPlayerStandings(snap Snapshot, seasonID string) []PlayerStanding {
	index := make(map[string]*PlayerStanding, len(snap.Players))
	order := make([]string, 0, len(snap.Players))
	for _, player := range snap.Players {
		index[player.ID] = &PlayerStanding{Player: player}
		order = append(order, player.ID)
	}
	courses := courseIndex(snap.Courses)

	for _, round := range filterRounds(snap.Rounds, seasonID) {
		for _, id := range round.PlayerIDs {
			if entry := index[id]; entry != nil {
				entry.RoundsPlayed++
			}
		}
		for _, hole := range round.Holes {
			for _, id := range hole.WinnerIDs {
				if entry := index[id]; entry != nil {
					entry.HolesWon++
				}
			}
			for _, id := range hole.AceIDs {
				if entry := index[id]; entry != nil {
					entry.HoleInOnes++
				}
			}
		}
		if !round.Completed() {
			continue
		}
		scores := RoundScores(round)
		for _, id := range topScorers(scores, round.PlayerIDs) {
			if entry := index[id]; entry != nil {
				entry.RoundWins++
			}
		}
		aces := RoundAces(round)
		for _, id := range round.PlayerIDs {
			entry := index[id]
			if entry == nil {
				continue
			}
			entry.History = append(entry.History, RoundHistoryEntry{
				CourseName: courseName(courses, round.CourseID),
				Score:      scores[id],
				PlayedAt:   round.StartedAt,
				Aces:       aces[id],
			})
		}
	}

	standings := make([]PlayerStanding, 0, len(order))
	for _, id := range order {
		standings = append(standings, *index[id])
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].HolesWon > standings[j].HolesWon
	})
	return standings
}

// BuildCourseStandings ranks, per course, each player's best single-round
// score there. Only completed rounds count. When two rounds tie for a
// player's best, the earliest start date is kept. Players missing from the
// roster are left off the list.
func BuildCourseStandings(snap Snapshot, seasonID string) []CourseStanding {
	players := playerIndex(snap.Players)
	rounds := filterRounds(snap.Rounds, seasonID)

	standings := make([]CourseStanding, 0, len(snap.Courses))
	for _, course := range snap.Courses {
		standing := CourseStanding{Course: course}
		best := map[string]CourseBestEntry{}
		seen := []string{}
		for _, round := range rounds {
			if round.CourseID != course.ID || !round.Completed() {
				continue
			}
			standing.CompletedRounds++
			scores := RoundScores(round)
			for _, id := range round.PlayerIDs {
				player, ok := players[id]
				if !ok {
					continue
				}
				entry, exists := best[id]
				switch {
				case !exists:
					best[id] = CourseBestEntry{Player: player, Score: scores[id], PlayedAt: round.StartedAt}
					seen = append(seen, id)
				case scores[id] > entry.Score:
					best[id] = CourseBestEntry{Player: player, Score: scores[id], PlayedAt: round.StartedAt}
				case scores[id] == entry.Score && round.StartedAt.Before(entry.PlayedAt):
					entry.PlayedAt = round.StartedAt
					best[id] = entry
				}
			}
		}
		standing.Best = make([]CourseBestEntry, 0, len(seen))
		for _, id := range seen {
			standing.Best = append(standing.Best, best[id])
		}
		sort.SliceStable(standing.Best, func(i, j int) bool {
			return standing.Best[i].Score > standing.Best[j].Score
		})
		standings = append(standings, standing)
	}
	return standings
}

// BuildSeasonStandings builds a leaderboard for every season over all of its
// rounds, in-progress ones included. Season members appear first in
// membership order, then any extra participants in discovery order; the
// whole list is then sorted descending by holes won.
func BuildSeasonStandings(snap Snapshot) []SeasonStanding {
	players := playerIndex(snap.Players)

	standings := make([]SeasonStanding, 0, len(snap.Seasons))
	for _, season := range snap.Seasons {
		standing := SeasonStanding{Season: season, MemberCount: len(season.PlayerIDs)}
		totals := map[string]*SeasonLeader{}
		order := []string{}
		track := func(id string) *SeasonLeader {
			if leader := totals[id]; leader != nil {
				return leader
			}
			player, ok := players[id]
			if !ok {
				return nil
			}
			leader := &SeasonLeader{Player: player}
			totals[id] = leader
			order = append(order, id)
			return leader
		}
		for _, id := range season.PlayerIDs {
			track(id)
		}
		for _, round := range snap.Rounds {
			if round.SeasonID != season.ID {
				continue
			}
			if round.Completed() {
				standing.CompletedRounds++
			}
			for _, id := range round.PlayerIDs {
				track(id)
			}
			for _, hole := range round.Holes {
				for _, id := range hole.WinnerIDs {
					if leader := track(id); leader != nil {
						leader.HolesWon++
					}
				}
				for _, id := range hole.AceIDs {
					if leader := track(id); leader != nil {
						leader.HoleInOnes++
					}
				}
			}
		}
		standing.Leaders = make([]SeasonLeader, 0, len(order))
		for _, id := range order {
			standing.Leaders = append(standing.Leaders, *totals[id])
		}
		sort.SliceStable(standing.Leaders, func(i, j int) bool {
			return standing.Leaders[i].HolesWon > standing.Leaders[j].HolesWon
		})
		standings = append(standings, standing)
	}
	return standings
}

// Winners returns every leader tied for the season's top holes-won count.
// A season where nobody has won a hole yet has no winner.
func (s SeasonStanding) Winners() []SeasonLeader {
	scores := make(map[string]int, len(s.Leaders))
	ids := make([]string, 0, len(s.Leaders))
	byID := make(map[string]SeasonLeader, len(s.Leaders))
	for _, leader := range s.Leaders {
		scores[leader.Player.ID] = leader.HolesWon
		ids = append(ids, leader.Player.ID)
		byID[leader.Player.ID] = leader
	}
	top := topScorers(scores, ids)
	winners := make([]SeasonLeader, 0, len(top))
	for _, id := range top {
		winners = append(winners, byID[id])
	}
	return winners
}

// SeasonStandingFor is a convenience lookup for a single season's board.
func SeasonStandingFor(snap Snapshot, seasonID string) (SeasonStanding, bool) {
	for _, standing := range BuildSeasonStandings(snap) {
		if standing.Season.ID == seasonID {
			return standing, true
		}
	}
	return SeasonStanding{}, false
}

// RoundScores sums each participant's holes won within a single round.
func RoundScores(round model.Round) map[string]int {
	scores := make(map[string]int, len(round.PlayerIDs))
	for _, id := range round.PlayerIDs {
		scores[id] = 0
	}
	for _, hole := range round.Holes {
		for _, id := range hole.WinnerIDs {
			scores[id]++
		}
	}
	return scores
}

// RoundAces counts each player's hole-in-ones within a single round.
func RoundAces(round model.Round) map[string]int {
	aces := make(map[string]int, len(round.PlayerIDs))
	for _, hole := range round.Holes {
		for _, id := range hole.AceIDs {
			aces[id]++
		}
	}
	return aces
}

// topScorers returns every participant tied for the highest score. A round
// where nobody won a hole crowns nobody.
func topScorers(scores map[string]int, participants []string) []string {
	max := 0
	for _, id := range participants {
		if scores[id] > max {
			max = scores[id]
		}
	}
	if max == 0 {
		return nil
	}
	winners := make([]string, 0, len(participants))
	for _, id := range participants {
		if scores[id] == max {
			winners = append(winners, id)
		}
	}
	return winners
}

func filterRounds(rounds []model.Round, seasonID string) []model.Round {
	if seasonID == AllSeasons {
		return rounds
	}
	filtered := make([]model.Round, 0, len(rounds))
	for _, round := range rounds {
		if round.SeasonID == seasonID {
			filtered = append(filtered, round)
		}
	}
	return filtered
}

func playerIndex(players []model.Player) map[string]model.Player {
	index := make(map[string]model.Player, len(players))
	for _, player := range players {
		index[player.ID] = player
	}
	return index
}

func courseIndex(courses []model.Course) map[string]model.Course {
	index := make(map[string]model.Course, len(courses))
	for _, course := range courses {
		index[course.ID] = course
	}
	return index
}

func courseName(courses map[string]model.Course, id string) string {
	if course, ok := courses[id]; ok {
		return course.Name
	}
	return UnknownCourseName
}
