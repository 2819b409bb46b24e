package web

import (
	"fairway-app/internal/model"
	"fairway-app/internal/stats"
)

type BaseView struct {
	Title        string
	ActiveSeason *model.Season
	FlashSuccess string
}

type HomeView struct {
	BaseView
	Seasons      []model.Season
	SeasonFilter string
	Standings    []stats.PlayerStanding
	RecentRounds []RoundListItem
}

type PlayersView struct {
	BaseView
	Standings []stats.PlayerStanding
}

type PlayerView struct {
	BaseView
	Standing stats.PlayerStanding
}

type SeasonsView struct {
	BaseView
	Standings []stats.SeasonStanding
	Players   []model.Player
}

type SeasonView struct {
	BaseView
	Standing stats.SeasonStanding
	Rounds   []RoundListItem
}

type CoursesView struct {
	BaseView
	Standings []stats.CourseStanding
}

type CourseView struct {
	BaseView
	Standing stats.CourseStanding
	Rounds   []RoundListItem
}

type RoundNewView struct {
	BaseView
	Season  model.Season
	Courses []model.Course
	Players []model.Player
}

type RoundShowView struct {
	BaseView
	Round      model.Round
	SeasonName string
	CourseName string
	Players    []model.Player
	Holes      []HoleRow
	Scores     []RoundScoreEntry
}

type HoleRow struct {
	Number      int
	Recorded    bool
	WinnerNames []string
	AceNames    []string
}

type RoundScoreEntry struct {
	Player model.Player
	Score  int
	Aces   int
}

type RoundListItem struct {
	Round       model.Round
	SeasonName  string
	CourseName  string
	PlayerNames []string
	StatusText  string
}
