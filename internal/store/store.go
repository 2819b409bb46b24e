package store

import "fairway-app/internal/model"

// Store is the record store backing the app: four flat collections keyed by
// id, with no referential integrity between them. Deleting a player or a
// course leaves historical round references dangling on purpose; the stats
// engine resolves those to placeholders at read time.
type Store interface {
	ListPlayers() []model.Player
	GetPlayer(id string) (model.Player, bool)
	CreatePlayer(player model.Player) (model.Player, error)
	UpdatePlayer(player model.Player) error
	DeletePlayer(id string) error

	ListSeasons() []model.Season
	GetSeason(id string) (model.Season, bool)
	ActiveSeason() (model.Season, bool)
	CreateSeason(season model.Season) (model.Season, error)
	UpdateSeason(season model.Season) error
	DeleteSeason(id string) error

	ListCourses() []model.Course
	GetCourse(id string) (model.Course, bool)
	CreateCourse(course model.Course) (model.Course, error)
	UpdateCourse(course model.Course) error
	DeleteCourse(id string) error

	ListRounds() []model.Round
	ListSeasonRounds(seasonID string) []model.Round
	GetRound(id string) (model.Round, bool)
	CreateRound(round model.Round) (model.Round, error)
	UpdateRound(round model.Round) error
	DeleteRound(id string) error
}
