package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fairway-app/internal/model"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	MigrationsDir string
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/postgres"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ListPlayers() []model.Player {
	rows, err := s.db.Query(`SELECT id, name, avatar_url, created_at FROM players`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		player, err := scanPlayerRow(rows)
		if err != nil {
			continue
		}
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].CreatedAt.Before(players[j].CreatedAt) })
	return players
}

func (s *PostgresStore) GetPlayer(id string) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, avatar_url, created_at FROM players WHERE id = $1`, id)
	player, err := scanPlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return player, true
}

func (s *PostgresStore) CreatePlayer(player model.Player) (model.Player, error) {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if strings.TrimSpace(player.Name) == "" {
		return model.Player{}, errors.New("name is required")
	}
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO players (id, name, avatar_url, created_at) VALUES ($1,$2,$3,$4)`,
		player.ID, player.Name, player.AvatarURL, timeValueString(player.CreatedAt),
	)
	if err != nil {
		return model.Player{}, err
	}
	return player, nil
}

func (s *PostgresStore) UpdatePlayer(player model.Player) error {
	if strings.TrimSpace(player.Name) == "" {
		return errors.New("name is required")
	}
	res, err := s.db.Exec(`UPDATE players SET name = $1, avatar_url = $2, created_at = $3 WHERE id = $4`,
		player.Name, player.AvatarURL, timeValueString(player.CreatedAt), player.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("player not found")
	}
	return nil
}

func (s *PostgresStore) DeletePlayer(id string) error {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("player not found")
	}
	return nil
}

func (s *PostgresStore) ListSeasons() []model.Season {
	rows, err := s.db.Query(`SELECT id, name, player_ids, status, created_at, completed_at FROM seasons`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	seasons := []model.Season{}
	for rows.Next() {
		season, err := scanSeasonRow(rows)
		if err != nil {
			continue
		}
		seasons = append(seasons, season)
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i].CreatedAt.After(seasons[j].CreatedAt) })
	return seasons
}

func (s *PostgresStore) GetSeason(id string) (model.Season, bool) {
	row := s.db.QueryRow(`SELECT id, name, player_ids, status, created_at, completed_at FROM seasons WHERE id = $1`, id)
	season, err := scanSeasonRow(row)
	if err != nil {
		return model.Season{}, false
	}
	return season, true
}

func (s *PostgresStore) ActiveSeason() (model.Season, bool) {
	row := s.db.QueryRow(`SELECT id, name, player_ids, status, created_at, completed_at FROM seasons WHERE status = $1 LIMIT 1`, string(model.SeasonActive))
	season, err := scanSeasonRow(row)
	if err != nil {
		return model.Season{}, false
	}
	return season, true
}

func (s *PostgresStore) CreateSeason(season model.Season) (model.Season, error) {
	if season.ID == "" {
		season.ID = uuid.NewString()
	}
	if strings.TrimSpace(season.Name) == "" {
		return model.Season{}, errors.New("name is required")
	}
	if season.Status == "" {
		season.Status = model.SeasonActive
	}
	if season.CreatedAt.IsZero() {
		season.CreatedAt = time.Now()
	}
	season.PlayerIDs = dedupeIDs(season.PlayerIDs)
	if season.Status == model.SeasonActive {
		if err := s.completeActiveSeasons("", season.CreatedAt); err != nil {
			return model.Season{}, err
		}
	}
	_, err := s.db.Exec(`INSERT INTO seasons (id, name, player_ids, status, created_at, completed_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		season.ID, season.Name, string(toJSON(season.PlayerIDs)), string(season.Status), timeValueString(season.CreatedAt), timePtrValueString(season.CompletedAt),
	)
	if err != nil {
		return model.Season{}, err
	}
	return season, nil
}

func (s *PostgresStore) UpdateSeason(season model.Season) error {
	season.PlayerIDs = dedupeIDs(season.PlayerIDs)
	if season.Status == model.SeasonActive {
		if err := s.completeActiveSeasons(season.ID, time.Now()); err != nil {
			return err
		}
	}
	res, err := s.db.Exec(`UPDATE seasons SET name = $1, player_ids = $2, status = $3, created_at = $4, completed_at = $5 WHERE id = $6`,
		season.Name, string(toJSON(season.PlayerIDs)), string(season.Status), timeValueString(season.CreatedAt), timePtrValueString(season.CompletedAt), season.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("season not found")
	}
	return nil
}

func (s *PostgresStore) DeleteSeason(id string) error {
	res, err := s.db.Exec(`DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("season not found")
	}
	return nil
}

func (s *PostgresStore) completeActiveSeasons(keepID string, at time.Time) error {
	_, err := s.db.Exec(`UPDATE seasons SET status = $1, completed_at = $2 WHERE status = $3 AND id != $4`,
		string(model.SeasonCompleted), timeValueString(at), string(model.SeasonActive), keepID,
	)
	return err
}

func (s *PostgresStore) ListCourses() []model.Course {
	rows, err := s.db.Query(`SELECT id, name, location, course_count, hole_count, created_at FROM courses`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		course, err := scanCourseRow(rows)
		if err != nil {
			continue
		}
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CreatedAt.Before(courses[j].CreatedAt) })
	return courses
}

func (s *PostgresStore) GetCourse(id string) (model.Course, bool) {
	row := s.db.QueryRow(`SELECT id, name, location, course_count, hole_count, created_at FROM courses WHERE id = $1`, id)
	course, err := scanCourseRow(row)
	if err != nil {
		return model.Course{}, false
	}
	return course, true
}

func (s *PostgresStore) CreateCourse(course model.Course) (model.Course, error) {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if strings.TrimSpace(course.Name) == "" {
		return model.Course{}, errors.New("name is required")
	}
	if course.HoleCount < 1 {
		course.HoleCount = 18
	}
	if course.CourseCount < 1 {
		course.CourseCount = 1
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO courses (id, name, location, course_count, hole_count, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		course.ID, course.Name, course.Location, course.CourseCount, course.HoleCount, timeValueString(course.CreatedAt),
	)
	if err != nil {
		return model.Course{}, err
	}
	return course, nil
}

func (s *PostgresStore) UpdateCourse(course model.Course) error {
	res, err := s.db.Exec(`UPDATE courses SET name = $1, location = $2, course_count = $3, hole_count = $4, created_at = $5 WHERE id = $6`,
		course.Name, course.Location, course.CourseCount, course.HoleCount, timeValueString(course.CreatedAt), course.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("course not found")
	}
	return nil
}

func (s *PostgresStore) DeleteCourse(id string) error {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("course not found")
	}
	return nil
}

func (s *PostgresStore) ListRounds() []model.Round {
	rows, err := s.db.Query(`SELECT id, season_id, course_id, player_ids, holes_json, started_at, completed_at FROM rounds`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	rounds := []model.Round{}
	for rows.Next() {
		round, err := scanRoundRow(rows)
		if err != nil {
			continue
		}
		rounds = append(rounds, round)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].StartedAt.After(rounds[j].StartedAt) })
	return rounds
}

func (s *PostgresStore) ListSeasonRounds(seasonID string) []model.Round {
	rows, err := s.db.Query(`SELECT id, season_id, course_id, player_ids, holes_json, started_at, completed_at FROM rounds WHERE season_id = $1`, seasonID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	rounds := []model.Round{}
	for rows.Next() {
		round, err := scanRoundRow(rows)
		if err != nil {
			continue
		}
		rounds = append(rounds, round)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].StartedAt.After(rounds[j].StartedAt) })
	return rounds
}

func (s *PostgresStore) GetRound(id string) (model.Round, bool) {
	row := s.db.QueryRow(`SELECT id, season_id, course_id, player_ids, holes_json, started_at, completed_at FROM rounds WHERE id = $1`, id)
	round, err := scanRoundRow(row)
	if err != nil {
		return model.Round{}, false
	}
	return round, true
}

func (s *PostgresStore) CreateRound(round model.Round) (model.Round, error) {
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if len(round.PlayerIDs) == 0 {
		return model.Round{}, errors.New("at least one player is required")
	}
	round.PlayerIDs = dedupeIDs(round.PlayerIDs)
	if round.Holes == nil {
		round.Holes = map[int]model.HoleResult{}
	}
	if round.StartedAt.IsZero() {
		round.StartedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO rounds (id, season_id, course_id, player_ids, holes_json, started_at, completed_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		round.ID, round.SeasonID, round.CourseID, string(toJSON(round.PlayerIDs)), string(toJSON(round.Holes)), timeValueString(round.StartedAt), timePtrValueString(round.CompletedAt),
	)
	if err != nil {
		return model.Round{}, err
	}
	return round, nil
}

func (s *PostgresStore) UpdateRound(round model.Round) error {
	res, err := s.db.Exec(`UPDATE rounds SET season_id = $1, course_id = $2, player_ids = $3, holes_json = $4, started_at = $5, completed_at = $6 WHERE id = $7`,
		round.SeasonID, round.CourseID, string(toJSON(round.PlayerIDs)), string(toJSON(round.Holes)), timeValueString(round.StartedAt), timePtrValueString(round.CompletedAt), round.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("round not found")
	}
	return nil
}

func (s *PostgresStore) DeleteRound(id string) error {
	res, err := s.db.Exec(`DELETE FROM rounds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("round not found")
	}
	return nil
}
