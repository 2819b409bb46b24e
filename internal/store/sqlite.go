package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fairway-app/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListPlayers() []model.Player {
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

func (s *SQLiteStore) GetPlayer(id string) (model.Player, bool) {
	row := s.db.QueryRow(`SELECT id, name, avatar_url, created_at FROM players WHERE id = ?`, id)
	player, err := scanPlayerRow(row)
	if err != nil {
		return model.Player{}, false
	}
	return player, true
}

func (s *SQLiteStore) CreatePlayer(player model.Player) (model.Player, error) {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if strings.TrimSpace(player.Name) == "" {
		return model.Player{}, errors.New("name is required")
	}
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO players (id, name, avatar_url, created_at) VALUES (?,?,?,?)`,
		player.ID, player.Name, player.AvatarURL, timeValueString(player.CreatedAt),
	)
	if err != nil {
		return model.Player{}, err
	}
	return player, nil
}

func (s *SQLiteStore) UpdatePlayer(player model.Player) error {
	if strings.TrimSpace(player.Name) == "" {
		return errors.New("name is required")
	}
	res, err := s.db.Exec(`UPDATE players SET name = ?, avatar_url = ?, created_at = ? WHERE id = ?`,
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

func (s *SQLiteStore) DeletePlayer(id string) error {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("player not found")
	}
	return nil
}

func (s *SQLiteStore) ListSeasons() []model.Season {
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

func (s *SQLiteStore) GetSeason(id string) (model.Season, bool) {
	row := s.db.QueryRow(`SELECT id, name, player_ids, status, created_at, completed_at FROM seasons WHERE id = ?`, id)
	season, err := scanSeasonRow(row)
	if err != nil {
		return model.Season{}, false
	}
	return season, true
}

func (s *SQLiteStore) ActiveSeason() (model.Season, bool) {
	row := s.db.QueryRow(`SELECT id, name, player_ids, status, created_at, completed_at FROM seasons WHERE status = ? LIMIT 1`, string(model.SeasonActive))
	season, err := scanSeasonRow(row)
	if err != nil {
		return model.Season{}, false
	}
	return season, true
}

func (s *SQLiteStore) CreateSeason(season model.Season) (model.Season, error) {
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
	_, err := s.db.Exec(`INSERT INTO seasons (id, name, player_ids, status, created_at, completed_at) VALUES (?,?,?,?,?,?)`,
		season.ID, season.Name, string(toJSON(season.PlayerIDs)), string(season.Status), timeValueString(season.CreatedAt), timePtrValueString(season.CompletedAt),
	)
	if err != nil {
		return model.Season{}, err
	}
	return season, nil
}

func (s *SQLiteStore) UpdateSeason(season model.Season) error {
	season.PlayerIDs = dedupeIDs(season.PlayerIDs)
	if season.Status == model.SeasonActive {
		if err := s.completeActiveSeasons(season.ID, time.Now()); err != nil {
			return err
		}
	}
	res, err := s.db.Exec(`UPDATE seasons SET name = ?, player_ids = ?, status = ?, created_at = ?, completed_at = ? WHERE id = ?`,
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

func (s *SQLiteStore) DeleteSeason(id string) error {
	res, err := s.db.Exec(`DELETE FROM seasons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("season not found")
	}
	return nil
}

func (s *SQLiteStore) completeActiveSeasons(keepID string, at time.Time) error {
	_, err := s.db.Exec(`UPDATE seasons SET status = ?, completed_at = ? WHERE status = ? AND id != ?`,
		string(model.SeasonCompleted), timeValueString(at), string(model.SeasonActive), keepID,
	)
	return err
}

func (s *SQLiteStore) ListCourses() []model.Course {
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

func (s *SQLiteStore) GetCourse(id string) (model.Course, bool) {
	row := s.db.QueryRow(`SELECT id, name, location, course_count, hole_count, created_at FROM courses WHERE id = ?`, id)
	course, err := scanCourseRow(row)
	if err != nil {
		return model.Course{}, false
	}
	return course, true
}

func (s *SQLiteStore) CreateCourse(course model.Course) (model.Course, error) {
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
	_, err := s.db.Exec(`INSERT INTO courses (id, name, location, course_count, hole_count, created_at) VALUES (?,?,?,?,?,?)`,
		course.ID, course.Name, course.Location, course.CourseCount, course.HoleCount, timeValueString(course.CreatedAt),
	)
	if err != nil {
		return model.Course{}, err
	}
	return course, nil
}

func (s *SQLiteStore) UpdateCourse(course model.Course) error {
	res, err := s.db.Exec(`UPDATE courses SET name = ?, location = ?, course_count = ?, hole_count = ?, created_at = ? WHERE id = ?`,
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

func (s *SQLiteStore) DeleteCourse(id string) error {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("course not found")
	}
	return nil
}

func (s *SQLiteStore) ListRounds() []model.Round {
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

func (s *SQLiteStore) ListSeasonRounds(seasonID string) []model.Round {
	rows, err := s.db.Query(`SELECT id, season_id, course_id, player_ids, holes_json, started_at, completed_at FROM rounds WHERE season_id = ?`, seasonID)
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

func (s *SQLiteStore) GetRound(id string) (model.Round, bool) {
	row := s.db.QueryRow(`SELECT id, season_id, course_id, player_ids, holes_json, started_at, completed_at FROM rounds WHERE id = ?`, id)
	round, err := scanRoundRow(row)
	if err != nil {
		return model.Round{}, false
	}
	return round, true
}

func (s *SQLiteStore) CreateRound(round model.Round) (model.Round, error) {
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
	_, err := s.db.Exec(`INSERT INTO rounds (id, season_id, course_id, player_ids, holes_json, started_at, completed_at) VALUES (?,?,?,?,?,?,?)`,
		round.ID, round.SeasonID, round.CourseID, string(toJSON(round.PlayerIDs)), string(toJSON(round.Holes)), timeValueString(round.StartedAt), timePtrValueString(round.CompletedAt),
	)
	if err != nil {
		return model.Round{}, err
	}
	return round, nil
}

func (s *SQLiteStore) UpdateRound(round model.Round) error {
	res, err := s.db.Exec(`UPDATE rounds SET season_id = ?, course_id = ?, player_ids = ?, holes_json = ?, started_at = ?, completed_at = ? WHERE id = ?`,
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

func (s *SQLiteStore) DeleteRound(id string) error {
	res, err := s.db.Exec(`DELETE FROM rounds WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("round not found")
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanPlayerRow(scanner rowScanner) (model.Player, error) {
	var player model.Player
	var createdAt sql.NullString
	if err := scanner.Scan(&player.ID, &player.Name, &player.AvatarURL, &createdAt); err != nil {
		return model.Player{}, err
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			player.CreatedAt = parsed
		}
	}
	return player, nil
}

func scanSeasonRow(scanner rowScanner) (model.Season, error) {
	var season model.Season
	var playerJSON sql.NullString
	var status string
	var createdAt, completedAt sql.NullString
	if err := scanner.Scan(&season.ID, &season.Name, &playerJSON, &status, &createdAt, &completedAt); err != nil {
		return model.Season{}, err
	}
	season.Status = model.SeasonStatus(status)
	if playerJSON.Valid && strings.TrimSpace(playerJSON.String) != "" {
		_ = json.Unmarshal([]byte(playerJSON.String), &season.PlayerIDs)
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			season.CreatedAt = parsed
		}
	}
	if completedAt.Valid {
		if parsed, ok := parseTimeString(completedAt.String); ok {
			season.CompletedAt = &parsed
		}
	}
	return season, nil
}

func scanCourseRow(scanner rowScanner) (model.Course, error) {
	var course model.Course
	var createdAt sql.NullString
	if err := scanner.Scan(&course.ID, &course.Name, &course.Location, &course.CourseCount, &course.HoleCount, &createdAt); err != nil {
		return model.Course{}, err
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			course.CreatedAt = parsed
		}
	}
	return course, nil
}

func scanRoundRow(scanner rowScanner) (model.Round, error) {
	var round model.Round
	var playerJSON, holesJSON sql.NullString
	var startedAt, completedAt sql.NullString
	if err := scanner.Scan(&round.ID, &round.SeasonID, &round.CourseID, &playerJSON, &holesJSON, &startedAt, &completedAt); err != nil {
		return model.Round{}, err
	}
	if playerJSON.Valid && strings.TrimSpace(playerJSON.String) != "" {
		_ = json.Unmarshal([]byte(playerJSON.String), &round.PlayerIDs)
	}
	if holesJSON.Valid && strings.TrimSpace(holesJSON.String) != "" {
		_ = json.Unmarshal([]byte(holesJSON.String), &round.Holes)
	}
	if round.Holes == nil {
		round.Holes = map[int]model.HoleResult{}
	}
	if startedAt.Valid {
		if parsed, ok := parseTimeString(startedAt.String); ok {
			round.StartedAt = parsed
		}
	}
	if completedAt.Valid {
		if parsed, ok := parseTimeString(completedAt.String); ok {
			round.CompletedAt = &parsed
		}
	}
	return round, nil
}

func toJSON(value any) []byte {
	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return data
}

func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func timePtrValueString(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
