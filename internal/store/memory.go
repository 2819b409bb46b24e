package store

import (
	"errors"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"fairway-app/internal/model"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]model.Player
	seasons map[string]model.Season
	courses map[string]model.Course
	rounds  map[string]model.Round
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		players: make(map[string]model.Player),
		seasons: make(map[string]model.Season),
		courses: make(map[string]model.Course),
		rounds:  make(map[string]model.Round),
	}
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP"))) != "prod" {
		seedData(s)
	}

	return s
}

func (s *MemoryStore) ListPlayers() []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].CreatedAt.Before(players[j].CreatedAt) })
	return players
}

func (s *MemoryStore) GetPlayer(id string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	return p, ok
}

func (s *MemoryStore) CreatePlayer(player model.Player) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if strings.TrimSpace(player.Name) == "" {
		return model.Player{}, errors.New("name is required")
	}
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now()
	}
	s.players[player.ID] = player
	return player, nil
}

func (s *MemoryStore) UpdatePlayer(player model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; !ok {
		return errors.New("player not found")
	}
	if strings.TrimSpace(player.Name) == "" {
		return errors.New("name is required")
	}
	s.players[player.ID] = player
	return nil
}

// DeletePlayer removes the player from the roster only. Rounds and season
// member lists keep their references; lookups resolve them as unknown.
func (s *MemoryStore) DeletePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return errors.New("player not found")
	}
	delete(s.players, id)
	return nil
}

func (s *MemoryStore) ListSeasons() []model.Season {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seasons := make([]model.Season, 0, len(s.seasons))
	for _, season := range s.seasons {
		seasons = append(seasons, season)
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i].CreatedAt.After(seasons[j].CreatedAt) })
	return seasons
}

func (s *MemoryStore) GetSeason(id string) (model.Season, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	season, ok := s.seasons[id]
	return season, ok
}

func (s *MemoryStore) ActiveSeason() (model.Season, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, season := range s.seasons {
		if season.Status == model.SeasonActive {
			return season, true
		}
	}
	return model.Season{}, false
}

func (s *MemoryStore) CreateSeason(season model.Season) (model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
		s.completeActiveSeason(season.CreatedAt)
	}
	s.seasons[season.ID] = season
	return season, nil
}

func (s *MemoryStore) UpdateSeason(season model.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seasons[season.ID]; !ok {
		return errors.New("season not found")
	}
	season.PlayerIDs = dedupeIDs(season.PlayerIDs)
	if season.Status == model.SeasonActive {
		s.completeActiveSeasonExcept(season.ID, time.Now())
	}
	s.seasons[season.ID] = season
	return nil
}

func (s *MemoryStore) DeleteSeason(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seasons[id]; !ok {
		return errors.New("season not found")
	}
	delete(s.seasons, id)
	return nil
}

func (s *MemoryStore) ListCourses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CreatedAt.Before(courses[j].CreatedAt) })
	return courses
}

func (s *MemoryStore) GetCourse(id string) (model.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	return c, ok
}

func (s *MemoryStore) CreateCourse(course model.Course) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	s.courses[course.ID] = course
	return course, nil
}

func (s *MemoryStore) UpdateCourse(course model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[course.ID]; !ok {
		return errors.New("course not found")
	}
	s.courses[course.ID] = course
	return nil
}

func (s *MemoryStore) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return errors.New("course not found")
	}
	delete(s.courses, id)
	return nil
}

func (s *MemoryStore) ListRounds() []model.Round {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rounds := make([]model.Round, 0, len(s.rounds))
	for _, r := range s.rounds {
		r.Holes = cloneHoles(r.Holes)
		rounds = append(rounds, r)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].StartedAt.After(rounds[j].StartedAt) })
	return rounds
}

func (s *MemoryStore) ListSeasonRounds(seasonID string) []model.Round {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rounds := make([]model.Round, 0)
	for _, r := range s.rounds {
		if r.SeasonID == seasonID {
			r.Holes = cloneHoles(r.Holes)
			rounds = append(rounds, r)
		}
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].StartedAt.After(rounds[j].StartedAt) })
	return rounds
}

func (s *MemoryStore) GetRound(id string) (model.Round, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rounds[id]
	if ok {
		r.Holes = cloneHoles(r.Holes)
	}
	return r, ok
}

func (s *MemoryStore) CreateRound(round model.Round) (model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if len(round.PlayerIDs) == 0 {
		return model.Round{}, errors.New("at least one player is required")
	}
	round.PlayerIDs = dedupeIDs(round.PlayerIDs)
	round.Holes = cloneHoles(round.Holes)
	if round.StartedAt.IsZero() {
		round.StartedAt = time.Now()
	}
	stored := round
	stored.Holes = cloneHoles(round.Holes)
	s.rounds[round.ID] = stored
	return round, nil
}

func (s *MemoryStore) UpdateRound(round model.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rounds[round.ID]; !ok {
		return errors.New("round not found")
	}
	round.Holes = cloneHoles(round.Holes)
	s.rounds[round.ID] = round
	return nil
}

func (s *MemoryStore) DeleteRound(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rounds[id]; !ok {
		return errors.New("round not found")
	}
	delete(s.rounds, id)
	return nil
}

// completeActiveSeason keeps the "at most one active season" rule: whoever
// was active gets completed before a new active season lands.
func (s *MemoryStore) completeActiveSeason(at time.Time) {
	s.completeActiveSeasonExcept("", at)
}

func (s *MemoryStore) completeActiveSeasonExcept(keepID string, at time.Time) {
	for id, season := range s.seasons {
		if id == keepID || season.Status != model.SeasonActive {
			continue
		}
		season.Status = model.SeasonCompleted
		completed := at
		season.CompletedAt = &completed
		s.seasons[id] = season
	}
}

// cloneHoles keeps callers and the store from sharing one holes map: rounds
// cross the store boundary by value, never by reference.
func cloneHoles(holes map[int]model.HoleResult) map[int]model.HoleResult {
	cloned := make(map[int]model.HoleResult, len(holes))
	for number, result := range holes {
		cloned[number] = result
	}
	return cloned
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(7))
	now := time.Now()

	names := []string{"Marek Kowalski", "Ania Lewicka", "Tomek Duda", "Ola Szulc", "Piotr Gajda", "Kasia Bielak", "Janek Mazur", "Ewa Sikora"}
	players := make([]model.Player, 0, len(names))
	for i, name := range names {
		player := model.Player{
			ID:        uuid.NewString(),
			Name:      name,
			AvatarURL: "https://i.pravatar.cc/100?img=" + strconv.Itoa(20+i),
			CreatedAt: now.AddDate(0, 0, -120+i),
		}
		s.players[player.ID] = player
		players = append(players, player)
	}

	courseDefs := []struct {
		Name, Location string
		Holes          int
	}{
		{"Pirate Cove", "Gdańsk Marina", 18},
		{"Windmill Park", "Sopot Pier", 12},
		{"Jungle Falls", "Gdynia Centrum", 18},
	}
	courses := make([]model.Course, 0, len(courseDefs))
	for i, def := range courseDefs {
		course := model.Course{
			ID:          uuid.NewString(),
			Name:        def.Name,
			Location:    def.Location,
			CourseCount: 1 + rng.Intn(2),
			HoleCount:   def.Holes,
			CreatedAt:   now.AddDate(0, 0, -110+i),
		}
		s.courses[course.ID] = course
		courses = append(courses, course)
	}

	memberIDs := make([]string, 0, len(players))
	for _, p := range players {
		memberIDs = append(memberIDs, p.ID)
	}

	lastYearEnd := now.AddDate(0, -2, 0)
	lastSeason := model.Season{
		ID:          uuid.NewString(),
		Name:        "Spring League",
		PlayerIDs:   append([]string{}, memberIDs[:6]...),
		Status:      model.SeasonCompleted,
		CreatedAt:   now.AddDate(0, -8, 0),
		CompletedAt: &lastYearEnd,
	}
	s.seasons[lastSeason.ID] = lastSeason

	currentSeason := model.Season{
		ID:        uuid.NewString(),
		Name:      "Summer League",
		PlayerIDs: append([]string{}, memberIDs...),
		Status:    model.SeasonActive,
		CreatedAt: now.AddDate(0, -2, 0),
	}
	s.seasons[currentSeason.ID] = currentSeason

	seedRounds(s, lastSeason, courses, rng, 8, true)
	seedRounds(s, currentSeason, courses, rng, 6, true)
	seedRounds(s, currentSeason, courses, rng, 1, false)
}

func seedRounds(s *MemoryStore, season model.Season, courses []model.Course, rng *rand.Rand, count int, completed bool) {
	if len(season.PlayerIDs) < 2 || len(courses) == 0 {
		return
	}
	for i := 0; i < count; i++ {
		course := courses[rng.Intn(len(courses))]
		participants := pickPlayerIDs(season.PlayerIDs, rng, 2+rng.Intn(3))
		startedAt := season.CreatedAt.AddDate(0, 0, 3+i*7)
		holes := map[int]model.HoleResult{}
		for hole := 1; hole <= course.HoleCount; hole++ {
			if !completed && hole > course.HoleCount/2 {
				break
			}
			result := model.HoleResult{Hole: hole}
			if rng.Intn(10) > 0 {
				result.WinnerIDs = []string{participants[rng.Intn(len(participants))]}
				if rng.Intn(4) == 0 {
					result.WinnerIDs = append(result.WinnerIDs, participants[rng.Intn(len(participants))])
					result.WinnerIDs = dedupeIDs(result.WinnerIDs)
				}
			}
			if rng.Intn(12) == 0 {
				result.AceIDs = []string{participants[rng.Intn(len(participants))]}
			}
			holes[hole] = result
		}
		round := model.Round{
			ID:        uuid.NewString(),
			SeasonID:  season.ID,
			CourseID:  course.ID,
			PlayerIDs: participants,
			Holes:     holes,
			StartedAt: startedAt,
		}
		if completed {
			finished := startedAt.Add(2 * time.Hour)
			round.CompletedAt = &finished
		}
		s.rounds[round.ID] = round
	}
}

func pickPlayerIDs(ids []string, rng *rand.Rand, count int) []string {
	if count > len(ids) {
		count = len(ids)
	}
	shuffled := append([]string{}, ids...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return append([]string{}, shuffled[:count]...)
}
