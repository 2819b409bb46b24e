package store

import (
	"sync"
	"testing"
	"time"

	"fairway-app/internal/model"
)

func emptyStore(t *testing.T) *MemoryStore {
	t.Helper()
	t.Setenv("APP", "prod")
	return NewMemoryStore()
}

func TestSeedSkippedInProd(t *testing.T) {
	s := emptyStore(t)
	if len(s.ListPlayers()) != 0 || len(s.ListSeasons()) != 0 {
		t.Fatal("prod store should start empty")
	}
}

func TestSeedDataHasSingleActiveSeason(t *testing.T) {
	t.Setenv("APP", "")
	s := NewMemoryStore()
	if len(s.ListPlayers()) == 0 || len(s.ListRounds()) == 0 {
		t.Fatal("dev store should come pre-seeded")
	}
	active := 0
	for _, season := range s.ListSeasons() {
		if season.Status == model.SeasonActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("active seasons = %d, want 1", active)
	}
}

func TestCreatePlayerDefaults(t *testing.T) {
	s := emptyStore(t)
	player, err := s.CreatePlayer(model.Player{Name: "Ala"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if player.ID == "" || player.CreatedAt.IsZero() {
		t.Fatalf("defaults not applied: %+v", player)
	}
	if _, err := s.CreatePlayer(model.Player{Name: "   "}); err == nil {
		t.Fatal("blank name should be rejected")
	}
}

func TestCreateSeasonCompletesPreviousActive(t *testing.T) {
	s := emptyStore(t)
	first, err := s.CreateSeason(model.Season{Name: "Spring League"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.CreateSeason(model.Season{Name: "Summer League"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	active, ok := s.ActiveSeason()
	if !ok || active.ID != second.ID {
		t.Fatalf("active season = %+v, want %s", active, second.ID)
	}
	got, _ := s.GetSeason(first.ID)
	if got.Status != model.SeasonCompleted || got.CompletedAt == nil {
		t.Fatalf("previous season not completed: %+v", got)
	}
}

func TestUpdateSeasonKeepsSingleActive(t *testing.T) {
	s := emptyStore(t)
	first, _ := s.CreateSeason(model.Season{Name: "Spring League"})
	second, _ := s.CreateSeason(model.Season{Name: "Summer League"})

	reopened, _ := s.GetSeason(first.ID)
	reopened.Status = model.SeasonActive
	reopened.CompletedAt = nil
	if err := s.UpdateSeason(reopened); err != nil {
		t.Fatalf("update: %v", err)
	}

	active, ok := s.ActiveSeason()
	if !ok || active.ID != first.ID {
		t.Fatalf("active season = %+v, want %s", active, first.ID)
	}
	got, _ := s.GetSeason(second.ID)
	if got.Status != model.SeasonCompleted {
		t.Fatalf("demoted season still active: %+v", got)
	}
}

func TestCreateSeasonDedupesMembers(t *testing.T) {
	s := emptyStore(t)
	season, err := s.CreateSeason(model.Season{Name: "Summer League", PlayerIDs: []string{"p1", "p1", "", "p2"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(season.PlayerIDs) != 2 || season.PlayerIDs[0] != "p1" || season.PlayerIDs[1] != "p2" {
		t.Fatalf("members = %v", season.PlayerIDs)
	}
}

func TestCreateRoundValidation(t *testing.T) {
	s := emptyStore(t)
	if _, err := s.CreateRound(model.Round{SeasonID: "s1"}); err == nil {
		t.Fatal("round without players should be rejected")
	}
	round, err := s.CreateRound(model.Round{SeasonID: "s1", PlayerIDs: []string{"p1", "p1", "p2"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(round.PlayerIDs) != 2 {
		t.Fatalf("participants not deduped: %v", round.PlayerIDs)
	}
	if round.Holes == nil {
		t.Fatal("holes map should be initialized")
	}
}

func TestDeletePlayerKeepsRoundHistory(t *testing.T) {
	s := emptyStore(t)
	player, _ := s.CreatePlayer(model.Player{Name: "Ala"})
	round, _ := s.CreateRound(model.Round{
		SeasonID:  "s1",
		PlayerIDs: []string{player.ID},
		Holes:     map[int]model.HoleResult{1: {Hole: 1, WinnerIDs: []string{player.ID}}},
		StartedAt: time.Now(),
	})

	if err := s.DeletePlayer(player.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.GetPlayer(player.ID); ok {
		t.Fatal("player should be gone")
	}
	kept, ok := s.GetRound(round.ID)
	if !ok {
		t.Fatal("round should survive the player deletion")
	}
	if len(kept.PlayerIDs) != 1 || kept.PlayerIDs[0] != player.ID {
		t.Fatalf("round lost its dangling reference: %v", kept.PlayerIDs)
	}
}

func TestRoundHolesDoNotLeakStoreState(t *testing.T) {
	s := emptyStore(t)
	round, _ := s.CreateRound(model.Round{
		SeasonID:  "s1",
		PlayerIDs: []string{"p1"},
		Holes:     map[int]model.HoleResult{1: {Hole: 1, WinnerIDs: []string{"p1"}}},
	})

	fetched, _ := s.GetRound(round.ID)
	fetched.Holes[2] = model.HoleResult{Hole: 2, WinnerIDs: []string{"p1"}}

	again, _ := s.GetRound(round.ID)
	if len(again.Holes) != 1 {
		t.Fatalf("mutating a fetched round changed the store: %+v", again.Holes)
	}

	listed := s.ListRounds()
	listed[0].Holes[3] = model.HoleResult{Hole: 3}
	again, _ = s.GetRound(round.ID)
	if len(again.Holes) != 1 {
		t.Fatalf("mutating a listed round changed the store: %+v", again.Holes)
	}
}

func TestConcurrentHoleRecordingAndListing(t *testing.T) {
	s := emptyStore(t)
	round, _ := s.CreateRound(model.Round{
		SeasonID:  "s1",
		PlayerIDs: []string{"p1"},
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for hole := 1; hole <= 50; hole++ {
			current, _ := s.GetRound(round.ID)
			current.Holes[hole] = model.HoleResult{Hole: hole, WinnerIDs: []string{"p1"}}
			if err := s.UpdateRound(current); err != nil {
				t.Errorf("update: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			for _, r := range s.ListRounds() {
				for range r.Holes {
				}
			}
		}
	}()
	wg.Wait()
}

func TestListSeasonRounds(t *testing.T) {
	s := emptyStore(t)
	_, _ = s.CreateRound(model.Round{SeasonID: "s1", PlayerIDs: []string{"p1"}})
	_, _ = s.CreateRound(model.Round{SeasonID: "s2", PlayerIDs: []string{"p1"}})

	rounds := s.ListSeasonRounds("s1")
	if len(rounds) != 1 || rounds[0].SeasonID != "s1" {
		t.Fatalf("rounds = %+v", rounds)
	}
}
