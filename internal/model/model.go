package model

import (
	"strings"
	"time"
)

type SeasonStatus string

const (
	SeasonActive    SeasonStatus = "active"
	SeasonCompleted SeasonStatus = "completed"
)

type Player struct {
	ID        string
	Name      string
	AvatarURL string
	CreatedAt time.Time
}

func (p Player) DisplayName() string {
	return strings.TrimSpace(p.Name)
}

type Season struct {
	ID          string
	Name        string
	PlayerIDs   []string
	Status      SeasonStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (s Season) HasPlayer(playerID string) bool {
	for _, id := range s.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

type Course struct {
	ID          string
	Name        string
	Location    string
	CourseCount int
	HoleCount   int
	CreatedAt   time.Time
}

// HoleResult is the recorded outcome of a single hole within a round.
// Ties are allowed (multiple winners), as is no winner at all. Aces are
// tracked separately from wins: a player can ace a hole without winning it.
type HoleResult struct {
	Hole      int
	WinnerIDs []string
	AceIDs    []string
}

// Round is one play-through of a course by a set of players within a season.
// Holes is sparse: only holes that have been recorded appear, keyed by hole
// number, and the keys need not be contiguous. A round with a nil CompletedAt
// is still in progress.
type Round struct {
	ID          string
	SeasonID    string
	CourseID    string
	PlayerIDs   []string
	Holes       map[int]HoleResult
	StartedAt   time.Time
	CompletedAt *time.Time
}

func (r Round) Completed() bool {
	return r.CompletedAt != nil
}

func (r Round) HasPlayer(playerID string) bool {
	for _, id := range r.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}
