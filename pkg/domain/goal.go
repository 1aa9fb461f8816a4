package domain

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a savings target with a deadline. CurrentAmount only moves through
// AddProgress so completion flips exactly once.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Description   string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
	IsCompleted   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddProgress increments the saved amount and marks the goal completed when
// the target is reached. Returns true when this call completed the goal.
func (g *Goal) AddProgress(amount float64) bool {
	g.CurrentAmount += amount
	if !g.IsCompleted && g.CurrentAmount >= g.TargetAmount {
		g.IsCompleted = true
		return true
	}
	return false
}

// Remaining returns the amount still to save, never negative.
func (g *Goal) Remaining() float64 {
	r := g.TargetAmount - g.CurrentAmount
	if r < 0 {
		return 0
	}
	return r
}
