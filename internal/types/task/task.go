package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ChallengeID uuid.UUID  `json:"challenge_id" db:"challenge_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	HabitID     string     `json:"habit_id" db:"habit_id"`
	Date        time.Time  `json:"date" db:"date"`
	Points      int        `json:"points" db:"points"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type DailyCompletionResponse struct {
	Date time.Time `json:"date"`
	Done bool      `json:"done"`
}
