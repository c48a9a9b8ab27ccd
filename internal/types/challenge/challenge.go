package challenge

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeSolo        Mode = "solo"
	ModeOneOnOne    Mode = "one-on-one"
	ModeMultiplayer Mode = "multiplayer"
)

// Capacity returns the participant limit for the mode. bounded is false
// for multiplayer challenges, which accept any number of participants.
func (m Mode) Capacity() (limit int, bounded bool) {
	switch m {
	case ModeSolo:
		return 1, true
	case ModeOneOnOne:
		return 2, true
	default:
		return 0, false
	}
}

func (m Mode) Valid() bool {
	switch m {
	case ModeSolo, ModeOneOnOne, ModeMultiplayer:
		return true
	}
	return false
}

type Requirement struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type Habit struct {
	HabitID     string      `json:"habit_id"`
	Requirement Requirement `json:"requirement"`
}

type Challenge struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Duration       int         `json:"duration" db:"duration"`
	StartDate      time.Time   `json:"start_date" db:"start_date"`
	EndDate        time.Time   `json:"end_date" db:"end_date"`
	Mode           Mode        `json:"mode" db:"mode"`
	Habits         []Habit     `json:"habits" db:"habits"`
	ParticipantIDs []uuid.UUID `json:"participant_ids" db:"participant_ids"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// IsActiveOn reports whether the calendar day containing t falls inside
// the challenge window. The end date is exclusive: a challenge starting
// on day D with duration N runs on days D .. D+N-1.
func (c *Challenge) IsActiveOn(t time.Time) bool {
	day := StartOfDay(t)
	return !day.Before(StartOfDay(c.StartDate)) && day.Before(StartOfDay(c.EndDate))
}

func (c *Challenge) HasParticipant(userID uuid.UUID) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// EndDate derives the exclusive end of a challenge window.
func EndDate(start time.Time, duration int) time.Time {
	return StartOfDay(start).AddDate(0, 0, duration)
}

// StartOfDay strips the time-of-day component, keeping the location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type CreateChallengeRequest struct {
	Duration  int     `json:"duration" validate:"required"`
	StartDate string  `json:"start_date" validate:"required"`
	Mode      Mode    `json:"mode" validate:"required"`
	Habits    []Habit `json:"habits" validate:"required"`
}

func (r *CreateChallengeRequest) Validate() error {
	if r.Duration < 1 {
		return fmt.Errorf("duration must be at least 1 day")
	}
	if _, err := r.ParseStartDate(); err != nil {
		return err
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("mode must be one of solo, one-on-one, multiplayer")
	}
	if len(r.Habits) < 1 || len(r.Habits) > 7 {
		return fmt.Errorf("a challenge needs between 1 and 7 habits")
	}
	for _, h := range r.Habits {
		if h.HabitID == "" {
			return fmt.Errorf("habit_id is required")
		}
		if h.Requirement.Type == "" {
			return fmt.Errorf("requirement type is required")
		}
		if h.Requirement.Value < 1 {
			return fmt.Errorf("requirement value must be at least 1")
		}
	}
	return nil
}

// ParseStartDate accepts a date-only string or a full RFC 3339 timestamp.
func (r *CreateChallengeRequest) ParseStartDate() (time.Time, error) {
	if t, err := time.Parse("2006-01-02", r.StartDate); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("start_date must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}
