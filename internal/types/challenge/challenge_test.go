package challenge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateChallengeRequest {
	return CreateChallengeRequest{
		Duration:  3,
		StartDate: "2026-09-01",
		Mode:      ModeSolo,
		Habits: []Habit{
			{HabitID: "sleep", Requirement: Requirement{Type: "hours", Value: 8}},
		},
	}
}

func TestModeCapacity(t *testing.T) {
	limit, bounded := ModeSolo.Capacity()
	assert.True(t, bounded)
	assert.Equal(t, 1, limit)

	limit, bounded = ModeOneOnOne.Capacity()
	assert.True(t, bounded)
	assert.Equal(t, 2, limit)

	_, bounded = ModeMultiplayer.Capacity()
	assert.False(t, bounded)
}

func TestCreateChallengeRequestValidate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	req = validRequest()
	req.Duration = 0
	assert.Error(t, req.Validate())

	req = validRequest()
	req.StartDate = "not-a-date"
	assert.Error(t, req.Validate())

	req = validRequest()
	req.Mode = "duo"
	assert.Error(t, req.Validate())

	req = validRequest()
	req.Habits = nil
	assert.Error(t, req.Validate())

	req = validRequest()
	for i := 0; i < 8; i++ {
		req.Habits = append(req.Habits, Habit{HabitID: "water", Requirement: Requirement{Type: "liters", Value: 2}})
	}
	assert.Error(t, req.Validate(), "more than 7 habits must be rejected")

	req = validRequest()
	req.Habits[0].Requirement.Value = 0
	assert.Error(t, req.Validate())

	req = validRequest()
	req.Habits[0].HabitID = ""
	assert.Error(t, req.Validate())
}

func TestParseStartDateFormats(t *testing.T) {
	req := validRequest()

	parsed, err := req.ParseStartDate()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", parsed.Format("2006-01-02"))

	req.StartDate = "2026-09-01T10:30:00Z"
	parsed, err = req.ParseStartDate()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", parsed.Format("2006-01-02"))
}

func TestEndDateIsExclusive(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := EndDate(start, 3)
	assert.Equal(t, "2026-09-04", end.Format("2006-01-02"))

	c := Challenge{StartDate: start, EndDate: end}
	assert.False(t, c.IsActiveOn(start.AddDate(0, 0, -1)))
	assert.True(t, c.IsActiveOn(start))
	assert.True(t, c.IsActiveOn(start.AddDate(0, 0, 2)))
	assert.False(t, c.IsActiveOn(end), "end date is not an active day")
}

func TestIsActiveOnIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	c := Challenge{StartDate: start, EndDate: EndDate(start, 1)}

	assert.True(t, c.IsActiveOn(time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC)))
	assert.False(t, c.IsActiveOn(time.Date(2026, 9, 2, 0, 0, 1, 0, time.UTC)))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 9, 1, 17, 42, 3, 999, time.UTC)
	day := StartOfDay(ts)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), day)
}
