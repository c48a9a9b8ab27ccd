package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitClashAPI/internal/apperrors"
	"habitClashAPI/internal/types/challenge"
)

type ChallengeService struct {
	db          *pgxpool.Pool
	taskService *TaskService
}

func NewChallengeService(db *pgxpool.Pool, taskService *TaskService) *ChallengeService {
	return &ChallengeService{
		db:          db,
		taskService: taskService,
	}
}

func (s *ChallengeService) CreateChallenge(ctx context.Context, req *challenge.CreateChallengeRequest) (*challenge.Challenge, error) {
	start, err := req.ParseStartDate()
	if err != nil {
		return nil, err
	}
	start = challenge.StartOfDay(start)
	end := challenge.EndDate(start, req.Duration)

	query := `
		INSERT INTO challenges (duration, start_date, end_date, mode, habits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	c := challenge.Challenge{
		Duration:       req.Duration,
		StartDate:      start,
		EndDate:        end,
		Mode:           req.Mode,
		Habits:         req.Habits,
		ParticipantIDs: []uuid.UUID{},
	}
	err = s.db.QueryRow(ctx, query, req.Duration, start, end, req.Mode, req.Habits).Scan(
		&c.ID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	return &c, nil
}

func (s *ChallengeService) GetChallenge(ctx context.Context, challengeID uuid.UUID) (*challenge.Challenge, error) {
	query := `
		SELECT id, duration, start_date, end_date, mode, habits, participant_ids, created_at, updated_at
		FROM challenges
		WHERE id = $1
	`

	var c challenge.Challenge
	err := s.db.QueryRow(ctx, query, challengeID).Scan(
		&c.ID,
		&c.Duration,
		&c.StartDate,
		&c.EndDate,
		&c.Mode,
		&c.Habits,
		&c.ParticipantIDs,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("challenge %s: %w", challengeID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return &c, nil
}

func (s *ChallengeService) ListChallenges(ctx context.Context) ([]*challenge.Challenge, error) {
	query := `
		SELECT id, duration, start_date, end_date, mode, habits, participant_ids, created_at, updated_at
		FROM challenges
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	challenges := []*challenge.Challenge{}
	for rows.Next() {
		var c challenge.Challenge
		err := rows.Scan(
			&c.ID,
			&c.Duration,
			&c.StartDate,
			&c.EndDate,
			&c.Mode,
			&c.Habits,
			&c.ParticipantIDs,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return challenges, nil
}

// JoinChallenge appends the user to the participant list. The capacity
// check and the append are one conditional UPDATE evaluated against the
// same row snapshot, so concurrent joins can never push a challenge past
// its mode's capacity. If the challenge has already started, the new
// participant gets tasks for the current day only; elapsed days are not
// back-filled.
func (s *ChallengeService) JoinChallenge(ctx context.Context, challengeID, userID uuid.UUID) error {
	query := `
		UPDATE challenges
		SET participant_ids = array_append(participant_ids, $2), updated_at = NOW()
		WHERE id = $1
		  AND NOT (participant_ids @> ARRAY[$2]::uuid[])
		  AND (CASE mode
		         WHEN 'solo' THEN cardinality(participant_ids) < 1
		         WHEN 'one-on-one' THEN cardinality(participant_ids) < 2
		         ELSE TRUE
		       END)
		RETURNING start_date, habits
	`

	var (
		start  time.Time
		habits []challenge.Habit
	)
	err := s.db.QueryRow(ctx, query, challengeID, userID).Scan(&start, &habits)
	if err != nil {
		if err == pgx.ErrNoRows {
			return s.classifyJoinFailure(ctx, challengeID, userID)
		}
		return fmt.Errorf("failed to join challenge: %w", err)
	}

	// start comes back as a bare calendar date; rebuild it in local time
	// before comparing against the clock.
	now := time.Now()
	y, m, d := start.Date()
	startDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if !challenge.StartOfDay(now).Before(startDay) {
		return s.taskService.GenerateTasksForChallenge(ctx, challengeID, habits, now, []uuid.UUID{userID})
	}

	return nil
}

// classifyJoinFailure turns a zero-row conditional join into the right
// typed error. The classification read happens after the fact, but the
// invariant itself is already protected by the conditional update.
func (s *ChallengeService) classifyJoinFailure(ctx context.Context, challengeID, userID uuid.UUID) error {
	c, err := s.GetChallenge(ctx, challengeID)
	if err != nil {
		return err
	}
	if c.HasParticipant(userID) {
		return fmt.Errorf("user already joined: %w", apperrors.ErrConflict)
	}
	return fmt.Errorf("%s challenge is full: %w", c.Mode, apperrors.ErrConflict)
}

// GenerateDailyTasks creates today's tasks for every active challenge.
// Active means start_date <= today < end_date; the end date is exclusive.
func (s *ChallengeService) GenerateDailyTasks(ctx context.Context, today time.Time) error {
	day := challenge.StartOfDay(today)

	query := `
		SELECT id, habits, participant_ids
		FROM challenges
		WHERE start_date <= $1 AND $1 < end_date
	`

	rows, err := s.db.Query(ctx, query, day)
	if err != nil {
		return fmt.Errorf("failed to find active challenges: %w", err)
	}
	defer rows.Close()

	type activeChallenge struct {
		id             uuid.UUID
		habits         []challenge.Habit
		participantIDs []uuid.UUID
	}

	var active []activeChallenge
	for rows.Next() {
		var a activeChallenge
		if err := rows.Scan(&a.id, &a.habits, &a.participantIDs); err != nil {
			return err
		}
		active = append(active, a)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	log.Printf("Generating daily tasks for %d active challenges on %s", len(active), day.Format("2006-01-02"))

	for _, a := range active {
		if err := s.taskService.GenerateTasksForChallenge(ctx, a.id, a.habits, day, a.participantIDs); err != nil {
			return err
		}
	}

	return nil
}
