package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitClashAPI/internal/apperrors"
	"habitClashAPI/internal/types/challenge"
	"habitClashAPI/internal/types/task"
)

type TaskService struct {
	db          *pgxpool.Pool
	userService *UserService
}

func NewTaskService(db *pgxpool.Pool, userService *UserService) *TaskService {
	return &TaskService{
		db:          db,
		userService: userService,
	}
}

// GenerateTasksForChallenge inserts one task per participant per habit,
// dated to the calendar day of date. The unique index on
// (challenge_id, user_id, habit_id, date) makes this idempotent: rows
// that already exist are skipped, so the scheduler and the join path can
// both call it for the same day without creating duplicates.
func (s *TaskService) GenerateTasksForChallenge(
	ctx context.Context,
	challengeID uuid.UUID,
	habits []challenge.Habit,
	date time.Time,
	participantIDs []uuid.UUID,
) error {
	if len(habits) == 0 || len(participantIDs) == 0 {
		return nil
	}

	day := challenge.StartOfDay(date)

	query := `
		INSERT INTO tasks (challenge_id, user_id, habit_id, date, points)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (challenge_id, user_id, habit_id, date) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, userID := range participantIDs {
		for _, h := range habits {
			batch.Queue(query, challengeID, userID, h.HabitID, day)
		}
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to generate tasks for challenge %s: %w", challengeID, err)
		}
	}

	return nil
}

// CompleteTask flips a task to completed and credits its point value to
// the owner. The update is conditional on is_completed = FALSE so a task
// can only transition once; the point credit happens after and is not
// atomic with the flip.
func (s *TaskService) CompleteTask(ctx context.Context, taskID uuid.UUID) (*task.Task, error) {
	query := `
		UPDATE tasks
		SET is_completed = TRUE, completed_at = NOW()
		WHERE id = $1 AND is_completed = FALSE
		RETURNING id, challenge_id, user_id, habit_id, date, points, is_completed, completed_at, created_at
	`

	var t task.Task
	err := s.db.QueryRow(ctx, query, taskID).Scan(
		&t.ID,
		&t.ChallengeID,
		&t.UserID,
		&t.HabitID,
		&t.Date,
		&t.Points,
		&t.IsCompleted,
		&t.CompletedAt,
		&t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, s.classifyCompleteFailure(ctx, taskID)
		}
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	if err := s.userService.IncrementPoints(ctx, t.UserID, t.Points); err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *TaskService) classifyCompleteFailure(ctx context.Context, taskID uuid.UUID) error {
	var isCompleted bool
	err := s.db.QueryRow(ctx, `SELECT is_completed FROM tasks WHERE id = $1`, taskID).Scan(&isCompleted)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("task %s: %w", taskID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to look up task: %w", err)
	}
	return fmt.Errorf("task already completed: %w", apperrors.ErrConflict)
}

// GetDailyTasks returns every task dated to the calendar day containing date.
func (s *TaskService) GetDailyTasks(ctx context.Context, userID uuid.UUID, date time.Time) ([]*task.Task, error) {
	query := `
		SELECT id, challenge_id, user_id, habit_id, date, points, is_completed, completed_at, created_at
		FROM tasks
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, userID, challenge.StartOfDay(date))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		var t task.Task
		err := rows.Scan(
			&t.ID,
			&t.ChallengeID,
			&t.UserID,
			&t.HabitID,
			&t.Date,
			&t.Points,
			&t.IsCompleted,
			&t.CompletedAt,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// IsDailyCompletionDone is true only when the user has at least one task
// for the day and all of them are completed. A day with no tasks is not
// counted as done.
func (s *TaskService) IsDailyCompletionDone(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	tasks, err := s.GetDailyTasks(ctx, userID, date)
	if err != nil {
		return false, err
	}
	if len(tasks) == 0 {
		return false, nil
	}
	for _, t := range tasks {
		if !t.IsCompleted {
			return false, nil
		}
	}
	return true, nil
}
