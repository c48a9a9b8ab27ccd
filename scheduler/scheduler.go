package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

var dailyRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "daily_task_generation_runs_total",
		Help: "Total number of daily task generation runs",
	},
	[]string{"status"},
)

// InitPrometheus registers the scheduler metrics. Call this from main.go
func InitPrometheus() {
	prometheus.MustRegister(dailyRuns)
}

// DailyTaskGenerator is the slice of the challenge service the scheduler
// drives. Kept as an interface so the scheduler owns no service wiring.
type DailyTaskGenerator interface {
	GenerateDailyTasks(ctx context.Context, today time.Time) error
}

type Scheduler struct {
	cron      *cron.Cron
	generator DailyTaskGenerator
}

func New(generator DailyTaskGenerator) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		generator: generator,
	}
}

// Start schedules the daily firing at midnight and launches the cron
// runner in its own goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 * * *", s.run); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Daily task scheduler started (fires at midnight)")
	return nil
}

// Stop halts the cron runner and waits for an in-flight firing to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("Daily task scheduler stopped")
}

// run performs one firing. Errors are logged and swallowed: a failed run
// must never crash the process or block the next day's firing.
func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	today := time.Now()
	log.Printf("Daily task generation started for %s", today.Format("2006-01-02"))

	if err := s.generator.GenerateDailyTasks(ctx, today); err != nil {
		dailyRuns.WithLabelValues("error").Inc()
		log.Printf("Daily task generation failed for %s: %v", today.Format("2006-01-02"), err)
		return
	}

	dailyRuns.WithLabelValues("success").Inc()
	log.Printf("Daily task generation finished for %s", today.Format("2006-01-02"))
}
