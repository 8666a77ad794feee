package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps cron-based background jobs: the periodic daily report and
// the midnight year-structure check.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithLocation(loc))}
}

// Every registers a job that runs on a fixed interval.
func (s *Scheduler) Every(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	return s.cron.AddFunc(spec, job)
}

// Midnight registers a job that runs at 00:00 every day. Used to pick up
// the new year's skeleton without a restart.
func (s *Scheduler) Midnight(job func()) (cron.EntryID, error) {
	return s.cron.AddFunc("0 0 * * *", job)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
