package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the aggregator on a fixed period and optionally runs
// extra periodic jobs (the weather cache refresh) alongside it.
type Scheduler struct {
	agg      *Aggregator
	interval time.Duration
	extra    map[string]func(context.Context) // cron spec -> job
	c        *cron.Cron
}

func NewScheduler(agg *Aggregator, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		agg:      agg,
		interval: interval,
		extra:    make(map[string]func(context.Context)),
	}
}

// AddJob registers an extra periodic job under a cron spec.
func (s *Scheduler) AddJob(spec string, job func(context.Context)) {
	s.extra[spec] = job
}

// Start runs one aggregation cycle immediately, then keeps cycling on the
// configured period until Stop.
func (s *Scheduler) Start() {
	s.c = cron.New(cron.WithSeconds())

	spec := fmt.Sprintf("@every %ds", int(s.interval.Seconds()))
	if _, err := s.c.AddFunc(spec, func() {
		s.agg.Refresh(context.Background())
	}); err != nil {
		log.Printf("Failed to create notification cron job: %v", err)
		return
	}

	for jobSpec, job := range s.extra {
		job := job
		if _, err := s.c.AddFunc(jobSpec, func() { job(context.Background()) }); err != nil {
			log.Printf("Failed to create cron job %q: %v", jobSpec, err)
		}
	}

	// First cycle runs right away rather than waiting a full period.
	s.agg.Refresh(context.Background())

	log.Printf("Notification scheduler started (every %s)", s.interval)
	s.c.Start()
}

// Stop tears down the timer. In-flight cycles finish on their own; no new
// ones fire.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}
