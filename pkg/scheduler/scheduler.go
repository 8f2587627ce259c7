// Package scheduler drives periodic reconciliation passes.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"todocal/pkg/sync"
)

// Scheduler runs the pass function on a cron spec. Ticks that land while a
// pass is still in flight are skipped.
type Scheduler struct {
	cron *cron.Cron
}

func New(loc *time.Location, spec string, pass func() error) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		if err := pass(); err != nil {
			if errors.Is(err, sync.ErrPassInFlight) {
				log.Printf("Previous sync pass still running, skipping this tick")
				return
			}
			log.Printf("Sync pass failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start runs the schedule until ctx is done, then waits for any running
// pass to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	log.Printf("Scheduler started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	log.Printf("Scheduler stopped")
}
