package waitlist

import (
	"context"
	"time"

	"tourflo/pkg/logger"
)

// Sweeper expires notified waitlist entries whose claim window lapsed
type Sweeper struct {
	repo     Repository
	service  Service
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(repo Repository, service Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		repo:     repo,
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

// Stop shuts the loop down and waits for the in-flight sweep
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slotIDs, err := s.repo.SlotsWithNotified(ctx)
	if err != nil {
		logger.GetDefault().Error("waitlist sweep failed to list slots", "error", err)
		return
	}

	for _, slotID := range slotIDs {
		expired, err := s.service.ExpireOverdue(ctx, slotID)
		if err != nil {
			logger.GetDefault().Error("waitlist sweep failed", "slot_id", slotID, "error", err)
			continue
		}
		if expired > 0 {
			logger.GetDefault().Info("expired overdue waitlist entries", "slot_id", slotID, "count", expired)
		}
	}
}
