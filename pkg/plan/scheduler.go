package plan

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Scheduler invokes the plan applier on a fixed interval. The applier's
// own idempotency ledger makes the interval safe to set well below a day.
type Scheduler struct {
	service  PlanService
	interval time.Duration
	stop     chan struct{}
}

func NewScheduler(service PlanService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.apply()
	for {
		select {
		case <-ticker.C:
			s.apply()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) apply() {
	result, err := s.service.Apply(context.Background())
	if err != nil {
		log.Errorf("plan applier run failed: %v", err)
		return
	}
	if result.Applied {
		log.Infof("plan applier: %s", result.Message)
	}
}
