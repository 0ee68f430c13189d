package reconcile

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/studioline/intake-backend/internal/logging"
	"github.com/studioline/intake-backend/internal/projects/repository"
)

const jobTimeout = 2 * time.Minute

// IndexRepairer is implemented by the project repository.
type IndexRepairer interface {
	RepairIndex(ctx context.Context) (repository.RepairReport, error)
}

// Scheduler runs index repair on a cron schedule.
type Scheduler struct {
	repairer IndexRepairer
	cron     *cron.Cron
	mu       sync.Mutex
}

func NewScheduler(repairer IndexRepairer) *Scheduler {
	return &Scheduler{
		repairer: repairer,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start registers the repair job for schedule (six fields, seconds first) and
// starts the cron runner.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			log.Printf("[error] operation=reconcile error=%v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule index repair %q: %w", schedule, err)
	}

	log.Printf("[info] operation=reconcile message=scheduler started schedule=%q", schedule)
	s.cron.Start()
	return nil
}

// RunOnce performs a single repair pass. Overlapping runs are serialised.
func (s *Scheduler) RunOnce(ctx context.Context) (repository.RepairReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(logging.WithRequestID(ctx, "reconcile"), jobTimeout)
	defer cancel()

	report, err := s.repairer.RepairIndex(ctx)
	if err != nil {
		return report, err
	}

	log.Printf("[info] operation=reconcile indexed=%d records=%d rewritten=%t",
		report.Indexed, report.Records, report.Rewritten)
	return report, nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
