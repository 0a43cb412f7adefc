package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the recurring payout draw job
type Scheduler struct {
	cron             *cron.Cron
	recipientService services.RecipientService
}

// New creates a scheduler with the draw job registered on the given cron
// expression. The job runs daily; the selection engine itself decides
// whether today is a selection day.
func New(schedule string, recipientService services.RecipientService) (*Scheduler, error) {
	s := &Scheduler{
		cron:             cron.New(),
		recipientService: recipientService,
	}

	if _, err := s.cron.AddFunc(schedule, s.runDraw); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running registered jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runDraw() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := s.recipientService.SelectRecipient(ctx, time.Now())
	if err != nil {
		slog.Error("Scheduled draw failed", "error", err)
		return
	}

	switch result.Outcome {
	case models.OutcomeSelected:
		slog.Info("Scheduled draw selected a recipient",
			"memberId", result.Recipient.MemberID.Hex(),
			"cycleYear", result.Recipient.CycleYear,
			"cycleMonth", result.Recipient.CycleMonth,
			"amount", result.Recipient.Amount,
		)
	default:
		slog.Info("Scheduled draw finished without a selection", "outcome", result.Outcome)
	}
}
