package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-engine/internal/schedule"
)

// SchedulerService exposes the recurrence engine to callers: the
// run-at-login endpoint and the periodic ticker in main.
type SchedulerService struct {
	engine *schedule.Engine
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(engine *schedule.Engine) *SchedulerService {
	return &SchedulerService{engine: engine}
}

// RunForUser catches up every recurring template the user owns.
func (s *SchedulerService) RunForUser(ctx context.Context, userID uuid.UUID) error {
	return s.engine.RunForUser(ctx, userID)
}
