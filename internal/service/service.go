package service

import (
	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/schedule"
	"github.com/carson-networks/budget-engine/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Access      *AccessService
	Transaction *TransactionService
	Account     *AccountService
	Goal        *GoalService
	Template    *TemplateService
	Scheduler   *SchedulerService
}

// NewService wires the services over the shared storage, the processor
// chain, and the recurrence engine.
func NewService(store *storage.Storage, processor engine.Processor, scheduler *schedule.Engine) *Service {
	accessService := NewAccessService(store.Reader.Members)
	return &Service{
		Access:      accessService,
		Transaction: NewTransactionService(processor, store, store.Reader.Transactions, accessService),
		Account:     NewAccountService(store, store.Reader.Accounts, accessService),
		Goal:        NewGoalService(processor, accessService),
		Template:    NewTemplateService(store, accessService),
		Scheduler:   NewSchedulerService(scheduler),
	}
}
