package engine

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Serializer runs engine operations one at a time on a single worker.
// The store's per-unit-of-work isolation plus row locks guard against
// other processes; the serializer removes read-modify-write races
// between in-process callers without optimistic versioning.
type Serializer struct {
	queue    chan serialItem
	wg       sync.WaitGroup
	stopOnce sync.Once
}

type serialItem struct {
	ctx      context.Context
	run      func(ctx context.Context) error
	response chan error
}

// NewSerializer creates a stopped serializer with the given queue depth.
func NewSerializer(queueDepth int) *Serializer {
	if queueDepth < 1 {
		queueDepth = 1
	}
	return &Serializer{
		queue: make(chan serialItem, queueDepth),
	}
}

// Start launches the worker. Call once.
func (s *Serializer) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for item := range s.queue {
			item.response <- item.run(item.ctx)
		}
	}()
}

// Stop drains the queue and waits for the worker to exit.
func (s *Serializer) Stop() {
	s.stopOnce.Do(func() {
		close(s.queue)
		s.wg.Wait()
	})
}

// Do enqueues fn and waits for its result. The operation itself is not
// cancelled mid-flight; ctx only releases the caller while the result is
// pending.
func (s *Serializer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	respCh := make(chan error, 1)
	s.queue <- serialItem{
		ctx:      ctx,
		run:      fn,
		response: respCh,
	}

	select {
	case err := <-respCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// serializedProcessor routes every Processor call through a Serializer.
type serializedProcessor struct {
	next       Processor
	serializer *Serializer
}

var _ Processor = (*serializedProcessor)(nil)

// NewSerialized wraps next so its operations run strictly one at a time.
func NewSerialized(next Processor, serializer *Serializer) Processor {
	return &serializedProcessor{
		next:       next,
		serializer: serializer,
	}
}

func (s *serializedProcessor) Create(ctx context.Context, caller Caller, tx Transaction) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.serializer.Do(ctx, func(ctx context.Context) error {
		var innerErr error
		id, innerErr = s.next.Create(ctx, caller, tx)
		return innerErr
	})
	return id, err
}

func (s *serializedProcessor) Update(ctx context.Context, caller Caller, original Reversal, updated Transaction) error {
	return s.serializer.Do(ctx, func(ctx context.Context) error {
		return s.next.Update(ctx, caller, original, updated)
	})
}

func (s *serializedProcessor) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	return s.serializer.Do(ctx, func(ctx context.Context) error {
		return s.next.Delete(ctx, caller, id)
	})
}

func (s *serializedProcessor) TransferToGoal(ctx context.Context, caller Caller, accountID, goalID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.serializer.Do(ctx, func(ctx context.Context) error {
		var innerErr error
		id, innerErr = s.next.TransferToGoal(ctx, caller, accountID, goalID, amount)
		return innerErr
	})
	return id, err
}
