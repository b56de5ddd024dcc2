package engine

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory Store whose unit of work stages mutations and
// only applies them on Commit, so rollback behavior is observable.
type memStore struct {
	accounts     map[uuid.UUID]Account
	transactions map[uuid.UUID]Transaction
	goals        map[uuid.UUID]Goal

	failBegin   bool
	failInsert  bool
	failBalance bool
	failReplace bool
	failDelete  bool
	failGoal    bool
	failCommit  bool
}

func newMemStore() *memStore {
	return &memStore{
		accounts:     make(map[uuid.UUID]Account),
		transactions: make(map[uuid.UUID]Transaction),
		goals:        make(map[uuid.UUID]Goal),
	}
}

func (m *memStore) putAccount(a Account) {
	m.accounts[a.ID] = a
}

func (m *memStore) putTransaction(tx Transaction) {
	m.transactions[tx.ID] = tx
}

func (m *memStore) putGoal(g Goal) {
	m.goals[g.ID] = g
}

func (m *memStore) Write(_ context.Context) (UnitOfWork, error) {
	if m.failBegin {
		return nil, errors.New("begin failed")
	}
	return &memUnit{
		store:        m,
		accounts:     make(map[uuid.UUID]Account),
		transactions: make(map[uuid.UUID]Transaction),
		goals:        make(map[uuid.UUID]Goal),
		deleted:      make(map[uuid.UUID]bool),
	}, nil
}

func (m *memStore) FindAccount(_ context.Context, id uuid.UUID) (*Account, error) {
	if a, ok := m.accounts[id]; ok {
		copied := a
		return &copied, nil
	}
	return nil, nil
}

func (m *memStore) FindTransaction(_ context.Context, id uuid.UUID) (*Transaction, error) {
	if tx, ok := m.transactions[id]; ok {
		copied := tx
		return &copied, nil
	}
	return nil, nil
}

type memUnit struct {
	store        *memStore
	accounts     map[uuid.UUID]Account
	transactions map[uuid.UUID]Transaction
	goals        map[uuid.UUID]Goal
	deleted      map[uuid.UUID]bool
}

func (u *memUnit) FindAccountForUpdate(_ context.Context, id uuid.UUID) (*Account, error) {
	if a, ok := u.accounts[id]; ok {
		copied := a
		return &copied, nil
	}
	if a, ok := u.store.accounts[id]; ok {
		copied := a
		return &copied, nil
	}
	return nil, nil
}

func (u *memUnit) UpdateAccountBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if u.store.failBalance {
		return errors.New("balance write failed")
	}
	account, ok := u.accounts[id]
	if !ok {
		account = u.store.accounts[id]
	}
	account.Balance = balance
	u.accounts[id] = account
	return nil
}

func (u *memUnit) InsertTransaction(_ context.Context, tx *Transaction) (uuid.UUID, error) {
	if u.store.failInsert {
		return uuid.Nil, errors.New("insert failed")
	}
	inserted := *tx
	if inserted.ID.IsNil() {
		inserted.ID = uuid.Must(uuid.NewV4())
	}
	u.transactions[inserted.ID] = inserted
	return inserted.ID, nil
}

func (u *memUnit) ReplaceTransaction(_ context.Context, tx *Transaction) error {
	if u.store.failReplace {
		return errors.New("replace failed")
	}
	u.transactions[tx.ID] = *tx
	return nil
}

func (u *memUnit) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	if u.store.failDelete {
		return errors.New("delete failed")
	}
	u.deleted[id] = true
	return nil
}

func (u *memUnit) FindTransactionForUpdate(_ context.Context, id uuid.UUID) (*Transaction, error) {
	if u.deleted[id] {
		return nil, nil
	}
	if tx, ok := u.transactions[id]; ok {
		copied := tx
		return &copied, nil
	}
	if tx, ok := u.store.transactions[id]; ok {
		copied := tx
		return &copied, nil
	}
	return nil, nil
}

func (u *memUnit) FindGoalForUpdate(_ context.Context, id uuid.UUID) (*Goal, error) {
	if g, ok := u.goals[id]; ok {
		copied := g
		return &copied, nil
	}
	if g, ok := u.store.goals[id]; ok {
		copied := g
		return &copied, nil
	}
	return nil, nil
}

func (u *memUnit) UpdateGoalAccumulated(_ context.Context, id uuid.UUID, accumulated decimal.Decimal) error {
	if u.store.failGoal {
		return errors.New("goal write failed")
	}
	goal, ok := u.goals[id]
	if !ok {
		goal = u.store.goals[id]
	}
	goal.AccumulatedAmount = accumulated
	u.goals[id] = goal
	return nil
}

func (u *memUnit) Commit() error {
	if u.store.failCommit {
		return errors.New("commit failed")
	}
	for id, a := range u.accounts {
		u.store.accounts[id] = a
	}
	for id, tx := range u.transactions {
		u.store.transactions[id] = tx
	}
	for id, g := range u.goals {
		u.store.goals[id] = g
	}
	for id := range u.deleted {
		delete(u.store.transactions, id)
	}
	return nil
}

func (u *memUnit) Rollback() error {
	u.accounts = nil
	u.transactions = nil
	u.goals = nil
	return nil
}

// recordingProcessor captures what reaches the inner processor.
type recordingProcessor struct {
	createdTx       *Transaction
	updatedOriginal *Reversal
	updatedTx       *Transaction
	deletedID       *uuid.UUID
	transferAmount  *decimal.Decimal
	err             error
}

func (r *recordingProcessor) Create(_ context.Context, _ Caller, tx Transaction) (uuid.UUID, error) {
	r.createdTx = &tx
	return uuid.Must(uuid.NewV4()), r.err
}

func (r *recordingProcessor) Update(_ context.Context, _ Caller, original Reversal, updated Transaction) error {
	r.updatedOriginal = &original
	r.updatedTx = &updated
	return r.err
}

func (r *recordingProcessor) Delete(_ context.Context, _ Caller, id uuid.UUID) error {
	r.deletedID = &id
	return r.err
}

func (r *recordingProcessor) TransferToGoal(_ context.Context, _ Caller, _, _ uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	r.transferAmount = &amount
	return uuid.Must(uuid.NewV4()), r.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
