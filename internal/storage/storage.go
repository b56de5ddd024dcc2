package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-engine/internal/config"
	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/schedule"
	"github.com/carson-networks/budget-engine/internal/storage/account"
	"github.com/carson-networks/budget-engine/internal/storage/member"
	"github.com/carson-networks/budget-engine/internal/storage/template"
)

// Storage owns the database handle. It implements engine.Store and
// schedule.TemplateStore; single-statement writes outside a unit of
// work go through the autocommit writers.
type Storage struct {
	DB     *sql.DB
	bdb    bob.DB
	Reader *Reader

	accounts  *account.Writer
	templates *template.Writer
	members   *member.Writer
}

func NewStorage(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:        db,
		bdb:       bdb,
		Reader:    NewReader(bdb),
		accounts:  account.NewWriter(bdb),
		templates: template.NewWriter(bdb),
		members:   member.NewWriter(bdb),
	}, nil
}

// Write opens a unit of work.
func (s *Storage) Write(ctx context.Context) (engine.UnitOfWork, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	w := NewWriter(tx)
	return &w, nil
}

func (s *Storage) FindAccount(ctx context.Context, id uuid.UUID) (*engine.Account, error) {
	return s.Reader.Accounts.FindByID(ctx, id)
}

func (s *Storage) FindTransaction(ctx context.Context, id uuid.UUID) (*engine.Transaction, error) {
	return s.Reader.Transactions.FindByID(ctx, id)
}

func (s *Storage) FindRecurringForUser(ctx context.Context, userID uuid.UUID) ([]schedule.Template, error) {
	return s.Reader.Templates.ListRecurringForUser(ctx, userID)
}

func (s *Storage) UpdateLastExecuted(ctx context.Context, id uuid.UUID, date time.Time) error {
	return s.templates.UpdateLastExecuted(ctx, id, date)
}

// ListUsersWithRecurring returns every user owning at least one
// recurring template. The background sweep catches each of them up.
func (s *Storage) ListUsersWithRecurring(ctx context.Context) ([]uuid.UUID, error) {
	return s.Reader.Templates.ListUsersWithRecurring(ctx)
}

// CreateAccount inserts an account outside any unit of work.
func (s *Storage) CreateAccount(ctx context.Context, a *engine.Account) (uuid.UUID, error) {
	return s.accounts.Insert(ctx, a)
}

// CreateTemplate inserts a recurrence template.
func (s *Storage) CreateTemplate(ctx context.Context, tpl *schedule.Template) (uuid.UUID, error) {
	return s.templates.Insert(ctx, tpl)
}

// SetMemberRole adds or updates a budget membership.
func (s *Storage) SetMemberRole(ctx context.Context, budgetID, userID uuid.UUID, role string) error {
	return s.members.Upsert(ctx, budgetID, userID, role)
}
