package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-engine/internal/storage/account"
	"github.com/carson-networks/budget-engine/internal/storage/goal"
	"github.com/carson-networks/budget-engine/internal/storage/member"
	"github.com/carson-networks/budget-engine/internal/storage/template"
	"github.com/carson-networks/budget-engine/internal/storage/transaction"
)

type Reader struct {
	Accounts     *account.Reader
	Transactions *transaction.Reader
	Goals        *goal.Reader
	Templates    *template.Reader
	Members      *member.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Goals:        goal.NewReader(exec),
		Templates:    template.NewReader(exec),
		Members:      member.NewReader(exec),
	}
}
