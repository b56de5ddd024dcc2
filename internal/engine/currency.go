package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-engine/internal/rates"
)

// minimumValidRate guards against garbage from the rate source; a base
// rate at or below 1.0 is treated as unusable and conversion is skipped.
var minimumValidRate = decimal.NewFromInt(1)

// CurrencyDecorator normalizes foreign-currency amounts to the base
// currency before they reach the inner processor. Rates are snapshotted
// once at construction; an unreachable source falls back to the
// configured approximate rates rather than failing construction.
type CurrencyDecorator struct {
	next  Processor
	base  string
	rates map[string]decimal.Decimal
	log   *logrus.Logger
}

var _ Processor = (*CurrencyDecorator)(nil)

// NewCurrencyDecorator builds the decorator and seeds its rate cache
// from the source, falling back to the given static table on failure.
func NewCurrencyDecorator(ctx context.Context, next Processor, source rates.Source, baseCurrency string, fallback map[string]decimal.Decimal, log *logrus.Logger) *CurrencyDecorator {
	snapshot, err := source.GetRates(ctx)
	if err != nil || len(snapshot) == 0 {
		log.WithError(err).Warn("CurrencyDecorator.rateSourceUnavailable, using fallback rates")
		snapshot = make(map[string]decimal.Decimal, len(fallback))
		for code, rate := range fallback {
			snapshot[strings.ToUpper(code)] = rate
		}
	}

	return &CurrencyDecorator{
		next:  next,
		base:  strings.ToUpper(baseCurrency),
		rates: snapshot,
		log:   log,
	}
}

// normalize converts tx's amount to the base currency in place and
// appends the original amount, currency, and rate to the description.
// Missing or implausible rates leave the transaction untouched; that is
// a logged policy fallback, not a failure.
func (d *CurrencyDecorator) normalize(tx *Transaction) {
	code := strings.ToUpper(tx.Currency)
	if code == "" || code == d.base {
		tx.Currency = d.base
		return
	}

	rate, ok := d.rates[code]
	if !ok || !rate.GreaterThan(minimumValidRate) {
		d.log.WithFields(logrus.Fields{
			"currency": code,
			"rate":     rate.String(),
		}).Warn("CurrencyDecorator.noUsableRate, amount left unconverted")
		return
	}

	original := tx.Amount
	tx.Amount = original.Mul(rate)
	tx.Currency = d.base
	tx.Description = fmt.Sprintf("%s (%s %s @ %s)", tx.Description, original.String(), code, rate.String())
}

// Create converts the amount if needed, then delegates.
func (d *CurrencyDecorator) Create(ctx context.Context, caller Caller, tx Transaction) (uuid.UUID, error) {
	d.normalize(&tx)
	return d.next.Create(ctx, caller, tx)
}

// Update converts the updated transaction's amount if needed, then
// delegates. The reversal snapshot is already in base currency because
// only base-currency amounts are ever committed.
func (d *CurrencyDecorator) Update(ctx context.Context, caller Caller, original Reversal, updated Transaction) error {
	d.normalize(&updated)
	return d.next.Update(ctx, caller, original, updated)
}

// Delete has no amount of its own to convert.
func (d *CurrencyDecorator) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	return d.next.Delete(ctx, caller, id)
}

// TransferToGoal delegates unchanged; contribution amounts are stated in
// the base currency at the API boundary.
func (d *CurrencyDecorator) TransferToGoal(ctx context.Context, caller Caller, accountID, goalID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	return d.next.TransferToGoal(ctx, caller, accountID, goalID, amount)
}
