package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/budget-engine/internal/rates"
)

type failingSource struct{}

func (failingSource) GetRates(context.Context) (map[string]decimal.Decimal, error) {
	return nil, errors.New("rate source unreachable")
}

func newCurrencyUnderTest(t *testing.T, source rates.Source) (*CurrencyDecorator, *recordingProcessor) {
	t.Helper()
	inner := &recordingProcessor{}
	d := NewCurrencyDecorator(context.Background(), inner, source, "UAH",
		map[string]decimal.Decimal{"USD": money("39.5")}, testLogger())
	return d, inner
}

func TestCurrency_ConvertsForeignAmountOnCreate(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, rates.StaticSource{"USD": money("40")})

	_, err := d.Create(context.Background(), Caller{}, Transaction{
		AccountID:   uuid.Must(uuid.NewV4()),
		Kind:        KindExpense,
		Amount:      money("100"),
		Currency:    "usd",
		Description: "Rent",
	})

	assert.NoError(t, err)
	assert.True(t, inner.createdTx.Amount.Equal(money("4000")))
	assert.Equal(t, "UAH", inner.createdTx.Currency)
	assert.Equal(t, "Rent (100 USD @ 40)", inner.createdTx.Description)
}

func TestCurrency_BaseCurrencyPassesThrough(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, rates.StaticSource{"USD": money("40")})

	_, err := d.Create(context.Background(), Caller{}, Transaction{
		AccountID:   uuid.Must(uuid.NewV4()),
		Kind:        KindIncome,
		Amount:      money("250"),
		Currency:    "UAH",
		Description: "Salary",
	})

	assert.NoError(t, err)
	assert.True(t, inner.createdTx.Amount.Equal(money("250")))
	assert.Equal(t, "Salary", inner.createdTx.Description)
}

func TestCurrency_EmptyCurrencyTreatedAsBase(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, rates.StaticSource{"USD": money("40")})

	_, err := d.Create(context.Background(), Caller{}, Transaction{
		AccountID: uuid.Must(uuid.NewV4()),
		Kind:      KindIncome,
		Amount:    money("250"),
	})

	assert.NoError(t, err)
	assert.True(t, inner.createdTx.Amount.Equal(money("250")))
	assert.Equal(t, "UAH", inner.createdTx.Currency)
}

func TestCurrency_UnknownCurrencySkipsConversion(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, rates.StaticSource{"USD": money("40")})

	_, err := d.Create(context.Background(), Caller{}, Transaction{
		AccountID: uuid.Must(uuid.NewV4()),
		Kind:      KindExpense,
		Amount:    money("100"),
		Currency:  "JPY",
	})

	assert.NoError(t, err, "missing rate is a logged policy fallback, not a failure")
	assert.True(t, inner.createdTx.Amount.Equal(money("100")))
	assert.Equal(t, "JPY", inner.createdTx.Currency)
}

func TestCurrency_RateAtOrBelowOneSkipsConversion(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, rates.StaticSource{"USD": money("0.95")})

	_, err := d.Create(context.Background(), Caller{}, Transaction{
		AccountID: uuid.Must(uuid.NewV4()),
		Kind:      KindExpense,
		Amount:    money("100"),
		Currency:  "USD",
	})

	assert.NoError(t, err)
	assert.True(t, inner.createdTx.Amount.Equal(money("100")))
}

func TestCurrency_FallbackRatesWhenSourceFails(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, failingSource{})

	_, err := d.Create(context.Background(), Caller{}, Transaction{
		AccountID: uuid.Must(uuid.NewV4()),
		Kind:      KindExpense,
		Amount:    money("10"),
		Currency:  "USD",
	})

	assert.NoError(t, err)
	assert.True(t, inner.createdTx.Amount.Equal(money("395")), "fallback rate 39.5 applied")
}

func TestCurrency_UpdateConvertsUpdatedTransaction(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, rates.StaticSource{"USD": money("40")})

	original := Reversal{AccountID: uuid.Must(uuid.NewV4()), Kind: KindExpense, Amount: money("400")}
	err := d.Update(context.Background(), Caller{}, original, Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		AccountID: original.AccountID,
		Kind:      KindExpense,
		Amount:    money("15"),
		Currency:  "USD",
	})

	assert.NoError(t, err)
	assert.True(t, inner.updatedTx.Amount.Equal(money("600")))
	assert.True(t, inner.updatedOriginal.Amount.Equal(money("400")), "reversal snapshot is untouched")
}

func TestCurrency_DeleteAndTransferDelegateUnchanged(t *testing.T) {
	d, inner := newCurrencyUnderTest(t, rates.StaticSource{"USD": money("40")})

	id := uuid.Must(uuid.NewV4())
	assert.NoError(t, d.Delete(context.Background(), Caller{}, id))
	assert.Equal(t, id, *inner.deletedID)

	_, err := d.TransferToGoal(context.Background(), Caller{}, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), money("75"))
	assert.NoError(t, err)
	assert.True(t, inner.transferAmount.Equal(money("75")))
}
