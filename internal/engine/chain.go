package engine

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-engine/internal/rates"
)

// ChainConfig carries the policy settings for the decorator chain.
type ChainConfig struct {
	BaseCurrency string
	// FallbackRates is used when the rate source is unreachable at
	// construction time.
	FallbackRates map[string]decimal.Decimal
}

// NewChain is the single composition root for the processor chain:
//
//	BalanceCheck -> Currency -> BaseProcessor
//
// The balance check is outermost so it always validates converted,
// base-currency amounts. Checking funds before conversion would validate
// the wrong amount, so wire the chain here and nowhere else.
func NewChain(ctx context.Context, store Store, source rates.Source, cfg ChainConfig, log *logrus.Logger) Processor {
	base := NewProcessor(store, log)
	converted := NewCurrencyDecorator(ctx, base, source, cfg.BaseCurrency, cfg.FallbackRates, log)
	return NewBalanceCheckDecorator(converted, store, log)
}
