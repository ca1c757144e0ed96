// Package rate provides the currency conversion rate lookup the
// Processor calls when a PaymentRequest's currency differs from the
// caller-supplied target currency, per spec.md §4.4. Its caching
// discipline mirrors bugielektrik-library's currency client.
package rate

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/apperrors"
	"payment-orchestrator/internal/money"
)

// Service looks up conversion rates between supported currencies,
// caching each pair for a fixed TTL so repeated conversions in a burst
// of payments don't recompute the same rate.
type Service struct {
	table map[string]decimal.Decimal
	cache *cache.Cache
}

// defaultTable holds the static rate table used in the absence of a live
// feed; a production deployment would swap this for an HTTP-backed
// client shaped like bugielektrik-library's currency.Client.
var defaultTable = map[string]decimal.Decimal{
	pairKey(money.USD, money.EUR): decimal.NewFromFloat(0.85),
	pairKey(money.USD, money.RUB): decimal.NewFromInt(90),
	pairKey(money.EUR, money.USD): decimal.NewFromFloat(1.18),
	pairKey(money.EUR, money.RUB): decimal.NewFromInt(100),
	pairKey(money.RUB, money.USD): decimal.NewFromFloat(0.011),
	pairKey(money.RUB, money.EUR): decimal.NewFromFloat(0.01),
}

func pairKey(from, to money.Currency) string {
	return fmt.Sprintf("%s->%s", from, to)
}

// New builds a rate Service whose cached rates expire after ttl. With
// ttl <= 0, go-cache keeps each cached rate with no expiry; caching is
// never disabled.
func New(ttl time.Duration) *Service {
	return &Service{
		table: defaultTable,
		cache: cache.New(ttl, ttl*2),
	}
}

// Convert returns amount expressed in to, looking up and caching the
// from->to rate. from == to always returns amount unchanged at rate 1,
// without touching the cache. Unknown pairs fail with
// apperrors.ErrUnsupportedConversion.
func (s *Service) Convert(amount decimal.Decimal, from, to money.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, err := s.rateFor(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (s *Service) rateFor(from, to money.Currency) (decimal.Decimal, error) {
	key := pairKey(from, to)

	if cached, found := s.cache.Get(key); found {
		return cached.(decimal.Decimal), nil
	}

	rate, ok := s.table[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", apperrors.ErrUnsupportedConversion, from, to)
	}

	s.cache.SetDefault(key, rate)
	return rate, nil
}
