// Package masterdata provides cached access to the rate and price master
// tables. Reads fall back to a builtin default set when the backend is
// empty or unreachable, so the editor keeps working offline.
package masterdata

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/costsheet-erp/costsheet/internal/costing"
)

// Cache keys, one per category.
const (
	keyCustomers      = "masterdata:customers"
	keyCurrencies     = "masterdata:currencies"
	keyPorts          = "masterdata:ports"
	keyOverhead       = "masterdata:overhead"
	keyFactoryExpense = "masterdata:factory_expense"
	keyShippingTiers  = "masterdata:shipping_tiers"
	keyRMCosts        = "masterdata:rm_costs"
)

// shipmentMonthLayout parses targets like "Mar.25".
const shipmentMonthLayout = "Jan.06"

type Service struct {
	repo     Repository
	cache    *Cache
	defaults Defaults
	logger   *slog.Logger
}

func NewService(repo Repository, cache *Cache, defaults Defaults, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, defaults: defaults, logger: logger}
}

func (s *Service) Customers(ctx context.Context) []Customer {
	var customers []Customer
	err := s.cache.FetchJSON(ctx, keyCustomers, &customers, func(ctx context.Context) (interface{}, error) {
		return s.repo.Customers(ctx)
	})
	if err != nil {
		s.logger.Warn("load customers failed", slog.Any("error", err))
		return nil
	}
	return customers
}

func (s *Service) Currencies(ctx context.Context) []Currency {
	var currencies []Currency
	err := s.cache.FetchJSON(ctx, keyCurrencies, &currencies, func(ctx context.Context) (interface{}, error) {
		return s.repo.Currencies(ctx)
	})
	if err != nil || len(currencies) == 0 {
		if err != nil {
			s.logger.Warn("load currencies failed, using defaults", slog.Any("error", err))
		}
		return s.defaults.Currencies
	}
	return currencies
}

func (s *Service) Ports(ctx context.Context) []Port {
	var ports []Port
	err := s.cache.FetchJSON(ctx, keyPorts, &ports, func(ctx context.Context) (interface{}, error) {
		return s.repo.Ports(ctx)
	})
	if err != nil {
		s.logger.Warn("load ports failed", slog.Any("error", err))
		return nil
	}
	return ports
}

func (s *Service) OverheadRates(ctx context.Context) []OverheadRate {
	var rates []OverheadRate
	err := s.cache.FetchJSON(ctx, keyOverhead, &rates, func(ctx context.Context) (interface{}, error) {
		return s.repo.OverheadRates(ctx)
	})
	if err != nil || len(rates) == 0 {
		if err != nil {
			s.logger.Warn("load overhead rates failed, using defaults", slog.Any("error", err))
		}
		return s.defaults.Overheads
	}
	return rates
}

// OverheadTable shapes the overhead rows the way the calculator consumes
// them.
func (s *Service) OverheadTable(ctx context.Context) map[int]costing.GroupRate {
	table := make(map[int]costing.GroupRate)
	for _, o := range s.OverheadRates(ctx) {
		table[o.GroupNumber] = costing.GroupRate{
			OverheadRate:     o.OverheadRate,
			YieldLossPercent: o.YieldLossPercent,
		}
	}
	return table
}

// FactoryExpenseRate returns the single global factory expense rate, the
// first configured row winning.
func (s *Service) FactoryExpenseRate(ctx context.Context) float64 {
	var expenses []FactoryExpense
	err := s.cache.FetchJSON(ctx, keyFactoryExpense, &expenses, func(ctx context.Context) (interface{}, error) {
		return s.repo.FactoryExpense(ctx)
	})
	if err != nil || len(expenses) == 0 {
		if err != nil {
			s.logger.Warn("load factory expense failed, using default", slog.Any("error", err))
		}
		return s.defaults.FactoryExpenseRate
	}
	return expenses[0].ExpenseRate
}

func (s *Service) ShippingTiers(ctx context.Context) []ShippingTier {
	var tiers []ShippingTier
	err := s.cache.FetchJSON(ctx, keyShippingTiers, &tiers, func(ctx context.Context) (interface{}, error) {
		return s.repo.ShippingTiers(ctx)
	})
	if err != nil {
		s.logger.Warn("load shipping tiers failed", slog.Any("error", err))
		return nil
	}
	return tiers
}

// ShippingRate picks the tier whose range contains the container quantity.
// With no matching tier the last tier's rate applies; with no tiers at all
// the default rate applies.
func (s *Service) ShippingRate(ctx context.Context, containerQty int) float64 {
	tiers := s.ShippingTiers(ctx)
	for _, t := range tiers {
		if t.MinQty <= containerQty && containerQty <= t.MaxQty {
			return t.PricePerContainer
		}
	}
	if len(tiers) > 0 {
		return tiers[len(tiers)-1].PricePerContainer
	}
	return s.defaults.ShippingRate
}

func (s *Service) RMCosts(ctx context.Context) []RMCost {
	var costs []RMCost
	err := s.cache.FetchJSON(ctx, keyRMCosts, &costs, func(ctx context.Context) (interface{}, error) {
		return s.repo.RMCosts(ctx)
	})
	if err != nil {
		s.logger.Warn("load rm costs failed", slog.Any("error", err))
		return nil
	}
	return costs
}

// RMProducts lists the distinct raw-material products with price history.
func (s *Service) RMProducts(ctx context.Context) []string {
	seen := make(map[string]struct{})
	var products []string
	for _, c := range s.RMCosts(ctx) {
		if _, ok := seen[c.Product]; ok {
			continue
		}
		seen[c.Product] = struct{}{}
		products = append(products, c.Product)
	}
	sort.Strings(products)
	return products
}

// RMBasePrice resolves the raw-material price effective for the target
// shipment month ("Mar.25"): the most recent price on or before the
// target, the oldest row when every price postdates the target, and zero
// when the product has no price history or the month cannot be parsed.
func (s *Service) RMBasePrice(ctx context.Context, product, shipmentMonth string) float64 {
	target, err := time.Parse(shipmentMonthLayout, shipmentMonth)
	if err != nil {
		return 0
	}

	var matches []RMCost
	for _, c := range s.RMCosts(ctx) {
		if c.Product == product {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return 0
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].UpdateDate.After(matches[j].UpdateDate)
	})
	for _, c := range matches {
		if !c.UpdateDate.After(target) {
			return c.Price
		}
	}
	return matches[len(matches)-1].Price
}

// RefreshAll re-warms every cached category from the backend. Used by the
// hourly worker job; a failing category is logged and the rest still
// refresh.
func (s *Service) RefreshAll(ctx context.Context) error {
	var firstErr error
	refresh := func(key string, loader func(context.Context) (interface{}, error)) {
		if err := s.cache.Refresh(ctx, key, loader); err != nil {
			s.logger.Warn("refresh category failed", slog.String("key", key), slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	refresh(keyCustomers, func(ctx context.Context) (interface{}, error) { return s.repo.Customers(ctx) })
	refresh(keyCurrencies, func(ctx context.Context) (interface{}, error) { return s.repo.Currencies(ctx) })
	refresh(keyPorts, func(ctx context.Context) (interface{}, error) { return s.repo.Ports(ctx) })
	refresh(keyOverhead, func(ctx context.Context) (interface{}, error) { return s.repo.OverheadRates(ctx) })
	refresh(keyFactoryExpense, func(ctx context.Context) (interface{}, error) { return s.repo.FactoryExpense(ctx) })
	refresh(keyShippingTiers, func(ctx context.Context) (interface{}, error) { return s.repo.ShippingTiers(ctx) })
	refresh(keyRMCosts, func(ctx context.Context) (interface{}, error) { return s.repo.RMCosts(ctx) })
	return firstErr
}
