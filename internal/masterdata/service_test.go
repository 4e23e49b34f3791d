package masterdata

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	customers []Customer
	currency  []Currency
	ports     []Port
	overheads []OverheadRate
	factory   []FactoryExpense
	tiers     []ShippingTier
	rmCosts   []RMCost
	err       error

	rmCalls int
}

func (m *mockRepo) Customers(ctx context.Context) ([]Customer, error) {
	return m.customers, m.err
}

func (m *mockRepo) Currencies(ctx context.Context) ([]Currency, error) {
	return m.currency, m.err
}

func (m *mockRepo) Ports(ctx context.Context) ([]Port, error) {
	return m.ports, m.err
}

func (m *mockRepo) OverheadRates(ctx context.Context) ([]OverheadRate, error) {
	return m.overheads, m.err
}

func (m *mockRepo) FactoryExpense(ctx context.Context) ([]FactoryExpense, error) {
	return m.factory, m.err
}

func (m *mockRepo) ShippingTiers(ctx context.Context) ([]ShippingTier, error) {
	return m.tiers, m.err
}

func (m *mockRepo) RMCosts(ctx context.Context) ([]RMCost, error) {
	m.rmCalls++
	return m.rmCosts, m.err
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCache(client, time.Hour)
	return NewService(repo, cache, BuiltinDefaults(), slog.Default())
}

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRMBasePriceTemporalMatch(t *testing.T) {
	repo := &mockRepo{rmCosts: []RMCost{
		{Product: "HM 1", UpdateDate: day("2025-01-01"), Price: 10},
		{Product: "HM 1", UpdateDate: day("2025-06-01"), Price: 12},
		{Product: "HM 2", UpdateDate: day("2025-02-01"), Price: 99},
	}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	// Most recent price on or before the target month.
	require.InDelta(t, 10.0, svc.RMBasePrice(ctx, "HM 1", "Mar.25"), 1e-9)
	require.InDelta(t, 12.0, svc.RMBasePrice(ctx, "HM 1", "Jul.25"), 1e-9)

	// Target before every row falls back to the oldest price.
	require.InDelta(t, 10.0, svc.RMBasePrice(ctx, "HM 1", "Dec.24"), 1e-9)

	// No history, unparseable month.
	require.Zero(t, svc.RMBasePrice(ctx, "HM 99", "Mar.25"))
	require.Zero(t, svc.RMBasePrice(ctx, "HM 1", "2025-03"))
}

func TestShippingRateTiers(t *testing.T) {
	repo := &mockRepo{tiers: []ShippingTier{
		{MinQty: 1, MaxQty: 5, PricePerContainer: 1000},
		{MinQty: 6, MaxQty: 10, PricePerContainer: 900},
	}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	require.InDelta(t, 1000.0, svc.ShippingRate(ctx, 3), 1e-9)
	require.InDelta(t, 900.0, svc.ShippingRate(ctx, 7), 1e-9)
	// Outside every tier: the last tier's rate applies.
	require.InDelta(t, 900.0, svc.ShippingRate(ctx, 12), 1e-9)
}

func TestShippingRateFallbackConstant(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	require.InDelta(t, 1400.0, svc.ShippingRate(context.Background(), 2), 1e-9)
}

func TestDefaultsWhenBackendUnreachable(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection refused")}
	svc := newTestService(t, repo)
	ctx := context.Background()

	rates := svc.OverheadRates(ctx)
	require.Len(t, rates, 7)
	require.InDelta(t, 0.57, rates[3].OverheadRate, 1e-9)
	require.InDelta(t, 0.42, svc.FactoryExpenseRate(ctx), 1e-9)

	currencies := svc.Currencies(ctx)
	require.Len(t, currencies, 4)
}

func TestDefaultsWhenBackendEmpty(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	ctx := context.Background()

	require.Len(t, svc.OverheadRates(ctx), 7)
	require.InDelta(t, 0.42, svc.FactoryExpenseRate(ctx), 1e-9)
}

func TestCategoryCachingAndRefresh(t *testing.T) {
	repo := &mockRepo{rmCosts: []RMCost{
		{Product: "HM 1", UpdateDate: day("2025-01-01"), Price: 10},
	}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	require.Len(t, svc.RMCosts(ctx), 1)
	require.Equal(t, 1, repo.rmCalls)

	// Second read is served from the cache; a backend change stays
	// invisible until the cache is refreshed.
	repo.rmCosts = append(repo.rmCosts, RMCost{Product: "HM 2", UpdateDate: day("2025-02-01"), Price: 20})
	require.Len(t, svc.RMCosts(ctx), 1)
	require.Equal(t, 1, repo.rmCalls)

	require.NoError(t, svc.RefreshAll(ctx))
	require.Len(t, svc.RMCosts(ctx), 2)
}

func TestRMProductsDeduplicated(t *testing.T) {
	repo := &mockRepo{rmCosts: []RMCost{
		{Product: "HM 2", UpdateDate: day("2025-01-01"), Price: 9},
		{Product: "HM 1", UpdateDate: day("2025-01-01"), Price: 10},
		{Product: "HM 1", UpdateDate: day("2025-06-01"), Price: 12},
	}}
	svc := newTestService(t, repo)

	require.Equal(t, []string{"HM 1", "HM 2"}, svc.RMProducts(context.Background()))
}
