package masterdata

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the master tables from the tabular backend.
type Repository interface {
	Customers(ctx context.Context) ([]Customer, error)
	Currencies(ctx context.Context) ([]Currency, error)
	Ports(ctx context.Context) ([]Port, error)
	OverheadRates(ctx context.Context) ([]OverheadRate, error)
	FactoryExpense(ctx context.Context) ([]FactoryExpense, error)
	ShippingTiers(ctx context.Context) ([]ShippingTier, error)
	RMCosts(ctx context.Context) ([]RMCost, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

// NewRepository constructs a pgx backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) Customers(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_code, customer_name, COALESCE(payment_term_customer_name, '')
		FROM master_customers
		ORDER BY customer_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.PaymentTerm); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *repository) Currencies(ctx context.Context) ([]Currency, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, COALESCE(name, '')
		FROM master_currencies
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []Currency
	for rows.Next() {
		var c Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func (r *repository) Ports(ctx context.Context) ([]Port, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(country_code, ''), main_port_name
		FROM master_ports
		ORDER BY main_port_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ports []Port
	for rows.Next() {
		var p Port
		if err := rows.Scan(&p.ID, &p.CountryCode, &p.Name); err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	return ports, rows.Err()
}

func (r *repository) OverheadRates(ctx context.Context) ([]OverheadRate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT group_number, overhead_rate, COALESCE(yield_loss_percent, 0)
		FROM master_overhead
		ORDER BY group_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []OverheadRate
	for rows.Next() {
		var o OverheadRate
		if err := rows.Scan(&o.GroupNumber, &o.OverheadRate, &o.YieldLossPercent); err != nil {
			return nil, err
		}
		rates = append(rates, o)
	}
	return rates, rows.Err()
}

func (r *repository) FactoryExpense(ctx context.Context) ([]FactoryExpense, error) {
	rows, err := r.db.Query(ctx, `SELECT expense_rate FROM master_factory_expense ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []FactoryExpense
	for rows.Next() {
		var f FactoryExpense
		if err := rows.Scan(&f.ExpenseRate); err != nil {
			return nil, err
		}
		expenses = append(expenses, f)
	}
	return expenses, rows.Err()
}

func (r *repository) ShippingTiers(ctx context.Context) ([]ShippingTier, error) {
	rows, err := r.db.Query(ctx, `
		SELECT min_qty, max_qty, price_per_container
		FROM shipping_rates
		ORDER BY min_qty
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []ShippingTier
	for rows.Next() {
		var t ShippingTier
		if err := rows.Scan(&t.MinQty, &t.MaxQty, &t.PricePerContainer); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (r *repository) RMCosts(ctx context.Context) ([]RMCost, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product, update_date, price
		FROM master_rm_cost
		ORDER BY update_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []RMCost
	for rows.Next() {
		var c RMCost
		if err := rows.Scan(&c.Product, &c.UpdateDate, &c.Price); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}
