package quotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/costsheet-erp/costsheet/internal/costing"
	"github.com/costsheet-erp/costsheet/internal/platform/db"
)

var ErrNotFound = errors.New("quotation not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	UpsertHeader(ctx context.Context, h Header) (int64, error)
	DeleteChildren(ctx context.Context, quotationID int64) error
	InsertExpenses(ctx context.Context, quotationID int64, e costing.ExportExpenses, total float64) error
	InsertInterest(ctx context.Context, quotationID int64, d InterestDetail) error
	InsertProductionCosts(ctx context.Context, quotationID int64, costs []ProductionCost) error
	InsertLoadings(ctx context.Context, quotationID int64, loadings []Loading) error
	InsertRemarks(ctx context.Context, quotationID int64, remarks []Remark) error
	GetByDocNo(ctx context.Context, docNo string) (*Document, error)
	List(ctx context.Context, limit, offset int) ([]ListItem, error)
	DeleteByDocNo(ctx context.Context, docNo string) error
	DocNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) UpsertHeader(ctx context.Context, h Header) (int64, error) {
	const query = `
		INSERT INTO trx_general_infos (
			doc_no, doc_date, trader_name, team, customer_importer, customer_end_user,
			incoterm, ship_date_from, ship_date_to, currency,
			spot_rate, discount_rate, premium_rate, exchange_rate,
			dest_1, dest_2, dest_3, dest_4
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (doc_no) DO UPDATE SET
			doc_date = EXCLUDED.doc_date,
			trader_name = EXCLUDED.trader_name,
			team = EXCLUDED.team,
			customer_importer = EXCLUDED.customer_importer,
			customer_end_user = EXCLUDED.customer_end_user,
			incoterm = EXCLUDED.incoterm,
			ship_date_from = EXCLUDED.ship_date_from,
			ship_date_to = EXCLUDED.ship_date_to,
			currency = EXCLUDED.currency,
			spot_rate = EXCLUDED.spot_rate,
			discount_rate = EXCLUDED.discount_rate,
			premium_rate = EXCLUDED.premium_rate,
			exchange_rate = EXCLUDED.exchange_rate,
			dest_1 = EXCLUDED.dest_1,
			dest_2 = EXCLUDED.dest_2,
			dest_3 = EXCLUDED.dest_3,
			dest_4 = EXCLUDED.dest_4
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		h.DocNo, h.DocDate, h.TraderName, h.Team, h.CustomerImporter, h.CustomerEndUser,
		h.Incoterm, h.ShipDateFrom, h.ShipDateTo, h.Currency,
		h.SpotRate, h.DiscountRate, h.PremiumRate, h.ExchangeRate,
		h.Dest1, h.Dest2, h.Dest3, h.Dest4,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("quotation: upsert header %s: %w", h.DocNo, err)
	}
	return id, nil
}

func (r *repository) DeleteChildren(ctx context.Context, quotationID int64) error {
	tables := []string{
		"trx_export_expenses",
		"trx_interests",
		"trx_production_costs",
		"trx_loadings",
		"trx_remarks",
	}
	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s WHERE quotation_id = $1", table)
		if _, err := r.db.Exec(ctx, query, quotationID); err != nil {
			return fmt.Errorf("quotation: clear %s: %w", table, err)
		}
	}
	return nil
}

func (r *repository) InsertExpenses(ctx context.Context, quotationID int64, e costing.ExportExpenses, total float64) error {
	const query = `
		INSERT INTO trx_export_expenses (
			quotation_id, container_size, container_qty, invoice_qty, ton_per_container,
			freight_cost, shipping_cost, truck_cost,
			survey_check_cost, survey_vehicle_cost, insurance_cost,
			thc_cost, seal_cost, bl_fee, handling_fee,
			doc_prep_fee, doc_agri_fee, doc_phyto_fee, doc_health_fee,
			doc_origin_fee, doc_ms24_fee, doc_chamber_fee, doc_dft_fee,
			other_expenses, total_expense
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`

	_, err := r.db.Exec(ctx, query,
		quotationID, e.ContainerSize, e.ContainerQty, e.InvoiceQty, e.TonPerContainer,
		e.Freight, e.Shipping, e.Truck,
		e.SurveyCheck, e.SurveyVehicle, e.Insurance,
		e.THC, e.Seal, e.BLFee, e.Handling,
		e.DocPrep, e.DocAgri, e.DocPhyto, e.DocHealth,
		e.DocOrigin, e.DocMS24, e.DocChamber, e.DocDFT,
		e.Other, total,
	)
	if err != nil {
		return fmt.Errorf("quotation: insert expenses: %w", err)
	}
	return nil
}

func (r *repository) InsertInterest(ctx context.Context, quotationID int64, d InterestDetail) error {
	const query = `
		INSERT INTO trx_interests (
			quotation_id, payment_term_auto, payment_term_ship,
			ar_rate, ar_days, rm_rate, rm_days, wh_days
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.db.Exec(ctx, query,
		quotationID, d.PaymentTermAuto, d.PaymentTermShip,
		d.ARRate, d.ARDays, d.RMRate, d.RMDays, d.WHDays,
	)
	if err != nil {
		return fmt.Errorf("quotation: insert interest: %w", err)
	}
	return nil
}

func (r *repository) InsertProductionCosts(ctx context.Context, quotationID int64, costs []ProductionCost) error {
	const query = `
		INSERT INTO trx_production_costs (
			quotation_id, item_order, product_name, product_rm, overhead_group,
			rm_price, yield_loss_pct, yield_loss_val, bp_val, rm_net_yield,
			packaging, brand, pack_size, overhead_val, quantity,
			factory_expense, export_expense, commission, ap_expense, agreement,
			other_cost, total_cost, selling_price, margin_cost,
			ar_interest, rm_interest, wh_storage, margin_after, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
			$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29)`

	for _, c := range costs {
		_, err := r.db.Exec(ctx, query,
			quotationID, c.Item, c.ProductName, c.ProductRM, c.Group,
			c.RMPrice, c.YieldLossPercent, c.YieldLossCost, c.BP, c.RMNetYield,
			c.Packaging, c.Brand, c.PackSize, c.Overhead, c.Quantity,
			c.FactoryExpense, c.ExportExpense, c.Commission, c.AP, c.Agreement,
			c.OtherCost, c.TotalCost, c.SellingPrice, c.Margin,
			c.ARInterest, c.RMInterest, c.WHStorage, c.MarginAfter, c.Status,
		)
		if err != nil {
			return fmt.Errorf("quotation: insert production cost item %d: %w", c.Item, err)
		}
	}
	return nil
}

func (r *repository) InsertLoadings(ctx context.Context, quotationID int64, loadings []Loading) error {
	const query = `
		INSERT INTO trx_loadings (
			quotation_id, order_no, product_name, qty_cartons,
			weight_per_unit, total_weight, container_no, remark
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	for _, l := range loadings {
		_, err := r.db.Exec(ctx, query,
			quotationID, l.Order, l.ProductName, l.QtyCartons,
			l.WeightPerUnit, l.TotalWeight, l.ContainerNo, l.Remark,
		)
		if err != nil {
			return fmt.Errorf("quotation: insert loading %d: %w", l.Order, err)
		}
	}
	return nil
}

func (r *repository) InsertRemarks(ctx context.Context, quotationID int64, remarks []Remark) error {
	const query = `
		INSERT INTO trx_remarks (quotation_id, order_no, remark_text)
		VALUES ($1,$2,$3)`

	for _, rm := range remarks {
		if _, err := r.db.Exec(ctx, query, quotationID, rm.Order, rm.Text); err != nil {
			return fmt.Errorf("quotation: insert remark %d: %w", rm.Order, err)
		}
	}
	return nil
}

func (r *repository) GetByDocNo(ctx context.Context, docNo string) (*Document, error) {
	const headerQuery = `
		SELECT id, doc_no, doc_date,
			COALESCE(trader_name, ''), COALESCE(team, ''),
			COALESCE(customer_importer, ''), COALESCE(customer_end_user, ''),
			COALESCE(incoterm, ''), ship_date_from, ship_date_to,
			COALESCE(currency, ''), spot_rate, discount_rate, premium_rate, exchange_rate,
			COALESCE(dest_1, ''), COALESCE(dest_2, ''), COALESCE(dest_3, ''), COALESCE(dest_4, ''),
			created_at
		FROM trx_general_infos WHERE doc_no = $1`

	var doc Document
	h := &doc.Header
	err := r.db.QueryRow(ctx, headerQuery, docNo).Scan(
		&h.ID, &h.DocNo, &h.DocDate,
		&h.TraderName, &h.Team,
		&h.CustomerImporter, &h.CustomerEndUser,
		&h.Incoterm, &h.ShipDateFrom, &h.ShipDateTo,
		&h.Currency, &h.SpotRate, &h.DiscountRate, &h.PremiumRate, &h.ExchangeRate,
		&h.Dest1, &h.Dest2, &h.Dest3, &h.Dest4,
		&h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("quotation: get header %s: %w", docNo, err)
	}

	if err := r.loadExpenses(ctx, h.ID, &doc.Expenses); err != nil {
		return nil, err
	}
	if err := r.loadInterest(ctx, h.ID, &doc.Interest); err != nil {
		return nil, err
	}
	if doc.Costs, err = r.loadProductionCosts(ctx, h.ID); err != nil {
		return nil, err
	}
	if doc.Loadings, err = r.loadLoadings(ctx, h.ID); err != nil {
		return nil, err
	}
	if doc.Remarks, err = r.loadRemarks(ctx, h.ID); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *repository) loadExpenses(ctx context.Context, quotationID int64, e *costing.ExportExpenses) error {
	const query = `
		SELECT COALESCE(container_size, ''), container_qty, invoice_qty, ton_per_container,
			freight_cost, shipping_cost, truck_cost,
			survey_check_cost, survey_vehicle_cost, insurance_cost,
			thc_cost, seal_cost, bl_fee, handling_fee,
			doc_prep_fee, doc_agri_fee, doc_phyto_fee, doc_health_fee,
			doc_origin_fee, doc_ms24_fee, doc_chamber_fee, doc_dft_fee,
			other_expenses
		FROM trx_export_expenses WHERE quotation_id = $1`

	err := r.db.QueryRow(ctx, query, quotationID).Scan(
		&e.ContainerSize, &e.ContainerQty, &e.InvoiceQty, &e.TonPerContainer,
		&e.Freight, &e.Shipping, &e.Truck,
		&e.SurveyCheck, &e.SurveyVehicle, &e.Insurance,
		&e.THC, &e.Seal, &e.BLFee, &e.Handling,
		&e.DocPrep, &e.DocAgri, &e.DocPhyto, &e.DocHealth,
		&e.DocOrigin, &e.DocMS24, &e.DocChamber, &e.DocDFT,
		&e.Other,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("quotation: load expenses: %w", err)
	}
	return nil
}

func (r *repository) loadInterest(ctx context.Context, quotationID int64, d *InterestDetail) error {
	const query = `
		SELECT COALESCE(payment_term_auto, ''), COALESCE(payment_term_ship, ''),
			ar_rate, ar_days, rm_rate, rm_days, wh_days
		FROM trx_interests WHERE quotation_id = $1`

	err := r.db.QueryRow(ctx, query, quotationID).Scan(
		&d.PaymentTermAuto, &d.PaymentTermShip,
		&d.ARRate, &d.ARDays, &d.RMRate, &d.RMDays, &d.WHDays,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("quotation: load interest: %w", err)
	}
	return nil
}

func (r *repository) loadProductionCosts(ctx context.Context, quotationID int64) ([]ProductionCost, error) {
	const query = `
		SELECT item_order, COALESCE(product_name, ''), COALESCE(product_rm, ''), overhead_group,
			rm_price, yield_loss_pct, yield_loss_val, bp_val, rm_net_yield,
			packaging, COALESCE(brand, ''), COALESCE(pack_size, ''), overhead_val, quantity,
			factory_expense, export_expense, commission, ap_expense, agreement,
			other_cost, total_cost, selling_price, margin_cost,
			ar_interest, rm_interest, wh_storage, margin_after, COALESCE(status, '')
		FROM trx_production_costs WHERE quotation_id = $1 ORDER BY item_order`

	rows, err := r.db.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("quotation: load production costs: %w", err)
	}
	defer rows.Close()

	var costs []ProductionCost
	for rows.Next() {
		var c ProductionCost
		err := rows.Scan(
			&c.Item, &c.ProductName, &c.ProductRM, &c.Group,
			&c.RMPrice, &c.YieldLossPercent, &c.YieldLossCost, &c.BP, &c.RMNetYield,
			&c.Packaging, &c.Brand, &c.PackSize, &c.Overhead, &c.Quantity,
			&c.FactoryExpense, &c.ExportExpense, &c.Commission, &c.AP, &c.Agreement,
			&c.OtherCost, &c.TotalCost, &c.SellingPrice, &c.Margin,
			&c.ARInterest, &c.RMInterest, &c.WHStorage, &c.MarginAfter, &c.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("quotation: scan production cost: %w", err)
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (r *repository) loadLoadings(ctx context.Context, quotationID int64) ([]Loading, error) {
	const query = `
		SELECT order_no, COALESCE(product_name, ''), qty_cartons,
			weight_per_unit, total_weight, COALESCE(container_no, ''), COALESCE(remark, '')
		FROM trx_loadings WHERE quotation_id = $1 ORDER BY order_no`

	rows, err := r.db.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("quotation: load loadings: %w", err)
	}
	defer rows.Close()

	var loadings []Loading
	for rows.Next() {
		var l Loading
		err := rows.Scan(&l.Order, &l.ProductName, &l.QtyCartons,
			&l.WeightPerUnit, &l.TotalWeight, &l.ContainerNo, &l.Remark)
		if err != nil {
			return nil, fmt.Errorf("quotation: scan loading: %w", err)
		}
		loadings = append(loadings, l)
	}
	return loadings, rows.Err()
}

func (r *repository) loadRemarks(ctx context.Context, quotationID int64) ([]Remark, error) {
	const query = `
		SELECT order_no, COALESCE(remark_text, '')
		FROM trx_remarks WHERE quotation_id = $1 ORDER BY order_no`

	rows, err := r.db.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("quotation: load remarks: %w", err)
	}
	defer rows.Close()

	var remarks []Remark
	for rows.Next() {
		var rm Remark
		if err := rows.Scan(&rm.Order, &rm.Text); err != nil {
			return nil, fmt.Errorf("quotation: scan remark: %w", err)
		}
		remarks = append(remarks, rm)
	}
	return remarks, rows.Err()
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]ListItem, error) {
	const query = `
		SELECT doc_no, doc_date, COALESCE(trader_name, ''),
			COALESCE(customer_importer, ''), COALESCE(currency, ''), created_at
		FROM trx_general_infos
		ORDER BY doc_no DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("quotation: list: %w", err)
	}
	defer rows.Close()

	var items []ListItem
	for rows.Next() {
		var it ListItem
		err := rows.Scan(&it.DocNo, &it.DocDate, &it.TraderName,
			&it.CustomerImporter, &it.Currency, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("quotation: scan list item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) DeleteByDocNo(ctx context.Context, docNo string) error {
	var id int64
	err := r.db.QueryRow(ctx,
		"SELECT id FROM trx_general_infos WHERE doc_no = $1", docNo).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("quotation: delete lookup %s: %w", docNo, err)
	}
	if err := r.DeleteChildren(ctx, id); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, "DELETE FROM trx_general_infos WHERE id = $1", id); err != nil {
		return fmt.Errorf("quotation: delete header %s: %w", docNo, err)
	}
	return nil
}

func (r *repository) DocNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		"SELECT doc_no FROM trx_general_infos WHERE doc_no LIKE $1", prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("quotation: doc numbers for %s: %w", prefix, err)
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("quotation: scan doc number: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
