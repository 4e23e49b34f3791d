package quotation

import (
	"time"

	"github.com/costsheet-erp/costsheet/internal/costing"
)

// Header is the cost sheet document header, persisted to
// trx_general_infos and upserted by document number.
type Header struct {
	ID               int64     `json:"id" db:"id"`
	DocNo            string    `json:"doc_no" db:"doc_no"`
	DocDate          time.Time `json:"doc_date" db:"doc_date"`
	TraderName       string    `json:"trader_name" db:"trader_name"`
	Team             string    `json:"team" db:"team"`
	CustomerImporter string    `json:"customer_importer" db:"customer_importer"`
	CustomerEndUser  string    `json:"customer_end_user" db:"customer_end_user"`
	Incoterm         string    `json:"incoterm" db:"incoterm"`
	ShipDateFrom     time.Time `json:"ship_date_from" db:"ship_date_from"`
	ShipDateTo       time.Time `json:"ship_date_to" db:"ship_date_to"`
	Currency         string    `json:"currency" db:"currency"`
	SpotRate         float64   `json:"spot_rate" db:"spot_rate"`
	DiscountRate     float64   `json:"discount_rate" db:"discount_rate"`
	PremiumRate      float64   `json:"premium_rate" db:"premium_rate"`
	ExchangeRate     float64   `json:"exchange_rate" db:"exchange_rate"`
	Dest1            string    `json:"dest_1" db:"dest_1"`
	Dest2            string    `json:"dest_2" db:"dest_2"`
	Dest3            string    `json:"dest_3" db:"dest_3"`
	Dest4            string    `json:"dest_4" db:"dest_4"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// InterestDetail is the AR/RM interest and storage parameter set,
// persisted to trx_interests.
type InterestDetail struct {
	PaymentTermAuto string  `json:"payment_term_auto" db:"payment_term_auto"`
	PaymentTermShip string  `json:"payment_term_ship" db:"payment_term_ship"`
	ARRate          float64 `json:"ar_rate" db:"ar_rate"`
	ARDays          int     `json:"ar_days" db:"ar_days"`
	RMRate          float64 `json:"rm_rate" db:"rm_rate"`
	RMDays          int     `json:"rm_days" db:"rm_days"`
	WHDays          int     `json:"wh_days" db:"wh_days"`
}

// Params shapes the detail into calculator interest parameters.
func (d InterestDetail) Params() costing.InterestParams {
	return costing.InterestParams{
		ARRate: d.ARRate,
		ARDays: d.ARDays,
		RMRate: d.RMRate,
		RMDays: d.RMDays,
		WHDays: d.WHDays,
	}
}

// ProductionCost is one calculated line snapshot, persisted to
// trx_production_costs.
type ProductionCost struct {
	costing.Breakdown
	Status string `json:"status" db:"status"`
}

// Loading is one row of the loading plan, persisted to trx_loadings.
type Loading struct {
	Order         int     `json:"order_no" db:"order_no"`
	ProductName   string  `json:"product_name" db:"product_name"`
	QtyCartons    int     `json:"qty_cartons" db:"qty_cartons"`
	WeightPerUnit float64 `json:"weight_per_unit" db:"weight_per_unit"`
	TotalWeight   float64 `json:"total_weight" db:"total_weight"`
	ContainerNo   string  `json:"container_no" db:"container_no"`
	Remark        string  `json:"remark" db:"remark"`
}

// Remark is one free-text remark row, persisted to trx_remarks.
type Remark struct {
	Order int    `json:"order_no" db:"order_no"`
	Text  string `json:"remark_text" db:"remark_text"`
}

// Document aggregates the header with its five dependent record sets.
type Document struct {
	Header   Header                 `json:"header"`
	Expenses costing.ExportExpenses `json:"export_expenses"`
	Interest InterestDetail         `json:"interests"`
	Costs    []ProductionCost       `json:"production_costs"`
	Loadings []Loading              `json:"loadings"`
	Remarks  []Remark               `json:"remarks"`
}
