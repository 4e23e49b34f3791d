package masterdata

import "time"

// Customer is one row of the customer master.
type Customer struct {
	ID          int64  `json:"id" db:"id"`
	Code        string `json:"customer_code" db:"customer_code"`
	Name        string `json:"customer_name" db:"customer_name"`
	PaymentTerm string `json:"payment_term" db:"payment_term_customer_name"`
}

// Currency is one selectable document currency.
type Currency struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// Port is one destination port.
type Port struct {
	ID          int64  `json:"id" db:"id"`
	CountryCode string `json:"country_code" db:"country_code"`
	Name        string `json:"main_port_name" db:"main_port_name"`
}

// OverheadRate couples an overhead group with its rate and yield-loss
// percentage.
type OverheadRate struct {
	GroupNumber      int     `json:"group_number" db:"group_number"`
	OverheadRate     float64 `json:"overhead_rate" db:"overhead_rate"`
	YieldLossPercent float64 `json:"yield_loss_percent" db:"yield_loss_percent"`
}

// FactoryExpense is the single global factory expense rate.
type FactoryExpense struct {
	ExpenseRate float64 `json:"expense_rate" db:"expense_rate"`
}

// ShippingTier maps a container-quantity range to a per-container price.
// Tiers are stored ordered by MinQty and assumed non-overlapping.
type ShippingTier struct {
	MinQty            int     `json:"min_qty" db:"min_qty"`
	MaxQty            int     `json:"max_qty" db:"max_qty"`
	PricePerContainer float64 `json:"price_per_container" db:"price_per_container"`
}

// RMCost is one raw-material price row, effective from UpdateDate.
type RMCost struct {
	Product    string    `json:"product" db:"product"`
	UpdateDate time.Time `json:"update_date" db:"update_date"`
	Price      float64   `json:"price" db:"price"`
}
