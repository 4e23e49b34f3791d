package costing

// InsuranceCondition selects which premium formula applies to the document.
type InsuranceCondition string

const (
	InsuranceNonAfricaFOBCFR InsuranceCondition = "NON_AFRICA_FOB_CFR"
	InsuranceNonAfricaCIF    InsuranceCondition = "NON_AFRICA_CIF"
	InsuranceAfricaFOBCFR    InsuranceCondition = "AFRICA_FOB_CFR"
	InsuranceAfricaCIF       InsuranceCondition = "AFRICA_CIF"
)

// insuranceMultipliers maps each condition to its percent-of-value times
// flat-rate product. Unknown conditions yield a zero premium.
var insuranceMultipliers = map[InsuranceCondition]float64{
	InsuranceNonAfricaFOBCFR: 1.25 * 0.000098,
	InsuranceNonAfricaCIF:    1.10 * 0.00049,
	InsuranceAfricaFOBCFR:    1.25 * 0.000446,
	InsuranceAfricaCIF:       1.10 * 0.00223,
}

// GroupRate holds the overhead rate and yield-loss percentage for one
// overhead group (0-6).
type GroupRate struct {
	OverheadRate     float64 `json:"overhead_rate"`
	YieldLossPercent float64 `json:"yield_loss_percent"`
}

// OtherExpense is one free-form expense row from the export expense form.
type OtherExpense struct {
	Order       int     `json:"order_no"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ExportExpenses collects the document-level export expense components in
// THB. Insurance is filled in during calculation; the rest come from the
// form (pre-filled per container or per invoice).
type ExportExpenses struct {
	ContainerSize   string  `json:"container_size"`
	ContainerQty    int     `json:"container_qty"`
	InvoiceQty      int     `json:"invoice_qty"`
	TonPerContainer float64 `json:"ton_per_container"`

	Freight       float64 `json:"freight_cost"`
	Shipping      float64 `json:"shipping_cost"`
	Truck         float64 `json:"truck_cost"`
	SurveyCheck   float64 `json:"survey_check_cost"`
	SurveyVehicle float64 `json:"survey_vehicle_cost"`
	Insurance     float64 `json:"insurance_cost"`
	THC           float64 `json:"thc_cost"`
	Seal          float64 `json:"seal_cost"`
	BLFee         float64 `json:"bl_fee"`
	Handling      float64 `json:"handling_fee"`
	DocPrep       float64 `json:"doc_prep_fee"`
	DocAgri       float64 `json:"doc_agri_fee"`
	DocPhyto      float64 `json:"doc_phyto_fee"`
	DocHealth     float64 `json:"doc_health_fee"`
	DocOrigin     float64 `json:"doc_origin_fee"`
	DocMS24       float64 `json:"doc_ms24_fee"`
	DocChamber    float64 `json:"doc_chamber_fee"`
	DocDFT        float64 `json:"doc_dft_fee"`

	Other []OtherExpense `json:"other_expenses,omitempty"`
}

// Total sums every expense component, grouped the way the cost sheet
// groups them: freight, shipping and transport, survey, insurance,
// documents, port charges and the free-form rows.
func (e ExportExpenses) Total() float64 {
	portCharges := e.THC + e.Seal + e.BLFee + e.Handling
	survey := e.SurveyCheck + e.SurveyVehicle
	docs := e.DocAgri + e.DocPhyto + e.DocHealth + e.DocOrigin + e.DocMS24 + e.DocChamber + e.DocDFT

	var other float64
	for _, row := range e.Other {
		other += row.Amount
	}

	return e.Freight + e.Shipping + e.Truck + survey + e.Insurance +
		docs + e.DocPrep + portCharges + other
}

// InterestParams carries the AR/RM interest and warehouse storage inputs.
type InterestParams struct {
	ARRate float64 `json:"ar_rate"`
	ARDays int     `json:"ar_days"`
	RMRate float64 `json:"rm_rate"`
	RMDays int     `json:"rm_days"`
	WHDays int     `json:"wh_days"`
}

// Line is one product row from the cost sheet grid. BaseRMPrice is the
// raw-material price in source currency, resolved from master data before
// calculation.
type Line struct {
	Item         int     `json:"item_order"`
	ProductName  string  `json:"product_name"`
	ProductRM    string  `json:"product_rm"`
	BaseRMPrice  float64 `json:"base_rm_price"`
	Group        int     `json:"overhead_group"`
	Packaging    float64 `json:"packaging"`
	Brand        string  `json:"brand"`
	PackSize     string  `json:"pack_size"`
	Quantity     float64 `json:"quantity"`
	Commission   float64 `json:"commission"`
	AP           float64 `json:"ap_expense"`
	Agreement    float64 `json:"agreement"`
	OtherCost    float64 `json:"other_cost"`
	SellingPrice float64 `json:"selling_price"`
}

// blank reports whether the row should be skipped entirely: no quantity
// and neither a product name nor a raw-material reference.
func (l Line) blank() bool {
	return l.Quantity <= 0 && l.ProductName == "" && l.ProductRM == ""
}

// Input is everything the calculator needs. It is assembled by the caller
// from master data and user-entered figures; Calculate performs no I/O.
type Input struct {
	ExchangeRate       float64            `json:"exchange_rate"`
	Overheads          map[int]GroupRate  `json:"overheads"`
	FactoryExpenseRate float64            `json:"factory_expense_rate"`
	Expenses           ExportExpenses     `json:"expenses"`
	Insurance          InsuranceCondition `json:"insurance_condition"`
	Interest           InterestParams     `json:"interest"`
	Lines              []Line             `json:"lines"`
}

// Breakdown is the per-line calculation output. Monetary fields are in the
// document currency unless noted; WHStorage is a per-lot figure, not per
// unit.
type Breakdown struct {
	Item             int     `json:"item_order"`
	ProductName      string  `json:"product_name"`
	ProductRM        string  `json:"product_rm"`
	Group            int     `json:"overhead_group"`
	RMPrice          float64 `json:"rm_price"`
	YieldLossPercent float64 `json:"yield_loss_pct"`
	YieldLossCost    float64 `json:"yield_loss_val"`
	BP               float64 `json:"bp_val"`
	RMNetYield       float64 `json:"rm_net_yield"`
	Packaging        float64 `json:"packaging"`
	Brand            string  `json:"brand"`
	PackSize         string  `json:"pack_size"`
	Overhead         float64 `json:"overhead_val"`
	Quantity         float64 `json:"quantity"`
	FactoryExpense   float64 `json:"factory_expense"`
	ExportExpense    float64 `json:"export_expense"`
	Commission       float64 `json:"commission"`
	AP               float64 `json:"ap_expense"`
	Agreement        float64 `json:"agreement"`
	OtherCost        float64 `json:"other_cost"`
	TotalCost        float64 `json:"total_cost"`
	SellingPrice     float64 `json:"selling_price"`
	Margin           float64 `json:"margin_cost"`
	ARInterest       float64 `json:"ar_interest"`
	RMInterest       float64 `json:"rm_interest"`
	WHStorage        float64 `json:"wh_storage"`
	MarginAfter      float64 `json:"margin_after"`
}

// Result is the full calculator output for one document.
type Result struct {
	Lines              []Breakdown `json:"lines"`
	Insurance          float64     `json:"insurance"`
	TotalExportExpense float64     `json:"total_export_expense"`
	TotalQuantity      float64     `json:"total_quantity"`
	GrandTotal         float64     `json:"grand_total"`
}
