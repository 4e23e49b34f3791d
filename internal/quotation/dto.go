package quotation

import (
	"time"

	"github.com/costsheet-erp/costsheet/internal/costing"
)

const dateLayout = "2006-01-02"

type HeaderRequest struct {
	DocNo            string  `json:"doc_no" validate:"omitempty,max=20"`
	DocDate          string  `json:"doc_date" validate:"required,datetime=2006-01-02"`
	TraderName       string  `json:"trader_name" validate:"max=100"`
	Team             string  `json:"team" validate:"max=50"`
	CustomerImporter string  `json:"customer_importer" validate:"max=200"`
	CustomerEndUser  string  `json:"customer_end_user" validate:"max=200"`
	Incoterm         string  `json:"incoterm" validate:"max=10"`
	ShipDateFrom     string  `json:"ship_date_from" validate:"omitempty,datetime=2006-01-02"`
	ShipDateTo       string  `json:"ship_date_to" validate:"omitempty,datetime=2006-01-02"`
	Currency         string  `json:"currency" validate:"required,len=3"`
	SpotRate         float64 `json:"spot_rate" validate:"gte=0"`
	DiscountRate     float64 `json:"discount_rate"`
	PremiumRate      float64 `json:"premium_rate"`
	ExchangeRate     float64 `json:"exchange_rate" validate:"gte=0"`
	Dest1            string  `json:"dest_1" validate:"max=100"`
	Dest2            string  `json:"dest_2" validate:"max=100"`
	Dest3            string  `json:"dest_3" validate:"max=100"`
	Dest4            string  `json:"dest_4" validate:"max=100"`
}

type LineRequest struct {
	Item         int     `json:"item" validate:"gte=0"`
	ProductName  string  `json:"product_name" validate:"max=200"`
	ProductRM    string  `json:"product_rm" validate:"max=200"`
	Group        int     `json:"group" validate:"gte=0"`
	Packaging    float64 `json:"packaging" validate:"gte=0"`
	Brand        string  `json:"brand" validate:"max=100"`
	PackSize     string  `json:"pack_size" validate:"max=100"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	Commission   float64 `json:"commission" validate:"gte=0"`
	AP           float64 `json:"ap" validate:"gte=0"`
	Agreement    float64 `json:"agreement" validate:"gte=0"`
	OtherCost    float64 `json:"other_cost" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
}

type InterestRequest struct {
	PaymentTermAuto string  `json:"payment_term_auto" validate:"max=100"`
	PaymentTermShip string  `json:"payment_term_ship" validate:"max=100"`
	ARRate          float64 `json:"ar_rate" validate:"gte=0"`
	ARDays          int     `json:"ar_days" validate:"gte=0"`
	RMRate          float64 `json:"rm_rate" validate:"gte=0"`
	RMDays          int     `json:"rm_days" validate:"gte=0"`
	WHDays          int     `json:"wh_days" validate:"gte=0"`
}

type LoadingRequest struct {
	ProductName   string  `json:"product_name" validate:"max=200"`
	QtyCartons    int     `json:"qty_cartons" validate:"gte=0"`
	WeightPerUnit float64 `json:"weight_per_unit" validate:"gte=0"`
	ContainerNo   string  `json:"container_no" validate:"max=50"`
	Remark        string  `json:"remark" validate:"max=500"`
}

// SaveRequest carries everything needed to calculate and persist one
// cost sheet document.
type SaveRequest struct {
	Header    HeaderRequest          `json:"header" validate:"required"`
	Condition string                 `json:"insurance_condition" validate:"required,oneof=non_africa_fob_cfr non_africa_cif africa_fob_cfr africa_cif"`
	Expenses  costing.ExportExpenses `json:"export_expenses"`
	Interest  InterestRequest        `json:"interests"`
	Lines     []LineRequest          `json:"lines" validate:"max=15,dive"`
	Loadings  []LoadingRequest       `json:"loadings" validate:"dive"`
	Remarks   []string               `json:"remarks" validate:"dive,max=1000"`
}

func (r HeaderRequest) toModel() (Header, error) {
	docDate, err := time.Parse(dateLayout, r.DocDate)
	if err != nil {
		return Header{}, err
	}
	h := Header{
		DocNo:            r.DocNo,
		DocDate:          docDate,
		TraderName:       r.TraderName,
		Team:             r.Team,
		CustomerImporter: r.CustomerImporter,
		CustomerEndUser:  r.CustomerEndUser,
		Incoterm:         r.Incoterm,
		Currency:         r.Currency,
		SpotRate:         r.SpotRate,
		DiscountRate:     r.DiscountRate,
		PremiumRate:      r.PremiumRate,
		ExchangeRate:     r.ExchangeRate,
		Dest1:            r.Dest1,
		Dest2:            r.Dest2,
		Dest3:            r.Dest3,
		Dest4:            r.Dest4,
	}
	if r.ShipDateFrom != "" {
		if h.ShipDateFrom, err = time.Parse(dateLayout, r.ShipDateFrom); err != nil {
			return Header{}, err
		}
	}
	if r.ShipDateTo != "" {
		if h.ShipDateTo, err = time.Parse(dateLayout, r.ShipDateTo); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

func (r InterestRequest) toModel() InterestDetail {
	return InterestDetail{
		PaymentTermAuto: r.PaymentTermAuto,
		PaymentTermShip: r.PaymentTermShip,
		ARRate:          r.ARRate,
		ARDays:          r.ARDays,
		RMRate:          r.RMRate,
		RMDays:          r.RMDays,
		WHDays:          r.WHDays,
	}
}

func (r LineRequest) toCostingLine() costing.Line {
	return costing.Line{
		Item:         r.Item,
		ProductName:  r.ProductName,
		ProductRM:    r.ProductRM,
		Group:        r.Group,
		Packaging:    r.Packaging,
		Brand:        r.Brand,
		PackSize:     r.PackSize,
		Quantity:     r.Quantity,
		Commission:   r.Commission,
		AP:           r.AP,
		Agreement:    r.Agreement,
		OtherCost:    r.OtherCost,
		SellingPrice: r.SellingPrice,
	}
}

var conditionNames = map[string]costing.InsuranceCondition{
	"non_africa_fob_cfr": costing.InsuranceNonAfricaFOBCFR,
	"non_africa_cif":     costing.InsuranceNonAfricaCIF,
	"africa_fob_cfr":     costing.InsuranceAfricaFOBCFR,
	"africa_cif":         costing.InsuranceAfricaCIF,
}

// SaveResponse reports the persisted document number and totals.
type SaveResponse struct {
	DocNo           string  `json:"doc_no"`
	QuotationID     int64   `json:"quotation_id"`
	GrandTotal      float64 `json:"grand_total"`
	GrandTotalLabel string  `json:"grand_total_label"`
}

// PreviewResponse returns the calculation without persisting anything.
type PreviewResponse struct {
	Result          costing.Result `json:"result"`
	GrandTotalLabel string         `json:"grand_total_label"`
}

// ListItem is one row of the saved document listing.
type ListItem struct {
	DocNo            string    `json:"doc_no"`
	DocDate          time.Time `json:"doc_date"`
	TraderName       string    `json:"trader_name"`
	CustomerImporter string    `json:"customer_importer"`
	Currency         string    `json:"currency"`
	CreatedAt        time.Time `json:"created_at"`
}
