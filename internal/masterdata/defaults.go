package masterdata

// Defaults is the recognized fallback data set used when the backend is
// empty or unreachable. Keeping it as a named structure makes the
// fallback path testable without a live backend.
type Defaults struct {
	Version            int
	Overheads          []OverheadRate
	FactoryExpenseRate float64
	Currencies         []Currency
	ShippingRate       float64
}

// BuiltinDefaults returns the shipped fallback set.
func BuiltinDefaults() Defaults {
	return Defaults{
		Version: 1,
		Overheads: []OverheadRate{
			{GroupNumber: 0, OverheadRate: 0.10},
			{GroupNumber: 1, OverheadRate: 0.34},
			{GroupNumber: 2, OverheadRate: 0.51},
			{GroupNumber: 3, OverheadRate: 0.57},
			{GroupNumber: 4, OverheadRate: 0.64},
			{GroupNumber: 5, OverheadRate: 0.97},
			{GroupNumber: 6, OverheadRate: 1.59},
		},
		FactoryExpenseRate: 0.42,
		Currencies: []Currency{
			{Code: "EUR"},
			{Code: "JPY"},
			{Code: "THB"},
			{Code: "USD"},
		},
		ShippingRate: 1400,
	}
}
