package costing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseInput() Input {
	return Input{
		ExchangeRate: 34.0,
		Overheads: map[int]GroupRate{
			0: {OverheadRate: 0.10},
			3: {OverheadRate: 0.57, YieldLossPercent: 0.95},
		},
		FactoryExpenseRate: 0.42,
		Insurance:          InsuranceNonAfricaFOBCFR,
	}
}

func TestConvertAppliesExchangeRate(t *testing.T) {
	require.InDelta(t, 35.0*1000/34.0, convert(35.0, 34.0), 1e-9)
	require.InDelta(t, 35.0*1000, convert(35.0, 0), 1e-9)
	require.InDelta(t, 35.0*1000, convert(35.0, -1), 1e-9)
}

func TestYieldLossChain(t *testing.T) {
	in := baseInput()
	in.ExchangeRate = 1000 // keeps rm_price == base price for easy numbers
	in.FactoryExpenseRate = 0
	in.Overheads = map[int]GroupRate{3: {YieldLossPercent: 0.95}}
	in.Lines = []Line{{Item: 1, ProductName: "P1", BaseRMPrice: 100, Group: 3, Quantity: 1}}

	res := Calculate(in)
	require.Len(t, res.Lines, 1)
	b := res.Lines[0]
	require.InDelta(t, 100.0, b.RMPrice, 1e-9)
	require.InDelta(t, 105.263, b.YieldLossCost, 1e-3)
	require.InDelta(t, 1.754, b.BP, 1e-3)
	require.InDelta(t, 103.509, b.RMNetYield, 1e-3)
}

func TestZeroYieldLossKeepsRMPrice(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{Item: 1, ProductName: "P1", BaseRMPrice: 35, Group: 0, Quantity: 10}}

	res := Calculate(in)
	require.Len(t, res.Lines, 1)
	b := res.Lines[0]
	require.InDelta(t, b.RMPrice, b.YieldLossCost, 1e-9)
	require.InDelta(t, 0.0, b.BP, 1e-9)
	require.InDelta(t, b.RMPrice, b.RMNetYield, 1e-9)
}

func TestBlankRowsExcludedZeroQuantityKept(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{
		{Item: 1, ProductName: "P1", BaseRMPrice: 35, Group: 3, Quantity: 100, SellingPrice: 1200},
		{Item: 2},                           // genuinely blank
		{Item: 3, ProductName: "Zero Qty"},  // kept, zero-weighted
		{Item: 4, ProductRM: "HM 2"},        // RM reference alone keeps the row
	}

	res := Calculate(in)
	require.Len(t, res.Lines, 3)
	require.Equal(t, 1, res.Lines[0].Item)
	require.Equal(t, 3, res.Lines[1].Item)
	require.Equal(t, 4, res.Lines[2].Item)
	require.Zero(t, res.Lines[1].Quantity)
	require.Zero(t, res.Lines[1].WHStorage)
}

func TestGrandTotalReconstruction(t *testing.T) {
	in := baseInput()
	in.Expenses = ExportExpenses{Freight: 20000, Shipping: 1400, THC: 2800}
	in.Interest = InterestParams{ARRate: 2.4, ARDays: 30, RMRate: 2.5, RMDays: 45, WHDays: 30}
	in.Lines = []Line{
		{Item: 1, ProductName: "P1", BaseRMPrice: 35, Group: 3, Packaging: 5, Quantity: 100, SellingPrice: 1500},
		{Item: 2, ProductName: "P2", BaseRMPrice: 20, Group: 0, Quantity: 50, SellingPrice: 900},
	}

	res := Calculate(in)
	require.Len(t, res.Lines, 2)

	var reconstructed float64
	for _, b := range res.Lines {
		reconstructed += b.TotalCost * b.Quantity
	}
	reconstructed /= in.ExchangeRate
	require.InDelta(t, reconstructed, res.GrandTotal, 1e-9)
}

func TestGrandTotalZeroWhenRateNonPositive(t *testing.T) {
	in := baseInput()
	in.ExchangeRate = 0
	in.Lines = []Line{{Item: 1, ProductName: "P1", BaseRMPrice: 35, Group: 0, Quantity: 10, SellingPrice: 100}}

	res := Calculate(in)
	require.Zero(t, res.GrandTotal)
	require.Zero(t, res.Lines[0].ExportExpense)
	require.Zero(t, res.Lines[0].WHStorage)
}

func TestExportExpenseFlatAllocation(t *testing.T) {
	in := baseInput()
	in.Insurance = "" // no premium so the total is exactly the fixed parts
	in.Expenses = ExportExpenses{Freight: 17000}
	in.Lines = []Line{
		{Item: 1, ProductName: "Big", BaseRMPrice: 35, Group: 0, Quantity: 400, SellingPrice: 1000},
		{Item: 2, ProductName: "Small", BaseRMPrice: 20, Group: 0, Quantity: 100, SellingPrice: 800},
	}

	res := Calculate(in)
	require.Len(t, res.Lines, 2)
	want := (17000.0 / 500.0) / 34.0
	require.InDelta(t, want, res.Lines[0].ExportExpense, 1e-9)
	require.InDelta(t, want, res.Lines[1].ExportExpense, 1e-9)
}

func TestInsurancePremiumConditions(t *testing.T) {
	lines := []Line{
		{SellingPrice: 1000, Quantity: 10},
		{SellingPrice: 500, Quantity: 4},
	}
	insured := (1000.0*10 + 500.0*4) * 34.0

	cases := []struct {
		cond InsuranceCondition
		mult float64
	}{
		{InsuranceNonAfricaFOBCFR, 1.25 * 0.000098},
		{InsuranceNonAfricaCIF, 1.10 * 0.00049},
		{InsuranceAfricaFOBCFR, 1.25 * 0.000446},
		{InsuranceAfricaCIF, 1.10 * 0.00223},
	}
	for _, tc := range cases {
		require.InDelta(t, insured*tc.mult, InsurancePremium(tc.cond, lines, 34.0), 1e-9, string(tc.cond))
	}
	require.Zero(t, InsurancePremium("UNKNOWN", lines, 34.0))
}

func TestInterestGuards(t *testing.T) {
	in := baseInput()
	in.Interest = InterestParams{ARRate: 2.4, ARDays: 0, RMRate: 2.5, RMDays: -5, WHDays: 30}
	in.Lines = []Line{{Item: 1, ProductName: "P1", BaseRMPrice: 35, Group: 0, Quantity: 10, SellingPrice: 1000}}

	res := Calculate(in)
	b := res.Lines[0]
	require.Zero(t, b.ARInterest)
	require.Zero(t, b.RMInterest)
	require.InDelta(t, 30.0*10.0/34.0, b.WHStorage, 1e-9)
	require.InDelta(t, b.Margin-b.WHStorage, b.MarginAfter, 1e-9)
}

func TestMarginAfterSubtractsLotStorageFromUnitMargin(t *testing.T) {
	in := baseInput()
	in.Interest = InterestParams{ARRate: 2.4, ARDays: 30, RMRate: 2.5, RMDays: 45, WHDays: 30}
	in.Lines = []Line{{Item: 1, ProductName: "P1", BaseRMPrice: 35, Group: 3, Quantity: 200, SellingPrice: 1500}}

	res := Calculate(in)
	b := res.Lines[0]
	wantAR := 1500 * (2.4 / 100) / 365 * 30
	wantRM := 1500 * (2.5 / 100) / 365 * 45
	wantWH := 30.0 * 200.0 / 34.0
	require.InDelta(t, wantAR, b.ARInterest, 1e-9)
	require.InDelta(t, wantRM, b.RMInterest, 1e-9)
	require.InDelta(t, wantWH, b.WHStorage, 1e-9)
	require.InDelta(t, b.Margin-wantAR-wantRM-wantWH, b.MarginAfter, 1e-9)
}

func TestExportExpensesTotalGrouping(t *testing.T) {
	e := ExportExpenses{
		Freight: 1, Shipping: 2, Truck: 3,
		SurveyCheck: 4, SurveyVehicle: 5,
		Insurance: 6,
		THC:       7, Seal: 8, BLFee: 9, Handling: 10,
		DocPrep: 11, DocAgri: 12, DocPhyto: 13, DocHealth: 14,
		DocOrigin: 15, DocMS24: 16, DocChamber: 17, DocDFT: 18,
		Other: []OtherExpense{{Amount: 19}, {Amount: 20}},
	}
	require.InDelta(t, 210.0, e.Total(), 1e-9)
}
