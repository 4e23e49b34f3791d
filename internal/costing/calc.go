// Package costing implements the cost-sheet formula chain: unit
// conversions, yield-loss adjustment, expense allocation, margins and the
// grand total. Calculate is pure and deterministic.
package costing

// convert turns a per-kilogram THB rate into a per-ton amount in the
// document currency. A non-positive exchange rate skips the currency
// division and keeps the per-ton THB figure.
func convert(value, rate float64) float64 {
	if rate > 0 {
		return value * 1000 / rate
	}
	return value * 1000
}

// InsurancePremium computes the document-level export insurance premium in
// THB: the insured value of all lines times the condition's multiplier.
func InsurancePremium(cond InsuranceCondition, lines []Line, rate float64) float64 {
	var sellingTotal float64
	for _, l := range lines {
		sellingTotal += l.SellingPrice * l.Quantity
	}
	return sellingTotal * rate * insuranceMultipliers[cond]
}

// Calculate runs the full formula chain over the input lines. Blank rows
// (no quantity, no product name, no RM reference) are excluded; all other
// rows are processed even at zero quantity.
func Calculate(in Input) Result {
	rate := in.ExchangeRate

	var totalQty float64
	for _, l := range in.Lines {
		totalQty += l.Quantity
	}

	expenses := in.Expenses
	expenses.Insurance = InsurancePremium(in.Insurance, in.Lines, rate)
	totalExpense := expenses.Total()

	// Flat per-unit share of the combined export expense, identical for
	// every line regardless of its own quantity.
	var unitExport float64
	if totalQty > 0 && rate > 0 {
		unitExport = (totalExpense / totalQty) / rate
	}

	factoryExpense := convert(in.FactoryExpenseRate, rate)

	result := Result{
		Insurance:          expenses.Insurance,
		TotalExportExpense: totalExpense,
		TotalQuantity:      totalQty,
	}

	var grandValue float64
	for _, l := range in.Lines {
		if l.blank() {
			continue
		}

		rmPrice := convert(l.BaseRMPrice, rate)

		group := in.Overheads[l.Group]
		yieldLossCost := rmPrice
		if group.YieldLossPercent > 0 {
			yieldLossCost = rmPrice / group.YieldLossPercent
		}
		bp := (yieldLossCost - rmPrice) / 3
		rmNetYield := yieldLossCost - bp

		overhead := convert(group.OverheadRate, rate)

		totalCost := rmNetYield + l.Packaging + overhead + factoryExpense +
			unitExport + l.Commission + l.AP + l.Agreement + l.OtherCost
		margin := l.SellingPrice - totalCost

		var arInterest, rmInterest float64
		if in.Interest.ARDays > 0 {
			arInterest = l.SellingPrice * (in.Interest.ARRate / 100) / 365 * float64(in.Interest.ARDays)
		}
		if in.Interest.RMDays > 0 {
			rmInterest = l.SellingPrice * (in.Interest.RMRate / 100) / 365 * float64(in.Interest.RMDays)
		}

		// Storage accrues per ton per day over the whole lot; the lot
		// total is subtracted from the per-unit margin.
		var whStorage float64
		if l.Quantity > 0 && rate > 0 {
			whStorage = float64(in.Interest.WHDays) * l.Quantity * 1.0 / rate
		}

		marginAfter := margin - arInterest - rmInterest - whStorage

		grandValue += totalCost * l.Quantity

		result.Lines = append(result.Lines, Breakdown{
			Item:             l.Item,
			ProductName:      l.ProductName,
			ProductRM:        l.ProductRM,
			Group:            l.Group,
			RMPrice:          rmPrice,
			YieldLossPercent: group.YieldLossPercent,
			YieldLossCost:    yieldLossCost,
			BP:               bp,
			RMNetYield:       rmNetYield,
			Packaging:        l.Packaging,
			Brand:            l.Brand,
			PackSize:         l.PackSize,
			Overhead:         overhead,
			Quantity:         l.Quantity,
			FactoryExpense:   factoryExpense,
			ExportExpense:    unitExport,
			Commission:       l.Commission,
			AP:               l.AP,
			Agreement:        l.Agreement,
			OtherCost:        l.OtherCost,
			TotalCost:        totalCost,
			SellingPrice:     l.SellingPrice,
			Margin:           margin,
			ARInterest:       arInterest,
			RMInterest:       rmInterest,
			WHStorage:        whStorage,
			MarginAfter:      marginAfter,
		})
	}

	if rate > 0 {
		result.GrandTotal = grandValue / rate
	}

	return result
}
