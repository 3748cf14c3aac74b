package xbrl

import "github.com/shopspring/decimal"

// Derived-metric calculations. All functions are total over every input
// combination: a nil operand or a zero denominator yields nil, never a
// panic. Division by zero is a domain null, not a runtime fault.

var hundred = decimal.NewFromInt(100)

// TotalDebt sums short- and long-term debt. It is nil only when both inputs
// are nil; a single missing addend is treated as zero.
func TotalDebt(shortTerm, longTerm *decimal.Decimal) *decimal.Decimal {
	if shortTerm == nil && longTerm == nil {
		return nil
	}
	total := decimal.Zero
	if shortTerm != nil {
		total = total.Add(*shortTerm)
	}
	if longTerm != nil {
		total = total.Add(*longTerm)
	}
	return &total
}

// ReturnOnEquity computes net income / equity as a percentage.
func ReturnOnEquity(netIncome, equity *decimal.Decimal) *decimal.Decimal {
	return percentRatio(netIncome, equity)
}

// ReturnOnAssets computes net income / total assets as a percentage.
func ReturnOnAssets(netIncome, assets *decimal.Decimal) *decimal.Decimal {
	return percentRatio(netIncome, assets)
}

// DebtToEquity computes total debt / equity as a plain ratio.
func DebtToEquity(totalDebt, equity *decimal.Decimal) *decimal.Decimal {
	if totalDebt == nil || equity == nil || equity.IsZero() {
		return nil
	}
	ratio := totalDebt.Div(*equity)
	return &ratio
}

func percentRatio(numerator, denominator *decimal.Decimal) *decimal.Decimal {
	if numerator == nil || denominator == nil || denominator.IsZero() {
		return nil
	}
	pct := numerator.Div(*denominator).Mul(hundred)
	return &pct
}
