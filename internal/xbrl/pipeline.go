package xbrl

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FactSheet is the sole output of an extraction: the normalized financial
// facts of one filing plus the ratios derived from them. Every field is
// independently nullable; a missing input never fails the whole sheet.
// The sheet carries no reference back to the source document.
type FactSheet struct {
	EntityName    *string          `json:"entity_name"`
	TaxID         *string          `json:"tax_id"`
	Year          *int             `json:"year"`
	Revenue       *decimal.Decimal `json:"revenue"`
	NetIncome     *decimal.Decimal `json:"net_income"`
	TotalAssets   *decimal.Decimal `json:"total_assets"`
	Equity        *decimal.Decimal `json:"equity"`
	ShortTermDebt *decimal.Decimal `json:"short_term_debt"`
	LongTermDebt  *decimal.Decimal `json:"long_term_debt"`
	TotalDebt     *decimal.Decimal `json:"total_debt"`
	ROE           *decimal.Decimal `json:"roe_percent"`
	ROA           *decimal.Decimal `json:"roa_percent"`
	DebtToEquity  *decimal.Decimal `json:"debt_to_equity"`
}

// HasCoreFinancials reports whether at least one of the four primary
// monetary facts was extracted. A sheet without any of them is technically
// valid but rarely worth presenting.
func (s *FactSheet) HasCoreFinancials() bool {
	return s.Revenue != nil || s.NetIncome != nil || s.TotalAssets != nil || s.Equity != nil
}

// Extract runs the full pipeline over one raw document: parse, select the
// authoritative reporting context, resolve each concept through its alias
// table, normalize monetary text, and derive the performance ratios.
//
// Parse failures and the absence of any valid context are fatal and return
// a typed error with no sheet; every field-level absence is folded into the
// sheet as nil. The function holds no state across calls.
func Extract(data []byte) (*FactSheet, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	idx, err := BuildContextIndex(doc)
	if err != nil {
		return nil, fmt.Errorf("index contexts: %w", err)
	}
	authoritative := idx.Authoritative()
	year := authoritative.PeriodEnd.Year()

	sheet := &FactSheet{
		Year:          &year,
		EntityName:    resolveIdentity(doc, ConceptEntityName),
		TaxID:         resolveIdentity(doc, ConceptTaxID),
		Revenue:       resolveMonetary(doc, ConceptRevenue, authoritative.ID),
		NetIncome:     resolveMonetary(doc, ConceptNetIncome, authoritative.ID),
		TotalAssets:   resolveMonetary(doc, ConceptTotalAssets, authoritative.ID),
		Equity:        resolveMonetary(doc, ConceptEquity, authoritative.ID),
		ShortTermDebt: resolveMonetary(doc, ConceptShortTermDebt, authoritative.ID),
		LongTermDebt:  resolveMonetary(doc, ConceptLongTermDebt, authoritative.ID),
	}

	sheet.TotalDebt = TotalDebt(sheet.ShortTermDebt, sheet.LongTermDebt)
	sheet.ROE = ReturnOnEquity(sheet.NetIncome, sheet.Equity)
	sheet.ROA = ReturnOnAssets(sheet.NetIncome, sheet.TotalAssets)
	sheet.DebtToEquity = DebtToEquity(sheet.TotalDebt, sheet.Equity)

	return sheet, nil
}

func resolveMonetary(doc *Document, key ConceptKey, contextID string) *decimal.Decimal {
	raw := ResolveConcept(doc, conceptByKey(key), contextID)
	if raw == nil {
		return nil
	}
	return NormalizeNumber(*raw)
}

func resolveIdentity(doc *Document, key ConceptKey) *string {
	raw := ResolveConcept(doc, conceptByKey(key), "")
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	return &trimmed
}
