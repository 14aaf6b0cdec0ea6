package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

var (
	hundred        = decimal.NewFromInt(100)
	DefaultGSTRate = decimal.NewFromInt(10)
)

// Input carries everything one pricing pass needs. The calculator is pure:
// same input, same output, no shared state.
type Input struct {
	LineItems    []types.LineItem
	Discount     decimal.Decimal
	DiscountType enums.DiscountType
	GSTRate      *decimal.Decimal
	Rules        []models.DiscountRule
}

// Result is the repriced line-item set plus the quote-level totals.
type Result struct {
	LineItems []types.LineItem
	Totals    types.QuoteTotals
}

// Calculate reprices the line items and derives quote totals.
//
// Volume discounts are computed from each item's original unit price, so
// feeding a result back through Calculate with the same rules yields the same
// numbers instead of compounding. Rule selection compares per-category
// aggregate quantity against each rule's threshold; among qualifying rules the
// highest percentage wins, and ties keep the earliest rule in the supplied
// order.
func Calculate(in Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	discountType := in.DiscountType
	if discountType == "" {
		discountType = enums.DiscountTypePercentage
	}

	gstRate := DefaultGSTRate
	if in.GSTRate != nil {
		gstRate = *in.GSTRate
	}

	categoryQty := aggregateCategoryQuantities(in.LineItems)

	items := make([]types.LineItem, len(in.LineItems))
	subtotal := decimal.Zero
	for i, item := range in.LineItems {
		repriced := repriceItem(item, categoryQty, in.Rules)
		items[i] = repriced
		subtotal = subtotal.Add(repriced.TotalPrice)
	}

	discountAmount := decimal.Zero
	switch discountType {
	case enums.DiscountTypeFixed:
		discountAmount = in.Discount.Round(2)
	default:
		discountAmount = subtotal.Mul(in.Discount).Div(hundred).Round(2)
	}

	taxable := subtotal.Sub(discountAmount)
	gst := taxable.Mul(gstRate).Div(hundred).Round(2)
	total := taxable.Add(gst)

	return &Result{
		LineItems: items,
		Totals: types.QuoteTotals{
			Subtotal:     subtotal,
			Discount:     discountAmount,
			DiscountType: discountType,
			GST:          gst,
			Total:        total,
		},
	}, nil
}

func validate(in Input) error {
	if in.Discount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount must not be negative")
	}
	if in.DiscountType != "" && !in.DiscountType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown discount type %q", in.DiscountType))
	}
	if in.GSTRate != nil && in.GSTRate.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "gst rate must not be negative")
	}

	details := map[string]string{}
	for i, item := range in.LineItems {
		key := item.ID
		if key == "" {
			key = fmt.Sprintf("lineItems[%d]", i)
		}
		switch {
		case item.Quantity <= 0:
			details[key] = "quantity must be positive"
		case item.UnitPrice.IsNegative():
			details[key] = "unitPrice must not be negative"
		case item.OriginalUnitPrice.IsNegative():
			details[key] = "originalUnitPrice must not be negative"
		case item.MarkupPercent.IsNegative():
			details[key] = "markupPercent must not be negative"
		}
	}
	if len(details) > 0 {
		// One bad item rejects the whole batch; no partial totals.
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid line items").WithDetails(details)
	}
	return nil
}

func aggregateCategoryQuantities(items []types.LineItem) map[string]int {
	byCategory := make(map[string]int, len(items))
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		byCategory[item.Category] += item.Quantity
	}
	return byCategory
}

func repriceItem(item types.LineItem, categoryQty map[string]int, rules []models.DiscountRule) types.LineItem {
	base := item.BaseUnitPrice()
	unit := base

	var applied *types.AppliedVolumeDiscount
	if rule := selectRule(item.Category, categoryQty[item.Category], rules); rule != nil {
		unit = base.Mul(hundred.Sub(rule.DiscountPercentage)).Div(hundred).Round(2)
		applied = &types.AppliedVolumeDiscount{
			Label:      ruleLabel(rule),
			Percentage: rule.DiscountPercentage,
			Amount:     base.Sub(unit).Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
		}
	}

	item.OriginalUnitPrice = base
	item.UnitPrice = unit
	item.AppliedVolumeDiscount = applied
	item.TotalPrice = lineTotal(item.Quantity, unit, item.MarkupPercent)
	return item
}

// lineTotal computes quantity x unitPrice x (1 + markupPercent/100).
func lineTotal(quantity int, unitPrice, markupPercent decimal.Decimal) decimal.Decimal {
	markup := hundred.Add(markupPercent).Div(hundred)
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(markup).Round(2)
}

func selectRule(category string, aggregateQty int, rules []models.DiscountRule) *models.DiscountRule {
	if category == "" {
		return nil
	}
	var best *models.DiscountRule
	for i := range rules {
		rule := &rules[i]
		if !containsCategory(rule.ApplicableCategories, category) {
			continue
		}
		if aggregateQty < rule.MinimumQuantity {
			continue
		}
		// Strictly-greater keeps the first rule on percentage ties.
		if best == nil || rule.DiscountPercentage.GreaterThan(best.DiscountPercentage) {
			best = rule
		}
	}
	return best
}

func containsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

func ruleLabel(rule *models.DiscountRule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return fmt.Sprintf("volume %d+", rule.MinimumQuantity)
}
