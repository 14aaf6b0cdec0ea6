package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func chargerItems() []types.LineItem {
	return []types.LineItem{
		{ID: "a", Name: "Wall charger 7kW", Quantity: 2, UnitPrice: dec("100"), Category: "chargers"},
		{ID: "b", Name: "Wall charger 22kW", Quantity: 3, UnitPrice: dec("100"), Category: "chargers"},
		{ID: "c", Name: "Portable charger", Quantity: 1, UnitPrice: dec("100"), Category: "chargers"},
	}
}

func chargerRule() models.DiscountRule {
	return models.DiscountRule{
		Name:                 "charger volume",
		ApplicableCategories: []string{"chargers"},
		MinimumQuantity:      5,
		DiscountPercentage:   dec("10"),
	}
}

func TestCalculateVolumeDiscountScenario(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{
		LineItems: chargerItems(),
		Rules:     []models.DiscountRule{chargerRule()},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	for _, item := range res.LineItems {
		if !item.UnitPrice.Equal(dec("90")) {
			t.Fatalf("item %s: expected unit price 90, got %s", item.ID, item.UnitPrice)
		}
		if !item.OriginalUnitPrice.Equal(dec("100")) {
			t.Fatalf("item %s: expected original price 100, got %s", item.ID, item.OriginalUnitPrice)
		}
		if item.AppliedVolumeDiscount == nil {
			t.Fatalf("item %s: expected applied discount", item.ID)
		}
	}

	if !res.Totals.Subtotal.Equal(dec("540")) {
		t.Fatalf("expected subtotal 540, got %s", res.Totals.Subtotal)
	}
	if !res.Totals.GST.Equal(dec("54")) {
		t.Fatalf("expected gst 54, got %s", res.Totals.GST)
	}
	if !res.Totals.Total.Equal(dec("594")) {
		t.Fatalf("expected total 594, got %s", res.Totals.Total)
	}
	if !res.Totals.Discount.IsZero() {
		t.Fatalf("expected zero quote discount, got %s", res.Totals.Discount)
	}
}

func TestCalculateBelowThresholdLeavesPricesAlone(t *testing.T) {
	t.Parallel()

	items := chargerItems()
	items[1].Quantity = 1 // total 4, below the 5 threshold

	res, err := Calculate(Input{
		LineItems: items,
		Rules:     []models.DiscountRule{chargerRule()},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	for _, item := range res.LineItems {
		if !item.UnitPrice.Equal(dec("100")) {
			t.Fatalf("item %s: expected unchanged price, got %s", item.ID, item.UnitPrice)
		}
		if item.AppliedVolumeDiscount != nil {
			t.Fatalf("item %s: expected no applied discount", item.ID)
		}
	}
}

func TestCalculateHighestPercentageWins(t *testing.T) {
	t.Parallel()

	rules := []models.DiscountRule{
		{Name: "small", ApplicableCategories: []string{"chargers"}, MinimumQuantity: 3, DiscountPercentage: dec("5")},
		{Name: "big", ApplicableCategories: []string{"chargers"}, MinimumQuantity: 5, DiscountPercentage: dec("15")},
		{Name: "mid", ApplicableCategories: []string{"chargers"}, MinimumQuantity: 4, DiscountPercentage: dec("10")},
	}

	res, err := Calculate(Input{LineItems: chargerItems(), Rules: rules})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got := res.LineItems[0].AppliedVolumeDiscount.Label; got != "big" {
		t.Fatalf("expected rule 'big', got %q", got)
	}
	if !res.LineItems[0].UnitPrice.Equal(dec("85")) {
		t.Fatalf("expected unit price 85, got %s", res.LineItems[0].UnitPrice)
	}
}

func TestCalculateTieKeepsFirstRule(t *testing.T) {
	t.Parallel()

	rules := []models.DiscountRule{
		{Name: "first", ApplicableCategories: []string{"chargers"}, MinimumQuantity: 2, DiscountPercentage: dec("10")},
		{Name: "second", ApplicableCategories: []string{"chargers"}, MinimumQuantity: 3, DiscountPercentage: dec("10")},
	}

	res, err := Calculate(Input{LineItems: chargerItems(), Rules: rules})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got := res.LineItems[0].AppliedVolumeDiscount.Label; got != "first" {
		t.Fatalf("expected deterministic first-rule tie break, got %q", got)
	}
}

func TestCalculateIsOrderIndependent(t *testing.T) {
	t.Parallel()

	items := chargerItems()
	reversed := []types.LineItem{items[2], items[1], items[0]}

	a, err := Calculate(Input{LineItems: items, Rules: []models.DiscountRule{chargerRule()}})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	b, err := Calculate(Input{LineItems: reversed, Rules: []models.DiscountRule{chargerRule()}})
	if err != nil {
		t.Fatalf("Calculate reversed: %v", err)
	}

	if !a.Totals.Subtotal.Equal(b.Totals.Subtotal) || !a.Totals.Total.Equal(b.Totals.Total) {
		t.Fatalf("totals differ across orderings: %+v vs %+v", a.Totals, b.Totals)
	}
	for _, item := range b.LineItems {
		if !item.UnitPrice.Equal(dec("90")) {
			t.Fatalf("item %s: expected 90 regardless of order, got %s", item.ID, item.UnitPrice)
		}
	}
}

func TestCalculateDoesNotCompoundOnRepricedOutput(t *testing.T) {
	t.Parallel()

	in := Input{LineItems: chargerItems(), Rules: []models.DiscountRule{chargerRule()}}
	first, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	second, err := Calculate(Input{LineItems: first.LineItems, Rules: in.Rules})
	if err != nil {
		t.Fatalf("Calculate second pass: %v", err)
	}

	for i, item := range second.LineItems {
		if !item.UnitPrice.Equal(first.LineItems[i].UnitPrice) {
			t.Fatalf("item %s: discount compounded: %s vs %s", item.ID, item.UnitPrice, first.LineItems[i].UnitPrice)
		}
	}
	if !second.Totals.Total.Equal(first.Totals.Total) {
		t.Fatalf("totals drifted on second pass: %s vs %s", second.Totals.Total, first.Totals.Total)
	}
}

func TestCalculateGSTAppliesAfterQuoteDiscount(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{
		LineItems: []types.LineItem{
			{ID: "a", Name: "Install labour", Quantity: 1, UnitPrice: dec("200")},
		},
		Discount:     dec("50"),
		DiscountType: enums.DiscountTypeFixed,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if !res.Totals.Discount.Equal(dec("50")) {
		t.Fatalf("expected discount 50, got %s", res.Totals.Discount)
	}
	// gst on 150, never on the raw 200 subtotal
	if !res.Totals.GST.Equal(dec("15")) {
		t.Fatalf("expected gst 15, got %s", res.Totals.GST)
	}
	if !res.Totals.Total.Equal(dec("165")) {
		t.Fatalf("expected total 165, got %s", res.Totals.Total)
	}
}

func TestCalculatePercentageDiscount(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{
		LineItems: []types.LineItem{
			{ID: "a", Name: "Cable run", Quantity: 2, UnitPrice: dec("100")},
		},
		Discount:     dec("10"),
		DiscountType: enums.DiscountTypePercentage,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if !res.Totals.Discount.Equal(dec("20")) {
		t.Fatalf("expected discount amount 20, got %s", res.Totals.Discount)
	}
	if !res.Totals.GST.Equal(dec("18")) {
		t.Fatalf("expected gst 18, got %s", res.Totals.GST)
	}
	if !res.Totals.Total.Equal(dec("198")) {
		t.Fatalf("expected total 198, got %s", res.Totals.Total)
	}
}

func TestCalculateAppliesMarkup(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{
		LineItems: []types.LineItem{
			{ID: "a", Name: "Switchboard", Quantity: 2, UnitPrice: dec("100"), MarkupPercent: dec("25")},
		},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if !res.LineItems[0].TotalPrice.Equal(dec("250")) {
		t.Fatalf("expected line total 250, got %s", res.LineItems[0].TotalPrice)
	}
}

func TestCalculateEmptyLineItems(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if !res.Totals.Subtotal.IsZero() || !res.Totals.Discount.IsZero() || !res.Totals.GST.IsZero() || !res.Totals.Total.IsZero() {
		t.Fatalf("expected all-zero totals, got %+v", res.Totals)
	}
	if len(res.LineItems) != 0 {
		t.Fatalf("expected no line items, got %d", len(res.LineItems))
	}
}

func TestCalculateRejectsInvalidItemsAsABatch(t *testing.T) {
	t.Parallel()

	items := chargerItems()
	items[1].Quantity = 0

	_, err := Calculate(Input{LineItems: items})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestCalculateRejectsNegativePrices(t *testing.T) {
	t.Parallel()

	_, err := Calculate(Input{
		LineItems: []types.LineItem{
			{ID: "a", Name: "Bad", Quantity: 1, UnitPrice: dec("-1")},
		},
	})
	if err == nil {
		t.Fatalf("expected validation error for negative price")
	}

	_, err = Calculate(Input{
		LineItems: []types.LineItem{
			{ID: "a", Name: "Bad", Quantity: 1, UnitPrice: dec("1"), MarkupPercent: dec("-5")},
		},
	})
	if err == nil {
		t.Fatalf("expected validation error for negative markup")
	}
}

func TestCalculateCustomGSTRate(t *testing.T) {
	t.Parallel()

	rate := dec("15")
	res, err := Calculate(Input{
		LineItems: []types.LineItem{
			{ID: "a", Name: "Panel", Quantity: 1, UnitPrice: dec("100")},
		},
		GSTRate: &rate,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !res.Totals.GST.Equal(dec("15")) {
		t.Fatalf("expected gst 15, got %s", res.Totals.GST)
	}
}
