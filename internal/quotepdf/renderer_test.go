package quotepdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pageCount(data []byte) int {
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func sampleQuote(items int) *models.Quote {
	lineItems := make(types.LineItems, 0, items)
	for i := 0; i < items; i++ {
		lineItems = append(lineItems, types.LineItem{
			ID:          fmt.Sprintf("item-%d", i),
			Name:        fmt.Sprintf("Wall charger unit %d", i),
			Description: "Includes mounting bracket and cable management",
			Quantity:    2,
			UnitPrice:   dec("100"),
			TotalPrice:  dec("200"),
		})
	}
	return &models.Quote{
		QuoteNumber: "Q-1042",
		ClientInfo: types.ClientInfo{
			Company: "Northside Electrical Pty Ltd",
			Contact: "Sam Harper",
			Email:   "sam@northside.example",
			Phone:   "+61 400 000 000",
			Address: "12 Depot Lane, Brunswick VIC",
		},
		LineItems: lineItems,
		Totals: types.QuoteTotals{
			Subtotal:     dec("200").Mul(decimal.NewFromInt(int64(items))),
			DiscountType: enums.DiscountTypePercentage,
			GST:          dec("20").Mul(decimal.NewFromInt(int64(items))),
			Total:        dec("220").Mul(decimal.NewFromInt(int64(items))),
		},
		CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestRenderProducesPDFSignature(t *testing.T) {
	t.Parallel()

	r := NewRenderer(config.DocumentConfig{IssuerName: "Northside Quotes", CurrencySymbol: "$"})
	data, err := r.Render(sampleQuote(3))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected %%PDF signature, got %q", data[:8])
	}
}

func TestRenderEmptyQuoteStillProducesDocument(t *testing.T) {
	t.Parallel()

	r := NewRenderer(config.DocumentConfig{})
	q := sampleQuote(0)
	q.ClientInfo = types.ClientInfo{}
	q.Totals = types.QuoteTotals{}

	data, err := r.Render(q)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected valid document for empty quote")
	}
	if pageCount(data) != 1 {
		t.Fatalf("expected a single page, got %d", pageCount(data))
	}
}

func TestRenderPaginatesLongQuotes(t *testing.T) {
	t.Parallel()

	r := NewRenderer(config.DocumentConfig{})
	data, err := r.Render(sampleQuote(60))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := pageCount(data); got < 2 {
		t.Fatalf("expected at least 2 pages for 60 items, got %d", got)
	}
}

func TestRenderNilQuoteRejected(t *testing.T) {
	t.Parallel()

	r := NewRenderer(config.DocumentConfig{})
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil quote")
	}
}

func TestTruncateKeepsShortNames(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 10); got != "short" {
		t.Fatalf("unexpected truncation %q", got)
	}
	long := truncate("abcdefghijklmnopqrstuvwxyz", 10)
	if len([]rune(long)) > 12 {
		t.Fatalf("expected truncated name, got %q", long)
	}
}
