package quotepdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 25.0

	rowHeight     = 6.0
	descRowHeight = 5.0
	footerHeight  = 34.0

	nameColWidth  = 95.0
	qtyColWidth   = 20.0
	unitColWidth  = 32.0
	totalColWidth = 33.0

	maxNameChars = 48
)

// Renderer turns quote snapshots into paginated PDF documents. It performs no
// arithmetic; every number it prints was computed upstream.
type Renderer struct {
	issuerName     string
	currencySymbol string
}

func NewRenderer(cfg config.DocumentConfig) *Renderer {
	issuer := cfg.IssuerName
	if issuer == "" {
		issuer = "QuoteDesk"
	}
	symbol := cfg.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}
	return &Renderer{issuerName: issuer, currencySymbol: symbol}
}

// Render produces the PDF bytes for a quote snapshot. A quote with zero line
// items still renders a valid document with an empty table and zero totals.
func (r *Renderer) Render(q *models.Quote) ([]byte, error) {
	if q == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote snapshot is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Quote %s", q.QuoteNumber), false)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	contentWidth := pageWidth - marginLeft - marginRight
	breakAt := pageHeight - marginBottom

	r.drawHeader(pdf, tr, q, contentWidth)
	r.drawClientBlock(pdf, tr, q)
	r.drawTableHeader(pdf, tr)

	for _, item := range q.LineItems {
		needed := rowHeight
		if item.Description != "" {
			needed += descRowHeight
		}
		// Continuation pages intentionally do not repeat the header or the
		// client block; only the column header is redrawn.
		if pdf.GetY()+needed > breakAt {
			pdf.AddPage()
			pdf.SetY(marginTop)
			r.drawTableHeader(pdf, tr)
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(nameColWidth, rowHeight, tr(truncate(item.Name, maxNameChars)), "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyColWidth, rowHeight, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(unitColWidth, rowHeight, r.money(item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(totalColWidth, rowHeight, r.money(item.TotalPrice), "", 1, "R", false, 0, "")

		if item.Description != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(120, 120, 120)
			pdf.SetX(marginLeft + 4)
			pdf.CellFormat(nameColWidth-4, descRowHeight, tr(truncate(item.Description, 90)), "", 1, "L", false, 0, "")
		}
	}

	if pdf.GetY()+footerHeight > breakAt {
		pdf.AddPage()
		pdf.SetY(marginTop)
	}
	r.drawTotals(pdf, tr, q)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering quote pdf")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, q *models.Quote, contentWidth float64) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 9, tr(r.issuerName), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(contentWidth, 7, "Quotation", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, 5, tr(fmt.Sprintf("Quote %s", q.QuoteNumber)), "", 1, "R", false, 0, "")
	issued := q.CreatedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	pdf.CellFormat(contentWidth, 5, issued.Format("2 January 2006"), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) drawClientBlock(pdf *gofpdf.Fpdf, tr func(string) string, q *models.Quote) {
	lines := clientLines(q.ClientInfo)
	if len(lines) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "Prepared for", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func clientLines(info types.ClientInfo) []string {
	candidates := []string{
		info.Company,
		info.Name,
		info.Contact,
		info.Email,
		info.Phone,
		info.Address,
	}
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			lines = append(lines, c)
		}
	}
	return lines
}

func (r *Renderer) drawTableHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(nameColWidth, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyColWidth, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(unitColWidth, 7, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(totalColWidth, 7, "Total", "B", 1, "R", false, 0, "")
	pdf.Ln(1)
}

func (r *Renderer) drawTotals(pdf *gofpdf.Fpdf, tr func(string) string, q *models.Quote) {
	labelWidth := nameColWidth + qtyColWidth
	pdf.Ln(3)

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(labelWidth, rowHeight, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(unitColWidth, rowHeight, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(totalColWidth, rowHeight, value, "", 1, "R", false, 0, "")
	}

	totals := q.Totals
	row("Subtotal", r.money(totals.Subtotal), false)
	if totals.Discount.IsPositive() {
		row("Discount", "-"+r.money(totals.Discount), false)
	}
	row("GST", r.money(totals.GST), false)
	row("Total", r.money(totals.Total), true)
}

func (r *Renderer) money(d decimal.Decimal) string {
	return r.currencySymbol + d.StringFixed(2)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "..."
}
