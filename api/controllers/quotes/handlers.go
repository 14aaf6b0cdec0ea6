package quotes

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/api/middleware"
	"github.com/quotedesk/quotedesk-backend/api/responses"
	"github.com/quotedesk/quotedesk-backend/api/validators"
	"github.com/quotedesk/quotedesk-backend/internal/pricing"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
	"github.com/quotedesk/quotedesk-backend/pkg/metrics"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

// SettingsService supplies the pricing configuration read per request.
type SettingsService interface {
	GSTRate(ctx context.Context) (decimal.Decimal, error)
	DiscountRules(ctx context.Context) ([]models.DiscountRule, error)
}

// QuoteStore loads quote snapshots.
type QuoteStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
}

// DocumentRenderer turns a quote snapshot into PDF bytes.
type DocumentRenderer interface {
	Render(quote *models.Quote) ([]byte, error)
}

// DocumentPublisher uploads a rendered document and records the attachment.
type DocumentPublisher interface {
	Publish(ctx context.Context, quote *models.Quote, pdf []byte, uploadedBy string) (*types.Attachment, *models.Quote, error)
}

// Handler serves the quote pricing and document endpoints.
type Handler struct {
	settings  SettingsService
	quotes    QuoteStore
	renderer  DocumentRenderer
	publisher DocumentPublisher
	logg      *logger.Logger
	metrics   *metrics.DocumentMetrics
}

func NewHandler(settings SettingsService, quotes QuoteStore, renderer DocumentRenderer, publisher DocumentPublisher, logg *logger.Logger, m *metrics.DocumentMetrics) *Handler {
	return &Handler{
		settings:  settings,
		quotes:    quotes,
		renderer:  renderer,
		publisher: publisher,
		logg:      logg,
		metrics:   m,
	}
}

// CalculateTotals reprices the submitted line items and returns the derived
// totals without touching any stored quote.
func (h *Handler) CalculateTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CalculateTotalsRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, h.logg, err)
		return
	}

	gstRate, err := h.settings.GSTRate(ctx)
	if err != nil {
		responses.WriteError(ctx, w, h.logg, err)
		return
	}
	rules, err := h.settings.DiscountRules(ctx)
	if err != nil {
		responses.WriteError(ctx, w, h.logg, err)
		return
	}

	result, err := pricing.Calculate(pricing.Input{
		LineItems:    req.LineItems,
		Discount:     req.Discount,
		DiscountType: req.DiscountType,
		GSTRate:      &gstRate,
		Rules:        rules,
	})
	if err != nil {
		responses.WriteError(ctx, w, h.logg, err)
		return
	}

	items := result.LineItems
	if items == nil {
		items = []types.LineItem{}
	}
	responses.WriteJSON(w, http.StatusOK, CalculateTotalsResponse{
		LineItems: items,
		Totals:    result.Totals,
	})
}

// GeneratePDF renders the stored quote and publishes the document to object
// storage before answering.
func (h *Handler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GeneratePDFRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, w, h.logg, err)
		return
	}

	rawID := req.ID()
	if rawID == "" {
		responses.WriteError(ctx, w, h.logg,
			pkgerrors.New(pkgerrors.CodeValidation, "quoteId is required"))
		return
	}
	if h.logg != nil {
		ctx = h.logg.WithQuoteID(ctx, rawID)
	}

	quoteID, err := uuid.Parse(rawID)
	if err != nil {
		responses.WriteError(ctx, w, h.logg,
			pkgerrors.New(pkgerrors.CodeNotFound, "Quote not found"))
		return
	}

	quote, err := h.quotes.GetByID(ctx, quoteID)
	if err != nil {
		responses.WriteError(ctx, w, h.logg, err)
		return
	}

	start := time.Now()
	pdf, err := h.renderer.Render(quote)
	if err != nil {
		h.metrics.ObserveRender("error", time.Since(start))
		responses.WriteError(ctx, w, h.logg, err)
		return
	}
	h.metrics.ObserveRender("success", time.Since(start))

	uploadedBy := middleware.ClaimsFromContext(ctx).DisplayName()
	attachment, _, err := h.publisher.Publish(ctx, quote, pdf, uploadedBy)
	if err != nil {
		responses.WriteError(ctx, w, h.logg, err)
		return
	}

	responses.WriteJSON(w, http.StatusOK, GeneratePDFResponse{
		Success: true,
		File:    *attachment,
	})
}
