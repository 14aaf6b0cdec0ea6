package artifacts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
	"github.com/quotedesk/quotedesk-backend/pkg/metrics"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

const pdfContentType = "application/pdf"

// ObjectStore is the storage surface the publisher needs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, object, contentType string, data []byte) error
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	ObjectURL(bucket, object string) string
}

// AttachmentStore records published artifacts on the owning quote.
type AttachmentStore interface {
	AppendAttachment(ctx context.Context, quoteID uuid.UUID, att types.Attachment) (*models.Quote, error)
}

// Publisher uploads rendered documents and links them to their quote.
type Publisher struct {
	store     ObjectStore
	quotes    AttachmentStore
	logg      *logger.Logger
	metrics   *metrics.DocumentMetrics
	urlExpiry time.Duration
	now       func() time.Time
}

func NewPublisher(store ObjectStore, quotes AttachmentStore, cfg config.GCSConfig, logg *logger.Logger, m *metrics.DocumentMetrics) *Publisher {
	expiry := cfg.DownloadURLExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Publisher{
		store:     store,
		quotes:    quotes,
		logg:      logg,
		metrics:   m,
		urlExpiry: expiry,
		now:       time.Now,
	}
}

// Publish uploads the document, mints a download link and appends the
// attachment record to the quote. An upload failure is terminal and leaves
// the quote untouched. A signing failure is not: the attachment is still
// recorded, pointing at the raw storage path instead of a signed link.
func (p *Publisher) Publish(ctx context.Context, quote *models.Quote, pdf []byte, uploadedBy string) (*types.Attachment, *models.Quote, error) {
	if quote == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "quote snapshot is required")
	}

	object := p.objectKey(quote)
	ctx = p.logg.WithField(ctx, "object", object)

	if err := p.store.Upload(ctx, "", object, pdfContentType, pdf); err != nil {
		p.metrics.PublishFailed("upload")
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeUploadFailed, err, "uploading quote pdf")
	}

	url, err := p.store.SignedURL("", object, pdfContentType, p.urlExpiry)
	if err != nil {
		p.metrics.SignedURLFellBack()
		p.logg.Warn(ctx, fmt.Sprintf("signed url unavailable, using raw object path: %v", err))
		url = p.store.ObjectURL("", object)
	}

	att := types.Attachment{
		ID:         uuid.NewString(),
		Name:       fmt.Sprintf("quote-%s.pdf", quote.QuoteNumber),
		URL:        url,
		Type:       pdfContentType,
		Size:       int64(len(pdf)),
		UploadedAt: p.now().UTC(),
		UploadedBy: uploadedBy,
	}

	updated, err := p.quotes.AppendAttachment(ctx, quote.ID, att)
	if err != nil {
		p.metrics.PublishFailed("persist")
		return nil, nil, err
	}

	p.metrics.PublishSucceeded()
	p.logg.Info(ctx, "quote pdf published")
	return &att, updated, nil
}

func (p *Publisher) objectKey(quote *models.Quote) string {
	return fmt.Sprintf("quotes/%s/quote-%s-%d.pdf", quote.ID, quote.QuoteNumber, p.now().Unix())
}
