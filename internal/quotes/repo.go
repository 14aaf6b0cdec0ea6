package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/pkg/db"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

// Repo persists quote snapshots.
type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

// GetByID loads a quote snapshot by its primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.client.DB().WithContext(ctx).
		Where("id = ?", id).
		First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Quote not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote")
	}
	return &quote, nil
}

// AppendAttachment reads the current attachment list, appends the new entry
// and writes the whole array back. The read and write are not wrapped in a
// transaction, so two concurrent publishes against the same quote can lose
// one of the entries.
func (r *Repo) AppendAttachment(ctx context.Context, quoteID uuid.UUID, att types.Attachment) (*models.Quote, error) {
	quote, err := r.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	quote.Attachments = append(quote.Attachments, att)

	err = r.client.DB().WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Update("attachments", quote.Attachments).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("saving attachments for quote %s", quoteID))
	}

	return quote, nil
}
