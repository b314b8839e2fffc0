package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/servitec-peru/go-admin-backend/internal/fstore"
	"github.com/servitec-peru/go-admin-backend/internal/quotations/domain"
)

const collectionName = "quotations"

var notDeleted = fstore.Clause{Field: "isDeleted", Op: "==", Value: false}

type Repo struct {
	col *firestore.CollectionRef
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{col: client.Collection(collectionName)}
}

func (r *Repo) NewID() string {
	return r.col.NewDoc().ID
}

func (r *Repo) Fetch(ctx context.Context, quotationID string) (*domain.Quotation, error) {
	return fstore.FetchDocument[domain.Quotation](ctx, r.col.Doc(quotationID))
}

func (r *Repo) FetchAll(ctx context.Context) ([]*domain.Quotation, error) {
	return fstore.FetchCollection[domain.Quotation](ctx, r.col.Query, notDeleted)
}

func (r *Repo) Add(ctx context.Context, quotation *domain.Quotation) error {
	quotation.ID = r.NewID()
	quotation.AssignCreateProps(time.Now())

	_, err := fstore.SetDocument(ctx, r.col.Doc(quotation.ID), quotation)
	return err
}

// Update replaces the stored document, carrying createAt and isDeleted
// forward. Applying the same document twice yields the same final state
// (modulo updateAt).
func (r *Repo) Update(ctx context.Context, quotationID string, quotation *domain.Quotation) error {
	existing, err := r.Fetch(ctx, quotationID)
	if err != nil {
		return fmt.Errorf("fetch quotation: %w", err)
	}
	if existing == nil {
		return domain.ErrQuotationNotFound
	}

	quotation.ID = quotationID
	quotation.CreateAt = existing.CreateAt
	quotation.IsDeleted = existing.IsDeleted
	quotation.AssignUpdateProps(time.Now())

	_, err = fstore.SetDocument(ctx, r.col.Doc(quotationID), quotation)
	return err
}

func (r *Repo) SoftDelete(ctx context.Context, quotationID string) error {
	existing, err := r.Fetch(ctx, quotationID)
	if err != nil {
		return fmt.Errorf("fetch quotation: %w", err)
	}
	if existing == nil {
		return domain.ErrQuotationNotFound
	}

	existing.AssignDeleteProps(time.Now())

	_, err = fstore.SetDocument(ctx, r.col.Doc(quotationID), existing)
	return err
}
