package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/servitec-peru/go-admin-backend/internal/fstore"
	"github.com/servitec-peru/go-admin-backend/internal/users/domain"
)

const collectionName = "users"

var notDeleted = fstore.Clause{Field: "isDeleted", Op: "==", Value: false}

// Repo provides Firestore persistence for user documents.
type Repo struct {
	col *firestore.CollectionRef
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{col: client.Collection(collectionName)}
}

// NewID reserves a fresh document id without writing anything.
func (r *Repo) NewID() string {
	return r.col.NewDoc().ID
}

func (r *Repo) Fetch(ctx context.Context, userID string) (*domain.User, error) {
	return fstore.FetchDocument[domain.User](ctx, r.col.Doc(userID))
}

// FetchAll returns every non-deleted user. No pagination: list fetches
// return the full matching set.
func (r *Repo) FetchAll(ctx context.Context) ([]*domain.User, error) {
	return fstore.FetchCollection[domain.User](ctx, r.col.Query, notDeleted)
}

// FetchByDNI returns the non-deleted user whose document number matches,
// or nil when absent.
func (r *Repo) FetchByDNI(ctx context.Context, dni string) (*domain.User, error) {
	users, err := fstore.FetchCollection[domain.User](ctx, r.col.Query.Limit(1),
		notDeleted,
		fstore.Clause{Field: "document.number", Op: "==", Value: dni},
	)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (r *Repo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, fstore.Clause{Field: "email", Op: "==", Value: email})
}

func (r *Repo) ExistsDNI(ctx context.Context, dni string) (bool, error) {
	return r.exists(ctx, fstore.Clause{Field: "document.number", Op: "==", Value: dni})
}

func (r *Repo) ExistsPhoneNumber(ctx context.Context, number string) (bool, error) {
	return r.exists(ctx, fstore.Clause{Field: "phone.number", Op: "==", Value: number})
}

func (r *Repo) exists(ctx context.Context, clause fstore.Clause) (bool, error) {
	users, err := fstore.FetchCollection[domain.User](ctx, r.col.Query.Limit(1), notDeleted, clause)
	if err != nil {
		return false, err
	}
	return len(users) > 0, nil
}

func (r *Repo) Add(ctx context.Context, user *domain.User) error {
	_, err := fstore.SetDocument(ctx, r.col.Doc(user.ID), user)
	return err
}

// Update replaces the stored document. Callers carry createAt and
// isDeleted forward before writing.
func (r *Repo) Update(ctx context.Context, user *domain.User) error {
	_, err := fstore.SetDocument(ctx, r.col.Doc(user.ID), user)
	return err
}

// UpdateFields applies targeted field updates (used by the login flow for
// phoneVerified / lastLoginAt stamps).
func (r *Repo) UpdateFields(ctx context.Context, userID string, updates []firestore.Update) error {
	_, err := fstore.UpdateDocument(ctx, r.col.Doc(userID), updates)
	return err
}
