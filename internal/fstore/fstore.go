// Package fstore wraps the Firestore SDK with the small set of typed
// document helpers the rest of the service is built on. Reads return the
// zero value on not-found instead of an error; writes pass the SDK's
// write result through.
package fstore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Clause is an equality/range filter applied to a collection query,
// expressed as a [field, operator, value] triple.
type Clause struct {
	Field string
	Op    string
	Value interface{}
}

// identifiable is implemented by documents that carry their Firestore id.
// The id from the snapshot wins over whatever is stored in the document.
type identifiable interface {
	SetID(id string)
}

// ApplyClauses folds zero or more where clauses onto a query.
func ApplyClauses(q firestore.Query, clauses []Clause) firestore.Query {
	for _, c := range clauses {
		q = q.Where(c.Field, c.Op, c.Value)
	}
	return q
}

// FetchCollection executes the query and maps every snapshot into *T,
// injecting the document id. An empty result is a valid empty slice, not
// an error.
func FetchCollection[T any](ctx context.Context, q firestore.Query, clauses ...Clause) ([]*T, error) {
	iter := ApplyClauses(q, clauses).Documents(ctx)
	defer iter.Stop()

	docs := make([]*T, 0, 8)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		doc := new(T)
		if err := snap.DataTo(doc); err != nil {
			return nil, err
		}
		if d, ok := any(doc).(identifiable); ok {
			d.SetID(snap.Ref.ID)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// FetchDocument reads a single document. Not-found yields (nil, nil).
func FetchDocument[T any](ctx context.Context, ref *firestore.DocumentRef) (*T, error) {
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	doc := new(T)
	if err := snap.DataTo(doc); err != nil {
		return nil, err
	}
	if d, ok := any(doc).(identifiable); ok {
		d.SetID(snap.Ref.ID)
	}
	return doc, nil
}

// SetDocument writes the full document, replacing whatever exists.
func SetDocument(ctx context.Context, ref *firestore.DocumentRef, doc interface{}) (*firestore.WriteResult, error) {
	return ref.Set(ctx, doc)
}

// UpdateDocument applies field-path updates to an existing document.
func UpdateDocument(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) (*firestore.WriteResult, error) {
	return ref.Update(ctx, updates)
}

// DeleteDocument removes the document. Deleting an absent document is not
// an error in Firestore and is not treated as one here.
func DeleteDocument(ctx context.Context, ref *firestore.DocumentRef) (*firestore.WriteResult, error) {
	return ref.Delete(ctx)
}
