package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servitec-peru/go-admin-backend/internal/quotations/domain"
)

// setupRepo connects to the Firestore emulator.
// Skips the test if FIRESTORE_EMULATOR_HOST is not set.
func setupRepo(t *testing.T) *Repo {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "servitec-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRepo(client)
}

func seedQuotation(t *testing.T, repo *Repo) *domain.Quotation {
	t.Helper()

	quotation := &domain.Quotation{
		Device:   domain.Device{Type: "laptop", Brand: "Lenovo", Model: "T14", Color: "black"},
		Analysis: "no enciende",
	}
	quotation.Client.FirstName = "Ana"
	require.NoError(t, repo.Add(context.Background(), quotation))
	t.Cleanup(func() { repo.col.Doc(quotation.ID).Delete(context.Background()) })

	return quotation
}

func TestRepoRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	quotation := seedQuotation(t, repo)
	require.NotEmpty(t, quotation.ID, "Add assigns the id")

	got, err := repo.Fetch(ctx, quotation.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "no enciende", got.Analysis)
	assert.Equal(t, "Lenovo", got.Device.Brand)
	assert.False(t, got.CreateAt.IsZero())
	assert.False(t, got.IsDeleted)
}

func TestRepoUpdateIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	quotation := seedQuotation(t, repo)
	createAt := quotation.CreateAt

	update := &domain.Quotation{
		Device:    quotation.Device,
		Analysis:  "pantalla rota",
		Solutions: "cambio de pantalla",
	}
	update.Client = quotation.Client

	require.NoError(t, repo.Update(ctx, quotation.ID, update))
	require.NoError(t, repo.Update(ctx, quotation.ID, update))

	got, err := repo.Fetch(ctx, quotation.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pantalla rota", got.Analysis)
	assert.Equal(t, "cambio de pantalla", got.Solutions)
	assert.WithinDuration(t, createAt, got.CreateAt, time.Second, "update must not touch createAt")
	assert.False(t, got.IsDeleted)
}

func TestRepoUpdateMissing(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Update(context.Background(), "no-such-quotation", &domain.Quotation{Analysis: "x"})
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
}

func TestRepoSoftDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	quotation := seedQuotation(t, repo)

	require.NoError(t, repo.SoftDelete(ctx, quotation.ID))

	got, err := repo.Fetch(ctx, quotation.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "the document itself survives")
	assert.True(t, got.IsDeleted)
	assert.WithinDuration(t, quotation.CreateAt, got.CreateAt, time.Second)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	for _, q := range all {
		assert.NotEqual(t, quotation.ID, q.ID, "soft-deleted quotations disappear from listings")
	}
}

func TestRepoSoftDeleteMissing(t *testing.T) {
	repo := setupRepo(t)

	err := repo.SoftDelete(context.Background(), "no-such-quotation")
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
}
