package service

import (
	"context"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/users/domain"
)

type fakeRepo struct {
	byID    map[string]*domain.User
	nextID  int
	added   []*domain.User
	updated []*domain.User
}

func newFakeRepo(users ...*domain.User) *fakeRepo {
	r := &fakeRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeRepo) NewID() string {
	r.nextID++
	return "generated-id"
}

func (r *fakeRepo) Fetch(_ context.Context, userID string) (*domain.User, error) {
	return r.byID[userID], nil
}

func (r *fakeRepo) FetchAll(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeRepo) ExistsEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.byID {
		if !u.IsDeleted && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ExistsDNI(_ context.Context, dni string) (bool, error) {
	for _, u := range r.byID {
		if !u.IsDeleted && u.Document.Number == dni {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ExistsPhoneNumber(_ context.Context, number string) (bool, error) {
	for _, u := range r.byID {
		if !u.IsDeleted && u.Phone.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Add(_ context.Context, user *domain.User) error {
	r.added = append(r.added, user)
	r.byID[user.ID] = user
	return nil
}

func (r *fakeRepo) Update(_ context.Context, user *domain.User) error {
	r.updated = append(r.updated, user)
	r.byID[user.ID] = user
	return nil
}

type fakeAccounts struct {
	created []string
	updated []string
}

func (a *fakeAccounts) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	a.created = append(a.created, "create")
	return &auth.UserRecord{}, nil
}

func (a *fakeAccounts) UpdateUser(_ context.Context, uid string, _ *auth.UserToUpdate) (*auth.UserRecord, error) {
	a.updated = append(a.updated, uid)
	return &auth.UserRecord{}, nil
}

func existingUser() *domain.User {
	u := &domain.User{
		ID:        "user-1",
		FirstName: "Ana",
		Email:     "ana@example.com",
		Document:  domain.IdentityDocument{Type: "dni", Number: "11111111"},
		Phone:     domain.Phone{Prefix: "51", Number: "911111111"},
	}
	return u
}

func newUser() *domain.User {
	return &domain.User{
		FirstName: "Luis",
		Email:     "luis@example.com",
		Document:  domain.IdentityDocument{Type: "dni", Number: "22222222"},
		Phone:     domain.Phone{Number: "922222222"},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id, phone prefix and audit props", func(t *testing.T) {
		repo := newFakeRepo()
		accounts := &fakeAccounts{}
		svc := NewService(repo, accounts, zap.NewNop())

		user := newUser()
		require.NoError(t, svc.Create(ctx, user))

		assert.Equal(t, "generated-id", user.ID)
		assert.Equal(t, "51", user.Phone.Prefix)
		assert.False(t, user.CreateAt.IsZero())
		assert.False(t, user.IsDeleted)
		require.Len(t, repo.added, 1)
		assert.Len(t, accounts.created, 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeRepo(existingUser())
		accounts := &fakeAccounts{}
		svc := NewService(repo, accounts, zap.NewNop())

		user := newUser()
		user.Email = "ana@example.com"

		err := svc.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
		assert.Empty(t, repo.added)
		assert.Empty(t, accounts.created)
	})

	t.Run("duplicate document number", func(t *testing.T) {
		repo := newFakeRepo(existingUser())
		svc := NewService(repo, &fakeAccounts{}, zap.NewNop())

		user := newUser()
		user.Document.Number = "11111111"

		err := svc.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrDNIExists)
		assert.Empty(t, repo.added)
	})

	t.Run("duplicate phone number", func(t *testing.T) {
		repo := newFakeRepo(existingUser())
		svc := NewService(repo, &fakeAccounts{}, zap.NewNop())

		user := newUser()
		user.Phone.Number = "911111111"

		err := svc.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrPhoneNumberExists)
		assert.Empty(t, repo.added)
	})

	t.Run("email outranks document when both collide", func(t *testing.T) {
		repo := newFakeRepo(existingUser())
		svc := NewService(repo, &fakeAccounts{}, zap.NewNop())

		user := newUser()
		user.Email = "ana@example.com"
		user.Document.Number = "11111111"

		err := svc.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("soft-deleted users do not block reuse", func(t *testing.T) {
		gone := existingUser()
		gone.IsDeleted = true
		repo := newFakeRepo(gone)
		svc := NewService(repo, &fakeAccounts{}, zap.NewNop())

		user := newUser()
		user.Email = gone.Email
		user.Document.Number = gone.Document.Number
		user.Phone.Number = gone.Phone.Number

		assert.NoError(t, svc.Create(ctx, user))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeAccounts{}, zap.NewNop())

		user := existingUser()
		user.ID = "missing"

		err := svc.Update(ctx, user)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("unchanged contact fields skip uniqueness checks and auth sync", func(t *testing.T) {
		repo := newFakeRepo(existingUser())
		accounts := &fakeAccounts{}
		svc := NewService(repo, accounts, zap.NewNop())

		user := existingUser()
		user.FirstName = "Ana María"

		require.NoError(t, svc.Update(ctx, user))
		require.Len(t, repo.updated, 1)
		assert.Empty(t, accounts.updated)
		assert.False(t, user.UpdateAt.IsZero())
	})

	t.Run("changed email re-checks uniqueness", func(t *testing.T) {
		other := existingUser()
		other.ID = "user-2"
		other.Email = "taken@example.com"
		other.Document.Number = "33333333"
		other.Phone.Number = "933333333"

		repo := newFakeRepo(existingUser(), other)
		svc := NewService(repo, &fakeAccounts{}, zap.NewNop())

		user := existingUser()
		user.Email = "taken@example.com"

		err := svc.Update(ctx, user)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
		assert.Empty(t, repo.updated)
	})

	t.Run("changed phone number syncs the auth account", func(t *testing.T) {
		repo := newFakeRepo(existingUser())
		accounts := &fakeAccounts{}
		svc := NewService(repo, accounts, zap.NewNop())

		user := existingUser()
		user.Phone.Number = "944444444"

		require.NoError(t, svc.Update(ctx, user))
		assert.Equal(t, []string{"user-1"}, accounts.updated)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes the document", func(t *testing.T) {
		repo := newFakeRepo(existingUser())
		svc := NewService(repo, &fakeAccounts{}, zap.NewNop())

		require.NoError(t, svc.Delete(ctx, "user-1"))
		require.Len(t, repo.updated, 1)
		assert.True(t, repo.updated[0].IsDeleted)
		assert.False(t, repo.updated[0].UpdateAt.IsZero())
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeAccounts{}, zap.NewNop())

		err := svc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
