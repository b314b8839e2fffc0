package service

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/users/domain"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	NewID() string
	Fetch(ctx context.Context, userID string) (*domain.User, error)
	FetchAll(ctx context.Context) ([]*domain.User, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	ExistsDNI(ctx context.Context, dni string) (bool, error)
	ExistsPhoneNumber(ctx context.Context, number string) (bool, error)
	Add(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// Accounts is the slice of the Firebase Auth client used to keep identity
// accounts in sync with user documents.
type Accounts interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

type Service struct {
	repo     Repository
	accounts Accounts
	logger   *zap.Logger
}

func NewService(repo Repository, accounts Accounts, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		logger:   logger.Named("users"),
	}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Fetch(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FetchAll(ctx)
}

// Create registers a new user. Email, document number and phone number
// must be unique among non-deleted users. The checks are read-then-write
// with no transaction: concurrent creates for the same value can both
// pass, an accepted race.
func (s *Service) Create(ctx context.Context, user *domain.User) error {
	if exists, err := s.repo.ExistsEmail(ctx, user.Email); err != nil {
		return fmt.Errorf("check email: %w", err)
	} else if exists {
		return domain.ErrEmailExists
	}

	if exists, err := s.repo.ExistsDNI(ctx, user.Document.Number); err != nil {
		return fmt.Errorf("check dni: %w", err)
	} else if exists {
		return domain.ErrDNIExists
	}

	if exists, err := s.repo.ExistsPhoneNumber(ctx, user.Phone.Number); err != nil {
		return fmt.Errorf("check phone number: %w", err)
	} else if exists {
		return domain.ErrPhoneNumberExists
	}

	user.ID = s.repo.NewID()
	if user.Phone.Prefix == "" {
		user.Phone.Prefix = "51"
	}
	user.AssignCreateProps(time.Now())

	if err := s.repo.Add(ctx, user); err != nil {
		return fmt.Errorf("add user: %w", err)
	}

	// The auth account shares the document id, so verification results can
	// later be correlated by plain id equality.
	toCreate := (&auth.UserToCreate{}).
		UID(user.ID).
		PhoneNumber(user.FullPhoneNumber())
	if user.Email != "" {
		toCreate = toCreate.Email(user.Email)
	}

	if _, err := s.accounts.CreateUser(ctx, toCreate); err != nil {
		return fmt.Errorf("create auth account: %w", err)
	}

	s.logger.Info("user created",
		zap.String("userId", user.ID),
		zap.String("documentNumber", user.Document.Number))

	return nil
}

// Update mutates an existing user, re-checking uniqueness only for the
// contact fields that actually changed.
func (s *Service) Update(ctx context.Context, user *domain.User) error {
	existing, err := s.repo.Fetch(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if existing == nil {
		return domain.ErrUserNotFound
	}

	changeEmail := existing.Email != user.Email
	changePhoneNumber := existing.Phone.Number != user.Phone.Number

	if changeEmail {
		if exists, err := s.repo.ExistsEmail(ctx, user.Email); err != nil {
			return fmt.Errorf("check email: %w", err)
		} else if exists {
			return domain.ErrEmailExists
		}
	}

	if changePhoneNumber {
		if exists, err := s.repo.ExistsPhoneNumber(ctx, user.Phone.Number); err != nil {
			return fmt.Errorf("check phone number: %w", err)
		} else if exists {
			return domain.ErrPhoneNumberExists
		}
	}

	user.CreateAt = existing.CreateAt
	user.IsDeleted = existing.IsDeleted
	user.AssignUpdateProps(time.Now())

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if changeEmail || changePhoneNumber {
		toUpdate := &auth.UserToUpdate{}
		if changeEmail {
			toUpdate = toUpdate.Email(user.Email)
		}
		if changePhoneNumber {
			toUpdate = toUpdate.PhoneNumber(user.FullPhoneNumber())
		}
		if _, err := s.accounts.UpdateUser(ctx, user.ID, toUpdate); err != nil {
			return fmt.Errorf("update auth account: %w", err)
		}
	}

	s.logger.Info("user updated", zap.String("userId", user.ID))

	return nil
}

// Delete soft-deletes the user document. The auth account is kept; a
// soft-deleted user simply disappears from every listing query.
func (s *Service) Delete(ctx context.Context, userID string) error {
	existing, err := s.repo.Fetch(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if existing == nil {
		return domain.ErrUserNotFound
	}

	existing.AssignDeleteProps(time.Now())

	if err := s.repo.Update(ctx, existing); err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}

	s.logger.Info("user soft-deleted", zap.String("userId", userID))

	return nil
}
