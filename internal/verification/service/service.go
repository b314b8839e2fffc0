package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/messaging"
	usersdomain "github.com/servitec-peru/go-admin-backend/internal/users/domain"
	"github.com/servitec-peru/go-admin-backend/internal/verification/captcha"
	"github.com/servitec-peru/go-admin-backend/internal/verification/domain"
)

// UserRepository is the slice of the users store the login flow needs.
type UserRepository interface {
	Fetch(ctx context.Context, userID string) (*usersdomain.User, error)
	FetchByDNI(ctx context.Context, dni string) (*usersdomain.User, error)
	UpdateFields(ctx context.Context, userID string, updates []firestore.Update) error
}

// Sessions stores the transient verification sessions.
type Sessions interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Tokens is the slice of the Firebase Auth client used to establish and
// revoke credentials.
type Tokens interface {
	CustomToken(ctx context.Context, uid string) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Service runs the login state machine:
// awaiting_dni -> awaiting_method -> awaiting_code -> authenticated.
// Failures return the session to its current state; nothing is retried
// automatically.
type Service struct {
	users    UserRepository
	sessions Sessions
	senders  map[domain.Method]messaging.Sender
	captcha  captcha.Verifier
	messages *messaging.Messages
	tokens   Tokens
	logger   *zap.Logger

	now func() time.Time
}

func NewService(
	users UserRepository,
	sessions Sessions,
	senders map[domain.Method]messaging.Sender,
	captchaVerifier captcha.Verifier,
	messages *messaging.Messages,
	tokens Tokens,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		senders:  senders,
		captcha:  captchaVerifier,
		messages: messages,
		tokens:   tokens,
		logger:   logger.Named("verification"),
		now:      time.Now,
	}
}

// FindUserByDNI is step 1: locate the login subject. A successful lookup
// opens a session in awaiting_method; a miss leaves no session behind.
func (s *Service) FindUserByDNI(ctx context.Context, dni string) (*domain.Session, *usersdomain.User, error) {
	if !isDNI(dni) {
		return nil, nil, domain.ErrInvalidDNI
	}

	user, err := s.users.FetchByDNI(ctx, dni)
	if err != nil {
		return nil, nil, fmt.Errorf("find user by dni: %w", err)
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		State:     domain.StateAwaitingMethod,
		UserID:    user.ID,
		CreatedAt: s.now(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}

	s.logger.Info("login subject located",
		zap.String("sessionId", session.ID),
		zap.String("userId", user.ID))

	return session, user, nil
}

// SendCode is step 2: verify the bot-check token, generate a fresh code
// and dispatch it over the chosen method. Re-sending replaces the
// previous code. Returns the user-facing confirmation text.
func (s *Service) SendCode(ctx context.Context, sessionID string, method domain.Method, captchaToken string) (string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if session.State != domain.StateAwaitingMethod && session.State != domain.StateAwaitingCode {
		return "", domain.ErrInvalidState
	}

	sender, ok := s.senders[method]
	if !ok {
		return "", domain.ErrInvalidMethod
	}

	if err := s.captcha.Verify(ctx, captchaToken); err != nil {
		if errors.Is(err, captcha.ErrInvalidToken) {
			return "", domain.ErrInvalidCaptcha
		}
		return "", fmt.Errorf("verify captcha: %w", err)
	}

	if !session.CodeSentAt.IsZero() && s.now().Sub(session.CodeSentAt) < domain.ResendInterval {
		return "", domain.ErrTooManyRequests
	}

	user, err := s.users.Fetch(ctx, session.UserID)
	if err != nil {
		return "", fmt.Errorf("fetch session subject: %w", err)
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}

	destination, masked, err := destinationFor(user, method)
	if err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	if err := sender.Send(ctx, destination, code); err != nil {
		return "", fmt.Errorf("dispatch code: %w", err)
	}

	now := s.now()
	session.State = domain.StateAwaitingCode
	session.Method = method
	session.Destination = destination
	session.Code = code
	session.AttemptsLeft = domain.MaxAttempts
	session.CodeSentAt = now
	session.CodeExpiresAt = now.Add(domain.CodeTTL)

	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("verification code dispatched",
		zap.String("sessionId", session.ID),
		zap.String("method", string(method)),
		zap.String("destination", masked))

	return s.messages.CodeSentNotification(masked), nil
}

// VerifyCode is step 3: confirm the code and mint the credential. The
// custom token is created with uid equal to the session subject's
// document id, so the resulting credential always corresponds to the
// user found in step 1.
func (s *Service) VerifyCode(ctx context.Context, sessionID, code string) (string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if session.State != domain.StateAwaitingCode {
		return "", domain.ErrInvalidState
	}

	if s.now().After(session.CodeExpiresAt) {
		// The session survives so the user can request a fresh code.
		return "", domain.ErrExpiredCode
	}

	if code != session.Code {
		session.AttemptsLeft--
		if session.AttemptsLeft <= 0 {
			if err := s.sessions.Delete(ctx, session.ID); err != nil {
				s.logger.Error("delete exhausted session", zap.Error(err))
			}
			return "", domain.ErrTooManyRequests
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			return "", fmt.Errorf("save session: %w", err)
		}
		return "", domain.ErrInvalidCode
	}

	now := s.now()
	updates := []firestore.Update{
		{Path: "lastLoginAt", Value: now},
		{Path: "updateAt", Value: now},
	}
	if session.Method == domain.MethodPhone {
		updates = append(updates, firestore.Update{Path: "phoneVerified", Value: true})
	}
	if err := s.users.UpdateFields(ctx, session.UserID, updates); err != nil {
		return "", fmt.Errorf("stamp login: %w", err)
	}

	token, err := s.tokens.CustomToken(ctx, session.UserID)
	if err != nil {
		return "", fmt.Errorf("mint custom token: %w", err)
	}

	session.State = domain.StateAuthenticated
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.logger.Error("delete consumed session", zap.Error(err))
	}

	s.logger.Info("login completed",
		zap.String("sessionId", session.ID),
		zap.String("userId", session.UserID))

	return token, nil
}

// Logout tears down whatever is left of the attempt. It always succeeds
// locally; remote revocation is fire-and-forget.
func (s *Service) Logout(ctx context.Context, sessionID, userID string) {
	if sessionID != "" {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.logger.Warn("delete session on logout", zap.Error(err))
		}
	}

	if userID != "" {
		if err := s.tokens.RevokeRefreshTokens(ctx, userID); err != nil {
			s.logger.Warn("revoke refresh tokens", zap.String("userId", userID), zap.Error(err))
		}
	}
}

func destinationFor(user *usersdomain.User, method domain.Method) (destination, masked string, err error) {
	switch method {
	case domain.MethodPhone:
		if user.Phone.Number == "" {
			return "", "", domain.ErrInvalidPhone
		}
		return user.FullPhoneNumber(), messaging.MaskPhone(user.Phone.Number), nil
	case domain.MethodEmail:
		if user.Email == "" {
			return "", "", domain.ErrInvalidMethod
		}
		return user.Email, messaging.MaskEmail(user.Email), nil
	default:
		return "", "", domain.ErrInvalidMethod
	}
}

func isDNI(dni string) bool {
	if len(dni) != 8 {
		return false
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < domain.CodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", domain.CodeLength, n), nil
}
