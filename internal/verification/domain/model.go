package domain

import (
	"errors"
	"time"
)

// State of a login verification session.
type State string

const (
	StateAwaitingDni    State = "awaiting_dni"
	StateAwaitingMethod State = "awaiting_method"
	StateAwaitingCode   State = "awaiting_code"
	StateAuthenticated  State = "authenticated"
)

type Method string

const (
	MethodPhone Method = "phone"
	MethodEmail Method = "email"
)

const (
	CodeLength     = 6
	MaxAttempts    = 3
	CodeTTL        = 10 * time.Minute
	ResendInterval = 30 * time.Second
)

// Error texts double as the machine-readable categories the API exposes;
// everything else surfaces as a generic "could not complete".
var (
	ErrInvalidDNI      = errors.New("verification/invalid_dni")
	ErrUserNotFound    = errors.New("verification/user_not_found")
	ErrSessionNotFound = errors.New("verification/session_not_found")
	ErrInvalidState    = errors.New("verification/invalid_state")
	ErrInvalidMethod   = errors.New("verification/invalid_method")
	ErrInvalidPhone    = errors.New("verification/invalid_phone")
	ErrInvalidCaptcha  = errors.New("verification/invalid_captcha")
	ErrInvalidCode     = errors.New("verification/invalid_code")
	ErrExpiredCode     = errors.New("verification/expired_code")
	ErrTooManyRequests = errors.New("verification/too_many_requests")
)

// Session is the transient server-side record of one login attempt. It
// lives in Redis under a TTL and is destroyed on success, on exhausted
// attempts, and on logout; it never survives longer than the TTL.
type Session struct {
	ID            string    `json:"id"`
	State         State     `json:"state"`
	UserID        string    `json:"user_id"`
	Method        Method    `json:"method,omitempty"`
	Destination   string    `json:"destination,omitempty"`
	Code          string    `json:"code,omitempty"`
	AttemptsLeft  int       `json:"attempts_left"`
	CodeSentAt    time.Time `json:"code_sent_at,omitzero"`
	CodeExpiresAt time.Time `json:"code_expires_at,omitzero"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
