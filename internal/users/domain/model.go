package domain

import (
	"errors"
	"time"

	"github.com/servitec-peru/go-admin-backend/internal/fstore"
	"github.com/servitec-peru/go-admin-backend/internal/uploads"
)

var ErrUserNotFound = errors.New("user not found")

// Uniqueness conflicts. The error text is the machine-readable reason code
// the API returns verbatim in 412 bodies.
var (
	ErrEmailExists       = errors.New("user/email_already_exists")
	ErrDNIExists         = errors.New("user/dni_already_exists")
	ErrPhoneNumberExists = errors.New("user/phone_number_already_exists")
)

// IdentityDocument is the national identity descriptor (DNI, RUC or CE).
type IdentityDocument struct {
	Type   string `firestore:"type" json:"type"`
	Number string `firestore:"number" json:"number"`
}

type Phone struct {
	Prefix string `firestore:"prefix" json:"prefix"`
	Number string `firestore:"number" json:"number"`
}

type User struct {
	ID              string           `firestore:"id" json:"id"`
	FirstName       string           `firestore:"firstName" json:"firstName"`
	PaternalSurname string           `firestore:"paternalSurname" json:"paternalSurname"`
	MaternalSurname string           `firestore:"maternalSurname" json:"maternalSurname"`
	Email           string           `firestore:"email" json:"email"`
	Document        IdentityDocument `firestore:"document" json:"document"`
	Phone           Phone            `firestore:"phone" json:"phone"`
	Gender          string           `firestore:"gender,omitempty" json:"gender,omitempty"`
	BirthDate       string           `firestore:"birthDate,omitempty" json:"birthDate,omitempty"`
	ProfilePhoto    *uploads.File    `firestore:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	PhoneVerified   bool             `firestore:"phoneVerified" json:"phoneVerified"`
	LastLoginAt     *time.Time       `firestore:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`

	fstore.Audit
}

func (u *User) SetID(id string) { u.ID = id }

// FullPhoneNumber composes the E.164 number from prefix and number.
func (u *User) FullPhoneNumber() string {
	return "+" + u.Phone.Prefix + u.Phone.Number
}
