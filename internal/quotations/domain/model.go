package domain

import (
	"errors"

	"github.com/servitec-peru/go-admin-backend/internal/fstore"
)

var ErrQuotationNotFound = errors.New("quotation not found")

// Client describes who requested the estimate: either a person (name
// fields) or a company (companyName), never validated as both.
type Client struct {
	FirstName       string `firestore:"firstName,omitempty" json:"firstName,omitempty"`
	PaternalSurname string `firestore:"paternalSurname,omitempty" json:"paternalSurname,omitempty"`
	MaternalSurname string `firestore:"maternalSurname,omitempty" json:"maternalSurname,omitempty"`
	CompanyName     string `firestore:"companyName,omitempty" json:"companyName,omitempty"`
	Document        struct {
		Type   string `firestore:"type" json:"type"`
		Number string `firestore:"number" json:"number"`
	} `firestore:"document" json:"document"`
	Phone struct {
		Prefix string `firestore:"prefix" json:"prefix"`
		Number string `firestore:"number" json:"number"`
	} `firestore:"phone" json:"phone"`
}

type Device struct {
	Type  string `firestore:"type" json:"type"`
	Brand string `firestore:"brand" json:"brand"`
	Model string `firestore:"model" json:"model"`
	Color string `firestore:"color" json:"color"`
}

// Quotation is a repair/service estimate for a client's device.
type Quotation struct {
	ID              string `firestore:"id" json:"id"`
	Client          Client `firestore:"client" json:"client"`
	Device          Device `firestore:"device" json:"device"`
	SerieNumber     string `firestore:"serieNumber" json:"serieNumber"`
	Analysis        string `firestore:"analysis" json:"analysis"`
	Solutions       string `firestore:"solutions" json:"solutions"`
	Recommendations string `firestore:"recommendations" json:"recommendations"`

	fstore.Audit
}

func (q *Quotation) SetID(id string) { q.ID = id }
