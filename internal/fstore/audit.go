package fstore

import "time"

// Audit carries the default props every persisted document gets. Documents
// are never hard-deleted; IsDeleted marks them out of every listing query.
type Audit struct {
	CreateAt  time.Time `firestore:"createAt" json:"createAt"`
	UpdateAt  time.Time `firestore:"updateAt" json:"updateAt"`
	IsDeleted bool      `firestore:"isDeleted" json:"isDeleted"`
}

// AssignCreateProps stamps a fresh document.
func (a *Audit) AssignCreateProps(now time.Time) {
	a.CreateAt = now
	a.UpdateAt = now
	a.IsDeleted = false
}

// AssignUpdateProps stamps a mutation.
func (a *Audit) AssignUpdateProps(now time.Time) {
	a.UpdateAt = now
}

// AssignDeleteProps stamps a soft delete.
func (a *Audit) AssignDeleteProps(now time.Time) {
	a.UpdateAt = now
	a.IsDeleted = true
}
