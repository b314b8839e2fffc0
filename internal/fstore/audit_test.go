package fstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuditProps(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	deleted := created.Add(2 * time.Hour)

	var a Audit

	a.AssignCreateProps(created)
	assert.Equal(t, created, a.CreateAt)
	assert.Equal(t, created, a.UpdateAt)
	assert.False(t, a.IsDeleted)

	a.AssignUpdateProps(updated)
	assert.Equal(t, created, a.CreateAt, "update must not touch createAt")
	assert.Equal(t, updated, a.UpdateAt)
	assert.False(t, a.IsDeleted)

	a.AssignDeleteProps(deleted)
	assert.Equal(t, created, a.CreateAt)
	assert.Equal(t, deleted, a.UpdateAt)
	assert.True(t, a.IsDeleted)
}
