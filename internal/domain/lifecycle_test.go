package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func TestNewLifecycleInitializesTimestamps(t *testing.T) {
	lc := domain.NewLifecycle()

	assert.False(t, lc.CreatedAt.IsZero())
	assert.Equal(t, lc.CreatedAt, lc.UpdatedAt)
	assert.False(t, lc.Stored())
}

func TestTouchAdvancesUpdatedAtOnly(t *testing.T) {
	lc := domain.NewLifecycle()
	created := lc.CreatedAt
	before := lc.UpdatedAt

	time.Sleep(time.Millisecond)
	lc.Touch()

	assert.True(t, lc.UpdatedAt.After(before))
	assert.Equal(t, created, lc.CreatedAt)
}

func TestSameIdentity(t *testing.T) {
	a := domain.NewLifecycle()
	b := domain.NewLifecycle()

	// Two un-stored entities compare equal under weak identity.
	assert.True(t, a.SameIdentity(b))

	a.ID = 1
	assert.False(t, a.SameIdentity(b))

	b.ID = 1
	assert.True(t, a.SameIdentity(b))

	b.ID = 2
	assert.False(t, a.SameIdentity(b))
}
