package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func TestNewUserStartsActive(t *testing.T) {
	user := domain.NewUser("alice", "alice@example.com", "Alice", "Anderson")

	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.True(t, user.IsActive())
	assert.False(t, user.Stored())
}

func TestFullNameFallbacks(t *testing.T) {
	user := domain.NewUser("alice", "alice@example.com", "Alice", "Anderson")
	assert.Equal(t, "Alice Anderson", user.FullName())

	user.LastName = ""
	assert.Equal(t, "Alice", user.FullName())

	user.FirstName = ""
	user.LastName = "Anderson"
	assert.Equal(t, "Anderson", user.FullName())

	user.LastName = ""
	assert.Equal(t, "alice", user.FullName())
}

func TestStatusTransitionsTouchUpdatedAt(t *testing.T) {
	user := domain.NewUser("alice", "alice@example.com", "Alice", "Anderson")

	transitions := []struct {
		name string
		move func()
		want domain.UserStatus
	}{
		{"suspend", user.Suspend, domain.UserStatusSuspended},
		{"deactivate", user.Deactivate, domain.UserStatusInactive},
		{"activate", user.Activate, domain.UserStatusActive},
	}

	for _, tc := range transitions {
		before := user.UpdatedAt
		time.Sleep(time.Millisecond)
		tc.move()
		assert.Equal(t, tc.want, user.Status, tc.name)
		assert.True(t, user.UpdatedAt.After(before), tc.name)
	}
}

func TestSetStatusDirectWriteAlsoTouches(t *testing.T) {
	user := domain.NewUser("alice", "alice@example.com", "Alice", "Anderson")
	before := user.UpdatedAt

	time.Sleep(time.Millisecond)
	user.SetStatus(domain.UserStatusPending)

	assert.Equal(t, domain.UserStatusPending, user.Status)
	assert.True(t, user.UpdatedAt.After(before))
}

func TestUserStatusValid(t *testing.T) {
	assert.True(t, domain.UserStatusActive.Valid())
	assert.True(t, domain.UserStatusPending.Valid())
	assert.False(t, domain.UserStatus("BANNED").Valid())
	assert.False(t, domain.UserStatus("").Valid())
}
