package domain

import "time"

// Lifecycle carries identity and audit fields shared by every entity kind.
// It is embedded by value rather than inherited; entity-specific behavior
// lives on the concrete types.
type Lifecycle struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

// NewLifecycle returns lifecycle fields for a freshly constructed entity.
// Both timestamps start at the same instant; the id stays zero until the
// owning store assigns one.
func NewLifecycle() Lifecycle {
	now := time.Now()
	return Lifecycle{CreatedAt: now, UpdatedAt: now}
}

// Touch advances UpdatedAt. Every mutating operation calls this.
func (l *Lifecycle) Touch() {
	l.UpdatedAt = time.Now()
}

// Stored reports whether the entity has been assigned an id.
func (l Lifecycle) Stored() bool {
	return l.ID != 0
}

// SameIdentity reports identity-based equality: ids match, including the
// case where both are still unassigned. Two un-stored entities compare
// equal under this rule; callers that need to distinguish them before an
// id is assigned must compare by reference instead.
func (l Lifecycle) SameIdentity(other Lifecycle) bool {
	return l.ID == other.ID
}
