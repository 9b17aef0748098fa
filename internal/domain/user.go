package domain

// UserStatus represents lifecycle states for a catalog user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusPending   UserStatus = "PENDING"
)

// Valid reports whether s is one of the known user statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended, UserStatusPending:
		return true
	}
	return false
}

// User is the domain model for catalog customers.
type User struct {
	Lifecycle
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Status       UserStatus
	PasswordHash string
}

// NewUser constructs a user in the ACTIVE state.
func NewUser(username, email, firstName, lastName string) *User {
	return &User{
		Lifecycle: NewLifecycle(),
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Status:    UserStatusActive,
	}
}

// FullName returns "first last", falling back to whichever name is present,
// or the username when both are absent.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsActive reports whether the user is in the ACTIVE state.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// SetStatus writes the status and touches UpdatedAt. All status writes,
// including the named transitions below, go through here so the lifecycle
// touch cannot be skipped.
func (u *User) SetStatus(status UserStatus) {
	u.Status = status
	u.Touch()
}

// Activate moves the user to ACTIVE.
func (u *User) Activate() {
	u.SetStatus(UserStatusActive)
}

// Deactivate moves the user to INACTIVE.
func (u *User) Deactivate() {
	u.SetStatus(UserStatusInactive)
}

// Suspend moves the user to SUSPENDED.
func (u *User) Suspend() {
	u.SetStatus(UserStatusSuspended)
}
