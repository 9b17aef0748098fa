package store

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/pkg/util"
	"github.com/spec-kit/catalog-service/pkg/validate"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
)

// UserStore owns the canonical id->user map plus case-insensitive
// uniqueness indexes on username and email.
type UserStore struct {
	mu         sync.Mutex
	ids        idAllocator
	byID       map[int64]*domain.User
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User

	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
	actor      string
	bcryptCost int
}

// NewUserStore constructs an empty user store.
func NewUserStore(deps Deps, bcryptCost int) *UserStore {
	deps = deps.normalize()
	return &UserStore{
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
		actor:      deps.Actor,
		bcryptCost: bcryptCost,
	}
}

// UserUpdate carries the optional fields of UpdateUser. Empty strings are
// treated as absent and leave the current value in place.
type UserUpdate struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

// CreateUser validates input, rejects duplicate usernames and emails
// case-insensitively, assigns an id and inserts the user into all indexes.
func (s *UserStore) CreateUser(username, email, firstName, lastName string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateUserInput(username, email, firstName, lastName); err != nil {
		s.fail("create", err)
		return nil, err
	}
	if _, exists := s.byUsername[strings.ToLower(username)]; exists {
		err := util.NewDuplicateKey("username", username)
		s.fail("create", err)
		return nil, err
	}
	if _, exists := s.byEmail[strings.ToLower(email)]; exists {
		err := util.NewDuplicateKey("email", email)
		s.fail("create", err)
		return nil, err
	}

	user := domain.NewUser(username, email, firstName, lastName)
	user.ID = s.ids.next()
	user.CreatedBy = s.actor
	user.UpdatedBy = s.actor

	s.byID[user.ID] = user
	s.byUsername[strings.ToLower(username)] = user
	s.byEmail[strings.ToLower(email)] = user

	s.logger.Info("user created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))
	s.done("create")
	s.publish(events.EventUserCreated, user.ID, events.UserCreatedPayload{
		Username: user.Username,
		Email:    user.Email,
	})
	return user, nil
}

// FindByID returns the user with the given id. Absent or non-positive ids
// match nothing.
func (s *UserStore) FindByID(id int64) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id <= 0 {
		return nil, false
	}
	user, ok := s.byID[id]
	return user, ok
}

// FindByUsername looks up a user by its normalized username.
func (s *UserStore) FindByUsername(username string) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validate.NotEmpty(username) {
		return nil, false
	}
	user, ok := s.byUsername[strings.ToLower(username)]
	return user, ok
}

// FindByEmail looks up a user by its normalized email. A malformed email
// never matches.
func (s *UserStore) FindByEmail(email string) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validate.ValidEmail(email) {
		return nil, false
	}
	user, ok := s.byEmail[strings.ToLower(email)]
	return user, ok
}

// UpdateUser applies the non-absent fields of upd to the stored user. The
// phone number must stay well-formed.
func (s *UserStore) UpdateUser(id int64, upd UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("user", id)
		s.fail("update", err)
		return nil, err
	}

	if validate.NotEmpty(upd.PhoneNumber) && !validate.ValidPhoneNumber(upd.PhoneNumber) {
		err := util.NewInvalidField("phoneNumber", "invalid phone number format")
		s.fail("update", err)
		return nil, err
	}

	if validate.NotEmpty(upd.FirstName) {
		user.FirstName = upd.FirstName
	}
	if validate.NotEmpty(upd.LastName) {
		user.LastName = upd.LastName
	}
	if validate.NotEmpty(upd.PhoneNumber) {
		user.PhoneNumber = upd.PhoneNumber
	}

	user.UpdatedBy = s.actor
	user.Touch()

	s.logger.Info("user updated", zap.Int64("user_id", user.ID))
	s.done("update")
	return user, nil
}

// ChangeStatus writes a new lifecycle status on the user.
func (s *UserStore) ChangeStatus(id int64, status domain.UserStatus) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("user", id)
		s.fail("change_status", err)
		return nil, err
	}
	if !status.Valid() {
		err := util.NewInvalidField("status", "unknown user status: "+string(status))
		s.fail("change_status", err)
		return nil, err
	}

	oldStatus := user.Status
	user.SetStatus(status)
	user.UpdatedBy = s.actor

	s.logger.Info("user status changed",
		zap.Int64("user_id", user.ID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)))
	s.done("change_status")
	s.publish(events.EventUserStatusChanged, user.ID, events.UserStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: status,
	})
	return user, nil
}

// SetPassword hashes the given password with bcrypt and stores the hash.
func (s *UserStore) SetPassword(id int64, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("user", id)
		s.fail("set_password", err)
		return nil, err
	}
	if !validate.MinLength(password, 8) {
		err := util.NewInvalidField("password", "password must be at least 8 characters")
		s.fail("set_password", err)
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.fail("set_password", err)
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedBy = s.actor
	user.Touch()

	s.logger.Info("user password set", zap.Int64("user_id", user.ID))
	s.done("set_password")
	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *UserStore) VerifyPassword(id int64, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return util.NewNotFound("user", id)
	}
	return auth.ComparePassword(user.PasswordHash, password)
}

// ActiveUsers returns all users in the ACTIVE state, in no particular order.
func (s *UserStore) ActiveUsers() []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []*domain.User
	for _, user := range s.byID {
		if user.IsActive() {
			active = append(active, user)
		}
	}
	return active
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *UserStore) done(op string) {
	s.metrics.RecordOp("users", op)
}

func (s *UserStore) fail(op string, err error) {
	s.metrics.RecordError("users", op, util.CodeOf(err))
}

func (s *UserStore) publish(eventType events.EventType, entityID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(context.Background(), events.NewEvent(eventType, entityID, s.actor, payload))
}

func validateUserInput(username, email, firstName, lastName string) error {
	if !validate.NotEmpty(username) {
		return util.NewInvalidField("username", "username cannot be empty")
	}
	if !validate.LengthInRange(username, usernameMinLength, usernameMaxLength) {
		return util.NewInvalidField("username", "username must be between 3 and 50 characters")
	}
	if !validate.ValidEmail(email) {
		return util.NewInvalidField("email", "invalid email format")
	}
	if !validate.NotEmpty(firstName) {
		return util.NewInvalidField("firstName", "first name cannot be empty")
	}
	if !validate.NotEmpty(lastName) {
		return util.NewInvalidField("lastName", "last name cannot be empty")
	}
	return nil
}
