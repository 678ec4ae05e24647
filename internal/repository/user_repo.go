package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"inventory_api/internal/model"
	"inventory_api/internal/store"
)

var (
	// ErrDuplicateEmail is returned when a create would reuse an email
	// already held by another user (compared case-insensitively).
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

type userRepository struct {
	users *store.Collection[model.User]
}

// NewUserRepository creates a new UserRepository backed by the given
// users collection.
func NewUserRepository(users *store.Collection[model.User]) UserRepository {
	return &userRepository{users: users}
}

// Create appends a new user, assigning its id. The duplicate-email check
// and the write happen inside the collection's critical section, so two
// concurrent creates cannot both claim the same email.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(user.Email)
	return r.users.Update(func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, ErrDuplicateEmail
			}
		}
		user.ID = nextID(time.Now().UnixMilli(), userIDs(users))
		return append(users, *user), nil
	})
}

// FindByEmail retrieves a user by email, case-insensitively. A missing
// user is reported as (nil, nil); the caller decides whether that is an
// error.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(email)
	for _, u := range r.users.Read() {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// FindByID retrieves a user by id, (nil, nil) when absent.
func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range r.users.Read() {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func userIDs(users []model.User) []int64 {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

// nextID derives a surrogate id from the creation timestamp, bumped past
// any existing id so two creations in the same millisecond stay unique.
func nextID(candidate int64, existing []int64) int64 {
	for _, id := range existing {
		if id >= candidate {
			candidate = id + 1
		}
	}
	return candidate
}
