// Package memory holds process-local store implementations. Each store owns
// its own lock; stores never lock each other.
package memory

import (
	"context"
	"sync"

	"github.com/artem13815/newsdash/pkg/auth"
)

// UserRepository implements auth.UserRepository in process memory.
type UserRepository struct {
	mu      sync.Mutex
	byEmail map[string]auth.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]auth.User)}
}

var _ auth.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	key := auth.NormalizeEmail(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[key]; exists {
		return auth.ErrUserAlreadyExists
	}
	r.byEmail[key] = user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[auth.NormalizeEmail(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

// Len reports the number of registered users.
func (r *UserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}
