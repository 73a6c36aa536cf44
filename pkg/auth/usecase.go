package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/newsdash/pkg/security/password"
)

// AuthUseCase describes signup/login and the session lifecycle.
type AuthUseCase interface {
	SignUp(ctx context.Context, email, password, displayName string) (Session, error)
	LogIn(ctx context.Context, email, password string) (Session, error)
	LogOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (Identity, error)
}

type authService struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenIssuer
	hasher   password.Hasher
	ttl      time.Duration
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(users UserRepository, sessions SessionRepository, tokens TokenIssuer, hasher password.Hasher, ttl time.Duration) AuthUseCase {
	return &authService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, email, pwd, displayName string) (Session, error) {
	email = NormalizeEmail(email)
	if email == "" || strings.TrimSpace(pwd) == "" {
		return Session{}, ErrValidation
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}

	// Cheap pre-check; the repository insert is the authoritative one.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(pwd)
	if errors.Is(err, password.ErrTooLong) {
		return Session{}, ErrPasswordTooLong
	}
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		ID:           email,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return Session{}, ErrUserAlreadyExists
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}
	return s.startSession(ctx, user.Identity())
}

func (s *authService) LogIn(ctx context.Context, email, pwd string) (Session, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Session{}, fmt.Errorf("lookup user: %w", err)
		}
		// spend the same hashing work as a real comparison
		_ = s.hasher.Verify(s.dummy(), pwd)
		return Session{}, ErrInvalidCredentials
	}
	if s.hasher.Verify(user.PasswordHash, pwd) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.startSession(ctx, user.Identity())
}

func (s *authService) LogOut(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	sid, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sid); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, ErrUnauthenticated
	}
	sid, err := s.tokens.Parse(token)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	identity, err := s.sessions.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, ErrUnauthenticated
		}
		return Identity{}, fmt.Errorf("load session: %w", err)
	}
	return identity, nil
}

func (s *authService) startSession(ctx context.Context, identity Identity) (Session, error) {
	sid := uuid.NewString()
	token, expiresAt, err := s.tokens.Issue(ctx, sid, identity)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	if err := s.sessions.Save(ctx, sid, identity, s.ttl); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return Session{Token: token, Identity: identity, ExpiresAt: expiresAt}, nil
}

func (s *authService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}
