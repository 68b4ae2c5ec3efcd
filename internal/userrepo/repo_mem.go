package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-petr/bitlease/internal/domain"
)

// RepoMem keeps users and sessions in process memory.
type RepoMem struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	emails   map[string]string
	sessions map[uuid.UUID]domain.Session
	now      func() time.Time
}

// NewRepoMem returns an empty in-memory user repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		users:    map[string]domain.User{},
		emails:   map[string]string{},
		sessions: map[uuid.UUID]domain.Session{},
		now:      time.Now,
	}
}

// CreateUser creates the user and then returns it.
func (r *RepoMem) CreateUser(_ context.Context, arg domain.CreateUserParams) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[arg.Username]; ok {
		return domain.User{}, domain.ErrUsernameAlreadyExists
	}

	if _, ok := r.emails[arg.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists
	}

	u := domain.User{
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
		FullName:       arg.FullName,
		Email:          arg.Email,
		CreatedAt:      r.now().UTC(),
	}

	r.users[u.Username] = u
	r.emails[u.Email] = u.Username

	return u, nil
}

// GetUser returns the user with the given username.
func (r *RepoMem) GetUser(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}

// CreateSession creates the session and then returns it.
func (r *RepoMem) CreateSession(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[arg.Username]; !ok {
		return domain.Session{}, domain.ErrUserNotFound
	}

	s := domain.Session{
		ID:           arg.ID,
		Username:     arg.Username,
		RefreshToken: arg.RefreshToken,
		UserAgent:    arg.UserAgent,
		ClientIP:     arg.ClientIP,
		IsBlocked:    arg.IsBlocked,
		ExpiresAt:    arg.ExpiresAt,
		CreatedAt:    r.now().UTC(),
	}

	r.sessions[s.ID] = s

	return s, nil
}

// GetSession returns the session with the given id.
func (r *RepoMem) GetSession(_ context.Context, id uuid.UUID) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return s, nil
}
