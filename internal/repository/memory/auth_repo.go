package memory

import (
	"context"
	"sync"

	"communityhub/internal/domain"
)

// FakeUser is the operator signed in by the in-memory auth adapter.
var FakeUser = domain.User{
	ID:        "fake-user-123",
	Email:     "fake-admin@devperu.org",
	Name:      "Fake Admin",
	AvatarURL: "https://ui-avatars.com/api/?name=Fake+Admin&background=random",
}

// AuthOption configures an AuthRepository.
type AuthOption func(*AuthRepository)

// WithInitialUser starts the repository signed in as u.
func WithInitialUser(u *domain.User) AuthOption {
	return func(r *AuthRepository) {
		if u != nil {
			cp := *u
			r.current = &cp
		}
	}
}

// WithSessionHook runs hook with the new session value on every change, before listeners are notified.
func WithSessionHook(hook func(*domain.User)) AuthOption {
	return func(r *AuthRepository) { r.hook = hook }
}

// AuthRepository is a process-local session: SignIn always signs in FakeUser.
type AuthRepository struct {
	mu        sync.Mutex
	current   *domain.User
	listeners map[int]domain.AuthStateListener
	nextID    int
	hook      func(*domain.User)
	opts      Options
}

func NewAuthRepository(opts Options, authOpts ...AuthOption) *AuthRepository {
	r := &AuthRepository{listeners: make(map[int]domain.AuthStateListener), opts: opts}
	for _, o := range authOpts {
		o(r)
	}
	return r
}

func (r *AuthRepository) CurrentUser() *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	cp := *r.current
	return &cp
}

func (r *AuthRepository) SignIn(ctx context.Context) error {
	if err := r.opts.Wait(ctx); err != nil {
		return err
	}
	u := FakeUser
	r.setUser(&u)
	return nil
}

func (r *AuthRepository) SignOut(ctx context.Context) error {
	if err := r.opts.Wait(ctx); err != nil {
		return err
	}
	r.setUser(nil)
	return nil
}

// OnAuthStateChange registers listener and immediately calls it with the current user.
func (r *AuthRepository) OnAuthStateChange(listener domain.AuthStateListener) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	r.mu.Unlock()

	listener(r.CurrentUser())

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// IsEmailAllowed only admits the fake operator.
func (r *AuthRepository) IsEmailAllowed(email string) bool {
	return email == FakeUser.Email
}

func (r *AuthRepository) setUser(u *domain.User) {
	r.mu.Lock()
	r.current = u
	hook := r.hook
	listeners := make([]domain.AuthStateListener, 0, len(r.listeners))
	for id := 0; id < r.nextID; id++ {
		if l, ok := r.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	r.mu.Unlock()

	if hook != nil {
		hook(r.CurrentUser())
	}
	for _, l := range listeners {
		l(r.CurrentUser())
	}
}
