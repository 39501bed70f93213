package portalclient

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"
)

// Snapshot is the immutable view of who is signed in and what they may open.
type Snapshot struct {
	UserID    string
	Email     string
	Role      *string
	Home      string
	Pages     []string
	ExpiresAt time.Time
}

func (s Snapshot) SignedIn() bool { return s.UserID != "" }

// CanAccessPage answers from the page set the server resolved for the role.
// No role means no page.
func (s Snapshot) CanAccessPage(page string) bool {
	if s.Role == nil {
		return false
	}
	return slices.Contains(s.Pages, page)
}

type signInResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type sessionResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Role  *string  `json:"role"`
	Home  string   `json:"home"`
	Pages []string `json:"pages"`
}

// SessionProvider is the one owner of the current session and role. Consumers
// read Snapshot or Subscribe instead of fetching the session themselves.
type SessionProvider struct {
	client *Client

	mu        sync.RWMutex
	snap      Snapshot
	nextID    int
	listeners map[int]func(Snapshot)
}

func NewSessionProvider(client *Client) *SessionProvider {
	return &SessionProvider{client: client, listeners: map[int]func(Snapshot){}}
}

func (p *SessionProvider) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snap := p.snap
	snap.Pages = slices.Clone(p.snap.Pages)
	return snap
}

// Subscribe registers fn for every snapshot change and returns its
// unsubscribe func.
func (p *SessionProvider) Subscribe(fn func(Snapshot)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *SessionProvider) SignIn(ctx context.Context, email, password string) (Snapshot, error) {
	var res signInResponse
	if _, err := p.client.Do(ctx, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	}, &res); err != nil {
		return Snapshot{}, err
	}
	p.client.SetToken(res.AccessToken)
	return p.resolve(ctx, res.ExpiresAt)
}

// Refresh renews the access token and re-resolves the role, so a role change
// made elsewhere shows up here.
func (p *SessionProvider) Refresh(ctx context.Context) (Snapshot, error) {
	var res signInResponse
	if _, err := p.client.Do(ctx, http.MethodPost, "/api/auth/refresh", nil, &res); err != nil {
		p.clear()
		return Snapshot{}, err
	}
	p.client.SetToken(res.AccessToken)
	return p.resolve(ctx, res.ExpiresAt)
}

func (p *SessionProvider) SignOut(ctx context.Context) error {
	_, err := p.client.Do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	p.clear()
	return err
}

func (p *SessionProvider) resolve(ctx context.Context, expiresAt time.Time) (Snapshot, error) {
	var res sessionResponse
	if _, err := p.client.Do(ctx, http.MethodGet, "/api/auth/session", nil, &res); err != nil {
		p.clear()
		return Snapshot{}, err
	}

	snap := Snapshot{
		UserID:    res.User.ID,
		Email:     res.User.Email,
		Role:      res.Role,
		Home:      res.Home,
		Pages:     res.Pages,
		ExpiresAt: expiresAt,
	}
	if snap.Role == nil {
		snap.Pages = nil
	}
	p.publish(snap)
	return snap, nil
}

func (p *SessionProvider) clear() {
	p.client.SetToken("")
	p.publish(Snapshot{})
}

func (p *SessionProvider) publish(snap Snapshot) {
	p.mu.Lock()
	p.snap = snap
	listeners := make([]func(Snapshot), 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(p.Snapshot())
	}
}
