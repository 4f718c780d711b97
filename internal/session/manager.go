package session

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/transport"
)

// Fallback messages when the server supplies none
const (
	msgLoginFailed    = "Login failed. Please try again."
	msgRegisterFailed = "Registration failed. Please try again."
	msgVerifyFailed   = "OTP verification failed."
	msgResendFailed   = "Could not resend OTP."
	msgRegistered     = "Registration successful. Please verify your email."
)

// Manager is the single source of truth for the current actor. It owns the
// persisted token and the transport's attached credential; nothing else may
// mutate either.
type Manager struct {
	client *transport.Client
	store  domain.TokenStore

	mu      sync.RWMutex
	session *domain.Session
	// redirected is set once the login redirect fired and cleared by the
	// next established session
	redirected bool

	listenersMu sync.Mutex
	listeners   map[int]func(*domain.Session)
	nextID      int
}

// NewManager creates a session manager over the shared transport
func NewManager(client *transport.Client, store domain.TokenStore) *Manager {
	return &Manager{
		client:    client,
		store:     store,
		listeners: make(map[int]func(*domain.Session)),
	}
}

// AuthFailurePolicy returns the 401 policy for the shared transport: expire
// the session and send the user to the login route. The identity probe is
// exempt. Rejections that arrive together redirect once.
func (m *Manager) AuthFailurePolicy(nav domain.Navigator) *transport.AuthFailurePolicy {
	return &transport.AuthFailurePolicy{
		Exempt: transport.ExemptRequests(transport.IdentityProbe),
		Reject: func(ctx context.Context) {
			m.Expire(ctx)
			if nav != nil && m.claimRedirect() {
				nav.Navigate(domain.LoginRoute)
			}
		},
	}
}

// Restore rehydrates the session from the persisted token. A token that
// cannot be resolved to a user is erased. Returns the restored user or nil.
func (m *Manager) Restore(ctx context.Context) *domain.User {
	if u := m.User(); u != nil {
		return u
	}
	token, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			log.Printf("SESSION_RESTORE_FAILED: stage=load error=%v", err)
		}
		return nil
	}

	m.client.SetToken(token)
	var user domain.User
	if err := m.client.Get(ctx, domain.PathMe, nil, &user); err != nil {
		log.Printf("SESSION_RESTORE_FAILED: stage=probe status=%d error=%v", domain.StatusOf(err), err)
		m.discard(ctx)
		return nil
	}
	if user.ID == 0 {
		log.Printf("SESSION_RESTORE_FAILED: stage=probe error=empty identity")
		m.discard(ctx)
		return nil
	}

	m.establish(&domain.Session{Token: token, User: &user})
	log.Printf("SESSION_RESTORED: user_id=%d role=%s", user.ID, user.Role)
	return m.User()
}

// Login exchanges credentials for a session. Failures are returned as a
// result carrying the server's message; it never returns an error.
func (m *Manager) Login(ctx context.Context, email, password string) domain.Result {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Failure("Email and password are required")
	}

	var resp domain.LoginResponse
	err := m.client.Post(ctx, domain.PathLogin, domain.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		log.Printf("USER_LOGIN_FAILED: email=%s status=%d error=%v", email, domain.StatusOf(err), err)
		return domain.Failure(domain.MessageOf(err, msgLoginFailed))
	}
	if resp.AccessToken == "" {
		log.Printf("USER_LOGIN_FAILED: email=%s error=empty access token", email)
		return domain.Failure(msgLoginFailed)
	}

	if err := m.store.Save(ctx, resp.AccessToken); err != nil {
		log.Printf("USER_LOGIN_FAILED: email=%s stage=persist error=%v", email, err)
		return domain.Failure(msgLoginFailed)
	}
	m.client.SetToken(resp.AccessToken)
	m.establish(&domain.Session{Token: resp.AccessToken, User: resp.User()})

	log.Printf("USER_LOGIN: user_id=%d role=%s", resp.ID, resp.Role)
	return domain.Result{Success: true}
}

// Register submits a signup. It never establishes a session; success means
// the email must now be verified with the OTP.
func (m *Manager) Register(ctx context.Context, form domain.RegisterForm) domain.Result {
	if err := form.Validate(); err != nil {
		return domain.Failure(domain.MessageOf(err, msgRegisterFailed))
	}

	req := form.Request()
	var resp domain.MessageResponse
	if err := m.client.Post(ctx, domain.PathRegister, req, &resp); err != nil {
		log.Printf("USER_REGISTRATION_FAILED: email=%s status=%d error=%v", req.Email, domain.StatusOf(err), err)
		return domain.Failure(domain.MessageOf(err, msgRegisterFailed))
	}

	log.Printf("USER_REGISTERED: email=%s role=%s", req.Email, req.Role)
	msg := resp.Message
	if msg == "" {
		msg = msgRegistered
	}
	return domain.Result{Success: true, Message: msg, RequiresVerification: true, Email: req.Email}
}

// VerifyOTP confirms a signup code
func (m *Manager) VerifyOTP(ctx context.Context, email, code string) domain.Result {
	email, code = strings.TrimSpace(email), strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.Failure("Email and OTP are required")
	}
	var resp domain.MessageResponse
	if err := m.client.Post(ctx, domain.PathVerifyOTP, domain.VerifyOTPRequest{Email: email, OTP: code}, &resp); err != nil {
		return domain.Failure(domain.MessageOf(err, msgVerifyFailed))
	}
	return domain.Result{Success: true, Message: resp.Message}
}

// ResendOTP asks the server to send a fresh signup code
func (m *Manager) ResendOTP(ctx context.Context, email string) domain.Result {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Failure("Email is required")
	}
	var resp domain.MessageResponse
	if err := m.client.Post(ctx, domain.PathResendOTP, domain.ResendOTPRequest{Email: email}, &resp); err != nil {
		return domain.Failure(domain.MessageOf(err, msgResendFailed))
	}
	return domain.Result{Success: true, Message: resp.Message}
}

// Logout erases the token, detaches the credential and clears the user.
// Safe to call without a session.
func (m *Manager) Logout(ctx context.Context) {
	if m.end(ctx) {
		log.Printf("USER_LOGOUT: reason=explicit")
	}
}

// Expire ends the session after the server rejected its credentials
func (m *Manager) Expire(ctx context.Context) {
	if m.end(ctx) {
		log.Printf("USER_LOGOUT: reason=rejected")
	}
}

// Current returns a copy of the session, or nil
func (m *Manager) Current() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.session)
}

// User returns a copy of the current user, or nil
func (m *Manager) User() *domain.User {
	if s := m.Current(); s != nil {
		return s.User
	}
	return nil
}

// Token returns the session token, or ""
func (m *Manager) Token() string {
	if s := m.Current(); s != nil {
		return s.Token
	}
	return ""
}

// IsAuthenticated reports whether a session exists
func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// HasRole reports whether the current user has role
func (m *Manager) HasRole(role domain.Role) bool {
	u := m.User()
	return u != nil && u.Role == role
}

// Subscribe registers fn to be called with the new session (nil when it
// ends) after every change. Calls happen synchronously, in subscription
// order, after the change is visible through Current.
func (m *Manager) Subscribe(fn func(*domain.Session)) (unsubscribe func()) {
	m.listenersMu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.listenersMu.Lock()
			delete(m.listeners, id)
			m.listenersMu.Unlock()
		})
	}
}

func (m *Manager) establish(s *domain.Session) {
	m.mu.Lock()
	m.session = s
	m.redirected = false
	m.mu.Unlock()
	m.notify(copySession(s))
}

// end clears all session state and reports whether a session existed
func (m *Manager) end(ctx context.Context) bool {
	m.discard(ctx)

	m.mu.Lock()
	had := m.session != nil
	m.session = nil
	m.mu.Unlock()

	if had {
		m.notify(nil)
	}
	return had
}

// claimRedirect reports whether the caller is the first to redirect since
// the last established session
func (m *Manager) claimRedirect() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redirected {
		return false
	}
	m.redirected = true
	return true
}

// discard erases the persisted token and the attached header
func (m *Manager) discard(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		log.Printf("TOKEN_CLEAR_FAILED: error=%v", err)
	}
	m.client.ClearToken()
}

func (m *Manager) notify(s *domain.Session) {
	m.listenersMu.Lock()
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(*domain.Session), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, m.listeners[id])
	}
	m.listenersMu.Unlock()

	for _, fn := range fns {
		fn(copySession(s))
	}
}

func copySession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	out := &domain.Session{Token: s.Token}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
