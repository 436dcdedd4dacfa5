package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"charitysite/internal/entity"
	"charitysite/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName = "admin_session"
	TTL        = 30 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("only super admins may manage admin accounts")
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrDuplicateEmail     = errors.New("an admin with this email already exists")
	ErrProtectedAccount   = errors.New("super admins cannot be deleted")
)

type AdminStore interface {
	GetByEmail(email string) (entity.Admin, error)
	GetByID(id string) (entity.Admin, error)
	Insert(a entity.Admin) error
	Delete(id string) error
}

type Manager struct {
	admins AdminStore
	codec  TokenCodec
	secure bool
	now    func() time.Time
}

func NewManager(admins AdminStore, codec TokenCodec, secure bool) *Manager {
	return &Manager{
		admins: admins,
		codec:  codec,
		secure: secure,
		now:    time.Now,
	}
}

type LoginResult struct {
	Session    entity.Session
	RedirectTo string
}

// Login verifies the credentials, issues the session cookie and names the
// page the caller should navigate to.
func (m *Manager) Login(w http.ResponseWriter, email, password string) (LoginResult, error) {
	admin, err := m.admins.GetByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("look up admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := m.now()
	sess := entity.Session{
		User: entity.SessionUser{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  admin.Role,
		},
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(TTL).UnixMilli(),
	}

	token, err := m.codec.Encode(sess)
	if err != nil {
		return LoginResult{}, fmt.Errorf("encode session: %w", err)
	}

	m.setCookie(w, token)
	return LoginResult{Session: sess, RedirectTo: "/admin/dashboard"}, nil
}

// Logout clears the session cookie and names the login page as the target.
func (m *Manager) Logout(w http.ResponseWriter) string {
	m.clearCookie(w)
	return "/admin/login"
}

// Current reads the session from the request cookie. An expired session is
// treated as absent, and its cookie is cleared when w is non-nil.
func (m *Manager) Current(w http.ResponseWriter, r *http.Request) (entity.Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return entity.Session{}, false
	}

	sess, ok := m.codec.Decode(cookie.Value)
	if !ok {
		return entity.Session{}, false
	}

	if sess.Expired(m.now()) {
		if w != nil {
			m.clearCookie(w)
		}
		return entity.Session{}, false
	}

	return sess, true
}

// RequireSession is the page-level guard. It returns absence rather than an
// error so the handler decides where to redirect.
func (m *Manager) RequireSession(r *http.Request) (entity.Session, bool) {
	return m.Current(nil, r)
}

// RequireSuperAdmin additionally rejects sessions without the super_admin role.
func (m *Manager) RequireSuperAdmin(r *http.Request) (entity.Session, bool) {
	sess, ok := m.RequireSession(r)
	if !ok || !sess.IsSuperAdmin() {
		return entity.Session{}, false
	}
	return sess, true
}

// CreateAdmin provisions a regular admin account. Only super admins may call
// it, and the created account is never a super admin.
func (m *Manager) CreateAdmin(actor entity.Session, name, email, password string) (entity.Admin, error) {
	if !actor.IsSuperAdmin() {
		return entity.Admin{}, ErrUnauthorized
	}
	if name == "" || email == "" || password == "" {
		return entity.Admin{}, ErrMissingFields
	}

	_, err := m.admins.GetByEmail(email)
	if err == nil {
		return entity.Admin{}, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return entity.Admin{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.Admin{}, fmt.Errorf("hash password: %w", err)
	}

	admin := entity.Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    m.now(),
	}

	if err := m.admins.Insert(admin); err != nil {
		// The lookup above races with concurrent inserts; the unique index
		// on email is the authority.
		if isUniqueViolation(err) {
			return entity.Admin{}, ErrDuplicateEmail
		}
		return entity.Admin{}, fmt.Errorf("insert admin: %w", err)
	}

	return admin, nil
}

// DeleteAdmin revokes an admin account. Super admin rows are never deletable.
func (m *Manager) DeleteAdmin(actor entity.Session, id string) error {
	if !actor.IsSuperAdmin() {
		return ErrUnauthorized
	}

	target, err := m.admins.GetByID(id)
	if err != nil {
		return err
	}

	if target.Role == entity.RoleSuperAdmin {
		return ErrProtectedAccount
	}

	return m.admins.Delete(id)
}

func (m *Manager) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TTL / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
