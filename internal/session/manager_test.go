package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"charitysite/internal/entity"
	"charitysite/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminStore struct {
	admins    map[string]entity.Admin // keyed by id
	insertErr error
	deleted   []string
}

func newFakeAdminStore(admins ...entity.Admin) *fakeAdminStore {
	s := &fakeAdminStore{admins: make(map[string]entity.Admin)}
	for _, a := range admins {
		s.admins[a.ID] = a
	}
	return s
}

func (s *fakeAdminStore) GetByEmail(email string) (entity.Admin, error) {
	for _, a := range s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return entity.Admin{}, repository.ErrNotFound
}

func (s *fakeAdminStore) GetByID(id string) (entity.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return entity.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

func (s *fakeAdminStore) Insert(a entity.Admin) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.admins[a.ID] = a
	return nil
}

func (s *fakeAdminStore) Delete(id string) error {
	if _, ok := s.admins[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.admins, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func superAdmin(t *testing.T) entity.Admin {
	return entity.Admin{
		ID:           "root-id",
		Name:         "Root",
		Email:        "root@example.org",
		PasswordHash: mustHash(t, "opensesame"),
		Role:         entity.RoleSuperAdmin,
		CreatedAt:    time.Now(),
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	store := newFakeAdminStore(superAdmin(t))
	m := NewManager(store, Codec{}, false)

	rec := httptest.NewRecorder()
	result, err := m.Login(rec, "root@example.org", "opensesame")
	require.NoError(t, err)

	assert.Equal(t, "/admin/dashboard", result.RedirectTo)
	assert.Equal(t, "root-id", result.Session.User.ID)
	assert.Equal(t, entity.RoleSuperAdmin, result.Session.User.Role)
	assert.Equal(t, result.Session.CreatedAt+TTL.Milliseconds(), result.Session.ExpiresAt)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 2592000, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	decoded, ok := Codec{}.Decode(cookie.Value)
	require.True(t, ok)
	assert.Equal(t, result.Session, decoded)
}

func TestLoginSecureCookieInProduction(t *testing.T) {
	store := newFakeAdminStore(superAdmin(t))
	m := NewManager(store, Codec{}, true)

	rec := httptest.NewRecorder()
	_, err := m.Login(rec, "root@example.org", "opensesame")
	require.NoError(t, err)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeAdminStore(superAdmin(t))
	m := NewManager(store, Codec{}, false)

	rec := httptest.NewRecorder()
	_, err := m.Login(rec, "root@example.org", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLoginUnknownEmail(t *testing.T) {
	m := NewManager(newFakeAdminStore(), Codec{}, false)

	rec := httptest.NewRecorder()
	_, err := m.Login(rec, "nobody@example.org", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, sessionCookie(t, rec))
}

func requestWithSession(t *testing.T, m *Manager, sess entity.Session) *http.Request {
	t.Helper()
	token, err := m.codec.Encode(sess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	return req
}

func TestCurrentExpiredSessionClearsCookie(t *testing.T) {
	m := NewManager(newFakeAdminStore(), Codec{}, false)

	now := time.Now()
	expired := entity.Session{
		User:      entity.SessionUser{ID: "x", Role: entity.RoleAdmin},
		CreatedAt: now.Add(-2 * TTL).UnixMilli(),
		ExpiresAt: now.Add(-time.Hour).UnixMilli(),
	}

	rec := httptest.NewRecorder()
	_, ok := m.Current(rec, requestWithSession(t, m, expired))
	assert.False(t, ok)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Empty(t, cookie.Value)
}

func TestCurrentNoCookie(t *testing.T) {
	m := NewManager(newFakeAdminStore(), Codec{}, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	_, ok := m.Current(httptest.NewRecorder(), req)
	assert.False(t, ok)
}

func TestCurrentGarbageCookie(t *testing.T) {
	m := NewManager(newFakeAdminStore(), Codec{}, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "!!!not-a-token!!!"})

	_, ok := m.Current(httptest.NewRecorder(), req)
	assert.False(t, ok)
}

func liveSession(role string) entity.Session {
	now := time.Now()
	return entity.Session{
		User:      entity.SessionUser{ID: "u1", Email: "u@example.org", Name: "U", Role: role},
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(TTL).UnixMilli(),
	}
}

func TestRequireSuperAdminRoles(t *testing.T) {
	m := NewManager(newFakeAdminStore(), Codec{}, false)

	cases := []struct {
		role string
		want bool
	}{
		{entity.RoleSuperAdmin, true},
		{entity.RoleAdmin, false},
		{"viewer", false},
		{"", false},
	}

	for _, tc := range cases {
		req := requestWithSession(t, m, liveSession(tc.role))
		_, ok := m.RequireSuperAdmin(req)
		assert.Equal(t, tc.want, ok, "role %q", tc.role)
	}
}

func TestCreateAdmin(t *testing.T) {
	store := newFakeAdminStore(superAdmin(t))
	m := NewManager(store, Codec{}, false)

	admin, err := m.CreateAdmin(liveSession(entity.RoleSuperAdmin), "New Admin", "new@example.org", "hunter22")
	require.NoError(t, err)

	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("hunter22")))

	stored, err := store.GetByEmail("new@example.org")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, stored.ID)
}

func TestCreateAdminUnauthorized(t *testing.T) {
	store := newFakeAdminStore(superAdmin(t))
	m := NewManager(store, Codec{}, false)

	_, err := m.CreateAdmin(liveSession(entity.RoleAdmin), "X", "x@example.org", "pw")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = store.GetByEmail("x@example.org")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	store := newFakeAdminStore(superAdmin(t))
	m := NewManager(store, Codec{}, false)

	_, err := m.CreateAdmin(liveSession(entity.RoleSuperAdmin), "Dup", "root@example.org", "pw")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateAdminMissingFields(t *testing.T) {
	m := NewManager(newFakeAdminStore(), Codec{}, false)

	_, err := m.CreateAdmin(liveSession(entity.RoleSuperAdmin), "", "x@example.org", "pw")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestDeleteAdmin(t *testing.T) {
	regular := entity.Admin{ID: "reg-id", Email: "reg@example.org", Role: entity.RoleAdmin}
	store := newFakeAdminStore(superAdmin(t), regular)
	m := NewManager(store, Codec{}, false)

	require.NoError(t, m.DeleteAdmin(liveSession(entity.RoleSuperAdmin), "reg-id"))
	_, err := store.GetByID("reg-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteAdminProtectsSuperAdmins(t *testing.T) {
	store := newFakeAdminStore(superAdmin(t))
	m := NewManager(store, Codec{}, false)

	err := m.DeleteAdmin(liveSession(entity.RoleSuperAdmin), "root-id")
	assert.ErrorIs(t, err, ErrProtectedAccount)

	_, err = store.GetByID("root-id")
	assert.NoError(t, err)
}

func TestDeleteAdminUnauthorized(t *testing.T) {
	regular := entity.Admin{ID: "reg-id", Email: "reg@example.org", Role: entity.RoleAdmin}
	store := newFakeAdminStore(regular)
	m := NewManager(store, Codec{}, false)

	err := m.DeleteAdmin(liveSession(entity.RoleAdmin), "reg-id")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutClearsCookie(t *testing.T) {
	m := NewManager(newFakeAdminStore(), Codec{}, false)

	rec := httptest.NewRecorder()
	target := m.Logout(rec)
	assert.Equal(t, "/admin/login", target)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
}
