package entity

import "time"

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session lives only inside the admin_session cookie, never server-side.
// Timestamps are millisecond Unix epochs to survive the cookie round trip
// without precision loss.
type Session struct {
	User      SessionUser `json:"user"`
	CreatedAt int64       `json:"created_at"`
	ExpiresAt int64       `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.UnixMilli()
}

func (s Session) IsSuperAdmin() bool {
	return s.User.Role == RoleSuperAdmin
}
