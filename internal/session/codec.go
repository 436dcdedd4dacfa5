package session

import (
	"encoding/base64"
	"encoding/json"

	"charitysite/internal/entity"
)

// TokenCodec turns a session record into a cookie-safe string and back.
// Decode reports absence instead of returning an error: a cookie that cannot
// be read is the same as no cookie at all.
type TokenCodec interface {
	Encode(s entity.Session) (string, error)
	Decode(token string) (entity.Session, bool)
}

// Codec is the legacy reversible encoding: base64 over JSON, no key, no
// integrity check. Anyone who can write cookies can forge a session with it.
// Kept for wire compatibility with existing deployments; see SignedCodec for
// the hardened variant.
type Codec struct{}

func (Codec) Encode(s entity.Session) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (Codec) Decode(token string) (entity.Session, bool) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return entity.Session{}, false
	}

	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return entity.Session{}, false
	}
	return s, true
}
