package middleware

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"finitefield.org/docsite/internal/observability"
)

// SessionData is the state carried in the session cookie. The shell itself
// stays on the server, keyed by ID.
type SessionData struct {
	ID        string    `json:"id"`
	CSRFToken string    `json:"csrf"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionConfig configures the session cookie.
type SessionConfig struct {
	CookieName string
	// HashKey signs the cookie (32 or 64 bytes); BlockKey encrypts it (16, 24
	// or 32 bytes). Nil keys are generated, which is only suitable for dev.
	HashKey  []byte
	BlockKey []byte
	Secure   bool
}

const sessionLifetime = 24 * time.Hour

// Sessions loads or issues the signed session cookie.
type Sessions struct {
	name   string
	secure bool
	codec  *securecookie.SecureCookie
}

// NewSessions builds the session middleware from cfg.
func NewSessions(cfg SessionConfig) *Sessions {
	hashKey := cfg.HashKey
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	blockKey := cfg.BlockKey
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}
	name := cfg.CookieName
	if name == "" {
		name = "docsite_session"
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(sessionLifetime.Seconds()))
	return &Sessions{name: name, secure: cfg.Secure, codec: codec}
}

// Handler loads the session into the request context, issuing a new one
// when the cookie is missing or fails verification.
func (s *Sessions) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, ok := s.read(r)
		if !ok {
			sd = &SessionData{
				ID:        uuid.NewString(),
				CSRFToken: newCSRFToken(),
				CreatedAt: time.Now().UTC(),
			}
			if err := s.write(w, sd); err != nil {
				observability.FromContext(r.Context()).Warn("session: encode cookie", zap.Error(err))
			}
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sd)))
	})
}

func (s *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return nil, false
	}
	var sd SessionData
	if err := s.codec.Decode(s.name, c.Value, &sd); err != nil {
		return nil, false
	}
	if sd.ID == "" || sd.CSRFToken == "" {
		return nil, false
	}
	return &sd, true
}

func (s *Sessions) write(w http.ResponseWriter, sd *SessionData) error {
	encoded, err := s.codec.Encode(s.name, sd)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionLifetime),
	})
	return nil
}

func newCSRFToken() string {
	return hex.EncodeToString(securecookie.GenerateRandomKey(16))
}
