package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "session"

var ErrInvalidCookie = errors.New("invalid session cookie")

// Manager binds browser cookies to server-side session payloads. The
// cookie carries an HS256-signed token wrapping a random session ID, so
// a client cannot forge or guess another session's key.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

// TTL returns the session lifetime, used for the cookie max age.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a fresh session and returns its ID and signed cookie value.
func (m *Manager) Issue(ctx context.Context) (id, cookie string, data *Data, err error) {
	id = uuid.New().String()
	data = &Data{}

	if err = m.store.Save(ctx, id, data); err != nil {
		return "", "", nil, err
	}

	claims := jwt.MapClaims{
		"sid": id,
		"exp": time.Now().Add(m.ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	cookie, err = token.SignedString(m.secret)
	if err != nil {
		return "", "", nil, err
	}
	return id, cookie, data, nil
}

// Resolve validates a cookie value and loads the session behind it.
func (m *Manager) Resolve(ctx context.Context, cookie string) (string, *Data, error) {
	token, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCookie
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", nil, ErrInvalidCookie
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", nil, ErrInvalidCookie
	}
	id, ok := claims["sid"].(string)
	if !ok || id == "" {
		return "", nil, ErrInvalidCookie
	}

	data, err := m.store.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return id, data, nil
}

// Save writes the payload back under the given session ID.
func (m *Manager) Save(ctx context.Context, id string, data *Data) error {
	return m.store.Save(ctx, id, data)
}

// Destroy removes the session payload; the cookie becomes worthless.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
