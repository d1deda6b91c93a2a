package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionCookie is the cookie carrying the signed session token.
	SessionCookie = "repairlink_session"

	sessionKeyPrefix = "session:"
)

var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrSessionExpired = errors.New("session expired")
)

// Session is the identity resolved from a valid token. TechnicianID is set
// only for users with a linked technician profile.
type Session struct {
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	TechnicianID string `json:"technician_id,omitempty"`
	IssuedAt     int64  `json:"issued_at"`
}

// Manager issues and resolves session tokens. A token is "<id>.<sig>" where
// sig is HMAC-SHA256 over the id; the session record itself lives in Redis
// under the id with a sliding TTL.
type Manager struct {
	redis  *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewManager(redisClient *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{
		redis:  redisClient,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Create stores the session and returns the signed token.
func (m *Manager) Create(ctx context.Context, sess *Session) (string, error) {
	id := uuid.New().String()
	sess.IssuedAt = time.Now().Unix()

	data, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	if err := m.redis.Set(ctx, sessionKeyPrefix+id, data, m.ttl).Err(); err != nil {
		return "", err
	}

	return id + "." + m.sign(id), nil
}

// Resolve verifies the token signature and loads the session record. The
// TTL is refreshed on every successful resolve.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	id, err := m.verify(token)
	if err != nil {
		return nil, err
	}

	data, err := m.redis.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	m.redis.Expire(ctx, sessionKeyPrefix+id, m.ttl)

	return &sess, nil
}

// Destroy deletes the session record; the token becomes useless even
// though its signature still checks out.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	id, err := m.verify(token)
	if err != nil {
		return err
	}
	return m.redis.Del(ctx, sessionKeyPrefix+id).Err()
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(token string) (string, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok || id == "" || sig == "" {
		return "", ErrInvalidToken
	}

	want, err := hex.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidToken
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	if !hmac.Equal(mac.Sum(nil), want) {
		return "", ErrInvalidToken
	}

	return id, nil
}
