package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

const sessionTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	UserID   int    `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Manager struct {
	key []byte
}

func NewManager(secret string) *Manager {
	return &Manager{key: []byte(secret)}
}

// NewToken issues a signed session token for the given user.
func (m *Manager) NewToken(userID int, username string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Parse validates a session token and returns its claims.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type userKeyType int

const userKey userKeyType = 1

func SetUserContext(ctx context.Context, userID int, username string) context.Context {
	return context.WithValue(ctx, userKey, Claims{UserID: userID, Username: username})
}

// UserID returns the authenticated user id, ok=false when no session is set.
func UserID(ctx context.Context) (int, bool) {
	claims, ok := ctx.Value(userKey).(Claims)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
