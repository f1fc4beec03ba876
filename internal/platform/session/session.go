package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ridloal/clothing-storefront/internal/platform/config"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
)

const contextKey = "sessionID"

const issuer = "clothing-storefront"

var ErrInvalidToken = errors.New("invalid session token")

// Manager issues and verifies the signed session cookie. The cookie holds
// an HS256 token whose subject is the opaque session id.
type Manager struct {
	secret []byte
	ttl    time.Duration
	cookie string
	secure bool
	now    func() time.Time
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		cookie: cfg.CookieName,
		secure: cfg.CookieSecure,
		now:    time.Now,
	}
}

func (m *Manager) Issue(sessionID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign session token: %w", err)
	}
	return signed, nil
}

func (m *Manager) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Middleware attaches a session id to every request. Missing, expired or
// tampered cookies start a fresh session.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(m.cookie); err == nil && raw != "" {
			if sid, err := m.Parse(raw); err == nil {
				c.Set(contextKey, sid)
				c.Next()
				return
			}
			logger.Debug("Session: discarding invalid cookie from %s", c.ClientIP())
		}

		sid := uuid.NewString()
		signed, err := m.Issue(sid)
		if err != nil {
			logger.Error("Session: failed to issue token", err, nil)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "No se pudo iniciar la sesión"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cookie, signed, int(m.ttl.Seconds()), "/", "", m.secure, true)
		c.Set(contextKey, sid)
		c.Next()
	}
}

// ID returns the session id stored by Middleware, or "" outside it.
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}
