package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	CookieName = "imsakiye_session"
	contextKey = "session"
	tokenTTL   = 365 * 24 * time.Hour
)

// GenerateToken signs a token embedding the session id in the "sid" claim.
func GenerateToken(sid, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// verifies the token and returns the session id.
func parseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("invalid sid claim")
	}
	return sid, nil
}

// Middleware resolves the session cookie, issuing a fresh session when it is
// missing or invalid, and stores the session in the gin context.
func Middleware(m *Manager, secret string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := ""
		if cookie, err := c.Cookie(CookieName); err == nil {
			if sid, err = parseToken(cookie, secret); err != nil {
				log.Debug().Err(err).Msg("discarding session cookie")
			}
		}

		if sid == "" {
			sid = uuid.NewString()
			token, err := GenerateToken(sid, secret)
			if err != nil {
				log.Error().Err(err).Msg("failed to sign session token")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, token, int(tokenTTL.Seconds()), "/", "", secure, true)
		}

		c.Set(contextKey, m.GetOrCreate(c.Request.Context(), sid))
		c.Next()
	}
}

// FromContext retrieves the session set by Middleware.
func FromContext(c *gin.Context) (*Session, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}
