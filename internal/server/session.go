package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookieName = "healthassist_session"

// sessionMiddleware resolves the opaque session ID for a request. The ID
// travels inside a signed token (cookie or X-Session-Token header), the Go
// equivalent of a secret-keyed session cookie: clients cannot forge or
// swap session IDs, but no user identity is attached. A request without a
// valid token silently gets a fresh session.
func (a *App) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := a.parseSessionToken(rawSessionToken(c))
		if sessionID == "" {
			sessionID = uuid.NewString()
			signed, err := a.signSessionToken(sessionID)
			if err != nil {
				writeError(c, http.StatusInternalServerError, "Failed to issue session token")
				return
			}
			maxAge := int(a.sessionTTL() / time.Second)
			c.SetCookie(sessionCookieName, signed, maxAge, "/", "", false, true)
			c.Header("X-Session-Token", signed)
		}
		c.Set("sessionID", sessionID)
		c.Next()
	}
}

func rawSessionToken(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader("X-Session-Token")); header != "" {
		return header
	}
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

func (a *App) signSessionToken(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(a.sessionTTL()).Unix(),
	})
	return token.SignedString([]byte(a.cfg.SessionSecret))
}

func (a *App) parseSessionToken(tokenString string) string {
	if tokenString == "" {
		return ""
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return strings.TrimSpace(sid)
}

func (a *App) sessionTTL() time.Duration {
	hours := a.cfg.SessionTTLHours
	if hours <= 0 {
		hours = 24 * 30
	}
	return time.Duration(hours) * time.Hour
}

func sessionIDFromContext(c *gin.Context) (string, bool) {
	raw, ok := c.Get("sessionID")
	if !ok {
		return "", false
	}
	sessionID, ok := raw.(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}
