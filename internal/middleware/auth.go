package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "pocketledger/internal/errors"
)

const (
	// SessionCookie is the name of the http-only cookie carrying the session token.
	SessionCookie = "session"
	// UserIDKey is the gin context key holding the authenticated user's id.
	UserIDKey = "userID"

	issuer = "pocketledger-api"
)

// SessionClaims represents the claims in a session JWT
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens.
type SessionManager struct {
	secret       []byte
	ttl          time.Duration
	secureCookie bool
}

// NewSessionManager creates a SessionManager. Tokens expire ttl after they
// are issued; cookie sessions are re-issued on every authenticated request.
func NewSessionManager(secret string, ttl time.Duration, secureCookie bool) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, secureCookie: secureCookie}
}

// TTL returns the lifetime of an issued token.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue generates a signed session token for userID.
func (m *SessionManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a session token and returns its claims.
func (m *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("session token has no user")
	}
	return claims, nil
}

// SetCookie stores token in the session cookie.
func (m *SessionManager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(m.ttl.Seconds()), "/", "", m.secureCookie, true)
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", m.secureCookie, true)
}

// Authenticate verifies the session carried by the Authorization header or
// the session cookie and sets the user id in the context.
func (m *SessionManager) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, fromCookie, ok := sessionToken(c)
		if !ok {
			abortUnauthorized(c, "Session is required")
			return
		}

		claims, err := m.Parse(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired session")
			return
		}

		// Cookie sessions slide.
		if fromCookie {
			if renewed, err := m.Issue(claims.UserID); err == nil {
				m.SetCookie(c, renewed)
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func sessionToken(c *gin.Context) (token string, fromCookie bool, ok bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false, false
		}
		return parts[1], false, true
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return "", false, false
	}
	return cookie, true, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":      apperrors.ErrUnauthorized.Code,
			"message":   message,
			"retryable": false,
		},
	})
}
