package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie carries the signed session token. HTTP-only so page scripts
// never see it.
const SessionCookie = "session"

// renewWindow is how close to expiry a token gets before the middleware
// transparently re-issues it.
const renewWindow = 15 * time.Minute

// IssueSession signs a session token for the user and sets the cookie.
func IssueSession(c *gin.Context, secret []byte, ttl time.Duration, userID int, email string) error {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   userID,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}).SignedString(secret)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
	return nil
}

// ClearSession drops the session cookie.
func ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// SessionAuth authenticates API requests from the session cookie and puts
// user_id and user_email into the request context.
func SessionAuth(secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		uid, ok := claims["uid"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		email, _ := claims["email"].(string)

		c.Set("user_id", int(uid))
		c.Set("user_email", email)

		// Re-issue tokens approaching expiry so active sessions stay alive.
		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < renewWindow {
				IssueSession(c, secret, ttl, int(uid), email)
			}
		}

		c.Next()
	}
}
