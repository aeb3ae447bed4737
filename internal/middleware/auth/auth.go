// Package auth выдаёт посетителю подписанную cookie с идентификатором сессии формы.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName имя cookie сессии
	CookieName = "session_id"
	// ContextKey ключ идентификатора сессии в gin.Context
	ContextKey = "session_id"

	cookieMaxAge = 3600 * 24 * 30
)

// Signer подписывает и проверяет идентификаторы сессий HMAC-SHA256
type Signer struct {
	key []byte
}

func NewSigner(secretKey string) Signer {
	return Signer{key: []byte(secretKey)}
}

func (s Signer) mac(sessionID string) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(sessionID))
	return mac.Sum(nil)
}

// Sign возвращает значение cookie вида "<id>.<подпись>"
func (s Signer) Sign(sessionID string) string {
	return sessionID + "." + base64.RawURLEncoding.EncodeToString(s.mac(sessionID))
}

// Validate проверяет подпись и возвращает идентификатор сессии
func (s Signer) Validate(value string) (string, bool) {
	sessionID, signature, ok := strings.Cut(value, ".")
	if !ok || sessionID == "" {
		return "", false
	}

	received, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return "", false
	}

	return sessionID, hmac.Equal(received, s.mac(sessionID))
}

// SessionMiddleware кладёт идентификатор сессии в контекст.
// Без cookie или с неверной подписью создаётся новая сессия.
func SessionMiddleware(secretKey string, secure bool) gin.HandlerFunc {
	signer := NewSigner(secretKey)

	return func(c *gin.Context) {
		var sessionID string

		cookie, err := c.Cookie(CookieName)
		if err == nil && cookie != "" {
			var valid bool
			sessionID, valid = signer.Validate(cookie)
			if !valid {
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(CookieName, signer.Sign(sessionID), cookieMaxAge, "/", "", secure, true)
		}

		c.Set(ContextKey, sessionID)
		c.Next()
	}
}

// SessionID достаёт идентификатор сессии, положенный SessionMiddleware
func SessionID(c *gin.Context) string {
	return c.GetString(ContextKey)
}
