package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware("test-secret", false))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return r
}

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("k")

	id, ok := s.Validate(s.Sign("abc"))

	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestSigner_Rejects(t *testing.T) {
	s := NewSigner("k")

	tests := []struct {
		name  string
		value string
	}{
		{name: "без подписи", value: "abc"},
		{name: "битый base64", value: "abc.!!!"},
		{name: "чужой ключ", value: NewSigner("other").Sign("abc")},
		{name: "пустой id", value: s.Sign("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.Validate(tt.value)
			assert.False(t, ok)
		})
	}
}

func TestSigner_CookieSafe(t *testing.T) {
	s := NewSigner("k")
	for i := 0; i < 100; i++ {
		value := s.Sign(fmt.Sprintf("session-%d", i))
		assert.Equal(t, url.QueryEscape(value), value, "значение не меняется при экранировании")
	}
}

func TestSessionMiddleware_NewSession(t *testing.T) {
	r := setupRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	res := w.Result()
	defer res.Body.Close()

	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.NotEmpty(t, w.Body.String())

	// gin отдаёт значение cookie экранированным
	value, err := url.QueryUnescape(cookies[0].Value)
	require.NoError(t, err)

	id, ok := NewSigner("test-secret").Validate(value)
	require.True(t, ok)
	assert.Equal(t, w.Body.String(), id)
}

func TestSessionMiddleware_CookieRoundTrip(t *testing.T) {
	r := setupRouter()
	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)

	assert.Equal(t, first.Body.String(), second.Body.String(), "сессия сохраняется между запросами")
	assert.Empty(t, second.Result().Cookies())
}

func TestSessionMiddleware_KeepsValidSession(t *testing.T) {
	r := setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: NewSigner("test-secret").Sign("known")})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "known", w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "валидная cookie не перевыпускается")
}

func TestSessionMiddleware_ReplacesForgedSession(t *testing.T) {
	r := setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "known.Zm9yZ2Vk"})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.NotEqual(t, "known", w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}
