package subnet

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTrustedSubnetMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		subnet string
		realIP string
		want   int
	}{
		{name: "адрес в подсети", subnet: "192.168.1.0/24", realIP: "192.168.1.15", want: http.StatusOK},
		{name: "адрес вне подсети", subnet: "192.168.1.0/24", realIP: "10.0.0.1", want: http.StatusForbidden},
		{name: "нет заголовка", subnet: "192.168.1.0/24", realIP: "", want: http.StatusForbidden},
		{name: "мусор в заголовке", subnet: "192.168.1.0/24", realIP: "not-an-ip", want: http.StatusForbidden},
		{name: "подсеть не задана", subnet: "", realIP: "192.168.1.15", want: http.StatusForbidden},
		{name: "невалидная подсеть", subnet: "192.168.1.0/99", realIP: "192.168.1.15", want: http.StatusForbidden},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(TrustedSubnetMiddleware(tt.subnet))
			r.GET("/stats", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			if tt.realIP != "" {
				req.Header.Set(RealIPHeader, tt.realIP)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
