package subnet

import (
	"net"
	"net/http"

	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/gin-gonic/gin"
)

// RealIPHeader заголовок, в котором прокси передаёт адрес клиента
const RealIPHeader = "X-Real-IP"

// TrustedSubnetMiddleware пускает дальше только запросы, у которых адрес
// из заголовка X-Real-IP входит в trustedSubnet (CIDR, например "192.168.1.0/24").
//
// Пустая или невалидная подсеть закрывает доступ всем.
//
//	internal := r.Group("/api/internal")
//	internal.Use(subnet.TrustedSubnetMiddleware(cfg.TrustedSubnet))
//	internal.GET("/stats", handler.StatsHandler(verses))
func TrustedSubnetMiddleware(trustedSubnet string) gin.HandlerFunc {
	ipNet, err := parseSubnet(trustedSubnet)
	if err != nil {
		logger.Log().Errorw("invalid trusted subnet", "cidr", trustedSubnet, "error", err)
	}

	return func(c *gin.Context) {
		if ipNet == nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		realIP := c.GetHeader(RealIPHeader)
		ip := net.ParseIP(realIP)
		if ip == nil {
			logger.Log().Debugw("access denied: missing or invalid X-Real-IP", "ip", realIP, "path", c.Request.URL.Path)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if !ipNet.Contains(ip) {
			logger.Log().Infow("access denied: ip outside trusted subnet", "ip", realIP, "cidr", trustedSubnet)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

func parseSubnet(cidr string) (*net.IPNet, error) {
	if cidr == "" {
		return nil, nil
	}
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, err
	}
	return ipNet, nil
}
