package handler

import (
	"embed"
	"html/template"

	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/Popolzen/quranverse/internal/middleware/auth"
	"github.com/Popolzen/quranverse/internal/middleware/compressor"
	"github.com/Popolzen/quranverse/internal/middleware/subnet"
	"github.com/Popolzen/quranverse/internal/service/quran"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

func pageTemplate() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// RouterConfig зависимости роутера
type RouterConfig struct {
	Verses        *quran.VerseService
	Pinger        DBPinger
	SecretKey     string
	SecureCookie  bool
	TrustedSubnet string
}

// NewRouter настраивает роуты и middleware
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(compressor.Compresser())

	r.SetHTMLTemplate(pageTemplate())

	r.GET("/ping", PingHandler(cfg.Pinger))

	internal := r.Group("/api/internal")
	internal.Use(subnet.TrustedSubnetMiddleware(cfg.TrustedSubnet))
	internal.GET("/stats", StatsHandler(cfg.Verses))

	session := r.Group("/")
	session.Use(auth.SessionMiddleware(cfg.SecretKey, cfg.SecureCookie))

	session.GET("/", PageHandler(cfg.Verses))
	session.POST("/submit", SubmitFormHandler(cfg.Verses))
	session.POST("/clear", ClearFormHandler(cfg.Verses))
	session.POST("/share", ShareFormHandler(cfg.Verses))

	session.GET("/api/state", StateHandler(cfg.Verses))
	session.PUT("/api/input", InputHandler(cfg.Verses))
	session.POST("/api/verse", VerseHandler(cfg.Verses))
	session.POST("/api/reset", ResetHandler(cfg.Verses))
	session.POST("/api/share", ShareHandler(cfg.Verses))
	session.POST("/api/share/copied", CopiedHandler(cfg.Verses))
	session.POST("/api/alert/dismiss", DismissAlertHandler(cfg.Verses))

	return r
}
