package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  = zap.NewNop()
	sugar = base.Sugar()
)

// Init инициализирует zap логгер, level в формате zap ("debug", "info", ...)
func Init(level string) error {
	config := zap.NewProductionConfig()

	// Настройка формата времени
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return err
		}
	}
	config.Level = lvl

	logger, err := config.Build()
	if err != nil {
		return err
	}

	base = logger
	sugar = logger.Sugar()
	return nil
}

// Log возвращает общий sugared логгер, до Init это no-op логгер
func Log() *zap.SugaredLogger {
	return sugar
}

// Logger возвращает общий структурный логгер
func Logger() *zap.Logger {
	return base
}

// RequestLogger middleware-логер для входящих HTTP-запросов.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		uri := c.Request.RequestURI
		method := c.Request.Method

		c.Next()

		sugar.Infoln(
			"uri", uri,
			"method", method,
			"duration", time.Since(start),
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
		)
	}
}

func Close() {
	if sugar != nil {
		sugar.Sync()
	}
}
