package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/Popolzen/quranverse/internal/middleware/auth"
	"github.com/Popolzen/quranverse/internal/model"
	"github.com/Popolzen/quranverse/internal/service/quran"
	"github.com/Popolzen/quranverse/internal/verse"
	"github.com/gin-gonic/gin"
)

// DBPinger проверяет доступность базы
type DBPinger interface {
	PingDB(ctx context.Context) error
}

// copyReport тело POST /api/share/copied
type copyReport struct {
	Error string `json:"error"`
}

func internalError(c *gin.Context, msg string, err error) {
	logger.Log().Errorw(msg, "session_id", auth.SessionID(c), "error", err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

// PageHandler отдаёт форму с текущим состоянием сессии.
// Алерт показывается один раз.
func PageHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := auth.SessionID(c)

		state, err := verses.State(c.Request.Context(), sid)
		if err != nil {
			internalError(c, "failed to load state", err)
			return
		}

		if state.Alert != "" {
			if _, err := verses.DismissAlert(c.Request.Context(), sid); err != nil {
				logger.Log().Warnw("failed to dismiss alert", "session_id", sid, "error", err)
			}
		}

		c.HTML(http.StatusOK, "index.html", verse.Render(state))
	}
}

// SubmitFormHandler обрабатывает кнопку "Get Translation"
func SubmitFormHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q model.VerseQuery
		if err := c.ShouldBind(&q); err != nil {
			c.String(http.StatusBadRequest, "invalid form")
			return
		}

		if _, err := verses.Submit(c.Request.Context(), auth.SessionID(c), q); err != nil {
			internalError(c, "failed to submit", err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// ClearFormHandler обрабатывает кнопку "Clear"
func ClearFormHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := verses.Reset(c.Request.Context(), auth.SessionID(c)); err != nil {
			internalError(c, "failed to reset", err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// ShareFormHandler обрабатывает кнопку "Share".
// Поля формы сохраняются до вычисления адреса, копирование делает скрипт страницы.
func ShareFormHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sid := auth.SessionID(c)

		var q model.VerseQuery
		if err := c.ShouldBind(&q); err != nil {
			c.String(http.StatusBadRequest, "invalid form")
			return
		}
		if _, err := verses.Update(ctx, sid, q); err != nil {
			internalError(c, "failed to update input", err)
			return
		}

		_, err := verses.Share(ctx, sid)
		switch {
		case errors.Is(err, model.ErrLanguageNotSupported):
			c.Redirect(http.StatusSeeOther, "/")
		case err != nil:
			internalError(c, "failed to share", err)
		default:
			c.Redirect(http.StatusSeeOther, "/")
		}
	}
}

// StateHandler GET /api/state
func StateHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := verses.State(c.Request.Context(), auth.SessionID(c))
		if err != nil {
			internalError(c, "failed to load state", err)
			return
		}
		c.JSON(http.StatusOK, verse.Render(state))
	}
}

// InputHandler PUT /api/input сохраняет поля без проверки
func InputHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q model.VerseQuery
		if err := c.ShouldBindJSON(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		state, err := verses.Update(c.Request.Context(), auth.SessionID(c), q)
		if err != nil {
			internalError(c, "failed to update input", err)
			return
		}
		c.JSON(http.StatusOK, verse.Render(state))
	}
}

// VerseHandler POST /api/verse.
// Ошибки ввода и API отдаются в поле error со статусом 200, как их видит форма.
func VerseHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q model.VerseQuery
		if err := c.ShouldBindJSON(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		state, err := verses.Submit(c.Request.Context(), auth.SessionID(c), q)
		if err != nil {
			internalError(c, "failed to submit", err)
			return
		}
		c.JSON(http.StatusOK, verse.Render(state))
	}
}

// ResetHandler POST /api/reset
func ResetHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := verses.Reset(c.Request.Context(), auth.SessionID(c))
		if err != nil {
			internalError(c, "failed to reset", err)
			return
		}
		c.JSON(http.StatusOK, verse.Render(state))
	}
}

// ShareHandler POST /api/share
func ShareHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := verses.Share(c.Request.Context(), auth.SessionID(c))
		switch {
		case errors.Is(err, model.ErrLanguageNotSupported):
			c.JSON(http.StatusUnprocessableEntity, verse.Render(state))
		case err != nil:
			internalError(c, "failed to share", err)
		default:
			c.JSON(http.StatusOK, verse.Render(state))
		}
	}
}

// CopiedHandler POST /api/share/copied принимает результат копирования в буфер обмена
func CopiedHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var report copyReport
		if err := c.ShouldBindJSON(&report); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		state, err := verses.ReportCopy(c.Request.Context(), auth.SessionID(c), quran.CopyError(report.Error))
		if err != nil {
			internalError(c, "failed to report copy", err)
			return
		}
		c.JSON(http.StatusOK, verse.Render(state))
	}
}

// DismissAlertHandler POST /api/alert/dismiss
func DismissAlertHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := verses.DismissAlert(c.Request.Context(), auth.SessionID(c))
		if err != nil {
			internalError(c, "failed to dismiss alert", err)
			return
		}
		c.JSON(http.StatusOK, verse.Render(state))
	}
}

// StatsHandler GET /api/internal/stats
func StatsHandler(verses *quran.VerseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := verses.Stats(c.Request.Context())
		if err != nil {
			internalError(c, "failed to load stats", err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// PingHandler проверяет базу, без базы всегда отвечает 200
func PingHandler(pinger DBPinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pinger != nil {
			if err := pinger.PingDB(c.Request.Context()); err != nil {
				logger.Log().Errorw("database ping failed", "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
		}
		c.Status(http.StatusOK)
	}
}
