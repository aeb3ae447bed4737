package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Popolzen/quranverse/internal/model"
	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// AlQuranAPI клиент api.alquran.cloud
type AlQuranAPI struct {
	client *http.Client
	log    *zap.Logger
}

func NewAlQuranAPI(timeout time.Duration, log *zap.Logger) *AlQuranAPI {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AlQuranAPI{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Ayah запрашивает перевод аята по готовому адресу.
// Ответ со статусом вне 2xx возвращается как model.ErrHTTP.
func (a *AlQuranAPI) Ayah(ctx context.Context, url string) (*model.AyahResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Debug("alquran request failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.log.Debug("alquran bad status", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, model.ErrHTTP)
	}

	var data model.AyahResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode ayah: %w", err)
	}

	a.log.Debug("alquran ayah fetched",
		zap.String("url", url),
		zap.String("surah", data.Data.Surah.EnglishName),
	)
	return &data, nil
}
