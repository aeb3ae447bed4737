package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Popolzen/quranverse/internal/logger"
)

const (
	httpTimeout  = 5 * time.Second
	httpAttempts = 3
	httpBackoff  = 200 * time.Millisecond
)

// HTTPObserver отправляет события POST-запросом с JSON телом.
// Ответы 5xx и сетевые ошибки повторяются, 4xx нет.
type HTTPObserver struct {
	url      string
	client   *http.Client
	attempts int
	backoff  time.Duration
}

func NewHTTPObserver(url string) *HTTPObserver {
	return &HTTPObserver{
		url:      url,
		client:   &http.Client{Timeout: httpTimeout},
		attempts: httpAttempts,
		backoff:  httpBackoff,
	}
}

// Notify доставляет событие, ошибки только логируются
func (h *HTTPObserver) Notify(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log().Errorw("audit http: failed to encode event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.attempts)*httpTimeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		retry, err := h.send(ctx, data)
		if err == nil {
			return
		}
		if !retry || attempt >= h.attempts {
			logger.Log().Warnw("audit http: event dropped",
				"url", h.url,
				"action", event.Action,
				"attempts", attempt,
				"error", err,
			)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(h.backoff * time.Duration(attempt)):
		}
	}
}

// send возвращает, имеет ли смысл повторять запрос
func (h *HTTPObserver) send(ctx context.Context, body []byte) (bool, error) {
	// тело читается транспортом, поэтому на каждую попытку свой reader
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("status %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return false, fmt.Errorf("status %d", resp.StatusCode)
	default:
		return false, nil
	}
}

// Close для HTTP ничего не делает
func (h *HTTPObserver) Close() error {
	return nil
}
