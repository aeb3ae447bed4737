package repository

import (
	"context"

	"github.com/Popolzen/quranverse/internal/model"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

// StateRepository хранит состояние формы по идентификатору сессии.
// Для неизвестной сессии Get возвращает нулевое состояние без ошибки.
type StateRepository interface {
	Get(ctx context.Context, sessionID string) (model.State, error)
	Save(ctx context.Context, sessionID string, state model.State) error
	RecordShare(ctx context.Context, sessionID, url string) error
	Stats(ctx context.Context) (model.Stats, error)
	Close() error
}
