package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Popolzen/quranverse/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type StateRepository struct {
	DB *sql.DB
}

func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{
		DB: db,
	}
}

// Get получает состояние сессии, для неизвестной сессии возвращает нулевое
func (r *StateRepository) Get(ctx context.Context, sessionID string) (model.State, error) {
	var raw []byte
	query := `SELECT state FROM sessions WHERE session_id = $1`

	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.State{}, nil
		}
		return model.State{}, fmt.Errorf("ошибка при получении сессии: %w", err)
	}

	var state model.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.State{}, fmt.Errorf("ошибка десериализации состояния: %w", err)
	}

	return state, nil
}

// Save сохраняет состояние сессии
func (r *StateRepository) Save(ctx context.Context, sessionID string, state model.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("ошибка сериализации состояния: %w", err)
	}

	query := `
    INSERT INTO sessions (session_id, state, updated_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (session_id)
    DO UPDATE SET
        state = EXCLUDED.state,
        updated_at = EXCLUDED.updated_at
`

	if _, err := r.DB.ExecContext(ctx, query, sessionID, raw, time.Now()); err != nil {
		return fmt.Errorf("ошибка при сохранении сессии: %w", err)
	}

	return nil
}

// RecordShare записывает адрес в историю, повторная запись не считается ошибкой
func (r *StateRepository) RecordShare(ctx context.Context, sessionID, url string) error {
	query := `INSERT INTO shares (session_id, url, created_at) VALUES ($1, $2, $3)`

	_, err := r.DB.ExecContext(ctx, query, sessionID, url, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil
		}
		return fmt.Errorf("ошибка при сохранении ссылки: %w", err)
	}

	return nil
}

func (r *StateRepository) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats

	query := `SELECT (SELECT COUNT(*) FROM sessions), (SELECT COUNT(*) FROM shares)`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&stats.Sessions, &stats.Shares); err != nil {
		return model.Stats{}, fmt.Errorf("ошибка при получении статистики: %w", err)
	}

	return stats, nil
}

func (r *StateRepository) Close() error {
	return r.DB.Close()
}
