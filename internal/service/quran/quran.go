package quran

import (
	"context"
	"errors"
	"fmt"

	"github.com/Popolzen/quranverse/internal/audit"
	"github.com/Popolzen/quranverse/internal/model"
	"github.com/Popolzen/quranverse/internal/repository"
	"github.com/Popolzen/quranverse/internal/verse"
	"go.uber.org/zap"
)

// TranslationClient получает перевод аята по адресу API
type TranslationClient interface {
	Ayah(ctx context.Context, url string) (*model.AyahResponse, error)
}

// VerseService выполняет действия формы для сессии и хранит результат в репозитории
type VerseService struct {
	reducer   verse.Reducer
	repo      repository.StateRepository
	client    TranslationClient
	publisher *audit.Publisher
	log       *zap.Logger
	locks     *sessionLocks
}

func NewVerseService(
	reducer verse.Reducer,
	repo repository.StateRepository,
	client TranslationClient,
	publisher *audit.Publisher,
	log *zap.Logger,
) *VerseService {
	if publisher == nil {
		publisher = audit.NewPublisher()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &VerseService{
		reducer:   reducer,
		repo:      repo,
		client:    client,
		publisher: publisher,
		log:       log,
		locks:     newSessionLocks(),
	}
}

// apply применяет действия к сохранённому состоянию сессии под её блокировкой
func (s *VerseService) apply(ctx context.Context, sessionID string, actions ...verse.Action) (model.State, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return model.State{}, fmt.Errorf("get session state: %w", err)
	}

	for _, a := range actions {
		state = s.reducer.Reduce(state, a)
	}

	if err := s.repo.Save(ctx, sessionID, state); err != nil {
		return model.State{}, fmt.Errorf("save session state: %w", err)
	}
	return state, nil
}

// State возвращает текущее состояние формы
func (s *VerseService) State(ctx context.Context, sessionID string) (model.State, error) {
	state, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return model.State{}, fmt.Errorf("get session state: %w", err)
	}
	return state, nil
}

// Update сохраняет значения полей формы без проверки
func (s *VerseService) Update(ctx context.Context, sessionID string, q model.VerseQuery) (model.State, error) {
	return s.apply(ctx, sessionID, verse.SetInput{Query: q})
}

// Submit сохраняет поля, проверяет их и запрашивает перевод для выбранного языка.
// Ошибки API не возвращаются, а попадают в State.Error.
func (s *VerseService) Submit(ctx context.Context, sessionID string, q model.VerseQuery) (model.State, error) {
	state, err := s.apply(ctx, sessionID, verse.SetInput{Query: q}, verse.Submit{})
	if err != nil {
		return model.State{}, err
	}

	req, ok := s.reducer.PendingRequest(state)
	if !ok {
		s.publisher.Publish(audit.NewEvent(audit.ActionSubmit, sessionID, ""))
		return state, nil
	}
	s.publisher.Publish(audit.NewEvent(audit.ActionSubmit, sessionID, req.URL))

	// запрос не прерывается вместе с HTTP-запросом посетителя, ограничен таймаутом клиента
	result, fetchErr := s.client.Ayah(context.WithoutCancel(ctx), req.URL)

	var action verse.Action
	if fetchErr != nil {
		s.log.Info("translation fetch failed",
			zap.String("session_id", sessionID),
			zap.String("url", req.URL),
			zap.Error(fetchErr),
		)
		action = verse.FetchFailed{Seq: req.Seq, Language: req.Language, Err: fetchErr}
	} else {
		action = verse.FetchSucceeded{Seq: req.Seq, Language: req.Language, Result: result}
	}

	return s.apply(ctx, sessionID, action)
}

// Reset возвращает форму в начальное состояние
func (s *VerseService) Reset(ctx context.Context, sessionID string) (model.State, error) {
	state, err := s.apply(ctx, sessionID, verse.Reset{})
	if err != nil {
		return model.State{}, err
	}
	s.publisher.Publish(audit.NewEvent(audit.ActionReset, sessionID, ""))
	return state, nil
}

// Share пересчитывает адрес для текущих полей формы.
// Без выбранного языка возвращает model.ErrLanguageNotSupported, ShareURL не меняется.
func (s *VerseService) Share(ctx context.Context, sessionID string) (model.State, error) {
	state, err := s.apply(ctx, sessionID, verse.Share{})
	if err != nil {
		return model.State{}, err
	}
	if !state.Query.Language.Supported() {
		return state, model.ErrLanguageNotSupported
	}

	if err := s.repo.RecordShare(ctx, sessionID, state.ShareURL); err != nil {
		s.log.Warn("failed to record share", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.publisher.Publish(audit.NewEvent(audit.ActionShare, sessionID, state.ShareURL))

	return state, nil
}

// ReportCopy сохраняет результат копирования адреса в буфер обмена на стороне клиента
func (s *VerseService) ReportCopy(ctx context.Context, sessionID string, copyErr error) (model.State, error) {
	return s.apply(ctx, sessionID, verse.CopyResult{Err: copyErr})
}

// DismissAlert убирает показанный алерт
func (s *VerseService) DismissAlert(ctx context.Context, sessionID string) (model.State, error) {
	return s.apply(ctx, sessionID, verse.DismissAlert{})
}

// Stats возвращает статистику хранилища
func (s *VerseService) Stats(ctx context.Context) (model.Stats, error) {
	return s.repo.Stats(ctx)
}

// CopyError восстанавливает ошибку копирования из текста клиента
func CopyError(text string) error {
	if text == "" {
		return nil
	}
	return errors.New(text)
}
