package grpc

import (
	"context"
	"errors"

	"github.com/Popolzen/quranverse/internal/grpc/interceptors"
	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/Popolzen/quranverse/internal/model"
	"github.com/Popolzen/quranverse/internal/service/quran"
	"github.com/Popolzen/quranverse/internal/verse"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// VerseServer реализует quranverse.VerseService поверх quran.VerseService
type VerseServer struct {
	verses *quran.VerseService
}

func NewVerseServer(verses *quran.VerseService) *VerseServer {
	return &VerseServer{verses: verses}
}

func sessionID(ctx context.Context) (string, error) {
	sid, ok := interceptors.SessionID(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "session not authenticated")
	}
	return sid, nil
}

func respond(state model.State, err error) (*VerseResponse, error) {
	if err != nil {
		logger.Log().Errorw("verse service failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &VerseResponse{View: verse.Render(state)}, nil
}

// GetState возвращает текущее состояние формы
func (s *VerseServer) GetState(ctx context.Context, _ *GetStateRequest) (*VerseResponse, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	return respond(s.verses.State(ctx, sid))
}

// Submit сохраняет поля и запрашивает перевод.
// Ошибки ввода и API возвращаются в View.Error, как в форме.
func (s *VerseServer) Submit(ctx context.Context, req *SubmitRequest) (*VerseResponse, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	return respond(s.verses.Submit(ctx, sid, model.VerseQuery{
		Surah:    req.Surah,
		Verse:    req.Verse,
		Language: req.Language,
	}))
}

// Reset очищает форму
func (s *VerseServer) Reset(ctx context.Context, _ *ResetRequest) (*VerseResponse, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	return respond(s.verses.Reset(ctx, sid))
}

// Share вычисляет адрес для обмена, без языка отвечает FailedPrecondition
func (s *VerseServer) Share(ctx context.Context, _ *ShareRequest) (*VerseResponse, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.verses.Share(ctx, sid)
	if errors.Is(err, model.ErrLanguageNotSupported) {
		return nil, status.Error(codes.FailedPrecondition, model.MsgLanguageUnsupported)
	}
	return respond(state, err)
}

// ReportCopy принимает результат копирования адреса клиентом
func (s *VerseServer) ReportCopy(ctx context.Context, req *ReportCopyRequest) (*VerseResponse, error) {
	sid, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	return respond(s.verses.ReportCopy(ctx, sid, quran.CopyError(req.Error)))
}
