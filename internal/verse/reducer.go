// Package verse содержит логику формы поиска аята: чистый редьюсер состояния,
// построение адресов API и вывод отображаемых полей из состояния.
//
// Все изменения состояния проходят через Reducer.Reduce: действие и текущее
// состояние дают новое состояние, входное значение не изменяется. Ответы на
// устаревшие отправки формы отбрасываются по номеру отправки (State.Seq).
package verse

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Popolzen/quranverse/internal/model"
)

// Action действие над состоянием формы
type Action interface {
	action()
}

// SetInput пользователь изменил поля формы. Значения не проверяются.
type SetInput struct {
	Query model.VerseQuery
}

// Submit нажата кнопка "Get Translation"
type Submit struct{}

// FetchSucceeded запрос перевода завершился успешно
type FetchSucceeded struct {
	Seq      uint64
	Language model.Language
	Result   *model.AyahResponse
}

// FetchFailed запрос перевода завершился ошибкой
type FetchFailed struct {
	Seq      uint64
	Language model.Language
	Err      error
}

// Reset нажата кнопка "Clear"
type Reset struct{}

// Share нажата кнопка "Share"
type Share struct{}

// CopyResult результат копирования адреса в буфер обмена
type CopyResult struct {
	Err error
}

// DismissAlert алерт показан пользователю
type DismissAlert struct{}

func (SetInput) action()       {}
func (Submit) action()         {}
func (FetchSucceeded) action() {}
func (FetchFailed) action()    {}
func (Reset) action()          {}
func (Share) action()          {}
func (CopyResult) action()     {}
func (DismissAlert) action()   {}

// FetchRequest запрос перевода, который нужно выполнить после Submit
type FetchRequest struct {
	Seq      uint64
	Language model.Language
	URL      string
}

// Reducer переводит состояние формы по действиям
type Reducer struct {
	urls URLBuilder
}

func NewReducer(urls URLBuilder) Reducer {
	return Reducer{urls: urls}
}

// Reduce возвращает новое состояние после действия
func (r Reducer) Reduce(s model.State, a Action) model.State {
	switch a := a.(type) {
	case SetInput:
		s.Query = a.Query
		return s

	case Submit:
		return r.submit(s)

	case FetchSucceeded:
		if isStale(s, a.Seq, a.Language) {
			return s
		}
		s.English, s.Urdu = nil, nil
		switch a.Language {
		case model.LanguageEnglish:
			s.English = a.Result
		case model.LanguageUrdu:
			s.Urdu = a.Result
		}
		s.Error = ""
		s.Pending = model.LanguageNone
		return s

	case FetchFailed:
		if isStale(s, a.Seq, a.Language) {
			return s
		}
		s.English, s.Urdu = nil, nil
		s.Error = errorMessage(a.Err)
		s.Pending = model.LanguageNone
		return s

	case Reset:
		// Seq растёт, чтобы незавершённый запрос не вернул результат в пустую форму
		return model.State{Seq: s.Seq + 1}

	case Share:
		url, ok := r.urls.TranslationURL(s.Query)
		if !ok {
			s.Alert = model.MsgLanguageUnsupported
			return s
		}
		s.ShareURL = url
		s.Alert = ""
		return s

	case CopyResult:
		if a.Err != nil {
			s.Alert = model.MsgCopyFailedPrefix + a.Err.Error()
		} else {
			s.Alert = model.MsgCopied
		}
		return s

	case DismissAlert:
		s.Alert = ""
		return s
	}

	return s
}

func (r Reducer) submit(s model.State) model.State {
	s.Alert = ""
	s.Seq++
	s.Pending = model.LanguageNone

	if err := Validate(s.Query); err != nil {
		s.English, s.Urdu = nil, nil
		s.Error = err.Error()
		return s
	}

	s.ImageURL = r.urls.ImageURL(s.Query.Surah, s.Query.Verse)

	// Без выбранного языка запрос не выполняется и ошибка не выставляется
	if s.Query.Language.Supported() {
		s.Pending = s.Query.Language
	}
	return s
}

// PendingRequest возвращает запрос, который должен выполниться для состояния после Submit
func (r Reducer) PendingRequest(s model.State) (FetchRequest, bool) {
	if s.Pending == model.LanguageNone {
		return FetchRequest{}, false
	}
	q := s.Query
	q.Language = s.Pending
	url, ok := r.urls.TranslationURL(q)
	if !ok {
		return FetchRequest{}, false
	}
	return FetchRequest{Seq: s.Seq, Language: s.Pending, URL: url}, true
}

// Validate проверяет, что сура и аят заданы и являются числами
func Validate(q model.VerseQuery) error {
	if !isNumeric(q.Surah) || !isNumeric(q.Verse) {
		return model.ErrValidation
	}
	return nil
}

func isNumeric(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isStale(s model.State, seq uint64, lang model.Language) bool {
	return seq != s.Seq || lang != s.Pending
}

func errorMessage(err error) string {
	if err == nil {
		return model.MsgUnexpected
	}
	if errors.Is(err, model.ErrHTTP) {
		return model.MsgAPIError
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return model.MsgUnexpected
}
