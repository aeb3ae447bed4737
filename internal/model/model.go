package model

import "errors"

// Language выбранный язык перевода
type Language string

const (
	LanguageNone    Language = ""
	LanguageEnglish Language = "english"
	LanguageUrdu    Language = "urdu"
)

// Идентификаторы изданий alquran.cloud
const (
	EditionEnglish = "en.asad"
	EditionUrdu    = "ur.ahmedali"
)

// Edition возвращает издание API для языка, пустую строку если язык не поддерживается
func (l Language) Edition() string {
	switch l {
	case LanguageEnglish:
		return EditionEnglish
	case LanguageUrdu:
		return EditionUrdu
	default:
		return ""
	}
}

// Supported сообщает, есть ли для языка издание
func (l Language) Supported() bool {
	return l.Edition() != ""
}

// Тексты, которые видит пользователь
const (
	MsgInvalidInput        = "Please enter valid surah and verse numbers"
	MsgAPIError            = "Invalid verse number or API error"
	MsgUnexpected          = "An unexpected error occurred"
	MsgLanguageUnsupported = "Language not supported"
	MsgCopied              = "Verse URL copied to clipboard"
	MsgCopyFailedPrefix    = "Failed to copy URL: "
)

var (
	ErrValidation           = errors.New(MsgInvalidInput)
	ErrHTTP                 = errors.New(MsgAPIError)
	ErrLanguageNotSupported = errors.New(MsgLanguageUnsupported)
)

// VerseQuery сырые значения полей формы
type VerseQuery struct {
	Surah    string   `json:"surah" form:"surah"`
	Verse    string   `json:"verse" form:"verse"`
	Language Language `json:"language" form:"language"`
}

// SurahInfo метаданные суры из ответа API
type SurahInfo struct {
	Number                 int    `json:"number,omitempty"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	RevelationType         string `json:"revelationType"`
}

// Ayah поле data ответа API
type Ayah struct {
	Number        int       `json:"number,omitempty"`
	Text          string    `json:"text"`
	NumberInSurah int       `json:"numberInSurah,omitempty"`
	Surah         SurahInfo `json:"surah"`
}

// AyahResponse ответ https://api.alquran.cloud/v1/ayah/{surah}:{verse}/{edition}
type AyahResponse struct {
	Code   int    `json:"code,omitempty"`
	Status string `json:"status,omitempty"`
	Data   Ayah   `json:"data"`
}

// Stats статистика для внутреннего эндпоинта
type Stats struct {
	Sessions int `json:"sessions"`
	Shares   int `json:"shares"`
}

// ContextKey ключ для значений в context.Context
type ContextKey string

// SessionRecord запись сессии в файловом хранилище
type SessionRecord struct {
	UUID      string   `json:"uuid"`
	SessionID string   `json:"session_id"`
	State     State    `json:"state"`
	Shares    []string `json:"shares,omitempty"`
}
