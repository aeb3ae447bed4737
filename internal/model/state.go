package model

// State состояние формы одного посетителя.
// Значение не изменяется на месте: каждое действие порождает новое состояние.
type State struct {
	Query    VerseQuery    `json:"query"`
	English  *AyahResponse `json:"english,omitempty"`
	Urdu     *AyahResponse `json:"urdu,omitempty"`
	Error    string        `json:"error,omitempty"`
	ImageURL string        `json:"image_url,omitempty"`
	ShareURL string        `json:"share_url,omitempty"`
	Alert    string        `json:"alert,omitempty"`

	// Seq номер последней отправки формы, ответы со старым номером игнорируются
	Seq uint64 `json:"seq"`
	// Pending язык запроса, который ещё не завершился
	Pending Language `json:"pending,omitempty"`
}

// Slot возвращает слот результата для языка
func (s State) Slot(lang Language) *AyahResponse {
	switch lang {
	case LanguageEnglish:
		return s.English
	case LanguageUrdu:
		return s.Urdu
	default:
		return nil
	}
}

// IsZero true для начального состояния
func (s State) IsZero() bool {
	return s.Query == VerseQuery{} &&
		s.English == nil &&
		s.Urdu == nil &&
		s.Error == "" &&
		s.ImageURL == "" &&
		s.ShareURL == "" &&
		s.Alert == "" &&
		s.Pending == LanguageNone
}
