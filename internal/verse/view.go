package verse

import "github.com/Popolzen/quranverse/internal/model"

// View поля, которые показываются пользователю
type View struct {
	Surah    string         `json:"surah"`
	Verse    string         `json:"verse"`
	Language model.Language `json:"language"`

	HasResult              bool   `json:"has_result"`
	SurahName              string `json:"surah_name,omitempty"`
	EnglishName            string `json:"english_name,omitempty"`
	EnglishNameTranslation string `json:"english_name_translation,omitempty"`
	RevelationType         string `json:"revelation_type,omitempty"`
	ImageURL               string `json:"image_url,omitempty"`
	EnglishText            string `json:"english_text,omitempty"`
	UrduText               string `json:"urdu_text,omitempty"`

	Error    string `json:"error,omitempty"`
	ShareURL string `json:"share_url,omitempty"`
	Alert    string `json:"alert,omitempty"`
}

// Render выводит отображаемые поля из состояния
func Render(s model.State) View {
	v := View{
		Surah:    s.Query.Surah,
		Verse:    s.Query.Verse,
		Language: s.Query.Language,
		Error:    s.Error,
		ShareURL: s.ShareURL,
		Alert:    s.Alert,
	}

	result := s.English
	if result == nil {
		result = s.Urdu
	}
	if result == nil {
		return v
	}

	v.HasResult = true
	v.SurahName = result.Data.Surah.Name
	v.EnglishName = result.Data.Surah.EnglishName
	v.EnglishNameTranslation = result.Data.Surah.EnglishNameTranslation
	v.RevelationType = result.Data.Surah.RevelationType
	v.ImageURL = s.ImageURL

	// текст показывается только для выбранного сейчас языка
	if selected := s.Slot(s.Query.Language); selected != nil {
		switch s.Query.Language {
		case model.LanguageEnglish:
			v.EnglishText = selected.Data.Text
		case model.LanguageUrdu:
			v.UrduText = selected.Data.Text
		}
	}

	return v
}
