package verse

import (
	"fmt"
	"strings"

	"github.com/Popolzen/quranverse/internal/model"
)

const (
	DefaultAPIBaseURL   = "https://api.alquran.cloud/v1"
	DefaultImageBaseURL = "https://cdn.islamic.network/quran/images"
)

// URLBuilder строит адреса перевода и картинки аята
type URLBuilder struct {
	APIBaseURL   string
	ImageBaseURL string
}

// NewURLBuilder создает построитель, пустые базы заменяются адресами по умолчанию
func NewURLBuilder(apiBase, imageBase string) URLBuilder {
	if apiBase == "" {
		apiBase = DefaultAPIBaseURL
	}
	if imageBase == "" {
		imageBase = DefaultImageBaseURL
	}
	return URLBuilder{
		APIBaseURL:   strings.TrimRight(apiBase, "/"),
		ImageBaseURL: strings.TrimRight(imageBase, "/"),
	}
}

// TranslationURL адрес перевода, ok=false если язык не выбран
func (b URLBuilder) TranslationURL(q model.VerseQuery) (string, bool) {
	edition := q.Language.Edition()
	if edition == "" {
		return "", false
	}
	return fmt.Sprintf("%s/ayah/%s:%s/%s", b.APIBaseURL, q.Surah, q.Verse, edition), true
}

// ImageURL адрес картинки аята, существование не проверяется
func (b URLBuilder) ImageURL(surah, verse string) string {
	return fmt.Sprintf("%s/%s_%s.png", b.ImageBaseURL, surah, verse)
}
