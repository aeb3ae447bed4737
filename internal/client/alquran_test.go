package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Popolzen/quranverse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ayatAlKursi = `{"code":200,"status":"OK","data":{"number":262,"text":"God - there is no deity save Him","numberInSurah":255,
"surah":{"number":2,"name":"سُورَةُ البَقَرَةِ","englishName":"Al-Baqarah","englishNameTranslation":"The Cow","revelationType":"Medinan"}}}`

func TestAyah_Success(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ayatAlKursi))
	}))
	defer server.Close()

	api := NewAlQuranAPI(time.Second, nil)
	resp, err := api.Ayah(context.Background(), server.URL+"/v1/ayah/2:255/en.asad")

	require.NoError(t, err)
	assert.Equal(t, "/v1/ayah/2:255/en.asad", gotPath)
	assert.Equal(t, "God - there is no deity save Him", resp.Data.Text)
	assert.Equal(t, "Al-Baqarah", resp.Data.Surah.EnglishName)
	assert.Equal(t, "The Cow", resp.Data.Surah.EnglishNameTranslation)
	assert.Equal(t, "Medinan", resp.Data.Surah.RevelationType)
	assert.Equal(t, 255, resp.Data.NumberInSurah)
}

func TestAyah_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":404,"status":"Not Found","data":"Invalid ayah"}`))
	}))
	defer server.Close()

	api := NewAlQuranAPI(time.Second, nil)
	_, err := api.Ayah(context.Background(), server.URL)

	assert.ErrorIs(t, err, model.ErrHTTP)
}

func TestAyah_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	api := NewAlQuranAPI(time.Second, nil)
	_, err := api.Ayah(context.Background(), server.URL)

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrHTTP)
	assert.Contains(t, err.Error(), "decode ayah")
}

func TestAyah_ConnectionError(t *testing.T) {
	api := NewAlQuranAPI(time.Second, nil)
	_, err := api.Ayah(context.Background(), "http://localhost:99999")

	assert.Error(t, err)
}

func TestAyah_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ayatAlKursi))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	api := NewAlQuranAPI(time.Second, nil)
	_, err := api.Ayah(ctx, server.URL)

	assert.ErrorIs(t, err, context.Canceled)
}
