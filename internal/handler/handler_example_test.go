package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/Popolzen/quranverse/internal/client"
	"github.com/Popolzen/quranverse/internal/handler"
	"github.com/Popolzen/quranverse/internal/repository/memory"
	"github.com/Popolzen/quranverse/internal/service/quran"
	"github.com/Popolzen/quranverse/internal/verse"
	"github.com/gin-gonic/gin"
)

// setupExampleRouter роутер с хранением в памяти поверх адреса API
func setupExampleRouter(apiBaseURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	reducer := verse.NewReducer(verse.NewURLBuilder(apiBaseURL, ""))
	verses := quran.NewVerseService(reducer, memory.NewStateRepository(), client.NewAlQuranAPI(time.Second, nil), nil, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("session_id", "example-session")
		c.Next()
	})
	router.POST("/api/verse", handler.VerseHandler(verses))
	router.POST("/api/share", handler.ShareHandler(verses))
	return router
}

// ExampleVerseHandler демонстрирует запрос перевода аята
func ExampleVerseHandler() {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"status":"OK","data":{"text":"In the name of God, The Most Gracious, The Dispenser of Grace:",
"surah":{"name":"سُورَةُ ٱلْفَاتِحَةِ","englishName":"Al-Faatiha","englishNameTranslation":"The Opening","revelationType":"Meccan"}}}`))
	}))
	defer api.Close()

	router := setupExampleRouter(api.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/verse", strings.NewReader(`{"surah":"1","verse":"1","language":"english"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	fmt.Println("Status:", w.Code)
	fmt.Println(strings.Contains(w.Body.String(), `"english_name":"Al-Faatiha"`))
	fmt.Println(strings.Contains(w.Body.String(), `"image_url":"https://cdn.islamic.network/quran/images/1_1.png"`))

	// Output:
	// Status: 200
	// true
	// true
}

// ExampleVerseHandler_invalidInput демонстрирует ответ на нечисловой ввод
func ExampleVerseHandler_invalidInput() {
	router := setupExampleRouter("http://127.0.0.1:0")

	req := httptest.NewRequest(http.MethodPost, "/api/verse", strings.NewReader(`{"surah":"two","verse":"1","language":"english"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	fmt.Println("Status:", w.Code)
	fmt.Println(strings.Contains(w.Body.String(), `"error":"Please enter valid surah and verse numbers"`))

	// Output:
	// Status: 200
	// true
}

// ExampleShareHandler демонстрирует вычисление адреса для обмена
func ExampleShareHandler() {
	router := setupExampleRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/verse", strings.NewReader(`{"surah":"2","verse":"255"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/share", nil))
	fmt.Println("Status:", w.Code)
	fmt.Println(strings.Contains(w.Body.String(), `"alert":"Language not supported"`))

	// Output:
	// Status: 422
	// true
}
