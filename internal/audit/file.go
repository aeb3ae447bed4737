package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Popolzen/quranverse/internal/logger"
	"github.com/Popolzen/quranverse/internal/pool"
)

// encodeBuffers общие буферы сериализации событий
var encodeBuffers = pool.New(func() *bytes.Buffer {
	return new(bytes.Buffer)
}, (*bytes.Buffer).Reset)

// FileObserver наблюдатель, пишущий в файл по строке JSON на событие
type FileObserver struct {
	file *os.File
	mu   sync.Mutex
}

// NewFileObserver создаёт наблюдателя для записи в файл
func NewFileObserver(path string) (*FileObserver, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileObserver{file: file}, nil
}

// Notify записывает событие в файл
func (f *FileObserver) Notify(event Event) {
	err := encodeBuffers.With(func(buf *bytes.Buffer) error {
		if err := json.NewEncoder(buf).Encode(event); err != nil {
			return fmt.Errorf("ошибка сериализации: %w", err)
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		if _, err := f.file.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("ошибка записи: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Log().Errorw("audit file", "action", event.Action, "error", err)
	}
}

// Close закрывает файл
func (f *FileObserver) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}
