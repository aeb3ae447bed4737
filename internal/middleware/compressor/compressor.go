// Package compressor распаковывает gzip-запросы и сжимает HTML и JSON ответы.
package compressor

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/Popolzen/quranverse/internal/pool"
	"github.com/gin-gonic/gin"
)

// compressibleTypes типы ответов, которые имеет смысл сжимать
var compressibleTypes = []string{"application/json", "text/html"}

// encoders отвязываются от ответа перед возвратом в пул
var encoders = pool.New(
	func() *gzip.Writer { return gzip.NewWriter(io.Discard) },
	func(w *gzip.Writer) { w.Reset(io.Discard) },
)

type gzipWriter struct {
	gin.ResponseWriter
	encoder    *gzip.Writer
	compressed bool
}

func compressible(contentType string) bool {
	for _, t := range compressibleTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

func (g *gzipWriter) Write(b []byte) (int, error) {
	if !g.compressed && !g.Written() && compressible(g.Header().Get("Content-Type")) {
		g.Header().Set("Content-Encoding", "gzip")
		g.Header().Add("Vary", "Accept-Encoding")
		g.Header().Del("Content-Length")
		g.encoder.Reset(g.ResponseWriter)
		g.compressed = true
	}
	if g.compressed {
		return g.encoder.Write(b)
	}
	return g.ResponseWriter.Write(b)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

func (g *gzipWriter) close() error {
	defer encoders.Put(g.encoder)
	if g.compressed {
		return g.encoder.Close()
	}
	return nil
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept-Encoding")), "gzip")
}

// Compresser обрабатывает gzip в обе стороны
func Compresser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(strings.ToLower(c.Request.Header.Get("Content-Encoding")), "gzip") {
			reader, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			defer reader.Close()
			c.Request.Body = reader
			c.Request.Header.Del("Content-Encoding")
		}

		if acceptsGzip(c.Request) {
			writer := &gzipWriter{ResponseWriter: c.Writer, encoder: encoders.Get()}
			c.Writer = writer
			defer writer.close()
		}

		c.Next()
	}
}
