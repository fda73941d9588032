package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMaxBody(t *testing.T) {
	const limit = 64

	var readErr error
	var read []byte
	h := MaxBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		read, readErr = io.ReadAll(r.Body)
	}), limit)

	t.Run("under the limit", func(t *testing.T) {
		body := bytes.Repeat([]byte("a"), limit)
		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(body))
		h.ServeHTTP(httptest.NewRecorder(), req)

		if readErr != nil {
			t.Fatalf("read failed under the limit: %v", readErr)
		}
		if len(read) != limit {
			t.Errorf("read %d bytes, want %d", len(read), limit)
		}
	})

	t.Run("over the limit", func(t *testing.T) {
		body := bytes.Repeat([]byte("a"), limit+1)
		req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(body))
		h.ServeHTTP(httptest.NewRecorder(), req)

		if readErr == nil {
			t.Fatal("reading past the limit should fail")
		}
		var maxErr *http.MaxBytesError
		if !errors.As(readErr, &maxErr) {
			t.Errorf("read error = %v, want MaxBytesError", readErr)
		}
	})
}
