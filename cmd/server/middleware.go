package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// requestLogger returns the logger tagged for r, or the standard logger
// when r did not pass through logRequests.
func requestLogger(r *http.Request) *logrus.Entry {
	if entry, ok := r.Context().Value(loggerKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// logRequests tags each request with an id, which is echoed in the
// X-Request-Id header, and logs it once it completes.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		entry := logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		w.Header().Set("X-Request-Id", id)
		// also covers the body written by the timeout handler
		w.Header().Set("Content-Type", "application/json")

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), loggerKey{}, entry)))

		entry.WithFields(logrus.Fields{
			"status":   sw.code,
			"duration": time.Since(start),
		}).Debug("request complete")
	})
}
