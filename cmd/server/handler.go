package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rcbilson/mdconvert/markdown"
	"github.com/rcbilson/mdconvert/usage"
)

const (
	routeToHTML = "/markdown/to-html"
	routeToText = "/markdown/to-text"
)

var supportedRoutes = []string{routeToHTML, routeToText}

// conversion describes one endpoint: the mode it runs and how the result
// is reported.
type conversion struct {
	mode    markdown.Mode
	dataKey string
	message string
}

var (
	toHTML = conversion{markdown.ModeHTML, "html", "Markdown successfully converted to HTML"}
	toText = conversion{markdown.ModeText, "text", "Markdown successfully converted to plain text"}
)

// routeTable dispatches on the exact request path. Paths are not cleaned, so
// "//markdown/to-html" or "/markdown/./to-html" get notFound like any other
// unknown path.
type routeTable map[string]http.Handler

func (rt routeTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := rt[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	notFound(w, r)
}

// newRouter builds the route table. Requests that match no route get a 404
// envelope listing the supported routes.
func newRouter(spec specification, recorder usage.Recorder) http.Handler {
	routes := routeTable{
		routeToHTML: convert(toHTML, spec.MaxBodyBytes, recorder),
		routeToText: convert(toText, spec.MaxBodyBytes, recorder),
	}
	return logRequests(withTimeout(routes, spec.RequestTimeout))
}

// withTimeout answers with a 503 envelope when next runs longer than d.
func withTimeout(next http.Handler, d time.Duration) http.Handler {
	body, _ := json.Marshal(response{
		StatusCode: http.StatusServiceUnavailable,
		Message:    "Request timed out",
	})
	return http.TimeoutHandler(next, d, string(body))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errNotSupported, map[string][]string{"supported_routes": supportedRoutes})
}

// readPlaintextBody returns the request body with surrounding whitespace
// removed. An empty result is an error.
func readPlaintextBody(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", errTooLarge
		}
		requestLogger(r).WithError(err).Warn("reading request body")
		return "", errUnreadable
	}
	content := strings.TrimFunc(string(body), markdown.IsSpace)
	if content == "" {
		return "", errEmptyInput
	}
	return content, nil
}

func convert(c conversion, maxBytes int64, recorder usage.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, r, errNotAllowed, nil)
			return
		}

		content, err := readPlaintextBody(w, r, maxBytes)
		if err != nil {
			var he *httpError
			if !errors.As(err, &he) {
				he = errUnreadable
			}
			writeError(w, r, he, nil)
			return
		}

		output, err := markdown.Convert(c.mode, content)
		if err != nil {
			requestLogger(r).WithError(err).Error("converting markdown")
			writeError(w, r, errConversion, nil)
			return
		}

		err = recorder.Record(r.Context(), usage.Usage{
			Mode:      string(c.mode),
			LengthIn:  len(content),
			LengthOut: len(output),
		})
		if err != nil {
			requestLogger(r).WithError(err).Warn("recording usage")
		}

		writeResponse(w, http.StatusOK, c.message, map[string]string{c.dataKey: output})
	}
}
