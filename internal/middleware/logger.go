package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// maxLoggedBody caps how much of a POST body is buffered for the access log.
const maxLoggedBody = 64 << 10

// RequestLogger writes one access log line per request once the response is done:
//
//	METHOD URL STATUS SIZE - ELAPSED ms BODY
//
// BODY is the compact JSON request body and is only present for POST requests
// when logBody is set.
func RequestLogger(logger *log.Logger, logBody bool) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body []byte
			if logBody && r.Method == http.MethodPost && r.Body != nil {
				body = peekBody(r)
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				size := "-"
				if n := ww.BytesWritten(); n > 0 {
					size = strconv.Itoa(n)
				}
				elapsed := float64(time.Since(start).Microseconds()) / 1000

				line := r.Method + " " + r.URL.RequestURI() + " " + strconv.Itoa(status) + " " + size +
					" - " + strconv.FormatFloat(elapsed, 'f', 3, 64) + " ms"
				if logBody && r.Method == http.MethodPost {
					line += " " + bodyForLog(body)
				}
				logger.Println(line)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// peekBody reads the request body and puts an equivalent reader back in place.
func peekBody(r *http.Request) []byte {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(data), r.Body), r.Body}
	if err != nil {
		return nil
	}
	return data
}

func bodyForLog(data []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return "{}"
	}
	return buf.String()
}
