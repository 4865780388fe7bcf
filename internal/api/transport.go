package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"roomsplit/internal/log"
)

// tracingTransport tags every outgoing request with an X-Request-Id and
// logs method, path, status and duration.
type tracingTransport struct {
	base   http.RoundTripper
	logger *log.Logger
}

func newTracingTransport(base http.RoundTripper, logger *log.Logger) *tracingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &tracingTransport{base: base, logger: logger}
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()

	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	durationMs := time.Since(start).Milliseconds()

	if err != nil {
		t.logger.WarnContext(req.Context(), "API request failed",
			log.FieldRequestID, requestID,
			log.FieldMethod, req.Method,
			log.FieldPath, req.URL.Path,
			log.FieldDuration, durationMs,
			log.FieldError, err.Error())
		return nil, err
	}

	t.logger.DebugContext(req.Context(), "API request completed",
		log.FieldRequestID, requestID,
		log.FieldMethod, req.Method,
		log.FieldPath, req.URL.Path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, durationMs)
	return resp, nil
}
