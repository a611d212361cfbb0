// Package respond holds the JSON response helpers shared by the feature
// handlers.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// Error writes a JSON error envelope with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// ErrorLogger pairs logging with error responses so handlers report the
// operator-facing message and the log detail in one call.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the given logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogBadRequest logs at warn and answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Warn(logMsg, zap.String("path", r.URL.Path), zap.Error(err))
	Error(w, http.StatusBadRequest, userMsg)
}

// LogServerError logs at error and answers 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Error(logMsg, zap.String("path", r.URL.Path), zap.Error(err))
	Error(w, http.StatusInternalServerError, userMsg)
}

// LogUnavailable logs at error and answers 503 with userMsg. Used when a
// backing store cannot be reached.
func (e *ErrorLogger) LogUnavailable(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Error(logMsg, zap.String("path", r.URL.Path), zap.Error(err))
	Error(w, http.StatusServiceUnavailable, userMsg)
}
