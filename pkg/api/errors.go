package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// codeFor returns the error code reported to clients.
func codeFor(err error, status int) errors.Code {
	if code := errors.GetCode(err); code != "" && status != http.StatusRequestEntityTooLarge {
		return code
	}
	switch status {
	case http.StatusGatewayTimeout:
		return errors.ErrCodeTimeout
	case http.StatusRequestEntityTooLarge:
		return errors.ErrCodeInvalidInput
	}
	return errors.ErrCodeInternal
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := codeFor(err, status)
	ctx := r.Context()
	observability.HTTP().OnError(ctx, RequestID(ctx), r.Method, r.URL.Path, err)

	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "id", RequestID(ctx), "err", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody(r, code, msg))
}

func errorBody(r *http.Request, code errors.Code, msg string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: msg, RequestID: RequestID(r.Context())}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
