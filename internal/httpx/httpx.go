package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/pkg/i18n"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps err onto the taxonomy and writes {"error": msg}.
// Internal failures are logged and answered with a localized generic message.
func Error(w http.ResponseWriter, r *http.Request, log logger.ZapLogger, err error) {
	kind := apperror.KindOf(err)
	lang := r.Header.Get("Accept-Language")

	msg := ""
	var appErr *apperror.Error
	if kind != apperror.KindInternal && errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if msg == "" {
		msg = i18n.T(apperror.MessageID(kind), lang)
	}

	if kind == apperror.KindInternal && log != nil {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	JSON(w, apperror.HTTPStatus(kind), ErrorResponse{Error: msg})
}

// DecodeJSON reads a single JSON object from the body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperror.Validation("request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("request body is required")
		}
		return apperror.Validation("invalid JSON body")
	}
	return nil
}
