package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"real-preco/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps err to a status code. Errors that are not domain errors
// are reported as internal errors without exposing their text.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}
	writeError(w, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeCategoryNotFound, model.ErrCodeUnknownEvent:
		return http.StatusNotFound
	case model.ErrCodeInvalidQuantity, model.ErrCodeMissingDeliveryInfo:
		return http.StatusUnprocessableEntity
	case model.ErrCodeInvalidTransition,
		model.ErrCodeEmptyCart,
		model.ErrCodeDeliveryPending,
		model.ErrCodeSmartListClosed,
		model.ErrCodeSearchSuperseded:
		return http.StatusConflict
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeMethodNotAllowed rejects a request made with the wrong method.
func writeMethodNotAllowed(w http.ResponseWriter, logger zerolog.Logger) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", logger)
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID extracts the integer ID following prefix, e.g. "/api/products/" in
// "/api/products/12".
func pathID(path, prefix string) (int, error) {
	raw := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if raw == "" {
		return 0, errors.New("ID is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid ID %q", raw)
	}
	return id, nil
}

// pathSegment returns the unescaped path remainder after prefix.
func pathSegment(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}
