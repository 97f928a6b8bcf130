package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/voyago/travel-agency-backend/internal/infrastructure/observability"
	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

// validate is shared by all handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// statusForErrorType maps error types to HTTP status codes. Both conflict and
// invalid transition map to 409: from the caller's point of view the
// reservation is simply no longer in a state that permits the request.
var statusForErrorType = map[apperrors.ErrorType]int{
	apperrors.ErrorTypeValidation:        http.StatusBadRequest,
	apperrors.ErrorTypeUnauthorized:      http.StatusUnauthorized,
	apperrors.ErrorTypeForbidden:         http.StatusForbidden,
	apperrors.ErrorTypeNotFound:          http.StatusNotFound,
	apperrors.ErrorTypeConflict:          http.StatusConflict,
	apperrors.ErrorTypeInvalidTransition: http.StatusConflict,
	apperrors.ErrorTypeAggregation:       http.StatusInternalServerError,
}

// respondWithServiceError translates a service error into an HTTP response.
// Wrapped internal details never reach the client, only the type's message.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		if status, ok := statusForErrorType[appErr.Type]; ok {
			if status >= http.StatusInternalServerError {
				observability.LoggerFromContext(r.Context()).Error().Err(err).
					Str("path", r.URL.Path).
					Msg("request failed")
			}
			respondWithError(w, status, appErr.Message)
			return
		}
	}

	observability.LoggerFromContext(r.Context()).Error().Err(err).
		Str("path", r.URL.Path).
		Msg("request failed")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
