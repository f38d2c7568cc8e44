package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/daydrill/internal/adapter/tabular"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/pkg/ctxutil"
)

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Fields  []fieldResponse `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// handleError maps domain errors to status codes. Anything unexpected is
// logged and hidden behind a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		resp := errorResponse{Error: "VALIDATION", Message: err.Error()}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				resp.Fields = append(resp.Fields, fieldResponse{Field: fe.Field, Message: fe.Message})
			}
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code = http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrSupersededLoad):
		status, code = http.StatusConflict, "SUPERSEDED"
	case errors.Is(err, domain.ErrEmptySelection):
		status, code = http.StatusUnprocessableEntity, "EMPTY_SELECTION"
	case errors.Is(err, domain.ErrImportNoRows):
		status, code = http.StatusUnprocessableEntity, "NO_ROWS"
	case errors.Is(err, domain.ErrConfirmationRequired):
		status, code = http.StatusPreconditionRequired, "CONFIRMATION_REQUIRED"
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		status, code = http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"
	default:
		ctxutil.Logger(r.Context(), log).ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	writeError(w, status, code, err.Error())
}
