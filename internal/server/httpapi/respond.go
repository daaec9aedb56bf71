package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/server/ownership"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string       `json:"error"`
	Details []fieldError `json:"details,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeValidation(w http.ResponseWriter, details []fieldError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: details})
}

// writeError maps a service error to its HTTP status. Unknown errors are
// logged and answered with a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var denied *ownership.DeniedError
	var notFound *common.NotFoundError
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		writeValidation(w, validationDetails(verrs))
	case errors.As(err, &denied):
		writeMessage(w, http.StatusForbidden, denied.Reason)
	case errors.As(err, &notFound):
		writeMessage(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrNoFieldsToUpdate):
		writeMessage(w, http.StatusBadRequest, "No fields to update")
	case errors.Is(err, common.ErrInvalidResetToken):
		writeMessage(w, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, common.ErrAlreadyExists):
		writeMessage(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, common.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody reads a JSON body into dst and validates it. An empty body
// decodes as {}. It writes the 400 itself and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeValidation(w, []fieldError{{Field: "body", Message: "must be a valid JSON object"}})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidation(w, validationDetails(verrs))
			return false
		}
		writeValidation(w, []fieldError{{Field: "body", Message: err.Error()}})
		return false
	}
	return true
}

// pathID reads the {id} URL parameter. Anything that is not a UUID cannot
// name a row, so it is answered as not found.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeMessage(w, http.StatusNotFound, resource+" not found")
		return "", false
	}
	return id, true
}
