package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

type errorResponse struct {
	Error      string   `json:"error"`
	Code       string   `json:"code"`
	Violations []string `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, logger *log.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.WithError(err).Error("failed to encode JSON response")
	}
}

// writeDomainError переводит таксономию ошибок сервисного слоя в HTTP-коды.
// Нарушения валидации отдаются полным списком; повреждение данных — отдельным
// кодом, чтобы не маскироваться под not_found.
func writeDomainError(w http.ResponseWriter, err error, logger *log.Entry) {
	var (
		status int
		code   string
	)

	switch domain.ClassOf(err) {
	case domain.ClassInvalid:
		status, code = http.StatusBadRequest, "validation_error"
	case domain.ClassNotFound:
		status, code = http.StatusNotFound, "not_found"
	case domain.ClassConflict:
		status, code = http.StatusConflict, "conflict"
	case domain.ClassIntegrity:
		status, code = http.StatusInternalServerError, "integrity_fault"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
		logger.WithError(err).Error("request failed")
	}

	resp := errorResponse{Error: err.Error(), Code: code}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		resp.Error = "validation failed"
		for _, violation := range validationErr.Violations {
			resp.Violations = append(resp.Violations, violation.Error())
		}
	}

	writeJSON(w, status, resp, logger)
}

func writeBadRequest(w http.ResponseWriter, message string, logger *log.Entry) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Code: "bad_request"}, logger)
}
