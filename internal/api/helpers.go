package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// parseIDParam читает числовой идентификатор из пути.
// Нечисловой ID — ошибка запроса, не not_found.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string, logger *log.Entry) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid "+name, logger)
		return 0, false
	}
	return id, true
}
