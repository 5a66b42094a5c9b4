package validate

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
)

// ParseID parses a positive integer id. field names the offending input in
// the validation error meta.
func ParseID(raw, field string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, domain.ErrValidationMeta("invalid "+strings.ReplaceAll(field, "_", " "), map[string]string{
			field: "must be a positive integer",
		})
	}
	return id, nil
}

// PathID reads and parses a chi path parameter.
func PathID(r *http.Request, param string) (int, error) {
	return ParseID(chi.URLParam(r, param), param)
}
