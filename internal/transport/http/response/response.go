package response

import (
	"errors"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

func Err(w http.ResponseWriter, r *http.Request, err error) {
	requestID := RequestIDFromRequest(r)

	if err == nil {
		Fail(w, http.StatusInternalServerError, "internal_error", "unknown error", nil, requestID)
		return
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		Fail(w, statusFromCode(ae.Code), string(ae.Code), ae.Message, ae.Meta, requestID)
		return
	}

	// keep details in logs only
	zlog.Error().Err(err).Str("request_id", requestID).Msg("unhandled error")
	Fail(w, http.StatusInternalServerError, "internal_error", "internal error", nil, requestID)
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
