package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
	appCtx "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/pkg/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErr(t *testing.T) {
	t.Run("maps_domain_error_to_correct_status", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{
				name:       "not_found",
				err:        domain.ErrNotFound("event not found"),
				wantStatus: http.StatusNotFound,
				wantCode:   "not_found",
			},
			{
				name:       "validation",
				err:        domain.ErrValidation("invalid event id"),
				wantStatus: http.StatusBadRequest,
				wantCode:   "validation_error",
			},
			{
				name:       "forbidden",
				err:        domain.ErrForbidden("no access"),
				wantStatus: http.StatusForbidden,
				wantCode:   "forbidden",
			},
			{
				name:       "invalid_state",
				err:        domain.ErrInvalidState("bad event type"),
				wantStatus: http.StatusConflict,
				wantCode:   "invalid_state",
			},
			{
				name:       "wrapped_domain_error",
				err:        fmt.Errorf("get user: %w", domain.ErrNotFound("user profile not found")),
				wantStatus: http.StatusNotFound,
				wantCode:   "not_found",
			},
			{
				name:       "generic_error",
				err:        errors.New("db crash"),
				wantStatus: http.StatusInternalServerError,
				wantCode:   "internal_error",
			},
			{
				name:       "nil_error",
				err:        nil,
				wantStatus: http.StatusInternalServerError,
				wantCode:   "internal_error",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rr := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
				Err(rr, req, tt.err)

				assert.Equal(t, tt.wantStatus, rr.Code)

				var body ErrorBody
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Error.Code)
			})
		}
	})

	t.Run("internal_error_hides_details", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Err(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("includes_meta_and_request_id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(appCtx.WithRequestID(req.Context(), "rid-42"))

		Err(rr, req, domain.ErrValidationMeta("invalid event id", map[string]string{"event_id": "must be a positive integer"}))

		var body ErrorBody
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "rid-42", body.Error.RequestID)
		assert.Equal(t, "must be a positive integer", body.Error.Meta["event_id"])
	})
}

func TestRequestIDFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", RequestIDFromRequest(req))

	req.Header.Set("X-Request-Id", "from-header")
	assert.Equal(t, "from-header", RequestIDFromRequest(req))

	req = req.WithContext(appCtx.WithRequestID(req.Context(), "from-ctx"))
	assert.Equal(t, "from-ctx", RequestIDFromRequest(req))

	assert.Equal(t, "", RequestIDFromRequest(nil))
}

func TestData(t *testing.T) {
	t.Run("wraps_payload_in_data_envelope", func(t *testing.T) {
		rr := httptest.NewRecorder()
		payload := map[string]string{"id": "123"}

		Data(rr, http.StatusOK, payload)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

		var env Envelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))

		dataMap := env.Data.(map[string]any)
		assert.Equal(t, "123", dataMap["id"])
	})
}
