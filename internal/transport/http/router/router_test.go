package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/middleware"
)

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2025, 12, 26, 12, 0, 0, 0, time.UTC) }

type stubRepo struct{}

func (s *stubRepo) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	if id != 1 {
		return nil, domain.ErrNotFound("event not found")
	}
	return &domain.Event{
		ID:        1,
		Name:      "Beach Cleanup",
		EventType: domain.EventTypeRally,
		StartTime: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubRepo) GetRoster(ctx context.Context, eventID int) (domain.Roster, error) {
	return domain.Roster{}, nil
}

func (s *stubRepo) ListByCampaign(ctx context.Context, campaignID int) ([]*domain.Event, error) {
	return []*domain.Event{}, nil
}

type stubUsers struct{}

func (stubUsers) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Sam"}, nil
}

func (stubUsers) GetEventSignups(ctx context.Context, eventID int, userID string) ([]domain.EventSignup, error) {
	return nil, nil
}

const testSecret = "secret"

func newTestRouter(cfg *config.Config) http.Handler {
	svc := event.New(&stubRepo{}, stubUsers{}, stubClock{}, nil, 0)
	h := handlers.NewEventsHandler(svc)
	z := handlers.NewHealthHandler(nil)
	auth := authmw.NewAuth(testSecret, "issuer", nil)
	return New(h, auth, z, cfg)
}

func bearer(t *testing.T, uid string) string {
	t.Helper()
	claims := authmw.Claims{
		UserID: uid,
		Ver:    1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

func TestRouter_Routing(t *testing.T) {
	r := newTestRouter(&config.Config{RLEnabled: false})

	t.Run("healthz_returns_200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("metrics_returns_200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("anonymous_event_returns_200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/volunteer/v1/events/1", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), `"user_id"`)
	})

	t.Run("signed_in_event_is_enriched", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/volunteer/v1/events/1", nil)
		req.Header.Set("Authorization", bearer(t, "user-9"))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"user_id":"user-9"`)
	})

	t.Run("bad_token_returns_401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/volunteer/v1/events/1", nil)
		req.Header.Set("Authorization", "Bearer junk")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing_event_returns_404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/volunteer/v1/events/2", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("campaign_events_returns_200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/volunteer/v1/campaigns/3/events", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("writes_are_not_routed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("POST", "/volunteer/v1/events/1", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	r := newTestRouter(&config.Config{RLEnabled: true, RLLimit: 1, RLWindow: time.Minute})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest("GET", "/volunteer/v1/events/1", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest("GET", "/volunteer/v1/events/1", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "rate_limited")

	// health is outside the limited group
	health := httptest.NewRecorder()
	r.ServeHTTP(health, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}
