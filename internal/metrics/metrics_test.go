package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestRecorder_Cache(t *testing.T) {
	var r Recorder
	r.CacheHit("test_graph")
	r.CacheHit("test_graph")
	r.CacheMiss("test_graph")

	body := scrape(t)
	assert.Contains(t, body, `volunteer_service_cache_lookups_total{kind="test_graph",result="hit"} 2`)
	assert.Contains(t, body, `volunteer_service_cache_lookups_total{kind="test_graph",result="miss"} 1`)
}

func TestRecorder_MessageConsumed(t *testing.T) {
	Recorder{}.MessageConsumed("test.key", "invalidated")

	assert.Contains(t, scrape(t), `volunteer_service_messages_consumed_total{outcome="invalidated",routing_key="test.key"} 1`)
}

func TestRecordEventView(t *testing.T) {
	RecordEventView(false)
	RecordEventView(true)

	body := scrape(t)
	assert.Contains(t, body, `volunteer_service_event_views_total{caller="anonymous"}`)
	assert.Contains(t, body, `volunteer_service_event_views_total{caller="signed_in"}`)
}
