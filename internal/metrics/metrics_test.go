package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordLogin()
	c.RecordLogin()
	c.RecordGameSaved()
	c.RecordGameSaved()
	c.RecordGameSaved()

	if got := testutil.ToFloat64(c.registrations); got != 1 {
		t.Errorf("registrations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.logins); got != 2 {
		t.Errorf("logins = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.gamesSaved); got != 3 {
		t.Errorf("gamesSaved = %v, want 3", got)
	}
}

func TestCollector_HTTPStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("status 200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("404")); got != 1 {
		t.Errorf("status 404 count = %v, want 1", got)
	}
}

func TestHandler_Exposition(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPStatus(200)
	c.RecordRequestDuration(50 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	for _, name := range []string{
		"memorymatch_http_status_total",
		"memorymatch_request_duration_seconds",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("exposition should contain %s", name)
		}
	}
}
