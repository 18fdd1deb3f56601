package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
	"github.com/m04kA/PetBoarding-BookingService/pkg/metrics"
)

func adminProbe(w http.ResponseWriter, r *http.Request) {
	if IsAdmin(r.Context()) {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{"valid key", "secret", "secret", http.StatusOK},
		{"wrong key", "secret", "other", http.StatusUnauthorized},
		{"missing key", "secret", "", http.StatusUnauthorized},
		{"not configured", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AdminAuth(tt.configured, logger.Nop())(http.HandlerFunc(adminProbe))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
			if tt.header != "" {
				req.Header.Set(AdminKeyHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDetectAdmin(t *testing.T) {
	h := DetectAdmin("secret")(http.HandlerFunc(adminProbe))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/1/cancel", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code, "request without key passes as customer")

	req = httptest.NewRequest(http.MethodPost, "/api/v1/bookings/1/cancel", nil)
	req.Header.Set(AdminKeyHeader, "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/bookings/{bookingId}", "404")
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
