package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"todoApp/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}

func TestLogging_PassesResponseThrough(t *testing.T) {
	h := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short and stout", w.Body.String())
}

// TestRateLimit тестирует лимит запросов с одного IP
func TestRateLimit(t *testing.T) {
	h := middleware.RateLimit(2)(okHandler())

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	first := send("10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1235").Code)

	limited := send("10.0.0.1:1236")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), "rate_limit_exceeded")

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	h := middleware.RateLimit(0)(okHandler())

	for range 50 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

// TestValidateTodoQuery тестирует проверку параметров списка
func TestValidateTodoQuery(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedBody   string
	}{
		{name: "no params", query: "", expectedStatus: http.StatusOK},
		{name: "valid params", query: "?priority=HIGH&status=IN%20PROGRESS&category=WORK&date=2021-12-12", expectedStatus: http.StatusOK},
		{name: "search only", query: "?search_q=anything", expectedStatus: http.StatusOK},
		{name: "invalid priority", query: "?priority=URGENT", expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"Invalid Todo Priority"}`},
		{name: "invalid status", query: "?status=LATER", expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"Invalid Todo Status"}`},
		{name: "invalid category", query: "?category=GARDEN", expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"Invalid Todo Category"}`},
		{name: "invalid date", query: "?date=2021-2-30", expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"Invalid Due Date"}`},
		{name: "empty priority is invalid", query: "?priority=", expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"Invalid Todo Priority"}`},
		{name: "priority checked before status", query: "?status=LATER&priority=URGENT", expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"Invalid Todo Priority"}`},
		{name: "category checked before date", query: "?date=bad&category=GARDEN", expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"Invalid Todo Category"}`},
	}

	h := middleware.ValidateTodoQuery(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
