package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	// Arrange
	handler := RequestID()(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Error("RequestID() did not set the response header")
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	// Arrange
	handler := RequestID()(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req.Header.Set(RequestIDHeader, "incoming-id")
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	if got := rr.Header().Get(RequestIDHeader); got != "incoming-id" {
		t.Errorf("request id = %q, want incoming-id", got)
	}
}

func TestRecovery_TurnsPanicInto500(t *testing.T) {
	// Arrange
	handler := Recovery(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestLogging_PassesRequestThrough(t *testing.T) {
	// Arrange
	handler := Logging(zap.NewNop())(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rr.Body.String())
	}
}

func TestCORS_PreflightAnsweredByMiddleware(t *testing.T) {
	// Arrange
	handler := CORS([]string{"*"}, []string{"GET", "POST"}, []string{"Content-Type"})(okHandler())
	req := httptest.NewRequest(http.MethodOptions, "/items/", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
	}
}

func TestCORS_PlainOptionsFallsThrough(t *testing.T) {
	// Arrange: no Origin / Access-Control-Request-Method, so this is not a
	// preflight and the route handler must see it.
	reached := false
	handler := CORS([]string{"*"}, []string{"GET"}, nil)(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			reached = true
			w.Header().Set("Allow", "GET,OPTIONS")
			w.WriteHeader(http.StatusNoContent)
		}))
	req := httptest.NewRequest(http.MethodOptions, "/items/", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	if !reached {
		t.Fatal("plain OPTIONS did not reach the route handler")
	}
	if got := rr.Header().Get("Allow"); got != "GET,OPTIONS" {
		t.Errorf("Allow = %q, want GET,OPTIONS", got)
	}
}

func TestCORS_SpecificOriginAllowsCredentials(t *testing.T) {
	// Arrange
	handler := CORS([]string{"https://app.example.com"}, []string{"GET"}, nil)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want true", got)
	}
}

func TestChain_AppliesInOrder(t *testing.T) {
	// Arrange
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	handler := Chain(tag("outer"), tag("inner"))(okHandler())

	// Act
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}

func TestResponseWriter_CapturesStatusOnce(t *testing.T) {
	// Arrange
	rr := httptest.NewRecorder()
	rw := newResponseWriter(rr)

	// Act
	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	// Assert
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusNotFound)
	}
	if rr.Code != http.StatusNotFound {
		t.Errorf("recorded code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
