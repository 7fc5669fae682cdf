//go:build !integration

package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"telegram-video-bridge/internal/infra/api"
	"telegram-video-bridge/internal/infra/logging"
)

func TestTraceID_KeepsValidCallerID(t *testing.T) {
	ts, _ := newServer(t)

	const id = "3f2b8c1e-6d0a-4c55-9a1e-2a7f0d4e9b10"
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set("X-Request-Id", id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-Id"); got != id {
		t.Fatalf("expected caller id %s echoed, got %s", id, got)
	}

	req.Header.Set("X-Request-Id", "<script>")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get("X-Request-Id"); got == "" || got == "<script>" {
		t.Fatalf("invalid caller id must be replaced, got %q", got)
	}
}

func TestRecover(t *testing.T) {
	log := logging.Nop()
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	t.Run("before write", func(t *testing.T) {
		rr := httptest.NewRecorder()
		api.RequestLog(log)(api.Recover(log)(boom)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rr.Code)
		}
	})

	t.Run("after write", func(t *testing.T) {
		rr := httptest.NewRecorder()
		late := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			panic("late")
		})
		api.Recover(log)(late).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusAccepted {
			t.Fatalf("status already sent must stand, got %d", rr.Code)
		}
	})
}
