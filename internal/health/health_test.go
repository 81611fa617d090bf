package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func healthyChecker() *SimpleChecker {
	return NewSimpleChecker("dep", func() error { return nil })
}

func failingChecker(msg string) *SimpleChecker {
	return NewSimpleChecker("dep", func() error { return errors.New(msg) })
}

func TestHandler_Healthy(t *testing.T) {
	handler := NewHandler("v1.2.3")
	handler.RegisterChecker("postgres", healthyChecker())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("overall status = %s, want healthy", resp.Status)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("version = %s, want v1.2.3", resp.Version)
	}
	if _, ok := resp.Checks["postgres"]; !ok {
		t.Errorf("checks missing postgres entry: %+v", resp.Checks)
	}
}

func TestHandler_UnhealthyCheckerWins(t *testing.T) {
	handler := NewHandler("dev")
	handler.RegisterChecker("postgres", healthyChecker())
	handler.RegisterChecker("kafka", failingChecker("broker down"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("overall status = %s, want unhealthy", resp.Status)
	}
	if resp.Checks["kafka"].Message != "broker down" {
		t.Errorf("kafka message = %q, want broker down", resp.Checks["kafka"].Message)
	}
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		name     string
		checker  Checker
		wantCode int
		wantBody string
	}{
		{"ready", healthyChecker(), http.StatusOK, "ready"},
		{"not ready", failingChecker("no connection"), http.StatusServiceUnavailable, "not ready"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler("dev")
			handler.RegisterChecker("dep", tc.checker)

			w := httptest.NewRecorder()
			handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tc.wantCode)
			}
			if w.Body.String() != tc.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestLiveness(t *testing.T) {
	w := httptest.NewRecorder()
	LivenessHandler(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("liveness = (%d, %q), want (200, ok)", w.Code, w.Body.String())
	}
}

func TestSimpleChecker(t *testing.T) {
	check := healthyChecker().Check()
	if check.Status != StatusHealthy || check.Name != "dep" {
		t.Errorf("unexpected check: %+v", check)
	}

	check = failingChecker("boom").Check()
	if check.Status != StatusUnhealthy || check.Message != "boom" {
		t.Errorf("unexpected failing check: %+v", check)
	}
}
