// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNew(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"GET /test": okHandler}))

	if s.config == nil {
		t.Fatal("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
	if s.config.Name != "server" {
		t.Errorf("expected default name 'server', got %s", s.config.Name)
	}
	if _, exists := s.config.Handlers["/"]; !exists {
		t.Error("expected default root handler to be created")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New(WithName("sirius-mock"), WithVersion("v0.1.0"))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "healthy" || resp.Service != "sirius-mock" || resp.Version != "v0.1.0" {
		t.Errorf("unexpected health response: %+v", resp)
	}
	if resp.Uptime == "" {
		t.Error("expected uptime in health response")
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d for POST, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
		expectedState  string
	}{
		{"ready state", true, http.StatusOK, "ready"},
		{"not ready state", false, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			w := httptest.NewRecorder()
			s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			var resp HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Status != tt.expectedState {
				t.Errorf("expected status %q, got %q", tt.expectedState, resp.Status)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"GET /api/projects/{projectId}": okHandler}))

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects/p1", nil))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "sirius_server_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
	if !strings.Contains(body, `route="GET /api/projects/{projectId}"`) {
		t.Error("expected route label to use the mux pattern")
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	cfg.Handlers = map[string]http.HandlerFunc{"GET /test": okHandler}

	s := New(WithConfig(cfg))

	w1 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w1.Code != http.StatusOK {
		t.Errorf("expected first request to succeed with status 200, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("expected rate limit error with status 429, got %d", w2.Code)
	}

	// probes bypass the limiter
	w3 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w3.Code != http.StatusOK {
		t.Errorf("expected health to bypass rate limiting, got %d", w3.Code)
	}
}

func TestPanicRecovery(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"GET /panic": func(_ http.ResponseWriter, _ *http.Request) { panic("test panic") },
	}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d after panic recovery, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestDefaultRootHandler(t *testing.T) {
	s := New(WithName("sirius-mock"), WithHandler(map[string]http.HandlerFunc{"GET /api/projects": okHandler}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Name != "sirius-mock" {
		t.Errorf("expected name sirius-mock, got %s", resp.Name)
	}
	if !strings.Contains(strings.Join(resp.Routes, " "), "GET /api/projects") {
		t.Errorf("expected routes to contain GET /api/projects, got %v", resp.Routes)
	}
}

func TestDefaultRootHandler_Errors(t *testing.T) {
	s := New()

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"post to root", http.MethodPost, "/", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Path != tt.path || resp.Status != tt.status {
				t.Errorf("unexpected error body %+v", resp)
			}
		})
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	customCalled := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			customCalled = true
			w.WriteHeader(http.StatusOK)
		},
	}))

	s.config.Handlers["/"](httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !customCalled {
		t.Error("expected custom root handler to be called, not default")
	}
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.ShutdownTimeout = 100 * time.Millisecond
	cfg.Handlers = map[string]http.HandlerFunc{"GET /test": okHandler}

	s := New(WithConfig(cfg))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(ctx, ln)
	}()

	deadline := time.Now().Add(time.Second)
	for !s.isReady() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get("http://" + ln.Addr().String() + "/test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("shutdown timed out")
	}

	if s.isReady() {
		t.Error("expected server to be not ready after shutdown")
	}
}
