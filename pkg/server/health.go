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
	"net/http"
	"time"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
)

// HealthResponse is the body of the /health and /ready probes.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Service   string    `json:"service,omitempty" yaml:"service,omitempty"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) probe(status, reason string) HealthResponse {
	now := time.Now()
	return HealthResponse{
		Status:    status,
		Service:   s.config.Name,
		Version:   s.config.Version,
		Uptime:    now.Sub(s.startedAt).Truncate(time.Second).String(),
		Timestamp: now,
		Reason:    reason,
	}
}

// probeOnly rejects anything but GET on the probe endpoints.
func probeOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
		"method not allowed", false, nil)
	return false
}

// handleHealth reports liveness. It answers as soon as the listener is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !probeOnly(w, r) {
		return
	}
	RespondJSON(w, http.StatusOK, s.probe("healthy", ""))
}

// handleReady reports 503 until Run has started serving and again once
// shutdown begins.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !probeOnly(w, r) {
		return
	}
	if !s.isReady() {
		RespondJSON(w, http.StatusServiceUnavailable, s.probe("not_ready", "service is not serving"))
		return
	}
	RespondJSON(w, http.StatusOK, s.probe("ready", ""))
}
