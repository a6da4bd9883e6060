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

// Package server is the HTTP server harness behind the SIRIUS mock service.
//
// Handlers are registered by ServeMux pattern and wrapped in a fixed
// middleware chain:
//
//   - Prometheus request metrics labelled by route pattern
//   - API version negotiation through the X-API-Version header
//   - X-Request-Id propagation (generated when absent or not a UUID)
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Request body size limit
//   - Debug request logging through log/slog
//
// /health, /ready and /metrics are served outside the chain so probes and
// scrapes are never rate limited.
//
// # Errors
//
// Error responses use the Spring Boot layout the SIRIUS service produces:
//
//	{
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "status": 404,
//	  "error": "Not Found",
//	  "message": "Project 'p1' not found.",
//	  "path": "/api/projects/p1",
//	  "code": "NOT_FOUND",
//	  "requestId": "0f8fad5b-d9cb-469f-a165-70867728950e",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps a StructuredError code onto the HTTP status.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("sirius-mock"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /api/projects": listProjects,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// NewConfig reads PORT, RATE_LIMIT and SHUTDOWN_TIMEOUT_SECONDS from the
// environment. Timeouts default to the values in pkg/defaults.
package server
