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

package sirius

import (
	"context"
	"net/http"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

var acceptActuator = []string{
	"application/vnd.spring-boot.actuator.v3+json",
	"application/vnd.spring-boot.actuator.v2+json",
	transport.MediaTypeJSON,
}

// ActuatorService exposes the Spring actuator endpoints.
type ActuatorService struct {
	inv Invoker
}

// Health returns the service health.
func (s *ActuatorService) Health(ctx context.Context) (*Health, *http.Response, error) {
	return fetch[Health](ctx, s.inv, &transport.Request{
		Operation: "health",
		Method:    http.MethodGet,
		Path:      "/actuator/health",
		Accept:    acceptActuator,
	})
}

// Shutdown asks the service to shut down gracefully.
func (s *ActuatorService) Shutdown(ctx context.Context) (*http.Response, error) {
	return send(ctx, s.inv, &transport.Request{
		Operation: "shutdown",
		Method:    http.MethodPost,
		Path:      "/actuator/shutdown",
		Accept:    acceptActuator,
	})
}
