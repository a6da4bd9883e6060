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

// Package api runs the SIRIUS mock service as a standalone process.
//
// It wires the handlers of pkg/mock into pkg/server, which supplies the
// middleware chain, graceful shutdown, health probes and Prometheus metrics.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Environment
//
//	PORT                      Listen port (default 8080)
//	RATE_LIMIT                Requests per second across all clients
//	SHUTDOWN_TIMEOUT_SECONDS  Grace period for in-flight requests
//	LOG_LEVEL                 debug, info, warn or error
//	SIRIUS_MOCK_DIR           Directory new project-spaces are placed in
//	SIRIUS_VERSION            SIRIUS version reported by /api/info
//
// POST /actuator/shutdown stops the process the same way SIGTERM does.
package api
