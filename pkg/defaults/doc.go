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

// Package defaults provides centralized configuration constants for the SIRIUS client,
// its command-line tool, and the mock server.
//
// # Timeout Categories
//
//   - HTTP client timeouts: outbound requests to the SIRIUS REST service
//   - Job timeouts: polling asynchronous SIRIUS jobs
//   - Export timeouts: project report generation
//   - Server timeouts: the HTTP server harness behind the mock service
//   - Kubernetes timeouts: ConfigMap reads and writes
//
// # Usage
//
//	import "github.com/sirius-ms/sirius-go/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.JobWaitTimeout)
//	defer cancel()
package defaults
