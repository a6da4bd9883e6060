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

// Package mock implements an in-memory SIRIUS REST service.
//
// The mock covers the project, aligned feature, job and job config
// resources of the SIRIUS API so the client, the report exporter and the
// CLI can be exercised without a running SIRIUS installation. It runs no
// computations: jobs are DONE as soon as they are submitted and all result
// collections (formula, structure and library match candidates) are empty.
//
// Preprocessed uploads become one feature per file. SIRIUS .ms files
// contribute their compound name, parent mass, charge and peaks; other
// formats only their file name.
//
// Usage:
//
//	svc := mock.New(mock.WithVersion("6.1.0"))
//	srv := server.New(
//	    server.WithName("sirius-mock"),
//	    server.WithHandler(svc.Handlers()),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    slog.Error("mock failed", "error", err)
//	}
//
// Errors use the Spring Boot layout of the real service, so clients see
// the same status codes and messages:
//
//	{"timestamp": "...", "status": 404, "error": "Not Found",
//	 "message": "Project with id 'p1' not found.", "path": "/api/projects/p1"}
package mock
