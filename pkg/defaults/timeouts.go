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

package defaults

import "time"

// HTTP client timeouts for requests against the SIRIUS service.
const (
	// HTTPClientTimeout is the default total timeout for a single API call.
	// Import and data-dump endpoints can be slow, so this is generous.
	HTTPClientTimeout = 60 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 30 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// HTTP connection pool sizes.
const (
	HTTPMaxIdleConns        = 100
	HTTPMaxIdleConnsPerHost = 10
)

// Job timeouts for asynchronous SIRIUS computations.
const (
	// JobPollInterval is the default interval between job status requests.
	JobPollInterval = 2 * time.Second

	// JobWaitTimeout bounds how long the CLI waits for a job when no
	// explicit timeout is given.
	JobWaitTimeout = 30 * time.Minute
)

// Export settings for project reports.
const (
	// ExportTimeout is the default timeout for a full project export.
	ExportTimeout = 10 * time.Minute

	// ExportPageSize is the page size used when walking paged feature lists.
	ExportPageSize = 100

	// ExportConcurrency bounds concurrent per-feature requests.
	ExportConcurrency = 8

	// ExportMaxPages caps the number of feature pages one export walks.
	ExportMaxPages = 100_000
)

// Server timeouts for the HTTP server harness.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerMaxUploadBytes caps multipart uploads accepted by the mock service.
	ServerMaxUploadBytes = 256 << 20
)

// Kubernetes timeouts for ConfigMap input and output.
const (
	// ConfigMapReadTimeout is the timeout for reading a ConfigMap.
	ConfigMapReadTimeout = 30 * time.Second

	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)
