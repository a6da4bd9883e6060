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

// Package cli implements the sirius command-line client for the SIRIUS REST API.
//
// # Overview
//
// The sirius CLI drives a running SIRIUS service (the desktop application or
// "sirius service") from scripts and pipelines: it manages project-spaces,
// imports spectra, starts and tracks computations, and exports reports. All
// calls go through pkg/sirius.
//
// # Commands
//
// health, shutdown, info - service status and version:
//
//	sirius info [--skip-version-check]
//
// projects - project-space management and data import:
//
//	sirius projects create --project demo
//	sirius projects import --project demo spectra/*.ms
//	sirius projects fingerid-data --project demo --charge -1
//
// features - aligned features and their results:
//
//	sirius features list --project demo --opt-field topAnnotations
//	sirius features structures --project demo --feature ID --denovo
//
// jobs - computations:
//
//	sirius jobs start --project demo --submission job.yaml --wait
//	sirius jobs start-config --project demo --config Default --feature ID
//
// configs - stored job configs:
//
//	sirius configs get --name Default --output default.yaml
//	sirius configs save --name mine --submission default.yaml
//
// export - project reports to a directory or an OCI registry:
//
//	sirius export --project demo --target oci://ghcr.io/acme/reports/demo:v1
//
// # Global Flags
//
//	--url            SIRIUS service URL (default http://localhost:8080)
//	--timeout        Per-request timeout
//	--rate-limit     Maximum requests per second
//	--insecure       Skip TLS verification
//	--output, -o     Output file path or cm://namespace/name (default: stdout)
//	--format, -t     Output format: yaml, json, table (default: yaml)
//	--kubeconfig     Kubeconfig for cm:// inputs and outputs
//
// # Environment Variables
//
//	SIRIUS_URL         Same as --url
//	SIRIUS_TIMEOUT     Same as --timeout
//	SIRIUS_RATE_LIMIT  Same as --rate-limit
//	SIRIUS_PROJECT     Default for --project
//	LOG_LEVEL          Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, failed request, failed job)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/sirius-ms/sirius-go/pkg/cli.version=1.0.0'"
package cli
