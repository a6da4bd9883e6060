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

// Package header provides the common envelope for documents written by the
// SIRIUS client tooling.
//
// Every document the CLI or the report exporter persists (project reports,
// exported job configs, server info snapshots) starts with a Header so that
// consumers can tell what they are looking at without inspecting the body:
//
//	kind: ProjectReport
//	apiVersion: sirius-go/v1
//	metadata:
//	  timestamp: "2025-06-01T12:00:00Z"
//	  version: v0.3.0
//	  project: lcms-demo
//
// # Usage
//
//	h := header.New(
//	    header.WithKind(header.KindProjectReport),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata("project", "lcms-demo"),
//	)
//
// Init stamps the timestamp and tool version in one call:
//
//	var h header.Header
//	h.Init(header.KindJobConfig, header.APIVersion, version)
//
// The serializer's ConfigMap writer reads Kind and the version and timestamp
// metadata keys to label the ConfigMaps it applies.
package header
