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

// Package oci publishes exported SIRIUS project reports as OCI artifacts.
//
// A report directory is packed into one reproducible gzip tar layer under
// an OCI 1.1 manifest with artifact type ArtifactType, stored in a local
// OCI image layout, and copied from there to a registry with ORAS.
//
// # Usage
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/lab/sirius-reports:p1")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.PackageAndPush(ctx, oci.OutputConfig{
//	    SourceDir: reportDir,
//	    OutputDir: tmpDir,
//	    Reference: ref,
//	    ProjectID: "p1",
//	})
//
// Package and PushFromStore can be used separately, e.g. to inspect the
// layout before publishing.
//
// # Authentication
//
// Credentials come from the Docker configuration (~/.docker/config.json)
// and its credential helpers. PlainHTTP and InsecureTLS exist for local
// development registries.
package oci
