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

// Package k8s groups the Kubernetes integration of the SIRIUS client tooling.
//
// The only sub-package is client, which builds and caches clientsets for the
// ConfigMap reader and writer in pkg/serializer. The CLI uses it when an
// input or output path has the form cm://namespace/name, for example to keep
// job submission templates or project reports next to a SIRIUS deployment.
package k8s
