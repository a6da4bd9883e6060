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

// Package client builds Kubernetes clientsets for ConfigMap input and output.
//
// Clients are cached per kubeconfig path, so repeated ConfigMap reads and
// writes within one CLI invocation share a connection pool:
//
//	cs, cfg, err := client.GetKubeClient()              // automatic discovery
//	cs, cfg, err := client.GetKubeClientWithConfig(kc)  // explicit kubeconfig
//
// Discovery order for an empty kubeconfig path:
//
//  1. the KUBECONFIG environment variable
//  2. ~/.kube/config when it exists
//  3. the in-cluster service account
//
// BuildKubeClient bypasses the cache. Tests substitute
// k8s.io/client-go/kubernetes/fake through the Interface alias.
package client
