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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvKubeconfig names the environment variable consulted during discovery.
const EnvKubeconfig = "KUBECONFIG"

// Interface is kubernetes.Interface, aliased so callers can pass fake clientsets.
type Interface = kubernetes.Interface

type cachedClient struct {
	client Interface
	config *rest.Config
}

var (
	mu    sync.Mutex
	cache = map[string]cachedClient{}
)

// GetKubeClient returns the cached client for automatic discovery.
func GetKubeClient() (Interface, *rest.Config, error) {
	return GetKubeClientWithConfig("")
}

// GetKubeClientWithConfig returns a cached client for kubeconfig, building
// it on first use. Failed builds are not cached.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	path := ResolveKubeconfig(kubeconfig)

	mu.Lock()
	defer mu.Unlock()

	if c, ok := cache[path]; ok {
		return c.client, c.config, nil
	}

	cs, cfg, err := buildFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	cache[path] = cachedClient{client: cs, config: cfg}
	return cs, cfg, nil
}

// BuildKubeClient creates an uncached client. An empty kubeconfig uses
// automatic discovery.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	return buildFromPath(ResolveKubeconfig(kubeconfig))
}

// ResolveKubeconfig applies the discovery order and returns the kubeconfig
// path to use, or "" for in-cluster configuration.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv(EnvKubeconfig); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

func buildFromPath(path string) (*kubernetes.Clientset, *rest.Config, error) {
	var (
		config *rest.Config
		err    error
	)
	if path == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, config, nil
}

// AuthMethod describes how config authenticates, for audit logging.
func AuthMethod(config *rest.Config) string {
	switch {
	case config == nil:
		return "none"
	case config.AuthProvider != nil:
		return config.AuthProvider.Name
	case config.ExecProvider != nil:
		return "exec"
	case config.BearerToken != "" || config.BearerTokenFile != "":
		return "bearer-token"
	case config.CertData != nil || config.CertFile != "":
		return "cert"
	default:
		return "default"
	}
}
