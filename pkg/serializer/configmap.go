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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/sirius-ms/sirius-go/pkg/defaults"
	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/k8s/client"
)

// ConfigMapURIScheme prefixes ConfigMap locations: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// ConfigMap data keys.
const (
	ConfigMapKeyFormat    = "format"
	ConfigMapKeyTimestamp = "timestamp"
	ConfigMapKeyKind      = "kind"
	configMapDocument     = "document"
	fieldManager          = "sirius"
)

// KubeClient is the Kubernetes API surface used for ConfigMaps.
type KubeClient = client.Interface

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeconfig sets the kubeconfig used to build the client.
func WithKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) { w.kubeconfig = path }
}

// WithKubeClient uses c instead of building a client.
func WithKubeClient(c KubeClient) ConfigMapOption {
	return func(w *ConfigMapWriter) { w.client = c }
}

// ConfigMapWriter applies serialized documents to a ConfigMap using
// server-side apply, creating or replacing it.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
	client     KubeClient
}

// NewConfigMapWriter returns a writer for namespace/name. Unknown formats
// fall back to JSON.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{namespace: namespace, name: name, format: orDefault(format)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize stores v under data["document.<ext>"] together with the format,
// kind and timestamp. Kind, version and timestamp come from v's header when
// it has one.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		c, cfg, err := client.GetKubeClientWithConfig(w.kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		slog.Debug("configmap client", "auth_method", client.AuthMethod(cfg))
		cs = c
	}

	content, err := Encode(w.format, v)
	if err != nil {
		return err
	}

	kind, docVersion, ts := "Document", "unknown", time.Now().UTC().Format(time.RFC3339)
	if h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := h.GetKind(); k != "" {
			kind = k.String()
		}
		md := h.GetMetadata()
		if s := md[header.MetadataVersion]; s != "" {
			docVersion = s
		}
		if s := md[header.MetadataTimestamp]; s != "" {
			ts = s
		}
	}

	docKey := configMapDocument + "." + w.format.Extension()
	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "sirius-go",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   labelValue(docVersion),
		}).
		WithData(map[string]string{
			docKey:                string(content),
			ConfigMapKeyFormat:    string(w.format),
			ConfigMapKeyKind:      kind,
			ConfigMapKeyTimestamp: ts,
		})

	slog.Info("applying ConfigMap", "namespace", w.namespace, "name", w.name, "format", w.format, "kind", kind)

	if _, err := cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	}); err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// labelValue makes s usable as a label value.
func labelValue(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
	if len(s) > 63 {
		s = s[:63]
	}
	return strings.Trim(s, "-_.")
}

func readConfigMap(ctx context.Context, cs KubeClient, kubeconfig, namespace, name string) (string, Format, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	if cs == nil {
		c, _, err := client.GetKubeClientWithConfig(kubeconfig)
		if err != nil {
			return "", "", fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		cs = c
	}

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return "", "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f, err := ParseFormat(cm.Data[ConfigMapKeyFormat]); err == nil && f != FormatTable {
		format = f
	}
	if content, ok := cm.Data[configMapDocument+"."+format.Extension()]; ok {
		return content, format, nil
	}
	for _, f := range []Format{FormatYAML, FormatJSON} {
		if content, ok := cm.Data[configMapDocument+"."+f.Extension()]; ok {
			return content, f, nil
		}
	}
	return "", "", fmt.Errorf("ConfigMap %s/%s has no document data", namespace, name)
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}
	ns, n, ok := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}
	namespace, name = strings.TrimSpace(ns), strings.TrimSpace(n)
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
