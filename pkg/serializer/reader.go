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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sirius-ms/sirius-go/pkg/transport"
)

// Reader decodes JSON or YAML from an io.Reader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader returns a Reader for input. Table format cannot be read.
// If input is an io.Closer, Close closes it.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}
	r := &Reader{format: format, input: input}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// NewFileReader opens a local file for reading.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if format.IsUnknown() || format == FormatTable {
		return nil, fmt.Errorf("format %q does not support deserialization", format)
	}
	f, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Reader{format: format, input: f, closer: f}, nil
}

// Deserialize decodes the input into v.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// Close closes the input if it is closeable. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ReadOption configures FromFile.
type ReadOption func(*readOptions)

type readOptions struct {
	kubeconfig string
	kubeClient KubeClient
	transport  []transport.Option
}

// WithReadKubeconfig sets the kubeconfig used for cm:// sources.
func WithReadKubeconfig(path string) ReadOption {
	return func(o *readOptions) { o.kubeconfig = path }
}

// WithReadKubeClient uses c for cm:// sources instead of building a client.
func WithReadKubeClient(c KubeClient) ReadOption {
	return func(o *readOptions) { o.kubeClient = c }
}

// WithReadTransport passes options to the HTTP client used for URL sources.
func WithReadTransport(opts ...transport.Option) ReadOption {
	return func(o *readOptions) { o.transport = append(o.transport, opts...) }
}

// FromFile decodes a T from a local path, an http(s) URL or a ConfigMap URI.
func FromFile[T any](ctx context.Context, path string, opts ...ReadOption) (*T, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		format Format
		input  io.Reader
	)
	switch {
	case strings.HasPrefix(path, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		content, f, err := readConfigMap(ctx, o.kubeClient, o.kubeconfig, namespace, name)
		if err != nil {
			return nil, err
		}
		format, input = f, strings.NewReader(content)

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		b, err := fetchURL(ctx, path, o.transport)
		if err != nil {
			return nil, err
		}
		u, _ := url.Parse(path)
		format, input = FormatFromPath(u.Path), bytes.NewReader(b)

	default:
		format = FormatFromPath(path)
		r, err := NewFileReader(format, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		defer func() {
			if err := r.Close(); err != nil {
				slog.Warn("failed to close input", "error", err, "path", path)
			}
		}()
		input = r.input
	}

	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization: %s", path)
	}
	r, err := NewReader(format, input)
	if err != nil {
		return nil, err
	}

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}
	slog.Debug("loaded object", "path", path, "format", format)
	return &out, nil
}

func fetchURL(ctx context.Context, rawURL string, opts []transport.Option) ([]byte, error) {
	c, err := transport.New(rawURL, opts...)
	if err != nil {
		return nil, err
	}
	b, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	return b, nil
}
