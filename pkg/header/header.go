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

package header

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// APIVersion is the schema version stamped on documents written by this module.
const APIVersion = "sirius-go/v1"

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Kind identifies the type of a persisted document.
type Kind string

const (
	KindProjectReport Kind = "ProjectReport"
	KindJobConfig     Kind = "JobConfig"
	KindServerInfo    Kind = "ServerInfo"
	KindFeatureList   Kind = "FeatureList"
)

var kinds = []Kind{KindProjectReport, KindJobConfig, KindServerInfo, KindFeatureList}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return slices.Contains(kinds, k)
}

// ParseKind parses s case-insensitively into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid kind: %q", s)
}

// Option configures a Header.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the Kind.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the APIVersion.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// Header is the envelope shared by all persisted documents.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// New creates a Header with an initialized Metadata map and applies opts.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init resets h to kind and apiVersion and stamps the current UTC time and
// the tool version into Metadata. An empty version is omitted.
func (h *Header) Init(kind Kind, apiVersion, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// GetKind returns the Kind.
func (h *Header) GetKind() Kind {
	return h.Kind
}

// GetMetadata returns the Metadata map.
func (h *Header) GetMetadata() map[string]string {
	return h.Metadata
}

// Timestamp parses the timestamp metadata. The zero time is returned when
// it is missing or malformed.
func (h *Header) Timestamp() time.Time {
	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	if err != nil {
		return time.Time{}
	}
	return ts
}
