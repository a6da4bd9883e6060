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

package oci

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/content/oci"
)

const (
	// ArtifactType is the artifact type of pushed SIRIUS project reports.
	ArtifactType = "application/vnd.sirius-ms.report.v1"

	// AnnotationProjectID records the exported project on the manifest.
	AnnotationProjectID = "io.github.sirius-ms.project"

	layoutDirName = "oci-layout"
)

// PackageOptions configures local OCI packaging.
type PackageOptions struct {
	// SourceDir is the directory packed into a single gzip tar layer.
	SourceDir string
	// OutputDir receives the OCI image layout in an "oci-layout" subdirectory.
	OutputDir string
	// Registry, Repository and Tag name the artifact.
	Registry   string
	Repository string
	Tag        string
	// Annotations are set on the manifest.
	Annotations map[string]string
	// ReproducibleTimestamp fixes org.opencontainers.image.created.
	ReproducibleTimestamp string
}

// PackageResult describes a packaged artifact.
type PackageResult struct {
	// Digest is the manifest digest.
	Digest string
	// Reference is registry/repository:tag.
	Reference string
	// StorePath is the OCI image layout directory.
	StorePath string
}

// Package packs SourceDir into an OCI 1.1 artifact tagged in a local OCI
// image layout under OutputDir. The layer tar is reproducible: the same
// directory content and timestamp give the same digest.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	switch {
	case opts.Tag == "":
		return nil, errors.New("tag is required for OCI packaging")
	case opts.Registry == "":
		return nil, errors.New("registry is required for OCI packaging")
	case opts.Repository == "":
		return nil, errors.New("repository is required for OCI packaging")
	}

	registryHost := stripProtocol(opts.Registry)
	if err := ValidateRegistryReference(registryHost, opts.Repository); err != nil {
		return nil, err
	}

	absSourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	info, err := os.Stat(absSourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", absSourceDir)
	}

	absOutputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if isWithin(absSourceDir, absOutputDir) {
		return nil, fmt.Errorf("output directory %s must not be inside source directory %s", absOutputDir, absSourceDir)
	}

	fs, err := file.New(absSourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()

	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absSourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to add source directory to store: %w", err)
	}

	annotations := make(map[string]string, len(opts.Annotations)+1)
	for k, v := range opts.Annotations {
		annotations[k] = v
	}
	if opts.ReproducibleTimestamp != "" {
		annotations[ociv1.AnnotationCreated] = opts.ReproducibleTimestamp
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layerDesc},
		ManifestAnnotations: annotations,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if err := fs.Tag(ctx, manifestDesc, opts.Tag); err != nil {
		return nil, fmt.Errorf("failed to tag manifest in file store: %w", err)
	}

	storePath := filepath.Join(absOutputDir, layoutDirName)
	store, err := oci.New(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCI layout store: %w", err)
	}

	desc, err := oras.Copy(ctx, fs, opts.Tag, store, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to copy artifact to OCI layout: %w", err)
	}

	return &PackageResult{
		Digest:    desc.Digest.String(),
		Reference: fmt.Sprintf("%s/%s:%s", registryHost, opts.Repository, opts.Tag),
		StorePath: storePath,
	}, nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
