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
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry output (e.g., "oci://ghcr.io/lab/reports:p1").
const URIScheme = "oci://"

// Reference is a parsed export target: an OCI registry reference or a
// local directory.
type Reference struct {
	// IsOCI is true for oci:// targets.
	IsOCI bool
	// Registry is the registry host, e.g. "ghcr.io" or "localhost:5000".
	Registry string
	// Repository is the repository path, e.g. "lab/sirius-reports".
	Repository string
	// Tag is empty when the target carries none; callers apply a default.
	Tag string
	// LocalPath is set for non-OCI targets.
	LocalPath string
}

// ParseOutputTarget parses an export target. Strings starting with oci://
// are parsed as image references, anything else is a local directory.
func ParseOutputTarget(target string) (*Reference, error) {
	if !strings.HasPrefix(target, URIScheme) {
		return &Reference{LocalPath: target}, nil
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, digested := ref.(reference.Digested); digested {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI export target must not carry a digest")
	}

	registry := reference.Domain(ref)
	repository := reference.Path(ref)

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	if err := ValidateRegistryReference(registry, repository); err != nil {
		return nil, err
	}

	return &Reference{
		IsOCI:      true,
		Registry:   registry,
		Repository: repository,
		Tag:        tag,
	}, nil
}

// ValidateRegistryReference checks that registry and repository form a
// valid untagged image name. A leading http:// or https:// on the registry
// is ignored.
func ValidateRegistryReference(registry, repository string) error {
	host := stripProtocol(registry)
	if host == "" || repository == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "registry and repository are required")
	}

	name := host + "/" + repository
	named, err := reference.ParseNamed(name)
	if err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "invalid registry reference", err,
			map[string]any{"reference": name})
	}
	if reference.Domain(named) != host || reference.Path(named) != repository || !reference.IsNameOnly(named) {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "invalid registry reference",
			map[string]any{"reference": name})
	}
	return nil
}

// String returns "oci://registry/repository[:tag]" or the local path.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	return URIScheme + r.ImageReference()
}

// ImageReference returns the reference without the oci:// scheme, or an
// empty string for local targets.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the given tag. Local
// references are returned unchanged.
func (r *Reference) WithTag(tag string) *Reference {
	if !r.IsOCI {
		return r
	}
	c := *r
	c.Tag = tag
	return &c
}

// OutputConfig configures PackageAndPush.
type OutputConfig struct {
	// SourceDir is the exported report directory.
	SourceDir string
	// OutputDir receives the local OCI image layout.
	OutputDir string
	// Reference is the parsed registry target.
	Reference *Reference
	// Version is recorded as org.opencontainers.image.version.
	Version string
	// ProjectID is recorded in the SIRIUS project annotation.
	ProjectID string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Annotations are merged over the default report annotations.
	Annotations map[string]string
}

// PackageAndPushResult contains the result of a successful package and push operation.
type PackageAndPushResult struct {
	// Digest is the SHA256 digest of the pushed manifest.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
	// StorePath is the path to the local OCI Image Layout directory.
	StorePath string
}

// ReportAnnotations returns the manifest annotations for a SIRIUS report.
func ReportAnnotations(projectID, version string, extra map[string]string) map[string]string {
	annotations := map[string]string{
		"org.opencontainers.image.title":  "SIRIUS project report",
		"org.opencontainers.image.source": "https://github.com/sirius-ms/sirius-go",
		AnnotationProjectID:               projectID,
	}
	if version != "" {
		annotations["org.opencontainers.image.version"] = version
	}
	for k, v := range extra {
		annotations[k] = v
	}
	return annotations
}

// PackageAndPush packages a report directory as an OCI artifact and pushes
// it to a registry.
func PackageAndPush(ctx context.Context, cfg OutputConfig) (*PackageAndPushResult, error) {
	if cfg.Reference == nil || !cfg.Reference.IsOCI {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required for PackageAndPush")
	}

	if cfg.Reference.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required for OCI packaging")
	}

	absSourceDir, err := filepath.Abs(cfg.SourceDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve source directory", err)
	}

	absOutputDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve output directory", err)
	}

	slog.Info("packaging report as OCI artifact",
		"reference", cfg.Reference.ImageReference(),
		"project", cfg.ProjectID,
	)

	packageResult, err := Package(ctx, PackageOptions{
		SourceDir:   absSourceDir,
		OutputDir:   absOutputDir,
		Registry:    cfg.Reference.Registry,
		Repository:  cfg.Reference.Repository,
		Tag:         cfg.Reference.Tag,
		Annotations: ReportAnnotations(cfg.ProjectID, cfg.Version, cfg.Annotations),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to package OCI artifact", err)
	}

	slog.Debug("OCI artifact packaged locally",
		"reference", packageResult.Reference,
		"digest", packageResult.Digest,
		"store_path", packageResult.StorePath,
	)

	pushResult, err := PushFromStore(ctx, packageResult.StorePath, PushOptions{
		Registry:    cfg.Reference.Registry,
		Repository:  cfg.Reference.Repository,
		Tag:         cfg.Reference.Tag,
		PlainHTTP:   cfg.PlainHTTP,
		InsecureTLS: cfg.InsecureTLS,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push OCI artifact to registry", err)
	}

	slog.Info("report pushed",
		"reference", pushResult.Reference,
		"digest", pushResult.Digest,
	)

	return &PackageAndPushResult{
		Digest:    pushResult.Digest,
		Reference: pushResult.Reference,
		StorePath: packageResult.StorePath,
	}, nil
}
