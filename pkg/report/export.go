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

package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/utils/ptr"

	"github.com/sirius-ms/sirius-go/pkg/defaults"
	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/oci"
	"github.com/sirius-ms/sirius-go/pkg/serializer"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

// csvTable is one project level summary table offered by the service.
type csvTable struct {
	name string
	fetch func(ctx context.Context, projectID string, charge int32) (string, error)
}

func csvTables(c *sirius.Client) []csvTable {
	return []csvTable{
		{"fingerid", func(ctx context.Context, p string, ch int32) (string, error) {
			s, _, err := c.Projects.GetFingerIDData(ctx, p, ch)
			return s, err
		}},
		{"canopus-cf", func(ctx context.Context, p string, ch int32) (string, error) {
			s, _, err := c.Projects.GetCanopusClassyFireData(ctx, p, ch)
			return s, err
		}},
		{"canopus-npc", func(ctx context.Context, p string, ch int32) (string, error) {
			s, _, err := c.Projects.GetCanopusNpcData(ctx, p, ch)
			return s, err
		}},
	}
}

func (o *Options) validate() error {
	if o.ProjectID == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "project id is required for export")
	}
	if o.OutputDir == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "output directory is required for export")
	}
	if o.Format == "" {
		o.Format = serializer.FormatJSON
	}
	if o.Format != serializer.FormatJSON && o.Format != serializer.FormatYAML {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported summary format %q, use json or yaml", o.Format))
	}
	if slices.Contains(o.Charges, 0) {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "charge must not be zero")
	}
	if o.PageSize <= 0 {
		o.PageSize = defaults.ExportPageSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaults.ExportConcurrency
	}
	return nil
}

// Export writes a report of one project into opts.OutputDir: a summary
// document and, per requested charge, the CSV summary tables. With an OCI
// target the directory is then pushed as an artifact.
//
// Features and jobs are fetched in parallel, and feature annotations are
// fetched with at most opts.Concurrency requests in flight.
func Export(ctx context.Context, c *sirius.Client, opts Options) (*Result, error) {
	start := time.Now()
	defer func() {
		exportDuration.Observe(time.Since(start).Seconds())
	}()

	res, err := export(ctx, c, opts)
	if err != nil {
		exportTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	exportTotal.WithLabelValues("success").Inc()
	exportedFeatures.Set(float64(len(res.Report.Features)))
	return res, nil
}

func export(ctx context.Context, c *sirius.Client, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ExportTimeout)
	defer cancel()

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create output directory", err)
	}

	rep := &Report{}
	rep.Init(header.KindProjectReport, header.APIVersion, opts.Version)

	stage := observe("project")
	project, _, err := c.Projects.GetProjectSpace(ctx, opts.ProjectID, sirius.ProjectInfoOptFieldSizeInformation)
	stage()
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", opts.ProjectID, err)
	}
	rep.Project = *project

	if opts.ServerInfo {
		info, _, err := c.Info.GetInfo(ctx, &sirius.InfoOptions{ServerInfo: ptr.To(true), UpdateInfo: ptr.To(false)})
		if err != nil {
			return nil, fmt.Errorf("failed to get server info: %w", err)
		}
		rep.Server = &ServerSummary{
			SiriusVersion:      ptr.Deref(info.SiriusVersion, ""),
			NightSkyAPIVersion: ptr.Deref(info.NightSkyAPIVersion, ""),
		}
	}

	// The errgroup context ends with Wait, so later stages keep using ctx.
	g, gctx := errgroup.WithContext(ctx)
	var features []sirius.AlignedFeature
	g.Go(func() error {
		defer observe("features")()
		var err error
		features, err = fetchFeatures(gctx, c, opts)
		return err
	})
	g.Go(func() error {
		defer observe("jobs")()
		jobs, _, err := c.Jobs.GetJobs(gctx, opts.ProjectID, sirius.JobOptFieldCommand, sirius.JobOptFieldProgress)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		rep.Jobs = summarizeJobs(jobs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.Features = make([]FeatureSummary, len(features))
	for i := range features {
		rep.Features[i] = summarizeFeature(&features[i])
	}
	if opts.Annotations {
		if err := fetchAnnotations(ctx, c, opts, rep.Features); err != nil {
			return nil, err
		}
	}
	slog.Debug("report data collected",
		"project", opts.ProjectID,
		"features", len(rep.Features),
		"jobs", len(rep.Jobs))

	files, sections, err := writeTables(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	rep.Sections = sections

	summaryFile := SummaryFileName + "." + opts.Format.Extension()
	data, err := serializer.Encode(opts.Format, rep)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode report summary", err)
	}
	if err := serializer.WriteToFile(filepath.Join(opts.OutputDir, summaryFile), data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write report summary", err)
	}

	res := &Result{
		Dir:    opts.OutputDir,
		Files:  append([]string{summaryFile}, files...),
		Report: rep,
	}

	if opts.Target != nil && opts.Target.IsOCI {
		pushed, err := push(ctx, opts)
		if err != nil {
			return nil, err
		}
		res.Pushed = pushed
	}

	slog.Info("report exported",
		"project", opts.ProjectID,
		"dir", opts.OutputDir,
		"files", len(res.Files))
	return res, nil
}

// observe starts timing a stage and returns the function that records it.
func observe(name string) func() {
	start := time.Now()
	return func() {
		stageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

// fetchFeatures reads the first page to learn the page count, then the
// remaining pages in parallel.
func fetchFeatures(ctx context.Context, c *sirius.Client, opts Options) ([]sirius.AlignedFeature, error) {
	page := func(n int32) (*sirius.PagedModel[sirius.AlignedFeature], error) {
		p, _, err := c.Features.GetAlignedFeaturesPaged(ctx, opts.ProjectID,
			&sirius.PageRequest{Page: ptr.To(n), Size: ptr.To(opts.PageSize)},
			sirius.AlignedFeatureOptFieldComputedTools)
		if err != nil {
			return nil, fmt.Errorf("failed to list features (page %d): %w", n, err)
		}
		return p, nil
	}

	first, err := page(0)
	if err != nil {
		return nil, err
	}
	if first.Page == nil {
		return first.Content, nil
	}
	count, err := pageCount(first.Page, opts.PageSize)
	if err != nil {
		return nil, err
	}
	if count <= 1 {
		return first.Content, nil
	}

	pages := make([][]sirius.AlignedFeature, count)
	pages[0] = first.Content

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for n := int32(1); n < count; n++ {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			p, err := page(n)
			if err != nil {
				return err
			}
			pages[n] = p.Content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(pages...), nil
}

// pageCount is the number of pages to walk. The reported page count is
// bounded by the element count and by defaults.ExportMaxPages.
func pageCount(meta *sirius.PageMetadata, size int32) (int32, error) {
	n := meta.TotalPages
	if size > 0 && meta.TotalElements >= 0 {
		byElements := meta.TotalElements / int64(size)
		if meta.TotalElements%int64(size) != 0 {
			byElements++
		}
		n = min(n, byElements)
	}
	if n > defaults.ExportMaxPages {
		return 0, apperrors.NewWithContext(apperrors.ErrCodeInternal,
			"feature listing reports too many pages", map[string]any{
				"totalPages":    meta.TotalPages,
				"totalElements": meta.TotalElements,
				"maxPages":      defaults.ExportMaxPages,
			})
	}
	return int32(max(n, 0)), nil
}

// fetchAnnotations fills in the top annotations of every feature.
func fetchAnnotations(ctx context.Context, c *sirius.Client, opts Options, features []FeatureSummary) error {
	defer observe("annotations")()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range features {
		g.Go(func() error {
			f, _, err := c.Features.GetAlignedFeature(gctx, opts.ProjectID, features[i].AlignedFeatureID,
				sirius.AlignedFeatureOptFieldTopAnnotations)
			if err != nil {
				return fmt.Errorf("failed to get annotations of feature %s: %w", features[i].AlignedFeatureID, err)
			}
			features[i].Annotation = summarizeAnnotations(f.TopAnnotations)
			return nil
		})
	}
	return g.Wait()
}

// writeTables downloads the CSV summary tables for every requested charge.
func writeTables(ctx context.Context, c *sirius.Client, opts Options) ([]string, []Section, error) {
	if len(opts.Charges) == 0 {
		return nil, nil, nil
	}
	defer observe("csv")()

	tables := csvTables(c)
	var (
		mu       sync.Mutex
		files    []string
		sections []Section
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, charge := range opts.Charges {
		for _, t := range tables {
			g.Go(func() error {
				data, err := t.fetch(gctx, opts.ProjectID, charge)
				if err != nil {
					return fmt.Errorf("failed to get %s data for charge %d: %w", t.name, charge, err)
				}
				name := t.name + "-" + strconv.Itoa(int(charge)) + ".csv"
				if err := serializer.WriteToFile(filepath.Join(opts.OutputDir, name), []byte(data)); err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()
				files = append(files, name)
				sections = append(sections, Section{Title: sectionTitle(t.name, charge), File: name, Charge: charge})
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	slices.Sort(files)
	slices.SortFunc(sections, func(a, b Section) int { return strings.Compare(a.File, b.File) })
	return files, sections, nil
}

// acronyms keeps tool names in their usual spelling in section titles.
var acronyms = map[string]string{
	"fingerid": "CSI:FingerID",
	"canopus":  "CANOPUS",
	"cf":       "ClassyFire",
	"npc":      "NPC",
}

// sectionTitle renders a table name like "canopus-cf" as
// "CANOPUS ClassyFire (charge +1)".
func sectionTitle(name string, charge int32) string {
	titleCaser := cases.Title(language.English)
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if acronym, found := acronyms[p]; found {
			parts[i] = acronym
		} else {
			parts[i] = titleCaser.String(p)
		}
	}
	return fmt.Sprintf("%s (charge %+d)", strings.Join(parts, " "), charge)
}

// push packages the report directory into a temporary OCI layout and
// pushes it to the target registry.
func push(ctx context.Context, opts Options) (*oci.PackageAndPushResult, error) {
	defer observe("push")()

	layoutDir, err := os.MkdirTemp("", "sirius-report-oci-")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create OCI layout directory", err)
	}
	defer func() {
		if err := os.RemoveAll(layoutDir); err != nil {
			slog.Warn("failed to remove OCI layout directory", "dir", layoutDir, "error", err)
		}
	}()

	return oci.PackageAndPush(ctx, oci.OutputConfig{
		SourceDir:   opts.OutputDir,
		OutputDir:   layoutDir,
		Reference:   opts.Target,
		Version:     opts.Version,
		ProjectID:   opts.ProjectID,
		PlainHTTP:   opts.PlainHTTP,
		InsecureTLS: opts.InsecureTLS,
	})
}
