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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sirius-ms/sirius-go/pkg/defaults"
	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/oci"
	"github.com/sirius-ms/sirius-go/pkg/report"
	"github.com/sirius-ms/sirius-go/pkg/serializer"
)

const defaultOCITag = "latest"

// exportCmdOptions holds parsed options for the export command.
type exportCmdOptions struct {
	report report.Options
	// tempDir is removed after an OCI push.
	tempDir bool
}

// parseExportCmdOptions parses and validates command options.
func parseExportCmdOptions(cmd *cli.Command) (*exportCmdOptions, error) {
	format := serializer.Format(cmd.String("summary-format"))
	if format != serializer.FormatJSON && format != serializer.FormatYAML {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("--summary-format must be 'json' or 'yaml', got '%s'", format))
	}

	charges := make([]int32, 0, len(cmd.IntSlice("charge")))
	for _, c := range cmd.IntSlice("charge") {
		if c == 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "--charge must not be 0")
		}
		charges = append(charges, int32(c))
	}

	target, err := oci.ParseOutputTarget(cmd.String("target"))
	if err != nil {
		return nil, err
	}
	if target.IsOCI && target.Tag == "" {
		target.Tag = defaultOCITag
	}

	opts := &exportCmdOptions{
		report: report.Options{
			ProjectID:   cmd.String("project"),
			OutputDir:   target.LocalPath,
			Format:      format,
			PageSize:    int32(cmd.Int("page-size")),
			Concurrency: cmd.Int("concurrency"),
			Charges:     charges,
			Annotations: cmd.Bool("annotations"),
			ServerInfo:  cmd.Bool("server-info"),
			Version:     version,
			Target:      target,
			PlainHTTP:   cmd.Bool("plain-http"),
			InsecureTLS: cmd.Bool("insecure-tls"),
		},
	}
	if target.IsOCI {
		dir, err := os.MkdirTemp("", "sirius-report-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create staging directory: %w", err)
		}
		opts.report.OutputDir = dir
		opts.tempDir = true
	}
	return opts, nil
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "export",
		EnableShellCompletion: true,
		Usage:                 "Export a project-space report",
		Description: `Writes a report of a project-space: a summary document listing features,
top annotations and jobs, plus the CSI:FingerID and CANOPUS summary tables for
every requested charge.

The target is either a local directory or an OCI reference. OCI targets are
staged in a temporary directory and pushed as an artifact; the tag defaults to
"` + defaultOCITag + `".

# Examples

Export into a local directory:
  sirius export --project demo --target ./demo-report

Push the report to a registry:
  sirius export --project demo --target oci://ghcr.io/acme/reports/demo:v1`,
		Flags: []cli.Flag{
			projectFlag(),
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"d"},
				Usage:    "local directory or oci://registry/repository[:tag]",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "summary-format",
				Usage: "format of the summary document (json, yaml)",
				Value: string(serializer.FormatYAML),
			},
			&cli.IntSliceFlag{
				Name:  "charge",
				Usage: "charge for which summary tables are exported, can be repeated",
				Value: []int{1, -1},
			},
			&cli.BoolFlag{
				Name:  "annotations",
				Usage: "include the top annotations of every feature",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "server-info",
				Usage: "record the service version in the summary",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "features fetched per request",
				Value: defaults.ExportPageSize,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "maximum parallel requests",
				Value: defaults.ExportConcurrency,
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for OCI registry",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for OCI registry (for local development)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseExportCmdOptions(cmd)
			if err != nil {
				return err
			}
			if opts.tempDir {
				defer func() {
					if err := os.RemoveAll(opts.report.OutputDir); err != nil {
						slog.Warn("failed to remove staging directory", "dir", opts.report.OutputDir, "error", err)
					}
				}()
			}

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			res, err := report.Export(ctx, c, opts.report)
			if err != nil {
				return err
			}

			if res.Pushed != nil {
				slog.Info("report pushed", "reference", res.Pushed.Reference, "digest", res.Pushed.Digest)
			}
			return writeOutput(ctx, cmd, exportSummary(res))
		},
	}
}

// exportResult is what the export command prints.
type exportResult struct {
	Dir       string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	Files     []string `json:"files" yaml:"files"`
	Features  int      `json:"features" yaml:"features"`
	Reference string   `json:"reference,omitempty" yaml:"reference,omitempty"`
	Digest    string   `json:"digest,omitempty" yaml:"digest,omitempty"`
}

func exportSummary(res *report.Result) exportResult {
	out := exportResult{Dir: res.Dir, Files: res.Files}
	if res.Report != nil {
		out.Features = len(res.Report.Features)
	}
	if res.Pushed != nil {
		out.Dir = ""
		out.Reference = res.Pushed.Reference
		out.Digest = res.Pushed.Digest
	}
	return out
}
