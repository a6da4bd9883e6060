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
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

func projectsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "projects",
		Aliases:               []string{"project"},
		EnableShellCompletion: true,
		Usage:                 "Manage project-spaces",
		ShellComplete:         commandLister,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List opened project-spaces",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					projects, _, err := c.Projects.GetProjectSpaces(ctx)
					if err != nil {
						return apiFailure("getProjectSpaces", err)
					}
					return writeOutput(ctx, cmd, projects)
				},
			},
			{
				Name:  "get",
				Usage: "Show a project-space",
				Flags: []cli.Flag{
					projectFlag(),
					projectOptFieldFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := projectOptFields(cmd)
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					p, _, err := c.Projects.GetProjectSpace(ctx, cmd.String("project"), fields...)
					if err != nil {
						return apiFailure("getProjectSpace", err)
					}
					return writeOutput(ctx, cmd, p)
				},
			},
			{
				Name:  "create",
				Usage: "Create and open a new project-space",
				Flags: []cli.Flag{
					projectFlag(),
					&cli.StringFlag{
						Name:  "path",
						Usage: "location of the project-space, defaults to a server chosen path",
					},
					projectOptFieldFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return openOrCreate(ctx, cmd, true)
				},
			},
			{
				Name:  "open",
				Usage: "Open an existing project-space",
				Flags: []cli.Flag{
					projectFlag(),
					&cli.StringFlag{
						Name:  "path",
						Usage: "location of the project-space",
					},
					projectOptFieldFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return openOrCreate(ctx, cmd, false)
				},
			},
			{
				Name:  "close",
				Usage: "Close a project-space",
				Flags: []cli.Flag{projectFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					if _, err := c.Projects.CloseProjectSpace(ctx, cmd.String("project")); err != nil {
						return apiFailure("closeProjectSpace", err)
					}
					return writeText(cmd, fmt.Sprintf("closed %s\n", cmd.String("project")))
				},
			},
			{
				Name:  "copy",
				Usage: "Copy a project-space to a new location",
				Description: `Copies the project-space to --path. With --copy-id the copy is opened
under that id and returned, otherwise the source project is returned.`,
				Flags: []cli.Flag{
					projectFlag(),
					&cli.StringFlag{
						Name:     "path",
						Usage:    "location of the copy",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "copy-id",
						Usage: "project id under which the copy is opened",
					},
					projectOptFieldFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := projectOptFields(cmd)
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					p, _, err := c.Projects.CopyProjectSpace(ctx, cmd.String("project"), cmd.String("path"),
						optionalString(cmd, "copy-id"), fields...)
					if err != nil {
						return apiFailure("copyProjectSpace", err)
					}
					return writeOutput(ctx, cmd, p)
				},
			},
			projectImportCmd(),
			{
				Name:  "fingerid-data",
				Usage: "Print the CSI:FingerID fingerprint definition for a charge",
				Flags: []cli.Flag{projectFlag(), chargeFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					csv, _, err := c.Projects.GetFingerIDData(ctx, cmd.String("project"), int32(cmd.Int("charge")))
					if err != nil {
						return apiFailure("getFingerIdData", err)
					}
					return writeText(cmd, csv)
				},
			},
			{
				Name:  "canopus-data",
				Usage: "Print the CANOPUS class definitions for a charge",
				Flags: []cli.Flag{
					projectFlag(),
					chargeFlag(),
					&cli.StringFlag{
						Name:  "classifier",
						Usage: "class ontology (classyfire, npc)",
						Value: "classyfire",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					projectID, charge := cmd.String("project"), int32(cmd.Int("charge"))

					var (
						csv string
						op  string
					)
					switch strings.ToLower(cmd.String("classifier")) {
					case "classyfire", "cf":
						op = "getCanopusClassyFireData"
						csv, _, err = c.Projects.GetCanopusClassyFireData(ctx, projectID, charge)
					case "npc":
						op = "getCanopusNpcData"
						csv, _, err = c.Projects.GetCanopusNpcData(ctx, projectID, charge)
					default:
						return apperrors.New(apperrors.ErrCodeInvalidRequest,
							fmt.Sprintf("unknown classifier: %q", cmd.String("classifier")))
					}
					if err != nil {
						return apiFailure(op, err)
					}
					return writeText(cmd, csv)
				},
			},
		},
	}
}

func projectImportCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import spectra files into a project-space",
		ArgsUsage: "FILE...",
		Description: `Uploads spectra files to a project-space. mzML and mzXML files are imported
as LC-MS runs with feature detection, all other files (.ms, .mgf, .mat) as
preprocessed peak lists. Both kinds cannot be mixed in one call.

With --job the import runs as a background job and the job is printed instead
of the import result.`,
		Flags: []cli.Flag{
			projectFlag(),
			&cli.BoolFlag{
				Name:  "job",
				Usage: "run the import as a background job",
			},
			&cli.BoolFlag{
				Name:  "ignore-formulas",
				Usage: "drop molecular formulas given in peak lists",
			},
			&cli.BoolFlag{
				Name:  "allow-ms1-only",
				Usage: "import features without MS/MS spectra",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "align",
				Usage: "align LC-MS runs before feature detection",
				Value: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths, err := requireArgs(cmd, "input file")
			if err != nil {
				return err
			}
			msRuns, err := isMsRunImport(paths)
			if err != nil {
				return err
			}

			files, closeAll, err := sirius.OpenInputFiles(paths...)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to open input", err)
			}
			defer closeAll()

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			projectID := cmd.String("project")

			if msRuns {
				params := &sirius.LcmsSubmissionParameters{AlignLCMSRuns: optionalBool(cmd, "align")}
				if cmd.Bool("job") {
					job, _, err := c.Projects.ImportMsRunDataAsJob(ctx, projectID, files, params)
					if err != nil {
						return apiFailure("importMsRunDataAsJob", err)
					}
					return writeOutput(ctx, cmd, job)
				}
				res, _, err := c.Projects.ImportMsRunData(ctx, projectID, files, params)
				if err != nil {
					return apiFailure("importMsRunData", err)
				}
				return writeOutput(ctx, cmd, res)
			}

			opts := &sirius.PreprocessedImportOptions{
				IgnoreFormulas:   optionalBool(cmd, "ignore-formulas"),
				AllowMs1OnlyData: optionalBool(cmd, "allow-ms1-only"),
			}
			if cmd.Bool("job") {
				job, _, err := c.Projects.ImportPreprocessedDataAsJob(ctx, projectID, files, opts)
				if err != nil {
					return apiFailure("importPreprocessedDataAsJob", err)
				}
				return writeOutput(ctx, cmd, job)
			}
			res, _, err := c.Projects.ImportPreprocessedData(ctx, projectID, files, opts)
			if err != nil {
				return apiFailure("importPreprocessedData", err)
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

func openOrCreate(ctx context.Context, cmd *cli.Command, create bool) error {
	fields, err := projectOptFields(cmd)
	if err != nil {
		return err
	}
	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	projectID, path := cmd.String("project"), optionalString(cmd, "path")
	var p *sirius.ProjectInfo
	if create {
		p, _, err = c.Projects.CreateProjectSpace(ctx, projectID, path, fields...)
	} else {
		p, _, err = c.Projects.OpenProjectSpace(ctx, projectID, path, fields...)
	}
	if err != nil {
		if create {
			return apiFailure("createProjectSpace", err)
		}
		return apiFailure("openProjectSpace", err)
	}
	return writeOutput(ctx, cmd, p)
}

// isMsRunImport reports whether paths are all LC-MS runs. Mixed inputs are
// rejected.
func isMsRunImport(paths []string) (bool, error) {
	var runs int
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".mzml", ".mzxml":
			runs++
		}
	}
	if runs > 0 && runs < len(paths) {
		return false, apperrors.New(apperrors.ErrCodeInvalidRequest,
			"LC-MS runs (mzML, mzXML) and peak lists cannot be imported together")
	}
	return runs > 0, nil
}

func chargeFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "charge",
		Usage: "ion charge, 1 or -1",
		Value: 1,
	}
}

func projectOptFieldFlag() cli.Flag {
	return optFieldFlag(sirius.GetProjectInfoOptFields())
}

func projectOptFields(cmd *cli.Command) ([]sirius.ProjectInfoOptField, error) {
	return parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseProjectInfoOptField)
}
