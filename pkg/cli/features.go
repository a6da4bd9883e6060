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
	"strings"

	"github.com/urfave/cli/v3"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/serializer"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

// featureListDocument is the persisted form of a project's feature list.
type featureListDocument struct {
	header.Header `json:",inline" yaml:",inline"`
	ProjectID     string                  `json:"projectId" yaml:"projectId"`
	Features      []sirius.AlignedFeature `json:"features" yaml:"features"`
}

func featuresCmd() *cli.Command {
	return &cli.Command{
		Name:                  "features",
		Aliases:               []string{"feature"},
		EnableShellCompletion: true,
		Usage:                 "Inspect and manage aligned features and their results",
		ShellComplete:         commandLister,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the aligned features of a project-space",
				Flags: append([]cli.Flag{
					projectFlag(),
					optFieldFlag(sirius.GetAlignedFeatureOptFields()),
				}, pageFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseAlignedFeatureOptField)
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					projectID := cmd.String("project")

					if page := pageRequest(cmd); page != nil {
						res, _, err := c.Features.GetAlignedFeaturesPaged(ctx, projectID, page, fields...)
						if err != nil {
							return apiFailure("getAlignedFeaturesPaged", err)
						}
						return writeOutput(ctx, cmd, res)
					}

					features, _, err := c.Features.GetAlignedFeatures(ctx, projectID, fields...)
					if err != nil {
						return apiFailure("getAlignedFeatures", err)
					}
					doc := featureListDocument{ProjectID: projectID, Features: features}
					doc.Init(header.KindFeatureList, header.APIVersion, version)
					return writeOutput(ctx, cmd, doc)
				},
			},
			{
				Name:  "get",
				Usage: "Show an aligned feature",
				Flags: []cli.Flag{
					projectFlag(),
					featureFlag(),
					optFieldFlag(sirius.GetAlignedFeatureOptFields()),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseAlignedFeatureOptField)
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					f, _, err := c.Features.GetAlignedFeature(ctx, cmd.String("project"), cmd.String("feature"), fields...)
					if err != nil {
						return apiFailure("getAlignedFeature", err)
					}
					return writeOutput(ctx, cmd, f)
				},
			},
			{
				Name:  "add",
				Usage: "Add features from a JSON or YAML list",
				Description: `Reads a list of features (ionMass, charge, spectra, ...) from --input and
adds them to the project-space. The input may be a file, an http(s) URL or a
ConfigMap URI (cm://namespace/name).`,
				Flags: []cli.Flag{
					projectFlag(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "feature list to import",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "profile",
						Usage: fmt.Sprintf("instrument profile used to preprocess spectra (%s)", strings.Join(sirius.GetInstrumentProfiles(), ", ")),
					},
					optFieldFlag(sirius.GetAlignedFeatureOptFields()),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseAlignedFeatureOptField)
					if err != nil {
						return err
					}
					var profile *sirius.InstrumentProfile
					if s := cmd.String("profile"); s != "" {
						p, err := sirius.ParseInstrumentProfile(s)
						if err != nil {
							return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid --profile", err)
						}
						profile = &p
					}

					in, err := serializer.FromFile[[]sirius.FeatureImport](ctx, cmd.String("input"), readerOptions(cmd)...)
					if err != nil {
						return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to load features", err)
					}

					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					features, _, err := c.Features.AddAlignedFeatures(ctx, cmd.String("project"), *in, profile, fields...)
					if err != nil {
						return apiFailure("addAlignedFeatures", err)
					}
					return writeOutput(ctx, cmd, features)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete aligned features",
				ArgsUsage: "FEATURE_ID...",
				Flags:     []cli.Flag{projectFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ids, err := requireArgs(cmd, "feature id")
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					projectID := cmd.String("project")

					if len(ids) == 1 {
						if _, err := c.Features.DeleteAlignedFeature(ctx, projectID, ids[0]); err != nil {
							return apiFailure("deleteAlignedFeature", err)
						}
					} else if _, err := c.Features.DeleteAlignedFeatures(ctx, projectID, ids); err != nil {
						return apiFailure("deleteAlignedFeatures", err)
					}
					return writeText(cmd, fmt.Sprintf("deleted %d feature(s)\n", len(ids)))
				},
			},
			{
				Name:  "ms-data",
				Usage: "Show the spectra of an aligned feature",
				Flags: []cli.Flag{projectFlag(), featureFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					data, _, err := c.Features.GetMsData(ctx, cmd.String("project"), cmd.String("feature"))
					if err != nil {
						return apiFailure("getMsData", err)
					}
					return writeOutput(ctx, cmd, data)
				},
			},
			featureFormulasCmd(),
			featureStructuresCmd(),
			featureLibraryMatchesCmd(),
		},
	}
}

func featureFormulasCmd() *cli.Command {
	return &cli.Command{
		Name:  "formulas",
		Usage: "List the molecular formula candidates of an aligned feature",
		Flags: append([]cli.Flag{
			projectFlag(),
			featureFlag(),
			&cli.StringFlag{
				Name:  "formula",
				Usage: "formula candidate id, shows a single candidate",
			},
			optFieldFlag(sirius.GetFormulaCandidateOptFields()),
		}, pageFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fields, err := parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseFormulaCandidateOptField)
			if err != nil {
				return err
			}
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			projectID, featureID := cmd.String("project"), cmd.String("feature")

			if formulaID := cmd.String("formula"); formulaID != "" {
				fc, _, err := c.Features.GetFormulaCandidate(ctx, projectID, featureID, formulaID, fields...)
				if err != nil {
					return apiFailure("getFormulaCandidate", err)
				}
				return writeOutput(ctx, cmd, fc)
			}
			if page := pageRequest(cmd); page != nil {
				res, _, err := c.Features.GetFormulaCandidatesPaged(ctx, projectID, featureID, page, fields...)
				if err != nil {
					return apiFailure("getFormulaCandidatesPaged", err)
				}
				return writeOutput(ctx, cmd, res)
			}
			res, _, err := c.Features.GetFormulaCandidates(ctx, projectID, featureID, fields...)
			if err != nil {
				return apiFailure("getFormulaCandidates", err)
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

func featureStructuresCmd() *cli.Command {
	return &cli.Command{
		Name:  "structures",
		Usage: "List the structure candidates of an aligned feature",
		Description: `Lists database structure candidates, or de novo candidates with --denovo.
With --formula only the candidates of that formula candidate are listed.`,
		Flags: append([]cli.Flag{
			projectFlag(),
			featureFlag(),
			&cli.StringFlag{
				Name:  "formula",
				Usage: "formula candidate id",
			},
			&cli.BoolFlag{
				Name:  "denovo",
				Usage: "list de novo (MSNovelist) candidates",
			},
			optFieldFlag(sirius.GetStructureCandidateOptFields()),
		}, pageFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fields, err := parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseStructureCandidateOptField)
			if err != nil {
				return err
			}
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			projectID, featureID := cmd.String("project"), cmd.String("feature")
			page := pageRequest(cmd)
			denovo := cmd.Bool("denovo")

			var (
				res any
				op  string
			)
			if formulaID := cmd.String("formula"); formulaID != "" {
				switch {
				case denovo && page != nil:
					op = "getDeNovoStructureCandidatesByFormulaPaged"
					res, _, err = c.Features.GetDeNovoStructureCandidatesByFormulaPaged(ctx, projectID, featureID, formulaID, page, fields...)
				case denovo:
					op = "getDeNovoStructureCandidatesByFormula"
					res, _, err = c.Features.GetDeNovoStructureCandidatesByFormula(ctx, projectID, featureID, formulaID, fields...)
				case page != nil:
					op = "getStructureCandidatesByFormulaPaged"
					res, _, err = c.Features.GetStructureCandidatesByFormulaPaged(ctx, projectID, featureID, formulaID, page, fields...)
				default:
					op = "getStructureCandidatesByFormula"
					res, _, err = c.Features.GetStructureCandidatesByFormula(ctx, projectID, featureID, formulaID, fields...)
				}
			} else {
				switch {
				case denovo && page != nil:
					op = "getDeNovoStructureCandidatesPaged"
					res, _, err = c.Features.GetDeNovoStructureCandidatesPaged(ctx, projectID, featureID, page, fields...)
				case denovo:
					op = "getDeNovoStructureCandidates"
					res, _, err = c.Features.GetDeNovoStructureCandidates(ctx, projectID, featureID, fields...)
				case page != nil:
					op = "getStructureCandidatesPaged"
					res, _, err = c.Features.GetStructureCandidatesPaged(ctx, projectID, featureID, page, fields...)
				default:
					op = "getStructureCandidates"
					res, _, err = c.Features.GetStructureCandidates(ctx, projectID, featureID, fields...)
				}
			}
			if err != nil {
				return apiFailure(op, err)
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

func featureLibraryMatchesCmd() *cli.Command {
	return &cli.Command{
		Name:  "library-matches",
		Usage: "List the spectral library matches of an aligned feature",
		Flags: append([]cli.Flag{
			projectFlag(),
			featureFlag(),
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "print match counts and the best match instead of the list",
			},
			&cli.IntFlag{
				Name:  "min-shared-peaks",
				Usage: "minimum number of shared peaks",
			},
			&cli.FloatFlag{
				Name:  "min-similarity",
				Usage: "minimum spectral similarity",
			},
			&cli.StringFlag{
				Name:  "inchikey",
				Usage: "only matches of this InChIKey",
			},
			optFieldFlag(sirius.GetSpectralLibraryMatchOptFields()),
		}, pageFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fields, err := parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseSpectralLibraryMatchOptField)
			if err != nil {
				return err
			}
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			projectID, featureID := cmd.String("project"), cmd.String("feature")
			filter := libraryFilter(cmd)

			if cmd.Bool("summary") {
				res, _, err := c.Features.GetSpectralLibraryMatchesSummary(ctx, projectID, featureID, filter)
				if err != nil {
					return apiFailure("getSpectralLibraryMatchesSummary", err)
				}
				return writeOutput(ctx, cmd, res)
			}
			if page := pageRequest(cmd); page != nil {
				res, _, err := c.Features.GetSpectralLibraryMatchesPaged(ctx, projectID, featureID, page, filter, fields...)
				if err != nil {
					return apiFailure("getSpectralLibraryMatchesPaged", err)
				}
				return writeOutput(ctx, cmd, res)
			}
			res, _, err := c.Features.GetSpectralLibraryMatches(ctx, projectID, featureID, filter, fields...)
			if err != nil {
				return apiFailure("getSpectralLibraryMatches", err)
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

// libraryFilter returns nil when no filter flag was given.
func libraryFilter(cmd *cli.Command) *sirius.SpectralLibraryMatchFilter {
	var f sirius.SpectralLibraryMatchFilter
	set := false
	if cmd.IsSet("min-shared-peaks") {
		v := int32(cmd.Int("min-shared-peaks"))
		f.MinSharedPeaks, set = &v, true
	}
	if cmd.IsSet("min-similarity") {
		v := cmd.Float("min-similarity")
		f.MinSimilarity, set = &v, true
	}
	if s := optionalString(cmd, "inchikey"); s != nil {
		f.InchiKey, set = s, true
	}
	if !set {
		return nil
	}
	return &f
}

func optFieldFlag(values []string) cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "opt-field",
		Usage: fmt.Sprintf("optional fields to include (%s)", strings.Join(values, ", ")),
	}
}
