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

	"github.com/urfave/cli/v3"
	"k8s.io/utils/ptr"

	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

func configsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "configs",
		Aliases:               []string{"config"},
		EnableShellCompletion: true,
		Usage:                 "Manage stored job configs",
		ShellComplete:         commandLister,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored job configs",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					configs, _, err := c.Jobs.GetJobConfigs(ctx)
					if err != nil {
						return apiFailure("getJobConfigs", err)
					}
					return writeOutput(ctx, cmd, configs)
				},
			},
			{
				Name:  "names",
				Usage: "List the names of stored job configs",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					names, _, err := c.Jobs.GetJobConfigNames(ctx)
					if err != nil {
						return apiFailure("getJobConfigNames", err)
					}
					return writeOutput(ctx, cmd, names)
				},
			},
			{
				Name:  "get",
				Usage: "Show a stored job config",
				Description: `Prints the job config as a document that "sirius jobs start --submission"
and "sirius configs save" accept as input.`,
				Flags: []cli.Flag{
					configNameFlag(),
					&cli.BoolFlag{
						Name:  "config-map",
						Usage: "move tool parameters into the generic config map",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					stored, _, err := c.Jobs.GetJobConfig(ctx, cmd.String("name"), optionalBool(cmd, "config-map"))
					if err != nil {
						return apiFailure("getJobConfig", err)
					}
					doc := jobConfigDocument{StoredJobSubmission: *stored}
					doc.Init(header.KindJobConfig, header.APIVersion, version)
					return writeOutput(ctx, cmd, doc)
				},
			},
			{
				Name:  "save",
				Usage: "Store a job submission under a name",
				Flags: []cli.Flag{
					configNameFlag(),
					&cli.StringFlag{
						Name:     "submission",
						Aliases:  []string{"s"},
						Usage:    "job submission to store (file, http(s) URL or cm://namespace/name)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "override",
						Usage: "replace an existing config of the same name",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					sub, err := loadSubmission(ctx, cmd, cmd.String("submission"))
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					stored, _, err := c.Jobs.SaveJobConfig(ctx, cmd.String("name"), sub, &sirius.SaveJobConfigOptions{
						OverrideExisting: ptr.To(cmd.Bool("override")),
					})
					if err != nil {
						return apiFailure("saveJobConfig", err)
					}
					return writeOutput(ctx, cmd, stored)
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a stored job config",
				Flags: []cli.Flag{configNameFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					if _, err := c.Jobs.DeleteJobConfig(ctx, cmd.String("name")); err != nil {
						return apiFailure("deleteJobConfig", err)
					}
					return writeText(cmd, fmt.Sprintf("deleted job config %s\n", cmd.String("name")))
				},
			},
			{
				Name:  "default",
				Usage: "Show the default job submission of the service",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "include-config-map",
						Usage: "include the generic parameter config map",
					},
					&cli.BoolFlag{
						Name:  "custom-dbs",
						Usage: "include custom databases in the structure search",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					sub, _, err := c.Jobs.GetDefaultJobConfig(ctx, &sirius.DefaultJobConfigOptions{
						IncludeConfigMap:                   optionalBool(cmd, "include-config-map"),
						IncludeCustomDbsForStructureSearch: optionalBool(cmd, "custom-dbs"),
					})
					if err != nil {
						return apiFailure("getDefaultJobConfig", err)
					}
					return writeOutput(ctx, cmd, sub)
				},
			},
		},
	}
}

func configNameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "name",
		Aliases:  []string{"n"},
		Usage:    "job config name",
		Required: true,
	}
}
