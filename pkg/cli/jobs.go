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

	"github.com/sirius-ms/sirius-go/pkg/defaults"
	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/serializer"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
)

func jobsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "jobs",
		Aliases:               []string{"job"},
		EnableShellCompletion: true,
		Usage:                 "Start, track and delete background jobs",
		ShellComplete:         commandLister,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the jobs of a project-space",
				Flags: append([]cli.Flag{
					projectFlag(),
					optFieldFlag(sirius.GetJobOptFields()),
				}, pageFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := jobOptFields(cmd)
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					projectID := cmd.String("project")

					if page := pageRequest(cmd); page != nil {
						res, _, err := c.Jobs.GetJobsPaged(ctx, projectID, page, fields...)
						if err != nil {
							return apiFailure("getJobsPaged", err)
						}
						return writeOutput(ctx, cmd, res)
					}
					jobs, _, err := c.Jobs.GetJobs(ctx, projectID, fields...)
					if err != nil {
						return apiFailure("getJobs", err)
					}
					return writeOutput(ctx, cmd, jobs)
				},
			},
			{
				Name:  "get",
				Usage: "Show a job",
				Flags: []cli.Flag{
					projectFlag(),
					jobFlag(),
					optFieldFlag(sirius.GetJobOptFields()),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := jobOptFields(cmd)
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					job, _, err := c.Jobs.GetJob(ctx, cmd.String("project"), cmd.String("job"), fields...)
					if err != nil {
						return apiFailure("getJob", err)
					}
					return writeOutput(ctx, cmd, job)
				},
			},
			{
				Name:  "start",
				Usage: "Start a computation from a job submission",
				Description: `Starts a computation on the selected features. The submission is read from
--submission (file, http(s) URL or cm://namespace/name) and may be a plain job
submission or a document written by "sirius configs get". Without
--submission the default job config of the service is used.

Features given with --feature replace those named in the submission. With
neither, all features of the project-space are computed.`,
				Flags: append([]cli.Flag{
					projectFlag(),
					&cli.StringFlag{
						Name:    "submission",
						Aliases: []string{"s"},
						Usage:   "job submission to start",
					},
					&cli.StringSliceFlag{
						Name:  "feature",
						Usage: "aligned feature id to compute, can be repeated",
					},
					&cli.BoolFlag{
						Name:  "recompute",
						Usage: "recompute results that already exist",
					},
					optFieldFlag(sirius.GetJobOptFields()),
				}, waitFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := jobOptFields(cmd)
					if err != nil {
						return err
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}

					var sub *sirius.JobSubmission
					if path := cmd.String("submission"); path != "" {
						sub, err = loadSubmission(ctx, cmd, path)
						if err != nil {
							return err
						}
					} else {
						sub, _, err = c.Jobs.GetDefaultJobConfig(ctx, nil)
						if err != nil {
							return apiFailure("getDefaultJobConfig", err)
						}
					}
					if ids := cmd.StringSlice("feature"); len(ids) > 0 {
						sub.AlignedFeatureIDs = ids
						sub.CompoundIDs = nil
					}
					if cmd.IsSet("recompute") {
						sub.Recompute = ptr.To(cmd.Bool("recompute"))
					}

					job, _, err := c.Jobs.StartJob(ctx, cmd.String("project"), sub, fields...)
					if err != nil {
						return apiFailure("startJob", err)
					}
					return finishJob(ctx, cmd, c, job)
				},
			},
			{
				Name:  "start-config",
				Usage: "Start a computation from a stored job config",
				Description: `Starts the stored job config --config on the features given with --feature,
or on all features of the project-space when none are given.`,
				Flags: append([]cli.Flag{
					projectFlag(),
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "name of the stored job config",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "feature",
						Usage: "aligned feature id to compute, can be repeated",
					},
					&cli.BoolFlag{
						Name:  "recompute",
						Usage: "recompute results that already exist",
					},
					optFieldFlag(sirius.GetJobOptFields()),
				}, waitFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fields, err := jobOptFields(cmd)
					if err != nil {
						return err
					}
					ids := cmd.StringSlice("feature")
					if ids == nil {
						ids = []string{}
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					job, _, err := c.Jobs.StartJobFromConfig(ctx, cmd.String("project"), cmd.String("config"),
						ids, optionalBool(cmd, "recompute"), fields...)
					if err != nil {
						return apiFailure("startJobFromConfig", err)
					}
					return finishJob(ctx, cmd, c, job)
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a job, or all jobs of a project-space with --all",
				Flags: []cli.Flag{
					projectFlag(),
					&cli.StringFlag{
						Name:    "job",
						Aliases: []string{"j"},
						Usage:   "job id",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "delete all jobs",
					},
					&cli.BoolFlag{
						Name:  "cancel",
						Usage: "cancel the job if it is still running",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "await",
						Usage: "block until the job is deleted",
						Value: true,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					jobID, all := cmd.String("job"), cmd.Bool("all")
					if (jobID == "") == !all {
						return apperrors.New(apperrors.ErrCodeInvalidRequest, "exactly one of --job or --all is required")
					}
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					opts := &sirius.DeleteJobOptions{
						CancelIfRunning: ptr.To(cmd.Bool("cancel")),
						AwaitDeletion:   ptr.To(cmd.Bool("await")),
					}
					projectID := cmd.String("project")

					if all {
						if _, err := c.Jobs.DeleteJobs(ctx, projectID, opts); err != nil {
							return apiFailure("deleteJobs", err)
						}
						return writeText(cmd, "deleted all jobs\n")
					}
					if _, err := c.Jobs.DeleteJob(ctx, projectID, jobID, opts); err != nil {
						return apiFailure("deleteJob", err)
					}
					return writeText(cmd, fmt.Sprintf("deleted job %s\n", jobID))
				},
			},
			{
				Name:  "wait",
				Usage: "Wait for a job to finish",
				Description: `Polls the job until it is DONE, FAILED or CANCELED and prints it.
The command fails unless the job finished as DONE.`,
				Flags: []cli.Flag{
					projectFlag(),
					jobFlag(),
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "time between status requests",
						Value: defaults.JobPollInterval,
					},
					&cli.DurationFlag{
						Name:  "wait-timeout",
						Usage: "maximum time to wait",
						Value: defaults.JobWaitTimeout,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c, err := newClient(cmd)
					if err != nil {
						return err
					}
					return waitAndWrite(ctx, cmd, c, cmd.String("project"), cmd.String("job"))
				},
			},
		},
	}
}

// jobConfigDocument is the persisted form of a stored job config.
type jobConfigDocument struct {
	header.Header              `json:",inline" yaml:",inline"`
	sirius.StoredJobSubmission `json:",inline" yaml:",inline"`
}

// loadSubmission reads either a jobConfigDocument or a bare JobSubmission.
func loadSubmission(ctx context.Context, cmd *cli.Command, path string) (*sirius.JobSubmission, error) {
	doc, err := serializer.FromFile[jobConfigDocument](ctx, path, readerOptions(cmd)...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to load job submission", err)
	}
	if doc.Kind == header.KindJobConfig {
		if doc.JobSubmission == nil {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				"job config document has no jobSubmission", map[string]any{"path": path})
		}
		return doc.JobSubmission, nil
	}

	sub, err := serializer.FromFile[sirius.JobSubmission](ctx, path, readerOptions(cmd)...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to load job submission", err)
	}
	return sub, nil
}

// finishJob prints job, or waits for it first when --wait is set.
func finishJob(ctx context.Context, cmd *cli.Command, c *sirius.Client, job *sirius.Job) error {
	if !cmd.Bool("wait") {
		return writeOutput(ctx, cmd, job)
	}
	return waitAndWrite(ctx, cmd, c, cmd.String("project"), job.ID)
}

func waitAndWrite(ctx context.Context, cmd *cli.Command, c *sirius.Client, projectID, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("wait-timeout"))
	defer cancel()

	job, err := c.Jobs.WaitForJob(ctx, projectID, jobID, cmd.Duration("interval"))
	if err != nil {
		return apiFailure("waitForJob", err)
	}
	if err := writeOutput(ctx, cmd, job); err != nil {
		return err
	}
	if state := job.State(); state != sirius.JobStateDone {
		details := map[string]any{"jobId": jobID, "state": state}
		if job.Progress != nil && job.Progress.ErrorMessage != nil {
			details["error"] = *job.Progress.ErrorMessage
		}
		return apperrors.NewWithContext(apperrors.ErrCodeInternal,
			fmt.Sprintf("job %s finished as %s", jobID, state), details)
	}
	return nil
}

func waitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "wait",
			Usage: "wait for the job to finish",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "time between status requests while waiting",
			Value: defaults.JobPollInterval,
		},
		&cli.DurationFlag{
			Name:  "wait-timeout",
			Usage: "maximum time to wait",
			Value: defaults.JobWaitTimeout,
		},
	}
}

func jobFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "job",
		Aliases:  []string{"j"},
		Usage:    "job id",
		Required: true,
	}
}

func jobOptFields(cmd *cli.Command) ([]sirius.JobOptField, error) {
	return parseEach("opt-field", cmd.StringSlice("opt-field"), sirius.ParseJobOptField)
}
