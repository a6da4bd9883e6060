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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/sirius-ms/sirius-go/pkg/logging"
)

const (
	name           = "sirius"
	versionDefault = "dev"

	defaultURL = "http://localhost:8080"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flag constructors return fresh flags for every command tree.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output destination: file path, ConfigMap URI (cm://namespace/name), or stdout (default)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   "output format (json, yaml, table)",
		Value:   "yaml",
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "path to kubeconfig used for cm:// inputs and outputs",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

func projectFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "project",
		Aliases:  []string{"p"},
		Usage:    "project-space id",
		Sources:  cli.EnvVars("SIRIUS_PROJECT"),
		Required: true,
	}
}

func featureFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "feature",
		Aliases:  []string{"f"},
		Usage:    "aligned feature id",
		Required: true,
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "SIRIUS REST client",
		Description: `Talks to a running SIRIUS service (the SIRIUS GUI or "sirius service") over
its REST API: manage project-spaces, import spectra, run computations and
export results.

The target service defaults to ` + defaultURL + ` and is set with --url or SIRIUS_URL.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "base URL of the SIRIUS service",
				Sources: cli.EnvVars("SIRIUS_URL"),
				Value:   defaultURL,
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "timeout for a single request, 0 disables it",
				Sources: cli.EnvVars("SIRIUS_TIMEOUT"),
			},
			&cli.FloatFlag{
				Name:    "rate-limit",
				Usage:   "maximum requests per second sent to the service, 0 disables limiting",
				Sources: cli.EnvVars("SIRIUS_RATE_LIMIT"),
			},
			&cli.BoolFlag{
				Name:  "insecure",
				Usage: "skip TLS certificate verification",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "warn",
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"url", cmd.String("url"))
			return ctx, nil
		},
		ShellComplete: commandLister,
		Commands: []*cli.Command{
			healthCmd(),
			shutdownCmd(),
			infoCmd(),
			projectsCmd(),
			featuresCmd(),
			jobsCmd(),
			configsCmd(),
			exportCmd(),
		},
	}
}

// Execute runs the sirius command line and exits with 1 on failure or 2 when
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().Run(ctx, os.Args)
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		os.Exit(2)
	}
	os.Exit(1)
}

// commandLister prints the visible subcommands of cmd, one per line.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := commandWriter(cmd)
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}

func commandWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
