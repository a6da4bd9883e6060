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

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/header"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
	ver "github.com/sirius-ms/sirius-go/pkg/version"
)

// serverInfoDocument is the persisted form of GET /api/info.
type serverInfoDocument struct {
	header.Header `json:",inline" yaml:",inline"`
	sirius.Info   `json:",inline" yaml:",inline"`
}

func healthCmd() *cli.Command {
	return &cli.Command{
		Name:                  "health",
		EnableShellCompletion: true,
		Usage:                 "Report the health of the SIRIUS service",
		Description: `Calls the actuator health endpoint and prints the reported status.
The command fails when the service is unreachable or not UP.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			h, _, err := c.Actuator.Health(ctx)
			if err != nil {
				return apiFailure("health", err)
			}
			if err := writeOutput(ctx, cmd, h); err != nil {
				return err
			}
			if !h.IsUp() {
				return apperrors.NewWithContext(apperrors.ErrCodeUnavailable,
					"service is not healthy", map[string]any{"status": h.Status})
			}
			return nil
		},
	}
}

func shutdownCmd() *cli.Command {
	return &cli.Command{
		Name:                  "shutdown",
		EnableShellCompletion: true,
		Usage:                 "Shut down the SIRIUS service",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			if _, err := c.Actuator.Shutdown(ctx); err != nil {
				return apiFailure("shutdown", err)
			}
			return writeText(cmd, "shutdown requested\n")
		},
	}
}

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:                  "info",
		EnableShellCompletion: true,
		Usage:                 "Show version information of the SIRIUS service",
		Description: fmt.Sprintf(`Prints the SIRIUS, library and database versions of the service.

Unless --skip-version-check is given the command fails when the service is
older than SIRIUS %s, the oldest release this client supports.`, ver.MinServerVersion),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "server-info",
				Usage: "include library and database versions",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "update-info",
				Usage: "check for newer SIRIUS releases",
			},
			&cli.BoolFlag{
				Name:  "skip-version-check",
				Usage: "do not fail on unsupported service versions",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			info, _, err := c.Info.GetInfo(ctx, &sirius.InfoOptions{
				ServerInfo: ptr.To(cmd.Bool("server-info")),
				UpdateInfo: ptr.To(cmd.Bool("update-info")),
			})
			if err != nil {
				return apiFailure("getInfo", err)
			}

			doc := serverInfoDocument{Info: *info}
			doc.Init(header.KindServerInfo, header.APIVersion, version)
			if err := writeOutput(ctx, cmd, doc); err != nil {
				return err
			}

			if cmd.Bool("skip-version-check") {
				return nil
			}
			return checkServerVersion(info)
		},
	}
}

func checkServerVersion(info *sirius.Info) error {
	minimum := ver.MustParseVersion(ver.MinServerVersion)
	if err := ver.CheckServer(ptr.Deref(info.SiriusVersion, ""), minimum); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "unsupported SIRIUS service", err)
	}
	return nil
}
