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

package api

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sirius-ms/sirius-go/pkg/logging"
	"github.com/sirius-ms/sirius-go/pkg/mock"
	"github.com/sirius-ms/sirius-go/pkg/server"
)

const (
	name           = "sirius-mock"
	versionDefault = "dev"

	// EnvProjectDir overrides the directory new project-spaces are placed in.
	EnvProjectDir = "SIRIUS_MOCK_DIR"

	// EnvSiriusVersion overrides the SIRIUS version reported by /api/info.
	EnvSiriusVersion = "SIRIUS_VERSION"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/sirius-ms/sirius-go/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the mock SIRIUS service and blocks until the process is
// interrupted or a client calls POST /actuator/shutdown.
func Serve() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := newServer(cancel)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newServer wires the mock REST handlers into a server. shutdown is invoked
// by the actuator endpoint.
func newServer(shutdown func()) *server.Server {
	svc := mock.New(
		mock.WithVersion(os.Getenv(EnvSiriusVersion)),
		mock.WithStore(mock.NewStore(projectDir())),
		mock.WithShutdown(shutdown),
	)

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(svc.Handlers()),
	)
}

func projectDir() string {
	if dir := os.Getenv(EnvProjectDir); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), name)
}
