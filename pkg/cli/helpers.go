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
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	apperrors "github.com/sirius-ms/sirius-go/pkg/errors"
	"github.com/sirius-ms/sirius-go/pkg/serializer"
	"github.com/sirius-ms/sirius-go/pkg/sirius"
	"github.com/sirius-ms/sirius-go/pkg/transport"
)

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// writeOutput serializes v to the --output destination in the --format format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"),
		serializer.WithKubeconfig(cmd.String("kubeconfig")))
	defer serializer.Close(ser)

	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeText writes raw text to --output or stdout, bypassing the serializer.
func writeText(cmd *cli.Command, text string) error {
	if path := strings.TrimSpace(cmd.String("output")); path != "" {
		return serializer.WriteToFile(path, []byte(text))
	}
	_, err := io.WriteString(commandWriter(cmd), text)
	return err
}

// newClient builds an API client from the global flags.
func newClient(cmd *cli.Command) (*sirius.Client, error) {
	opts := []transport.Option{
		transport.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
		transport.WithInsecureSkipVerify(cmd.Bool("insecure")),
	}
	if d := cmd.Duration("timeout"); d > 0 {
		opts = append(opts, transport.WithTotalTimeout(d))
	}
	if rps := cmd.Float("rate-limit"); rps > 0 {
		opts = append(opts, transport.WithRateLimit(rps, max(int(rps), 1)))
	}

	c, err := sirius.NewClient(cmd.String("url"), opts...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid service URL", err)
	}
	return c, nil
}

// apiFailure wraps an API error with the operation that produced it and the
// error code matching the HTTP status.
func apiFailure(operation string, err error) error {
	code := apperrors.ErrCodeInternal
	ctx := map[string]any{"operation": operation}
	if apiErr, ok := transport.AsAPIError(err); ok {
		code = apiErr.Code()
		ctx["status"] = apiErr.StatusCode
	}
	return apperrors.WrapWithContext(code, operation+" failed", err, ctx)
}

// parseEach converts every value with parse and reports the first failure
// against flag.
func parseEach[T any](flag string, values []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			p, err := parse(part)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid --"+flag, err)
			}
			out = append(out, p)
		}
	}
	return out, nil
}

// optionalString returns nil when the flag was not given.
func optionalString(cmd *cli.Command, flag string) *string {
	if !cmd.IsSet(flag) {
		return nil
	}
	v := cmd.String(flag)
	return &v
}

// optionalBool returns nil when the flag was not given.
func optionalBool(cmd *cli.Command, flag string) *bool {
	if !cmd.IsSet(flag) {
		return nil
	}
	v := cmd.Bool(flag)
	return &v
}

// pageRequest builds a page request from --page, --size and --sort, or nil
// when none was given.
func pageRequest(cmd *cli.Command) *sirius.PageRequest {
	if !cmd.IsSet("page") && !cmd.IsSet("size") && !cmd.IsSet("sort") {
		return nil
	}
	page := int32(cmd.Int("page"))
	p := &sirius.PageRequest{Page: &page, Sort: sortEntries(cmd.StringSlice("sort"))}
	if cmd.IsSet("size") {
		size := int32(cmd.Int("size"))
		p.Size = &size
	}
	return p
}

// sortEntries rejoins "property,direction" entries that the slice flag
// split on the comma.
func sortEntries(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if len(out) > 0 && (strings.EqualFold(v, "asc") || strings.EqualFold(v, "desc")) &&
			!strings.Contains(out[len(out)-1], ",") {
			out[len(out)-1] += "," + v
			continue
		}
		out = append(out, v)
	}
	return out
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Usage: "zero based page to fetch, enables paged output",
		},
		&cli.IntFlag{
			Name:  "size",
			Usage: "page size",
		},
		&cli.StringSliceFlag{
			Name:  "sort",
			Usage: "sort order as property[,asc|desc], repeat for secondary orders; enables paged output",
		},
	}
}

// readerOptions lets file inputs use cm:// URIs with the global kubeconfig.
func readerOptions(cmd *cli.Command) []serializer.ReadOption {
	return []serializer.ReadOption{
		serializer.WithReadKubeconfig(cmd.String("kubeconfig")),
		serializer.WithReadTransport(transport.WithInsecureSkipVerify(cmd.Bool("insecure"))),
	}
}

func requireArgs(cmd *cli.Command, what string) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "at least one "+what+" is required")
	}
	return args, nil
}
