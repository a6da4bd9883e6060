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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStructuredLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "sirius", "v1.2.3", "info")

	logger.Info("job submitted", "jobId", "42")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["module"] != "sirius" {
		t.Errorf("module = %v", rec["module"])
	}
	if rec["version"] != "v1.2.3" {
		t.Errorf("version = %v", rec["version"])
	}
	if rec["jobId"] != "42" {
		t.Errorf("jobId = %v", rec["jobId"])
	}
	if _, ok := rec["source"]; ok {
		t.Errorf("source should only be present at debug level")
	}
}

func TestStructuredLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "sirius", "dev", "error")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be filtered, got %s", buf.String())
	}

	logger.Error("kept")
	if buf.Len() == 0 {
		t.Fatal("expected error record to be written")
	}
}

func TestStructuredLoggerDebugSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "sirius", "dev", "debug")

	logger.Debug("details")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if _, ok := rec["source"]; !ok {
		t.Error("expected source location at debug level")
	}
}

func TestSetDefaultStructuredLoggerWithLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	SetDefaultStructuredLoggerWithLevel("sirius", "dev", "warn")
	if slog.Default().Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !slog.Default().Enabled(t.Context(), slog.LevelWarn) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestSetDefaultStructuredLoggerFromEnv(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv(EnvLogLevel, "debug")

	SetDefaultStructuredLogger("sirius", "dev")
	if !slog.Default().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug should be enabled when LOG_LEVEL=debug")
	}
}

func TestNewLogLogger(t *testing.T) {
	if NewLogLogger(slog.LevelWarn, false) == nil {
		t.Fatal("expected logger")
	}
}
