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
	"testing"

	"github.com/urfave/cli/v3"
)

func hasName(flag cli.Flag, name string) bool {
	if flag == nil {
		return false
	}
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func findFlag(cmd *cli.Command, name string) cli.Flag {
	for _, f := range cmd.Flags {
		if hasName(f, name) {
			return f
		}
	}
	return nil
}

func findCommand(cmd *cli.Command, name string) *cli.Command {
	for _, c := range cmd.Commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRootCmd_CommandStructure(t *testing.T) {
	root := newRootCmd()

	if root.Name != name {
		t.Errorf("Name = %v, want %v", root.Name, name)
	}
	if root.Usage == "" {
		t.Error("Usage should not be empty")
	}

	for _, flag := range []string{"url", "timeout", "rate-limit", "insecure", "log-level", "output", "o", "format", "t", "kubeconfig"} {
		if findFlag(root, flag) == nil {
			t.Errorf("root flag %q not found", flag)
		}
	}

	want := map[string][]string{
		"health":   nil,
		"shutdown": nil,
		"info":     nil,
		"projects": {"list", "get", "create", "open", "close", "copy", "import", "fingerid-data", "canopus-data"},
		"features": {"list", "get", "add", "delete", "ms-data", "formulas", "structures", "library-matches"},
		"jobs":     {"list", "get", "start", "start-config", "delete", "wait"},
		"configs":  {"list", "names", "get", "save", "delete", "default"},
		"export":   nil,
	}
	if len(root.Commands) != len(want) {
		t.Errorf("got %d commands, want %d", len(root.Commands), len(want))
	}

	for group, subs := range want {
		cmd := findCommand(root, group)
		if cmd == nil {
			t.Errorf("command %q not found", group)
			continue
		}
		if cmd.Usage == "" {
			t.Errorf("%s: Usage should not be empty", group)
		}
		if len(subs) == 0 {
			if cmd.Action == nil {
				t.Errorf("%s: Action should not be nil", group)
			}
			continue
		}
		for _, s := range subs {
			sub := findCommand(cmd, s)
			if sub == nil {
				t.Errorf("%s %s not found", group, s)
				continue
			}
			if sub.Action == nil {
				t.Errorf("%s %s: Action should not be nil", group, s)
			}
		}
	}
}

func TestCommands_RequiredFlags(t *testing.T) {
	root := newRootCmd()

	tests := []struct {
		path     []string
		required []string
	}{
		{path: []string{"projects", "get"}, required: []string{"project"}},
		{path: []string{"projects", "copy"}, required: []string{"project", "path"}},
		{path: []string{"features", "get"}, required: []string{"project", "feature"}},
		{path: []string{"features", "add"}, required: []string{"project", "input"}},
		{path: []string{"jobs", "wait"}, required: []string{"project", "job"}},
		{path: []string{"jobs", "start-config"}, required: []string{"project", "config"}},
		{path: []string{"configs", "save"}, required: []string{"name", "submission"}},
		{path: []string{"export"}, required: []string{"project", "target"}},
	}

	for _, tt := range tests {
		cmd := root
		for _, p := range tt.path {
			cmd = findCommand(cmd, p)
			if cmd == nil {
				t.Fatalf("command %v not found", tt.path)
			}
		}
		for _, name := range tt.required {
			f := findFlag(cmd, name)
			if f == nil {
				t.Errorf("%v: flag %q not found", tt.path, name)
				continue
			}
			if rf, ok := f.(cli.RequiredFlag); !ok || !rf.IsRequired() {
				t.Errorf("%v: flag %q should be required", tt.path, name)
			}
		}
	}
}

func TestCommands_ProjectAlias(t *testing.T) {
	cmd := findCommand(findCommand(newRootCmd(), "features"), "list")
	f := findFlag(cmd, "project")
	if !hasName(f, "p") {
		t.Error("--project should have alias -p")
	}
}
