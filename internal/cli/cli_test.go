// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"
)

func parseArgs(t *testing.T, args ...string) (Command, Args) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"parley"}, args...)
	defer func() { os.Args = oldArgs }()
	return Parse()
}

func TestParse_DefaultIsTUI(t *testing.T) {
	cmd, _ := parseArgs(t)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want TUI", cmd)
	}
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		arg  string
		want Command
	}{
		{"tui", CmdTUI},
		{"auth", CmdAuth},
		{"login", CmdAuth},
		{"config", CmdConfig},
		{"version", CmdVersion},
		{"--version", CmdVersion},
		{"help", CmdHelp},
		{"bogus", CmdHelp},
	}
	for _, tt := range tests {
		if cmd, _ := parseArgs(t, tt.arg); cmd != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.arg, cmd, tt.want)
		}
	}
}

func TestParse_ServerFlag(t *testing.T) {
	_, args := parseArgs(t, "--server", "https://x.example.com")
	if args.Server != "https://x.example.com" {
		t.Errorf("Server = %q", args.Server)
	}

	_, args = parseArgs(t, "--server=https://y.example.com", "auth")
	if args.Server != "https://y.example.com" {
		t.Errorf("Server = %q", args.Server)
	}
}

func TestParse_SubcommandArgs(t *testing.T) {
	cmd, args := parseArgs(t, "auth", "status")
	if cmd != CmdAuth {
		t.Fatalf("cmd = %v", cmd)
	}
	if len(args.Raw) != 1 || args.Raw[0] != "status" {
		t.Errorf("Raw = %v", args.Raw)
	}
}
