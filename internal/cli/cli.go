// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the non-TUI
// subcommands.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information, set by main at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies which subcommand was requested.
type Command int

const (
	// CmdTUI launches the chat interface. This is the default.
	CmdTUI Command = iota
	// CmdAuth manages the stored bearer token.
	CmdAuth
	// CmdConfig prints or edits configuration.
	CmdConfig
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
)

// Args carries the parsed arguments for a command.
type Args struct {
	// Raw is everything after the subcommand.
	Raw []string

	// Server overrides the configured backend URL (--server).
	Server string
}

const usageText = `parley - terminal client for a conversational agent backend

Usage:
  parley [flags]            Launch the chat interface
  parley auth               Store the bearer token (prompted, hidden input)
  parley auth status        Show whether a token is configured
  parley auth clear         Remove the stored token
  parley config             Show the active configuration
  parley config path        Show the configuration file location
  parley version            Show version information
  parley help               Show this help

Flags:
  --server URL              Override the backend URL for this run

Environment:
  PARLEY_TOKEN              Bearer token (overrides the token file)
  PARLEY_SERVER             Backend URL (overrides the config file)
`

// Parse reads os.Args and returns the requested command.
func Parse() (Command, Args) {
	args := os.Args[1:]
	remaining, parsed := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	parsed.Raw = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, parsed
	case "auth", "login":
		return CmdAuth, parsed
	case "config":
		return CmdConfig, parsed
	case "version", "-v", "--version":
		return CmdVersion, parsed
	case "help", "-h", "--help":
		return CmdHelp, parsed
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags strips flags that apply to every command.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--server" && i+1 < len(args):
			parsed.Server = args[i+1]
			i++
		case strings.HasPrefix(arg, "--server="):
			parsed.Server = strings.TrimPrefix(arg, "--server=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, parsed
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("parley %s (%s, built %s)\n", Version, GitCommit, BuildDate)
}
