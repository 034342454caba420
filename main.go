// Parley - a terminal client for a conversational agent backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/auth"
	"github.com/jeranaias/parley-tui/internal/cli"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAuth:
		if err := cli.HandleAuth(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdConfig:
		if err := cli.HandleConfig(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

// runTUI wires config, token source and API client together and starts the
// Bubble Tea program.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	if args.Server != "" {
		cfg.ServerURL = args.Server
	}

	setupLogging(cfg)

	tokens, err := auth.NewTokenSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := tokens.Token(); err != nil {
		fmt.Fprintln(os.Stderr, "No token configured. Run `parley auth` first,")
		fmt.Fprintln(os.Stderr, "or set PARLEY_TOKEN in the environment.")
		os.Exit(1)
	}

	client := api.NewClient(cfg.ServerURL, tokens)

	p := tea.NewProgram(
		chat.New(client, cfg),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends the stdlib logger to the configured file, or discards
// it. Logging to the terminal would fight the TUI for the screen.
func setupLogging(cfg *config.Config) {
	if !cfg.Log.Enabled {
		log.SetOutput(io.Discard)
		return
	}

	path, err := cfg.LogPath()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
	log.Printf("parley %s starting, backend %s", Version, cfg.ServerURL)
}
