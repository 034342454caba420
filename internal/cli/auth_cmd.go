// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/parley-tui/internal/auth"
)

// =============================================================================
// AUTH COMMAND - Token management
// =============================================================================

// HandleAuth implements `parley auth [status|clear]`. With no subcommand it
// prompts for a token and stores it.
func HandleAuth(args Args) error {
	tokens, err := auth.NewTokenSource()
	if err != nil {
		return fmt.Errorf("failed to locate token file: %w", err)
	}

	sub := ""
	if len(args.Raw) > 0 {
		sub = strings.ToLower(args.Raw[0])
	}

	switch sub {
	case "", "login", "set":
		return promptAndStore(tokens)
	case "status":
		return printStatus(tokens)
	case "clear", "logout":
		if err := tokens.Clear(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		fmt.Println("Token cleared.")
		return nil
	default:
		return fmt.Errorf("unknown auth subcommand %q", sub)
	}
}

// promptAndStore reads the token without echo and saves it.
func promptAndStore(tokens *auth.TokenSource) error {
	fmt.Print("Token: ")

	var token string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = string(raw)
	} else {
		// Piped input, e.g. `echo $TOKEN | parley auth`.
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = line
	}

	if err := tokens.Save(token); err != nil {
		return err
	}
	fmt.Printf("Token stored in %s\n", tokens.Path)
	return nil
}

func printStatus(tokens *auth.TokenSource) error {
	if _, err := tokens.Token(); err != nil {
		fmt.Println("No token configured. Run `parley auth` to store one.")
		return nil
	}
	fmt.Printf("Token configured (fingerprint %s)\n", tokens.Fingerprint())
	return nil
}
