// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/parley-tui/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig implements `parley config [path]`.
func HandleConfig(args Args) error {
	sub := ""
	if len(args.Raw) > 0 {
		sub = strings.ToLower(args.Raw[0])
	}

	switch sub {
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "", "show":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("server_url     = %s\n", cfg.ServerURL)
		fmt.Printf("ui.theme       = %s\n", cfg.UI.Theme)
		fmt.Printf("ui.timestamps  = %t\n", cfg.UI.ShowTimestamps)
		fmt.Printf("ui.reasoning   = %t\n", cfg.UI.ShowReasoning)
		fmt.Printf("sidebar_width  = %d\n", cfg.UI.SidebarWidth)
		fmt.Printf("log.enabled    = %t\n", cfg.Log.Enabled)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q", sub)
	}
}
