package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hpungsan/promptlib/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"categories": true, "prompts": true, "checkpoints": true,
	"import": true, "export": true, "validate": true, "reset": true,
	"snapshots": true, "stats": true, "serve": true, "mcp": true,
	"help": true, "h": true,
}

// globalFlags are app-level flags that may precede a subcommand.
var globalFlags = []string{"--data-dir", "--verbose", "--format"}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	if len(args) < 2 {
		return false // No args → MCP server
	}
	arg := args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	// Global flag before the subcommand → CLI
	for _, f := range globalFlags {
		if arg == f || strings.HasPrefix(arg, f+"=") {
			return true
		}
	}
	return false // Default → MCP server
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
                                  _   _ _ _
   _ __  _ __ ___  _ __ ___  _ __ | |_| (_) |__
  | '_ \| '__/ _ \| '_ ' _ \| '_ \| __| | | '_ \
  | |_) | | | (_) | | | | | | |_) | |_| | | |_) |
  | .__/|_|  \___/|_| |_| |_| .__/ \__|_|_|_.__/
  |_|                       |_|

  Local prompt and checkpoint library

  Usage: promptlib <command> [options]
         promptlib --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTTY(os.Stdin) {
		printBanner()
		return
	}

	e := &env{errOut: os.Stderr}
	defer e.close()

	if isCLIMode(os.Args) {
		app := newCLIApp(e)
		if err := app.Run(os.Args); err != nil {
			if msg := err.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "error: %s\n", msg)
			}
			e.close()
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTTY(os.Stdin) {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'promptlib --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default). The data dir comes from the environment.
	e.dataDir = os.Getenv("PROMPTLIB_DATA_DIR")
	s, err := e.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := mcp.Run(s, e.config(), e.log, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		e.close()
		os.Exit(1)
	}
}
