// Discovery: MCP server for software-integration discovery analysis.
//
// Analyzes discovery documents (emails, call transcripts, SOWs,
// requirement docs) for gaps, ambiguities, and conflicts, tracks a
// per-project confidence score, and fills deliverable templates from
// the results.
//
// Usage:
//
//	discovery serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	discoveryserver "github.com/offbench/discovery-mcp/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("discovery v%s\n", discoveryserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := discoveryserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Discovery v%s — integration discovery analysis MCP server

Usage:
  discovery serve    Start the MCP server (stdio transport)

Configuration (environment):
  DISCOVERY_STORAGE_ROOT        Project storage root (default "projects")
  DISCOVERY_SYNC_DB             Path to the sync database (sync disabled when unset)
  AUTO_SYNC_ON_ANALYZE          Auto-sync after analysis (default false)
  AUTO_SYNC_ON_UPDATE           Auto-sync after context updates (default false)
  DISCOVERY_PREFER_SUMMARIES    Analyze summaries over full email bodies (default true)

MCP config:

  {
    "mcpServers": {
      "discovery": {
        "command": "discovery",
        "args": ["serve"]
      }
    }
  }
`, discoveryserver.Version)
}
