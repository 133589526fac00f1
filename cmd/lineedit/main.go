package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/linesmith/lineedit-mcp-server/internal/server"
	"github.com/linesmith/lineedit-mcp-server/internal/workspace"
)

var version = "dev"

// parseWorkspaceArgs turns positional "tag=path" arguments into a root map
// plus the tag order they were given in. With no arguments the stable and
// construction workspaces default to the current directory and ./construction.
func parseWorkspaceArgs(args []string) (map[string]string, []string, error) {
	if len(args) == 0 {
		return map[string]string{
				workspace.TagStable:       ".",
				workspace.TagConstruction: "./construction",
			}, []string{workspace.TagStable, workspace.TagConstruction},
			nil
	}

	roots := make(map[string]string, len(args))
	var order []string
	for _, arg := range args {
		tag, path, ok := strings.Cut(arg, "=")
		if !ok || tag == "" || path == "" {
			return nil, nil, fmt.Errorf("invalid workspace argument %q, expected tag=path", arg)
		}
		if _, dup := roots[tag]; dup {
			return nil, nil, fmt.Errorf("duplicate workspace tag %q", tag)
		}
		roots[tag] = path
		order = append(order, tag)
	}
	return roots, order, nil
}

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	listWorkspaces := flag.Bool("list", false, "List configured workspaces and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	roots, order, err := parseWorkspaceArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	resolver, err := workspace.NewResolver(roots, order, order[0], logger)
	if err != nil {
		logger.Error("failed to set up workspaces", "error", err)
		os.Exit(1)
	}

	if *listWorkspaces {
		for _, tag := range resolver.Tags() {
			root, err := resolver.Root(tag)
			if err != nil {
				continue
			}
			fmt.Printf("%s=%s\n", tag, root)
		}
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	srv := server.New(resolver, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
