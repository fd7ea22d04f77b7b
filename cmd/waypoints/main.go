package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dusk-indust/waypoints/internal/config"
	"github.com/dusk-indust/waypoints/internal/mcptools"
	"github.com/dusk-indust/waypoints/internal/waypoint"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot   string
	Model         string
	AllowDangling bool
	NoPersist     bool
	Verbose       bool
	ServeMCP      bool
	HTTPAddr      string
	Version       bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env bundles what every subcommand needs.
type env struct {
	root   string
	cfg    config.ProjectConfig
	flags  cliFlags
	log    *slog.Logger
	stdout io.Writer
}

func (e env) buildOptions() waypoint.Options {
	return waypoint.Options{
		Model:         e.cfg.ModelAsset,
		AllowDangling: e.cfg.AllowDangling,
		Logger:        e.log,
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("waypoints", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "directory holding waypoints.yml and the graph index")
	fs.StringVar(&flags.Model, "model", "", "model asset reference for created waypoints (overrides config)")
	fs.BoolVar(&flags.AllowDangling, "allow-dangling", false, "forward neighbor ids that match no waypoint")
	fs.BoolVar(&flags.NoPersist, "no-persist", false, "do not write the graph index after import")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.StringVar(&flags.HTTPAddr, "http", "", "with --serve-mcp, serve streamable HTTP on this address instead of stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: waypoints [flags] <import FILE | check FILE... | diagram | export>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	loaded, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := loaded.Defaults()
	if flags.Model != "" {
		cfg.ModelAsset = flags.Model
	}
	if flags.AllowDangling {
		cfg.AllowDangling = true
	}

	level := slog.LevelInfo
	if flags.Verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	e := env{root: flags.ProjectRoot, cfg: cfg, flags: flags, log: logger, stdout: stdout}

	if flags.ServeMCP {
		return serveMCP(ctx, e)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "import":
		return runImport(ctx, e, cmdArgs)
	case "check":
		return runCheck(ctx, e, cmdArgs)
	case "diagram":
		return runDiagram(ctx, e)
	case "export":
		return runExport(ctx, e)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func serveMCP(ctx context.Context, e env) error {
	svc := mcptools.NewWaypointService(nil, e.buildOptions())
	if !e.flags.NoPersist {
		graphPath := e.cfg.ResolveGraphPath(e.root)
		if persist := persistFunc(graphPath); persist != nil {
			svc.SetPersist(persist)
		} else {
			e.log.Warn("graph index not written: built without cgo", "path", graphPath)
		}
	}
	if e.flags.HTTPAddr != "" {
		e.log.Info("serving MCP over HTTP", "addr", e.flags.HTTPAddr)
		return mcptools.RunHTTP(ctx, svc, e.flags.HTTPAddr)
	}
	return mcptools.RunStdio(ctx, mcptools.NewWaypointMCPServer(svc))
}
