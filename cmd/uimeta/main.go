package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gnana997/uimeta/pkg/mcp"
	"github.com/gnana997/uimeta/pkg/provider"
	"github.com/gnana997/uimeta/pkg/registry"
	"github.com/gnana997/uimeta/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "serve: %v\n", err)
			os.Exit(1)
		}
	case "inspect":
		if err := runInspect(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("uimeta %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runServe starts the MCP server on stdin/stdout. Logs go to stderr so
// they never interleave with the protocol stream.
func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		configPath = fs.String("config", defaultConfigPath, "project config file")
		path       = fs.String("path", "", "component library directory")
		remote     = fs.String("remote", "", "git remote holding the library")
		branch     = fs.String("branch", "", "git branch (default: remote default)")
		subdir     = fs.String("subdir", "", "library subdirectory within the clone")
		cloneDir   = fs.String("clone-dir", "", "local clone directory for git remotes")
		exclude    = fs.String("exclude", "", "comma-separated extra exclude globs")
		watch      = fs.Bool("watch", false, "invalidate caches on file changes")
		debounceMs = fs.Int("debounce-ms", 0, "watcher debounce window")
		cacheSize  = fs.Int("cache-size", 0, "artifact text cache capacity")
		toolLog    = fs.String("tool-log", "", "JSONL tool-call log file")
		logLevel   = fs.String("log-level", "", "log level: debug, info, warn, error")
		logFormat  = fs.String("log-format", "", "log format: json or text")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadProjectConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		cfg = &ProjectConfig{}
	}

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.LogLevel(resolveString(*logLevel, cfg.Log.Level, string(util.LevelInfo))),
		Format: util.LogFormat(resolveString(*logFormat, cfg.Log.Format, string(util.FormatJSON))),
		Output: os.Stderr,
	})
	util.SetDefault(logger)

	localCfg := provider.LocalConfig{
		Root:    resolveString(*path, cfg.Library.Path, "."),
		Exclude: splitGlobs(resolveString(*exclude, strings.Join(cfg.Library.Exclude, ","), "")),
	}

	var source provider.SourceProvider
	var local *provider.LocalProvider

	remoteURL := resolveString(*remote, cfg.Library.Remote, "")
	if remoteURL != "" {
		gp, err := provider.NewGitProvider(provider.GitConfig{
			RemoteURL: remoteURL,
			Branch:    resolveString(*branch, cfg.Library.Branch, ""),
			Path:      resolveString(*cloneDir, cfg.Library.CloneDir, ".uimeta/clone"),
			Subdir:    resolveString(*subdir, cfg.Library.Subdir, ""),
			Token:     os.Getenv("UIMETA_GIT_TOKEN"),
			Local:     localCfg,
		}, logger)
		if err != nil {
			return err
		}
		defer gp.Close()
		source = gp
	} else {
		lp, err := provider.NewLocalProvider(localCfg, logger)
		if err != nil {
			return err
		}
		defer lp.Close()
		source = lp
		local = lp
	}

	cached := provider.NewCachingProvider(source, resolveInt(*cacheSize, cfg.Serve.CacheSize, 0), logger)

	// Watching needs a local tree; git clones are synced once per run
	// and do not change underneath us.
	if (*watch || cfg.Serve.Watch) && local != nil {
		watcher, err := provider.NewWatcher(local, cached, provider.WatchOptions{
			DebounceMs: resolveInt(*debounceMs, cfg.Serve.DebounceMs, 0),
		}, logger)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer watcher.Stop()
	}

	calls, err := mcp.NewCallLogger(resolveString(*toolLog, cfg.Serve.ToolLog, ""))
	if err != nil {
		return fmt.Errorf("open tool log: %w", err)
	}
	if calls != nil {
		defer calls.Close()
	}

	reg := registry.New(cached, logger)
	logger.Info("starting MCP server", "root", localCfg.Root, "remote", remoteURL)
	return mcp.NewServer(reg, calls, logger).ServeStdio()
}

// runInspect prints one component's metadata, or scans the whole
// library when no component is named.
func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var (
		configPath = fs.String("config", defaultConfigPath, "project config file")
		path       = fs.String("path", "", "component library directory")
		asJSON     = fs.Bool("json", false, "print raw JSON instead of a summary")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadProjectConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		cfg = &ProjectConfig{}
	}

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.LevelWarn,
		Format: util.FormatText,
		Output: os.Stderr,
	})

	lp, err := provider.NewLocalProvider(provider.LocalConfig{
		Root:    resolveString(*path, cfg.Library.Path, "."),
		Exclude: cfg.Library.Exclude,
	}, logger)
	if err != nil {
		return err
	}
	defer lp.Close()

	reg := registry.New(lp, logger)
	ctx := context.Background()

	if fs.NArg() == 0 {
		report, err := reg.ScanAll(ctx)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(report)
		}
		for _, comp := range report.Components {
			fmt.Printf("%-24s props=%-3d stories=%-3s docs=%-3s tests=%s\n",
				comp.Name, len(comp.Props),
				yesNo(comp.HasStories), yesNo(comp.HasDocumentation), yesNo(comp.HasTests))
		}
		for _, failed := range report.Failed {
			fmt.Fprintf(os.Stderr, "  ! %s: %v\n", failed.Component, failed.Err)
		}
		return nil
	}

	meta, err := reg.ComponentMetadata(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(meta)
	}
	printComponentHuman(meta)
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// splitGlobs parses a comma-separated pattern list, dropping empties.
func splitGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func printUsage() {
	fmt.Println("Usage: uimeta <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Start the MCP server over stdio")
	fmt.Println("  inspect    Print metadata for a component, or scan the whole library")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Run 'uimeta serve -h' or 'uimeta inspect -h' for command flags.")
}
