// Parley is an interactive chat client for MCP servers.
//
// It launches a server script as a subprocess, negotiates the MCP
// handshake over the subprocess's stdio, and bridges the server's
// tools to an OpenAI-compatible model so that queries can trigger
// real tool calls. Configuration is loaded from a single YAML file
// discovered automatically (see [config.DefaultSearchPaths]).
//
// Usage:
//
//	parley <server.py>              Start an interactive chat session
//	parley -members <server.py>     List the server's tools, prompts, and resources
//	parley version                  Print version and build information
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/parley-ai/parley/internal/buildinfo"
	"github.com/parley-ai/parley/internal/config"
	"github.com/parley-ai/parley/internal/mcp"
)

// main constructs the OS-level environment (context, stdio, argv) and
// delegates immediately to [run], keeping os.Exit and os.Args out of
// the application logic so the full lifecycle can be driven from tests.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point. Arguments are parsed by hand: the flag
// package relies on package-level globals, which makes it impossible
// to call run concurrently from tests, and the surface here is small.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	var configPath string
	var model string
	var logLevel string
	var outputFmt string
	var members bool
	var chat bool
	var serverPath string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case args[i] == "-model" && i+1 < len(args):
			model = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-model="):
			model = strings.TrimPrefix(args[i], "-model=")
		case args[i] == "-log-level" && i+1 < len(args):
			logLevel = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-log-level="):
			logLevel = strings.TrimPrefix(args[i], "-log-level=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			outputFmt = strings.TrimPrefix(args[i], "-o=")
		case args[i] == "-members" || args[i] == "--members":
			members = true
		case args[i] == "-chat" || args[i] == "--chat":
			chat = true
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case args[i] == "version" && serverPath == "":
			// Flags after the subcommand still apply (parley version -o json).
			for j := i + 1; j < len(args); j++ {
				switch {
				case (args[j] == "-o" || args[j] == "--output") && j+1 < len(args):
					outputFmt = args[j+1]
					j++
				case strings.HasPrefix(args[j], "-o="):
					outputFmt = strings.TrimPrefix(args[j], "-o=")
				default:
					return fmt.Errorf("unknown flag: %s", args[j])
				}
			}
			return runVersion(stdout, outputFmt)
		case !strings.HasPrefix(args[i], "-") && serverPath == "":
			serverPath = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if members && chat {
		return fmt.Errorf("-members and -chat are mutually exclusive")
	}
	if serverPath == "" {
		printUsage(stdout)
		return fmt.Errorf("server path is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if model != "" {
		cfg.Models.Chat = model
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level := slog.LevelWarn
	if cfg.LogLevel != "" {
		level, err = config.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
	}
	logger := newLogger(stderr, level)

	session := mcp.NewSession(logger)
	if err := session.Connect(ctx, serverPath); err != nil {
		return err
	}
	defer session.Close()

	if members {
		return runMembers(ctx, stdout, session)
	}
	return runChat(ctx, stdout, cfg, logger, session, serverPath)
}

// runVersion prints build metadata in a stable order.
func runVersion(w io.Writer, outputFmt string) error {
	info := buildinfo.Info()
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	if outputFmt != "" && outputFmt != "text" {
		return fmt.Errorf("unknown output format: %q (expected text or json)", outputFmt)
	}
	fmt.Fprintln(w, buildinfo.String())
	for _, k := range []string{"version", "git_commit", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "Parley - MCP chat client")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: parley [flags] <server-script>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Modes (mutually exclusive; -chat is assumed when neither is given):")
	fmt.Fprintln(w, "  -chat        Interactive chat with tool support")
	fmt.Fprintln(w, "  -members     List the server's tools, prompts, and resources")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>      Path to config file (default: auto-discover)")
	fmt.Fprintln(w, "  -model <name>       Chat model (default: from config)")
	fmt.Fprintln(w, "  -log-level <level>  trace, debug, info, warn, or error")
	fmt.Fprintln(w, "  -o, --output fmt    version output format: text (default) or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	fmt.Fprintln(w, "  ./parley.yaml, ~/.config/parley/config.yaml, /etc/parley/config.yaml")
	return nil
}

// newLogger standardizes the handler configuration across modes. Logs
// go to stderr so styled chat output on stdout stays clean.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
