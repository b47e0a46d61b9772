package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/parley-ai/parley/internal/buildinfo"
	"github.com/parley-ai/parley/internal/chat"
	"github.com/parley-ai/parley/internal/config"
	"github.com/parley-ai/parley/internal/llm"
	"github.com/parley-ai/parley/internal/mcp"
	"github.com/parley-ai/parley/internal/tui"
)

// runChat drives the interactive loop. One query in, one answer out;
// a failed query is printed and the loop keeps going. The loop ends
// on "quit", "exit", ctrl-d, or ctrl-c.
func runChat(ctx context.Context, stdout io.Writer, cfg *config.Config, logger *slog.Logger, session *mcp.Session, serverPath string) error {
	client, err := llm.NewOpenAIClient(cfg.ResolveAPIKey(), cfg.OpenAI.BaseURL, logger)
	if err != nil {
		return err
	}

	orch := chat.NewOrchestrator(session, client, cfg.Models.Chat, cfg.Models.MaxTokens, logger)

	tools, err := session.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("fetch tool catalog: %w", err)
	}
	fmt.Fprint(stdout, tui.Banner(buildinfo.Version, cfg.Models.Chat, serverPath, len(tools)))

	// ANSI escape for the prompt color; lipgloss styles don't survive
	// readline's redraw.
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[38;2;95;175;215m❯\033[0m ",
		HistoryFile:     historyPath(),
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprint(stdout, tui.Error(err))
			continue
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if isExitCommand(query) {
			return nil
		}

		answer, err := orch.ProcessQuery(ctx, query)
		if err != nil {
			fmt.Fprint(stdout, tui.Error(err))
			continue
		}
		fmt.Fprint(stdout, tui.Answer(answer))
	}
}

// isExitCommand reports whether the input ends the loop. Matching is
// case-insensitive so "Quit" works too.
func isExitCommand(query string) bool {
	switch strings.ToLower(query) {
	case "quit", "exit":
		return true
	}
	return false
}

// historyPath places the readline history in the user's config
// directory, next to where the config file lives. The temp directory
// is the fallback only when no user dir can be resolved.
func historyPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".parley_history")
	}
	dir = filepath.Join(dir, "parley")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return filepath.Join(os.TempDir(), ".parley_history")
	}
	return filepath.Join(dir, "history")
}
