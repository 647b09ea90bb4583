package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tui"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := initLogger(conf)
	if err != nil {
		return err
	}
	defer closeLog()

	model := tui.New(logger, entity.NewGame(pkg.GenerateSessionID()))

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err = program.Run(); err != nil {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	return nil
}

// initLogger writes to log-file when set; the terminal belongs to the board otherwise.
func initLogger(conf *config.Config) (*slog.Logger, func(), error) {
	var out io.Writer = io.Discard
	closeLog := func() {}

	if conf.LogFile != "" {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}

		out = file
		closeLog = func() { _ = file.Close() }
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)})

	return slog.New(handler), closeLog, nil
}
