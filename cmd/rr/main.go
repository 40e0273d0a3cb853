package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/neotica/restaurantreview/pkg/client"
	"github.com/neotica/restaurantreview/pkg/config"
	"github.com/neotica/restaurantreview/pkg/controller"
	"github.com/neotica/restaurantreview/pkg/journal"
	"github.com/neotica/restaurantreview/pkg/logging"
	"github.com/neotica/restaurantreview/pkg/plain"
	"github.com/neotica/restaurantreview/pkg/ui"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rr: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	help := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default .rr/config.yaml if present)")
	id := flag.String("id", "", "Restaurant id")
	reviewer := flag.String("reviewer", "", "Reviewer name used for new reviews")
	baseURL := flag.String("base-url", "", "Restaurant API base URL")
	plainMode := flag.Bool("plain", false, "Print plain output instead of the full-screen UI")
	review := flag.String("review", "", "Post this review after loading (implies -plain)")
	history := flag.Bool("history", false, "Show recently submitted reviews and exit")
	historyLimit := flag.Int("limit", journal.DefaultLimit, "Number of entries for -history")
	flag.Parse()

	if *help {
		fmt.Println("Usage: rr [options]")
		fmt.Println("\nA terminal client for a restaurant's reviews.")
		flag.PrintDefaults()
		return nil
	}

	if *showVersion {
		fmt.Printf("rr version %s\n", version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *id != "" {
		cfg.RestaurantID = *id
	}
	if *reviewer != "" {
		cfg.Reviewer = *reviewer
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	useTUI := stdoutTTY && !*plainMode && *review == "" && !*history

	// The full-screen UI owns stdout, so logs go to a file.
	logOut := os.Stderr
	if useTUI {
		f, err := tea.LogToFile(cfg.LogFile, "rr")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: logging.ParseLevel(cfg.LogLevel) == slog.LevelDebug,
	})
	slog.SetDefault(logger)

	var j *journal.Journal
	if !cfg.DisableJournal {
		j = journal.TryOpen(cfg.JournalPath, logger)
		if j != nil {
			defer j.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *history {
		if j == nil {
			return errors.New("journal is disabled or unavailable")
		}
		return printHistory(ctx, os.Stdout, j, cfg.RestaurantID, *historyLimit)
	}

	rc, err := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithUserAgent("rr/"+version),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctrlCfg := controller.Config{
		RestaurantID:   cfg.RestaurantID,
		ReviewerName:   cfg.Reviewer,
		PictureBaseURL: cfg.PictureBase(),
	}
	opts := []controller.Option{controller.WithLogger(logger)}
	if j != nil {
		opts = append(opts, controller.WithJournal(j))
	}

	mode := "plain"
	if useTUI {
		mode = "tui"
	}
	logger.Info("starting",
		"mode", mode,
		"base_url", cfg.BaseURL,
		"restaurant_id", cfg.RestaurantID,
		"reviewer", cfg.Reviewer,
	)

	if useTUI {
		m := ui.NewModel(ctx, ctrlCfg, rc, opts...)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("running restaurant screen: %w", err)
		}
		return nil
	}

	v := plain.NewView(os.Stdout)
	ctrl := controller.New(ctrlCfg, rc, v, opts...)

	var prompt plain.Prompter
	if *plainMode && stdoutTTY && term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = plain.HuhPrompt
	}
	return plain.Run(ctx, ctrl, v, *review, prompt)
}
