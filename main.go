package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"presetbird/birdbase"
	"presetbird/logger"
	"presetbird/resolution"
	"presetbird/settings"

	"github.com/joho/godotenv"
)

const usage = `usage: presetbird <command> [flags]

commands:
  presets   print the presets of a ratio
  sync      reconcile the aspect ratio node of a saved workflow
  render    queue a workflow on ComfyUI
  prompt    write, expand or translate an image prompt
  captions  rename, delete, edit, sync or summarize caption files
  irc       run the IRC bot`

var errUsage = errors.New(usage)

func loadConfig() *settings.Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Error loading .env file", "error", err)
	}

	path := os.Getenv("PRESETBIRD_CONFIG")
	if path == "" {
		path = settings.DefaultConfigPath
	}

	config, err := settings.LoadConfig(path)
	if err != nil {
		logger.Fatal("Error loading config", "error", err)
	}
	logger.Init(config.Logging)
	return config
}

func openDatabase(ctx context.Context, config *settings.Config) {
	if err := birdbase.Init(config.Database.Path, config.Database.MaxValueSize); err != nil {
		logger.Fatal("Error opening database", "path", config.Database.Path, "error", err)
	}
	go birdbase.MergeEvery(ctx, time.Hour)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Error("presetbird failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "presets":
		return runPresets(args[1:], out)
	case "sync":
		return runSync(args[1:], loadConfig(), out)
	case "render":
		config := loadConfig()
		return runRender(ctx, args[1:], config, out)
	case "prompt":
		config := loadConfig()
		connector, err := newConnector(config.Text)
		if err != nil {
			return err
		}
		return runPrompt(ctx, args[1:], connector, out)
	case "captions":
		return runCaptions(args[1:], out)
	case "irc":
		config := loadConfig()
		openDatabase(ctx, config)
		defer func() {
			if err := birdbase.Close(); err != nil {
				logger.Error("Error closing database", "error", err)
			}
		}()
		return runIrc(ctx, config)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func runPresets(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	ratio := fs.String("ratio", "", "aspect ratio, all ratios when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ratios := resolution.Ratios()
	if *ratio != "" {
		if !resolution.IsSupported(*ratio) {
			return fmt.Errorf("%w: %s (supported: %s)", resolution.ErrInvalidRatio, *ratio, strings.Join(ratios, ", "))
		}
		ratios = []string{*ratio}
	}

	for _, r := range ratios {
		fmt.Fprintf(out, "%s\t%s\n", r, strings.Join(resolution.PresetsFor(r), ", "))
	}
	return nil
}
