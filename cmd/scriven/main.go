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

	"github.com/scrivenlabs/scriven/internal/archive"
	"github.com/scrivenlabs/scriven/internal/asr"
	"github.com/scrivenlabs/scriven/internal/config"
	"github.com/scrivenlabs/scriven/internal/pipeline"
	"github.com/scrivenlabs/scriven/internal/render"
)

var version = "0.1.0-dev"

func main() {
	var (
		configPath  string
		audioPath   string
		outputDir   string
		language    string
		model       string
		interviewer string
		participant string
		formats     string
		checkOnly   bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file (defaults apply when omitted)")
	flag.StringVar(&audioPath, "audio", "", "Path to the interview recording")
	flag.StringVar(&outputDir, "out", "", "Project output root (overrides config)")
	flag.StringVar(&language, "language", "", "Spoken language code (overrides config)")
	flag.StringVar(&model, "model", "", "Recognizer model name (overrides config)")
	flag.StringVar(&interviewer, "interviewer", "", "Interviewer display name")
	flag.StringVar(&participant, "participant", "", "Participant display name")
	flag.StringVar(&formats, "formats", "", "Comma-separated output formats: text,markdown,json")
	flag.BoolVar(&checkOnly, "check", false, "Validate configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if checkOnly {
		fmt.Println("configuration valid")
		return
	}

	if audioPath == "" {
		fmt.Fprintln(os.Stderr, "missing required -audio flag")
		flag.Usage()
		os.Exit(2)
	}

	if outputDir != "" {
		cfg.Project.OutputDir = outputDir
	}
	if formats != "" {
		cfg.Project.Formats = splitList(formats)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := archive.Open(ctx, cfg.Archive, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	recognizer, err := asr.New(cfg.ASR)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runner := pipeline.New(cfg, recognizer, store, logger)
	outcome, err := runner.Run(ctx, pipeline.Job{
		AudioPath:   audioPath,
		Language:    language,
		Model:       model,
		Interviewer: interviewer,
		Participant: participant,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	doc := render.Document{Meta: outcome.Meta, Turns: outcome.Turns, Stats: outcome.Stats}
	fmt.Print(render.Console(doc))
	fmt.Printf("\nProject folder: %s\n", outcome.ProjectDir)
	for _, file := range outcome.OutputFiles {
		fmt.Printf("  wrote %s\n", file)
	}
	if outcome.Duplicate {
		fmt.Println("note: recording matches an archived interview; archive left unchanged")
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
