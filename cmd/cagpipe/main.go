package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sskannan007/UX-CAG/internal/config"
	"github.com/sskannan007/UX-CAG/internal/extract"
	"github.com/sskannan007/UX-CAG/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	var (
		inputDir  = flag.String("input", cfg.InputDir, "directory of .docx files to process")
		outputDir = flag.String("output", cfg.OutputDir, "directory for the extracted JSON")
		file      = flag.String("file", "", "process a single .docx file instead of a directory")
		force     = flag.Bool("force", cfg.Force, "reprocess files whose JSON already exists")
		keep      = flag.Bool("keep-artifacts", cfg.KeepArtifacts, "keep the intermediate .xml and .md files")
	)
	flag.BoolVar(force, "f", *force, "shorthand for -force")
	flag.Parse()

	cfg.InputDir = *inputDir
	cfg.OutputDir = *outputDir
	cfg.Force = *force
	cfg.KeepArtifacts = *keep
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gaz, err := extract.LoadGazetteer(cfg.GazetteerPath)
	if err != nil {
		log.Error("gazetteer load failed", "path", cfg.GazetteerPath, "error", err)
		os.Exit(1)
	}
	if cfg.FuzzyThreshold > 0 {
		gaz.FuzzyThreshold = cfg.FuzzyThreshold
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
	}()

	runner := pipeline.NewRunner(gaz, log, cfg.KeepArtifacts)

	if *file != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("create output dir failed", "error", err)
			os.Exit(1)
		}
		out, err := runner.Process(ctx, *file, cfg.OutputDir)
		if err != nil {
			log.Error("processing failed", "file", *file, "error", err)
			os.Exit(1)
		}
		log.Info("done", "output", out)
		return
	}

	batch := pipeline.NewBatch(runner, log, cfg.WorkerCount, cfg.Force, cfg.MaxDocxBytes)
	snapshot, err := batch.Run(ctx, cfg.InputDir, cfg.OutputDir)
	if err != nil {
		log.Error("batch aborted", "error", err)
		os.Exit(1)
	}
	if snapshot.Failed > 0 {
		os.Exit(1)
	}
}
