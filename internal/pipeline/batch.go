package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Prefixes of files the batch never processes.
var excludedPrefixes = []string{"test_", "validation_"}

// Batch walks a directory of .docx files and fans them out over a small
// worker pool. Files are independent, so one corrupt document only fails its
// own slot.
type Batch struct {
	runner *Runner
	log    *slog.Logger

	workers      int
	force        bool
	maxDocxBytes int64

	stats Stats
}

func NewBatch(runner *Runner, log *slog.Logger, workers int, force bool, maxDocxBytes int64) *Batch {
	if workers <= 0 {
		workers = 1
	}
	return &Batch{
		runner:       runner,
		log:          log,
		workers:      workers,
		force:        force,
		maxDocxBytes: maxDocxBytes,
	}
}

// Run processes every .docx under inputDir into outputDir and returns the
// outcome counters. Already-converted files are skipped unless force is set;
// test_ and validation_ files are excluded outright.
func (b *Batch) Run(ctx context.Context, inputDir, outputDir string) (StatsSnapshot, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return StatsSnapshot{}, fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return StatsSnapshot{}, fmt.Errorf("create output dir: %w", err)
	}

	queue := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				result := b.processOne(ctx, path, outputDir)
				b.stats.Record(result.Status)
			}
		}()
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".docx") {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		queue <- filepath.Join(inputDir, entry.Name())
	}
	close(queue)
	wg.Wait()

	snapshot := b.stats.Snapshot()
	b.log.Info("batch complete",
		"total", snapshot.Total(),
		"processed", snapshot.Processed,
		"skipped", snapshot.Skipped,
		"excluded", snapshot.Excluded,
		"failed", snapshot.Failed)
	return snapshot, ctx.Err()
}

func (b *Batch) processOne(ctx context.Context, path, outputDir string) FileResult {
	name := filepath.Base(path)
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			b.log.Debug("file excluded", "file", name)
			return FileResult{Input: path, Status: StatusExcluded}
		}
	}

	outPath := filepath.Join(outputDir, Stem(path)+".json")
	if !b.force {
		if _, err := os.Stat(outPath); err == nil {
			b.log.Debug("output exists, skipping", "file", name)
			return FileResult{Input: path, Output: outPath, Status: StatusSkipped}
		}
	}

	if b.maxDocxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			b.log.Error("stat failed", "file", name, "error", err)
			return FileResult{Input: path, Status: StatusFailed, Err: err}
		}
		if info.Size() > b.maxDocxBytes {
			err := fmt.Errorf("file size %d exceeds limit %d", info.Size(), b.maxDocxBytes)
			b.log.Error("file too large", "file", name, "error", err)
			return FileResult{Input: path, Status: StatusFailed, Err: err}
		}
	}

	out, err := b.runner.Process(ctx, path, outputDir)
	if err != nil {
		b.log.Error("processing failed", "file", name, "error", err)
		return FileResult{Input: path, Status: StatusFailed, Err: err}
	}
	return FileResult{Input: path, Output: out, Status: StatusProcessed}
}
