package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sskannan007/UX-CAG/internal/extract"
)

func testRunner(t *testing.T, keepArtifacts bool) *Runner {
	t.Helper()
	gaz, err := extract.DefaultGazetteer()
	if err != nil {
		t.Fatalf("DefaultGazetteer: %v", err)
	}
	return NewRunner(gaz, slog.New(slog.NewTextHandler(io.Discard, nil)), keepArtifacts)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeDocx drops a file with a .docx name into dir. The content does not
// need to be a valid package: the structure extractor recovers corrupt files
// into a placeholder document, so the pipeline still completes.
func writeDocx(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not a real word document"), 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return path
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/in/report.docx", "report"},
		{"report.DOCX", "report"},
		{"no_extension", "no_extension"},
		{"/data/in/dotted.name.docx", "dotted.name"},
	}
	for _, tt := range tests {
		if got := Stem(tt.path); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRunnerWritesJSON(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeDocx(t, inDir, "report.docx")

	out, err := testRunner(t, false).Process(context.Background(), path, outDir)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != filepath.Join(outDir, "report.json") {
		t.Fatalf("output path = %q", out)
	}

	buf, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(buf, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"metadata", "parts"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("output missing %q key", key)
		}
	}
}

func TestRunnerKeepsArtifacts(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	path := writeDocx(t, inDir, "report.docx")

	if _, err := testRunner(t, true).Process(context.Background(), path, outDir); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for _, name := range []string{"report.json", "report.xml", "report.md"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}
}

func TestBatchSkipsExistingOutput(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeDocx(t, inDir, "done.docx")
	if err := os.WriteFile(filepath.Join(outDir, "done.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	b := NewBatch(testRunner(t, false), testLogger(), 2, false, 0)
	snapshot, err := b.Run(context.Background(), inDir, outDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snapshot.Skipped != 1 || snapshot.Processed != 0 {
		t.Fatalf("snapshot = %+v, want 1 skipped", snapshot)
	}
}

func TestBatchForceReprocesses(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeDocx(t, inDir, "done.docx")
	outPath := filepath.Join(outDir, "done.json")
	if err := os.WriteFile(outPath, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	b := NewBatch(testRunner(t, false), testLogger(), 1, true, 0)
	snapshot, err := b.Run(context.Background(), inDir, outDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snapshot.Processed != 1 {
		t.Fatalf("snapshot = %+v, want 1 processed", snapshot)
	}
	buf, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(buf) == "stale" {
		t.Fatal("force did not rewrite the output")
	}
}

func TestBatchExcludesValidationFiles(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeDocx(t, inDir, "test_sample.docx")
	writeDocx(t, inDir, "validation_run.docx")
	writeDocx(t, inDir, "real.docx")

	b := NewBatch(testRunner(t, false), testLogger(), 2, false, 0)
	snapshot, err := b.Run(context.Background(), inDir, outDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snapshot.Excluded != 2 || snapshot.Processed != 1 {
		t.Fatalf("snapshot = %+v, want 2 excluded and 1 processed", snapshot)
	}
}

func TestBatchIgnoresNonDocx(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	b := NewBatch(testRunner(t, false), testLogger(), 1, false, 0)
	snapshot, err := b.Run(context.Background(), inDir, outDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snapshot.Total() != 0 {
		t.Fatalf("snapshot = %+v, want empty", snapshot)
	}
}

func TestBatchRejectsOversizeFile(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeDocx(t, inDir, "big.docx")

	b := NewBatch(testRunner(t, false), testLogger(), 1, false, 4)
	snapshot, err := b.Run(context.Background(), inDir, outDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snapshot.Failed != 1 {
		t.Fatalf("snapshot = %+v, want 1 failed", snapshot)
	}
}

func TestStatsConcurrentRecord(t *testing.T) {
	var stats Stats
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.Record(StatusProcessed)
			stats.Record(StatusFailed)
		}()
	}
	wg.Wait()
	snapshot := stats.Snapshot()
	if snapshot.Processed != 50 || snapshot.Failed != 50 {
		t.Fatalf("snapshot = %+v", snapshot)
	}
	if snapshot.Total() != 100 {
		t.Fatalf("total = %d", snapshot.Total())
	}
}
