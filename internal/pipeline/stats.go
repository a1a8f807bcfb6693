package pipeline

import "sync"

// FileStatus is the outcome of one document run.
type FileStatus string

const (
	StatusProcessed FileStatus = "processed"
	StatusSkipped   FileStatus = "skipped"
	StatusExcluded  FileStatus = "excluded"
	StatusFailed    FileStatus = "failed"
)

// FileResult describes one document run: where the JSON landed, or why the
// file was not processed.
type FileResult struct {
	Input  string     `json:"input"`
	Output string     `json:"output,omitempty"`
	Status FileStatus `json:"status"`
	Err    error      `json:"-"`
}

// Stats counts batch outcomes. Safe for concurrent workers.
type Stats struct {
	mu sync.Mutex

	processed int
	skipped   int
	excluded  int
	failed    int
}

func (s *Stats) Record(status FileStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch status {
	case StatusProcessed:
		s.processed++
	case StatusSkipped:
		s.skipped++
	case StatusExcluded:
		s.excluded++
	case StatusFailed:
		s.failed++
	}
}

// StatsSnapshot is a read-only, JSON-safe copy of the counters.
type StatsSnapshot struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Excluded  int `json:"excluded"`
	Failed    int `json:"failed"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Processed: s.processed,
		Skipped:   s.skipped,
		Excluded:  s.excluded,
		Failed:    s.failed,
	}
}

func (sn StatsSnapshot) Total() int {
	return sn.Processed + sn.Skipped + sn.Excluded + sn.Failed
}
