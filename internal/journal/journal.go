package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the journal file kept inside each organized directory.
const FileName = ".tnivo.journal"

// ActionMove is the only action type currently recorded.
const ActionMove = "move"

// Record is one completed move, serialized as a single JSON line.
type Record struct {
	RunID       string    `json:"run_id"`
	Action      string    `json:"action"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Timestamp   time.Time `json:"ts"`
}

// PathFor returns the journal location for an organized directory.
func PathFor(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether a journal with at least one byte is present.
func Exists(dir string) bool {
	info, err := os.Stat(PathFor(dir))
	return err == nil && info.Size() > 0
}

// Writer appends records to a directory's journal. Records are flushed on
// every Append so a crash mid-run loses at most the in-flight move.
type Writer struct {
	file *os.File
}

// OpenWriter opens (creating if needed) the journal for appending.
func OpenWriter(dir string) (*Writer, error) {
	file, err := os.OpenFile(PathFor(dir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Writer{file: file}, nil
}

// Append writes one record as a JSON line.
func (w *Writer) Append(rec Record) error {
	if w == nil || w.file == nil {
		return errors.New("journal writer is closed")
	}
	if rec.Action == "" {
		rec.Action = ActionMove
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode journal record: %w", err)
	}
	line = append(line, '\n')
	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("append journal record: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// ReadAll parses the journal in recorded order. Blank and malformed lines are
// skipped; the second return value counts how many were dropped.
func ReadAll(dir string) ([]Record, int, error) {
	file, err := os.Open(PathFor(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	var records []Record
	skipped := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			skipped++
			continue
		}
		if rec.Source == "" || rec.Destination == "" {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read journal: %w", err)
	}
	return records, skipped, nil
}

// Truncate empties the journal after a completed reversal. A missing journal
// is not an error.
func Truncate(dir string) error {
	err := os.Truncate(PathFor(dir), 0)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("truncate journal: %w", err)
	}
	return nil
}
