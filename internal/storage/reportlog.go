package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"

	"github.com/genc-murat/collectionmem/internal/core/models"
)

const maxLineSize = 1 << 20

// ReportLog appends reports as JSON lines. A sidecar lock file serializes
// writers across processes; mu serializes them within one.
type ReportLog struct {
	path string
	file *os.File
	lock *flock.Flock
	mu   sync.Mutex
}

func NewReportLog(path string) (*ReportLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening report log: %w", err)
	}

	return &ReportLog{
		path: path,
		file: f,
		lock: flock.New(path + ".lock"),
	}, nil
}

func (l *ReportLog) Path() string {
	return l.path
}

func (l *ReportLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *ReportLog) Write(r *models.Report) error {
	if r == nil {
		return nil
	}

	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.lock.Lock(); err != nil {
		return fmt.Errorf("error locking report log: %w", err)
	}
	defer l.lock.Unlock()

	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("error writing report log: %w", err)
	}
	return l.file.Sync()
}

// Read replays every stored report in append order.
func (l *ReportLog) Read(callback func(r models.Report)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.lock.RLock(); err != nil {
		return fmt.Errorf("error locking report log: %w", err)
	}
	defer l.lock.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("error opening report log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var r models.Report
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return fmt.Errorf("error decoding report log: %w", err)
		}
		callback(r)
	}
	return scanner.Err()
}
