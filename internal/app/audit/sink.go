package audit

import (
	"encoding/json"
	"os"
	"sync"
)

// FileSink appends audit entries as JSONL.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

var _ Sink = (*FileSink)(nil)

// NewFileSink opens (or creates) the audit file for appending. An empty path
// yields a nil sink, which the trail treats as "in-memory only".
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: f}, nil
}

func (s *FileSink) Write(entry Entry) error {
	if s == nil || s.file == nil {
		return nil
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.file.Write(append(b, '\n'))
	return err
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
