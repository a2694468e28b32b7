package render

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	mkerrors "github.com/vango-dev/markup/internal/errors"
)

// DocumentName is the file name RenderDocument writes.
const DocumentName = "index.html"

// Sink stores rendered documents.
type Sink interface {
	// Name identifies the sink kind in logs, spans and metrics.
	Name() string

	// Write stores data under name, replacing any previous content.
	Write(ctx context.Context, name string, data []byte) error
}

func writeFailed(sink, name string, err error) error {
	return mkerrors.New("M030").
		WithDetailf("%s sink could not store %s", sink, name).
		Wrap(err)
}

// DiskSink writes documents into a directory.
type DiskSink struct {
	dir string
}

// NewDiskSink creates a sink writing into dir. The directory is created on
// first write.
func NewDiskSink(dir string) *DiskSink {
	if dir == "" {
		dir = "."
	}
	return &DiskSink{dir: dir}
}

// Dir returns the target directory.
func (s *DiskSink) Dir() string { return s.dir }

// Name implements Sink.
func (s *DiskSink) Name() string { return "disk" }

// Write implements Sink.
func (s *DiskSink) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return writeFailed(s.Name(), name, err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return writeFailed(s.Name(), name, err)
	}

	// Write to a temp file, then rename, so readers never see a partial
	// document.
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return writeFailed(s.Name(), name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return writeFailed(s.Name(), name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return writeFailed(s.Name(), name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return writeFailed(s.Name(), name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return writeFailed(s.Name(), name, err)
	}
	return nil
}

// MemorySink keeps documents in memory.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Name implements Sink.
func (s *MemorySink) Name() string { return "memory" }

// Write implements Sink.
func (s *MemorySink) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return writeFailed(s.Name(), name, err)
	}
	s.mu.Lock()
	s.files[name] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}

// Get returns the stored content for name.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Names returns the stored names in sorted order.
func (s *MemorySink) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type discard struct{}

// Discard drops every document.
var Discard Sink = discard{}

func (discard) Name() string                                { return "discard" }
func (discard) Write(context.Context, string, []byte) error { return nil }
