package editor

import (
	"fmt"
	"os"
)

// MemoryStore holds the full document text in memory. It is the working
// store for an editing run: saves commit here, and whether anything ever
// reaches disk is the caller's decision.
type MemoryStore struct {
	text  string
	dirty bool
}

// NewMemoryStore seeds the store with the document's initial serialization.
func NewMemoryStore(text string) *MemoryStore {
	return &MemoryStore{text: text}
}

// LoadText returns the current committed text.
func (m *MemoryStore) LoadText() (string, error) { return m.text, nil }

// CommitText replaces the committed text and records the pending-changes
// flag for downstream consumers.
func (m *MemoryStore) CommitText(text string, dirty bool) error {
	m.text = text
	m.dirty = dirty
	return nil
}

// Dirty reports whether commits have happened since the last ClearDirty.
func (m *MemoryStore) Dirty() bool { return m.dirty }

// ClearDirty resets the pending-changes flag, e.g. after a write-back.
func (m *MemoryStore) ClearDirty() { m.dirty = false }

// FileStore is a MemoryStore bound to the file the document came from.
// Commits stay in memory; WriteBack flushes the committed text to the file.
type FileStore struct {
	MemoryStore
	path string
}

// OpenFileStore reads the file and returns a store seeded with its content.
func OpenFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &FileStore{MemoryStore: MemoryStore{text: string(data)}, path: path}, nil
}

// NewFileStore binds already-loaded text to a target path, for documents
// that were converted from another format and should be written as JSON.
func NewFileStore(text, path string) *FileStore {
	return &FileStore{MemoryStore: MemoryStore{text: text}, path: path}
}

// Path returns the bound file path.
func (f *FileStore) Path() string { return f.path }

// WriteBack writes the committed text to the bound file and clears the
// pending-changes flag.
func (f *FileStore) WriteBack() error {
	text := f.text
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	if err := os.WriteFile(f.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	f.dirty = false
	return nil
}
