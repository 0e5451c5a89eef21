// Package sink writes generated call descriptions to their destination.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Sink receives generated files.
// Implementations must be safe for concurrent calls.
type Sink interface {
	// WriteFile stores content at the slash-separated relative path name.
	WriteFile(ctx context.Context, name string, content []byte) error
}

// FilesystemSink writes files under a root directory.
// Every write goes to a temporary file that is renamed into place, so readers
// never see a partial file.
type FilesystemSink struct {
	Root string

	// Mode is the permission of written files (default: 0644).
	Mode os.FileMode

	// Overwrite replaces existing files. When false, writing to an existing
	// file fails.
	Overwrite bool
}

// NewFilesystemSink returns a sink writing under root that replaces existing files.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0o644, Overwrite: true}
}

// WriteFile writes content to name under the root, creating directories as
// needed.
func (s *FilesystemSink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return fmt.Errorf("invalid path %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := writeTemp(dir, content, s.mode())
	if err != nil {
		return err
	}
	// Cleans up after failures and after Link.
	defer os.Remove(tmp)

	if err := ctx.Err(); err != nil {
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmp, target); err != nil {
			return fmt.Errorf("rename into place: %w", err)
		}
		return nil
	}

	// Link fails if the target exists, without a stat-then-rename race.
	if err := os.Link(tmp, target); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file already exists: %q", name)
		}
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

func (s *FilesystemSink) mode() os.FileMode {
	if s.Mode == 0 {
		return 0o644
	}
	return s.Mode
}

// resolve maps name to a path under the root and rejects anything that
// escapes it.
func (s *FilesystemSink) resolve(name string) (string, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	target := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes root directory: %q", name)
	}
	return target, nil
}

func writeTemp(dir string, content []byte, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, ".callgen-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()

	_, werr := f.Write(content)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Chmod(name, mode); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("set file mode: %w", err)
	}
	return name, nil
}

// MemorySink keeps written files in memory.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under name.
func (s *MemorySink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return fmt.Errorf("invalid path %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), content...)
	return nil
}

// Get returns a copy of the named file, or nil.
func (s *MemorySink) Get(name string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[name]
	if !ok {
		return nil
	}
	return append([]byte(nil), content...)
}

// Names returns the written file names in sorted order.
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

// ValidatePath reports whether name is acceptable to a Sink: a non-empty,
// clean, relative, slash-separated path that stays inside the root.
func ValidatePath(name string) error {
	switch {
	case name == "":
		return errors.New("path is empty")
	case strings.HasPrefix(name, "/") || filepath.IsAbs(name) || hasDriveLetter(name):
		return errors.New("absolute paths not allowed")
	case strings.Contains(name, `\`):
		return errors.New("backslashes not allowed")
	}

	for _, elem := range strings.Split(name, "/") {
		if elem == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if path.Clean(name) != name {
		return errors.New("path is not clean")
	}
	return nil
}

func hasDriveLetter(name string) bool {
	if len(name) < 2 || name[1] != ':' {
		return false
	}
	c := name[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
