package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"linkbox/internal/domain"
)

// LinkExt is the extension of committed inbox entries.
const LinkExt = ".link"

// ErrInvalidEntry is returned for names that are not inbox entries.
var ErrInvalidEntry = errors.New("inbox: invalid entry name")

// InboxFileStore is a directory of pending inbound links.
type InboxFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewInbox creates dir if needed and returns a store rooted at it.
func NewInbox(dir string) (*InboxFileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create inbox %s: %w", dir, err)
	}
	return &InboxFileStore{dir: dir}, nil
}

var _ domain.Inbox = (*InboxFileStore)(nil)

// Dir returns the inbox directory.
func (s *InboxFileStore) Dir() string { return s.dir }

// Put stores rawURL as a new entry and returns the entry name.
func (s *InboxFileStore) Put(rawURL string) (string, error) {
	name := ulid.Make().String() + LinkExt
	if err := writeFile(filepath.Join(s.dir, name), []byte(rawURL), 0o600); err != nil {
		return "", fmt.Errorf("write inbox entry: %w", err)
	}
	return name, nil
}

// Take reads and removes the named entry. ok is false when the entry is
// already gone.
func (s *InboxFileStore) Take(name string) (string, bool, error) {
	if !IsEntry(name) || filepath.Base(name) != name {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidEntry, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name)
	b, err := readFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read inbox entry: %w", err)
	}
	if b == nil {
		return "", false, nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("remove inbox entry: %w", err)
	}
	return strings.TrimSpace(string(b)), true, nil
}

// Pending lists committed entries in arrival order.
func (s *InboxFileStore) Pending() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsEntry(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// IsEntry reports whether name looks like a committed entry rather than a
// temp file or something foreign.
func IsEntry(name string) bool {
	base := filepath.Base(name)
	id, ok := strings.CutSuffix(base, LinkExt)
	if !ok {
		return false
	}
	_, err := ulid.ParseStrict(id)
	return err == nil
}
