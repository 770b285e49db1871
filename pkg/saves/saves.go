// Package saves stores battery backed RAM and save states on disk. Every
// cartridge gets its own folder, and every save is a new file named
// after the time it was made, so older saves are never overwritten.
package saves

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the type of a save file, used as its extension.
type Kind string

const (
	// RAM is the contents of battery backed cartridge RAM.
	RAM Kind = "sav"
	// State is a compressed save state.
	State Kind = "state"
)

// ErrNoSave is returned when a cartridge has no saves of the
// requested kind.
var ErrNoSave = errors.New("no save found")

var now = time.Now

// Save is a single save file.
type Save struct {
	Path      string
	Kind      Kind
	Timestamp time.Time
}

// Store is a folder of saves.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The folder is created on the
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) folder(game string) string {
	return filepath.Join(s.dir, sanitize(game))
}

// List returns the saves of the given kind for game, newest first.
func (s *Store) List(game string, kind Kind) ([]Save, error) {
	files, err := os.ReadDir(s.folder(game))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var saves []Save
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != "."+string(kind) {
			continue
		}
		saves = append(saves, Save{
			Path:      filepath.Join(s.folder(game), file.Name()),
			Kind:      kind,
			Timestamp: parseTimestamp(file.Name()),
		})
	}
	sort.SliceStable(saves, func(i, j int) bool {
		return saves[i].Timestamp.After(saves[j].Timestamp)
	})
	return saves, nil
}

// Latest returns the contents of the newest save of the given kind.
func (s *Store) Latest(game string, kind Kind) ([]byte, error) {
	saves, err := s.List(game, kind)
	if err != nil {
		return nil, err
	}
	if len(saves) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNoSave, game, kind)
	}
	return os.ReadFile(saves[0].Path)
}

// Write stores data as a new save of the given kind. The data is first
// written to a temporary file, which is renamed once complete so a crash
// never leaves a truncated save behind.
func (s *Store) Write(game string, kind Kind, data []byte) (Save, error) {
	folder := s.folder(game)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return Save{}, err
	}

	ts := now()
	save := Save{
		Path:      filepath.Join(folder, fmt.Sprintf("%d.%s", ts.UnixNano(), kind)),
		Kind:      kind,
		Timestamp: time.Unix(0, ts.UnixNano()),
	}

	f, err := os.CreateTemp(folder, filepath.Base(save.Path)+".*")
	if err != nil {
		return Save{}, err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return Save{}, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return Save{}, err
	}
	return save, os.Rename(f.Name(), save.Path)
}

// parseTimestamp parses the timestamp from a file named
// "<unix nanoseconds>.<kind>", returning the zero time if it has none.
func parseTimestamp(name string) time.Time {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	n, err := strconv.ParseInt(name, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// sanitize makes a cartridge title safe to use as a folder name.
func sanitize(game string) string {
	game = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, game)
	if game == "" {
		return "untitled"
	}
	return game
}
