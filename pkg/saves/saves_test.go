package saves

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockNow(t *testing.T, times ...time.Time) {
	t.Helper()
	old := now
	t.Cleanup(func() { now = old })
	now = func() time.Time {
		ts := times[0]
		if len(times) > 1 {
			times = times[1:]
		}
		return ts
	}
}

func TestStore(t *testing.T) {
	base := time.Unix(1700000000, 0)
	mockNow(t, base, base.Add(time.Minute), base.Add(2*time.Minute))
	s := NewStore(t.TempDir())

	_, err := s.Latest("TETRIS", RAM)
	assert.ErrorIs(t, err, ErrNoSave)

	first, err := s.Write("TETRIS", RAM, []byte{1})
	require.NoError(t, err)
	_, err = s.Write("TETRIS", RAM, []byte{2})
	require.NoError(t, err)
	_, err = s.Write("TETRIS", State, []byte{3})
	require.NoError(t, err)

	data, err := s.Latest("TETRIS", RAM)
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, data)

	saves, err := s.List("TETRIS", RAM)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, first.Path, saves[1].Path)
	assert.True(t, saves[0].Timestamp.After(saves[1].Timestamp))

	data, err = s.Latest("TETRIS", State)
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, data)

	// no temporary files left behind
	files, err := os.ReadDir(filepath.Dir(first.Path))
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "POKEMON_RED", sanitize("POKEMON RED"))
	assert.Equal(t, "AB", sanitize("A/../B"))
	assert.Equal(t, "untitled", sanitize(""))
}
