package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCommit(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore(`{"a":1}`)
	text, err := m.LoadText()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
	assert.False(t, m.Dirty())

	require.NoError(t, m.CommitText(`{"a":2}`, true))
	text, err = m.LoadText()
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, text)
	assert.True(t, m.Dirty())

	m.ClearDirty()
	assert.False(t, m.Dirty())
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o644))

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, fs.Path())

	require.NoError(t, fs.CommitText(`{"a":2}`, true))
	require.True(t, fs.Dirty())
	require.NoError(t, fs.WriteBack())
	assert.False(t, fs.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":2}\n", string(data))
}

func TestOpenFileStoreMissing(t *testing.T) {
	t.Parallel()

	_, err := OpenFileStore(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
