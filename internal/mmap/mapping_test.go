package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMapping_OpenReadClose(t *testing.T) {
	content := "1 0.5 1.5\n2 3 4\n"
	m, err := Open(writeFile(t, content))
	require.NoError(t, err)

	assert.Equal(t, len(content), m.Len())
	assert.Equal(t, []byte(content), m.Bytes())
	assert.NoError(t, m.Advise(AccessSequential))

	assert.Equal(t, "2 3 4", string(m.Bytes()[10:15]))

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
	assert.Equal(t, ErrClosed, m.Advise(AccessRandom))
}

func TestMapping_EmptyFile(t *testing.T) {
	m, err := Open(writeFile(t, ""))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Bytes())
	assert.NoError(t, m.Advise(AccessWillNeed))
}

func TestMapping_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
