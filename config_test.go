package dbscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{Eps: 0.5, MinPoints: 1, TargetClusterCount: 1}.Validate())
	assert.NoError(t, Config{Eps: 15, MinPoints: 22, TargetClusterCount: 8}.Validate())

	err := Config{Eps: 1, MinPoints: -3, TargetClusterCount: 1}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_points")
}

func TestParseConfig(t *testing.T) {
	doc := []byte(`
eps: 15
min_points: 22
target_cluster_count: 8
seed: 42
traversal: bfs
metric: manhattan
`)
	fc, err := ParseConfig(doc)
	require.NoError(t, err)

	assert.Equal(t, Config{Eps: 15, MinPoints: 22, TargetClusterCount: 8}, fc.Config)
	require.NotNil(t, fc.Seed)
	assert.Equal(t, int64(42), *fc.Seed)

	opts, err := fc.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	o, err := applyOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "seed=42 traversal=bfs metric=Manhattan", o.String())
}

func TestParseConfig_Empty(t *testing.T) {
	fc, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, fc.Seed)

	opts, err := fc.Options()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("eps: 1\nminpts: 3\n"))
	assert.ErrorIs(t, err, ErrConfig)

	_, err = ParseConfig([]byte("eps: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrConfig)

	fc, err := ParseConfig([]byte("traversal: zigzag\n"))
	require.NoError(t, err)
	_, err = fc.Options()
	assert.ErrorIs(t, err, ErrConfig)

	fc, err = ParseConfig([]byte("metric: cosine\n"))
	require.NoError(t, err)
	_, err = fc.Options()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eps: 2.5\nmin_points: 4\ntarget_cluster_count: 3\n"), 0o600))

	fc, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, fc.Eps)
	assert.Equal(t, 4, fc.MinPoints)
	assert.Equal(t, 3, fc.TargetClusterCount)
	assert.NoError(t, fc.Validate())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
