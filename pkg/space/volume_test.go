package space

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSVolumeMediaFiles(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, size int) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644))
	}
	write("a.mp4", 10)
	write("b.m4v", 20)
	write("c.mp4.part", 30)
	write("notes.txt", 5)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755))

	files, err := OSVolume{}.MediaFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2, "staging files, non-media files and directories are excluded")

	names := []string{filepath.Base(files[0].Path), filepath.Base(files[1].Path)}
	assert.ElementsMatch(t, []string{"a.mp4", "b.m4v"}, names)
	for _, f := range files {
		assert.NotZero(t, f.Size)
		assert.False(t, f.ModTime.IsZero())
	}
}

func TestOSVolumeMediaFilesMissingDir(t *testing.T) {
	_, err := OSVolume{}.MediaFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestOSVolumeRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, OSVolume{}.Remove(path))
	assert.NoFileExists(t, path)
}

func TestOSVolumeFree(t *testing.T) {
	free, err := OSVolume{}.Free(t.TempDir())
	require.NoError(t, err)
	assert.Positive(t, free)
}
