package sync

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/okrause/mediasync/pkg/config"
	"github.com/okrause/mediasync/pkg/space"
	"github.com/okrause/mediasync/pkg/sync/mocks"
)

func writeWithModTime(t *testing.T, path string, content []byte, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, content, 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestImportFromDirectory(t *testing.T) {
	source := t.TempDir()
	settings := &config.Settings{MediaDir: t.TempDir()}
	o := New(settings, nil, nil, nil, nil)

	older := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	writeWithModTime(t, filepath.Join(source, "a.mp4"), []byte("aaa"), newer)
	writeWithModTime(t, filepath.Join(source, "b.mp4"), []byte("bbbb"), older)
	require.NoError(t, os.WriteFile(filepath.Join(source, "notes.txt"), []byte("x"), 0o644))

	// b.mp4 already present with the same size, so only a.mp4 moves.
	require.NoError(t, os.WriteFile(filepath.Join(settings.MediaDir, "b.mp4"), []byte("BBBB"), 0o644))

	require.NoError(t, o.Import(context.Background(), source))

	got, err := os.ReadFile(filepath.Join(settings.MediaDir, "a.mp4"))
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), got)

	info, err := os.Stat(filepath.Join(settings.MediaDir, "a.mp4"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(newer), "import preserves the source mtime")

	got, err = os.ReadFile(filepath.Join(settings.MediaDir, "b.mp4"))
	require.NoError(t, err)
	assert.Equal(t, []byte("BBBB"), got, "same-size files are not overwritten")

	assert.NoFileExists(t, filepath.Join(settings.MediaDir, "notes.txt"))
}

func TestImportFromZipArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.zip")
	stamp := time.Date(2022, 8, 15, 12, 0, 0, 0, time.UTC)

	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "videos/a.mp4", Modified: stamp, Method: zip.Deflate})
	require.NoError(t, err)
	_, err = w.Write([]byte("archived media"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	settings := &config.Settings{MediaDir: t.TempDir()}
	o := New(settings, nil, nil, nil, nil)

	require.NoError(t, o.Import(context.Background(), archivePath))

	dest := filepath.Join(settings.MediaDir, "a.mp4")
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("archived media"), got)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, info.ModTime(), 2*time.Second)
}

func TestImportNewestFirstUnderDiskFloor(t *testing.T) {
	ctrl := gomock.NewController(t)
	ensurer := mocks.NewMockSpaceEnsurer(ctrl)

	source := t.TempDir()
	settings := &config.Settings{MediaDir: t.TempDir(), KeepFreeMiB: 100}
	o := New(settings, nil, ensurer, nil, nil)

	older := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	writeWithModTime(t, filepath.Join(source, "old.mp4"), []byte("old"), older)
	writeWithModTime(t, filepath.Join(source, "new.mp4"), []byte("new"), newer)

	// The newest candidate is offered first; a halt ends the batch
	// because everything after it is older still.
	ensurer.EXPECT().Ensure(settings.MediaDir, gomock.Any()).
		DoAndReturn(func(_ string, ref space.Reference) (space.Result, error) {
			assert.Equal(t, "new.mp4", ref.Name)
			assert.EqualValues(t, 3, ref.Size)
			assert.True(t, ref.Published.Equal(newer))
			return space.Halt, nil
		})

	require.NoError(t, o.Import(context.Background(), source))
	assert.NoFileExists(t, filepath.Join(settings.MediaDir, "new.mp4"))
	assert.NoFileExists(t, filepath.Join(settings.MediaDir, "old.mp4"))
}

func TestImportMissingSource(t *testing.T) {
	settings := &config.Settings{MediaDir: t.TempDir()}
	o := New(settings, nil, nil, nil, nil)

	err := o.Import(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "cannot read import source")
}
