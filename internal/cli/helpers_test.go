package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/okrause/mediasync/pkg/config"
	"github.com/okrause/mediasync/pkg/space/mocks"
)

func testSettings(floorMiB int64) *config.Settings {
	return &config.Settings{MediaDir: "/srv/media", KeepFreeMiB: floorMiB}
}

func TestCheckDiskUsageEnoughSpace(t *testing.T) {
	ctrl := gomock.NewController(t)
	vol := mocks.NewMockVolume(ctrl)
	vol.EXPECT().Free("/srv/media").Return(int64(10*bytesPerMiB), nil)

	var out bytes.Buffer
	err := checkDiskUsage(testSettings(5), vol, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Empty(t, out.String(), "no prompt when space is fine")
}

func TestCheckDiskUsagePromptAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	vol := mocks.NewMockVolume(ctrl)
	vol.EXPECT().Free("/srv/media").Return(int64(1*bytesPerMiB), nil)

	var out bytes.Buffer
	err := checkDiskUsage(testSettings(5), vol, strings.NewReader("y\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "exceeds the limit by 4 MiB")
	assert.Contains(t, out.String(), "[y/N]")
}

func TestCheckDiskUsagePromptRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	vol := mocks.NewMockVolume(ctrl)
	vol.EXPECT().Free("/srv/media").Return(int64(1*bytesPerMiB), nil)

	var out bytes.Buffer
	err := checkDiskUsage(testSettings(5), vol, strings.NewReader("n\n"), &out)
	assert.ErrorContains(t, err, "aborted")
}

func TestCheckDiskUsagePromptDefaultsToAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	vol := mocks.NewMockVolume(ctrl)
	vol.EXPECT().Free("/srv/media").Return(int64(1*bytesPerMiB), nil).Times(2)

	var out bytes.Buffer

	// Bare enter and closed stdin both abort.
	err := checkDiskUsage(testSettings(5), vol, strings.NewReader("\n"), &out)
	assert.ErrorContains(t, err, "aborted")

	err = checkDiskUsage(testSettings(5), vol, strings.NewReader(""), &out)
	assert.ErrorContains(t, err, "aborted")
}

func TestCheckDiskUsageWarningSuppressed(t *testing.T) {
	ctrl := gomock.NewController(t)
	vol := mocks.NewMockVolume(ctrl)
	vol.EXPECT().Free("/srv/media").Return(int64(1*bytesPerMiB), nil)

	s := testSettings(5)
	s.NoLowSpaceWarning = true

	var out bytes.Buffer
	err := checkDiskUsage(s, vol, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestLoadConfigHonorsGlobalFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  media_dir: /srv/media\n  quiet: 0\n"), 0o644))

	quiet := 2
	verbose := false
	ConfigPath = &path
	Quiet = &quiet
	Verbose = &verbose
	t.Cleanup(func() { ConfigPath, Quiet, Verbose = nil, nil, nil })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/media", cfg.Settings.MediaDir)
	assert.Equal(t, 2, cfg.Settings.Quiet)
}

func TestApplySyncFlags(t *testing.T) {
	cmd := NewSyncCmd()
	require.NoError(t, cmd.Flags().Set("catalog", "https://example.org/c.json"))
	require.NoError(t, cmd.Flags().Set("free", "512"))
	require.NoError(t, cmd.Flags().Set("fix-broken", "true"))

	s := &config.Settings{Catalog: "file.json", RateLimitMBps: 1.0}
	applySyncFlags(cmd, s)

	assert.Equal(t, "https://example.org/c.json", s.Catalog)
	assert.EqualValues(t, 512, s.KeepFreeMiB)
	assert.True(t, s.FixBroken)
	assert.InDelta(t, 1.0, s.RateLimitMBps, 0.001, "untouched flags leave config values alone")
}
