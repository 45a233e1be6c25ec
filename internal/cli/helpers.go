package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/config"
	"github.com/okrause/mediasync/pkg/download"
	"github.com/okrause/mediasync/pkg/fsutil"
	"github.com/okrause/mediasync/pkg/hooks"
	"github.com/okrause/mediasync/pkg/space"
	syncer "github.com/okrause/mediasync/pkg/sync"
)

const bytesPerMiB = 1024 * 1024

// These variables will be set by the main package
var (
	ConfigPath *string
	Quiet      *int
	Verbose    *bool
)

// loadConfig loads the configuration, applies global CLI flags and
// initializes logging.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		defaultPath, pathErr := config.GetDefaultConfigPath()
		if pathErr != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", pathErr)
		}
		cfg, err = config.LoadConfig(defaultPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if Quiet != nil && *Quiet > 0 {
		cfg.Settings.Quiet = *Quiet
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.Quiet = 0
	}

	logger.InitLogger(cfg.Settings.Quiet)
	return cfg, nil
}

// buildOrchestrator wires the transfer engine, evictor and hooks for
// one pass over the managed directory.
func buildOrchestrator(s *config.Settings) (*syncer.Orchestrator, error) {
	if err := fsutil.EnsureDir(s.MediaDir); err != nil {
		return nil, err
	}

	executor, err := hooks.LoadScripts(s.Hooks)
	if err != nil {
		return nil, err
	}

	var ensurer syncer.SpaceEnsurer
	if s.EvictionEnabled() {
		evictor := space.NewEvictor(space.OSVolume{}, s.KeepFreeBytes())
		if executor.HasScript(hooks.PreEvict) {
			evictor.OnEvict = func(f space.FileInfo) {
				if err := executor.Execute(hooks.PreEvict, hooks.HookContext{File: f.Path}); err != nil {
					logger.Warnf("%s hook: %v", hooks.PreEvict, err)
				}
			}
		}
		ensurer = evictor
	}

	var progress io.Writer
	if s.Quiet < 1 && term.IsTerminal(int(os.Stderr.Fd())) {
		progress = os.Stderr
	}

	return syncer.New(s, download.NewClient(), ensurer, executor, progress), nil
}

// checkDiskUsage reports the free space situation and, when free space
// is already below the floor, asks the operator whether to proceed.
// Anything but an explicit yes (including unreadable input) aborts:
// with the floor set too high by mistake, many or all stored files
// could get evicted.
func checkDiskUsage(s *config.Settings, vol space.Volume, in io.Reader, out io.Writer) error {
	free, err := vol.Free(s.MediaDir)
	if err != nil {
		return err
	}

	logger.Debug("note: old media files in the managed directory will be deleted if space runs low")
	logger.Debugf("free space: %d MiB, minimum limit: %d MiB", free/bytesPerMiB, s.KeepFreeMiB)

	if s.NoLowSpaceWarning || free >= s.KeepFreeBytes() {
		return nil
	}

	fmt.Fprintf(out, "\nWarning:\n"+
		"The disk usage currently exceeds the limit by %d MiB.\n"+
		"If the limit was set too high by mistake, many or ALL\n"+
		"currently downloaded media files may get deleted.\n",
		(s.KeepFreeBytes()-free)/bytesPerMiB)
	fmt.Fprint(out, "Do you want to proceed anyway? [y/N]: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("aborted")
	}
	switch strings.TrimSpace(line) {
	case "y", "Y":
		return nil
	default:
		return fmt.Errorf("aborted")
	}
}
