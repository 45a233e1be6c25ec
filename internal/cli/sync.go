package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/catalog"
	"github.com/okrause/mediasync/pkg/config"
	"github.com/okrause/mediasync/pkg/space"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the managed directory with the catalog",
		Long: `Synchronize the managed directory with the media catalog:
scan existing files, free disk space where a floor is configured, and
download, resume or repair everything that is missing or broken.`,
		RunE: runSync,
	}

	cmd.Flags().String("catalog", "", "catalog manifest path or URL")
	cmd.Flags().String("media-dir", "", "managed directory")
	cmd.Flags().Int64("free", 0, "minimum free space to keep, in MiB")
	cmd.Flags().Float64("limit-rate", 0, "download rate limit in MB/s (0 = unlimited)")
	cmd.Flags().Bool("checksums", false, "verify MD5 checksums against the catalog")
	cmd.Flags().Bool("fix-broken", false, "re-audit and re-download broken local files")
	cmd.Flags().StringSlice("subtitles", nil, "catalog language tags to sync caption files for")

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := &cfg.Settings
	applySyncFlags(cmd, s)

	if s.Catalog == "" {
		return fmt.Errorf("no catalog configured; set catalog in the config file or pass --catalog")
	}

	ctx := cmd.Context()
	media, err := catalog.Load(ctx, s.Catalog, s.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	orch, err := buildOrchestrator(s)
	if err != nil {
		return err
	}

	if s.EvictionEnabled() {
		if err := checkDiskUsage(s, space.OSVolume{}, os.Stdin, os.Stderr); err != nil {
			return err
		}
	}

	if err := orch.SyncAll(ctx, media); err != nil {
		return fmt.Errorf("sync pass failed: %w", err)
	}

	if len(s.SubtitleLanguages) > 0 {
		if err := orch.SyncSubtitles(ctx, media); err != nil {
			return fmt.Errorf("subtitle pass failed: %w", err)
		}
	}

	logger.Debug("sync complete")
	return nil
}

// applySyncFlags overrides config values with flags the user actually
// set.
func applySyncFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("catalog") {
		s.Catalog, _ = flags.GetString("catalog")
	}
	if flags.Changed("media-dir") {
		s.MediaDir, _ = flags.GetString("media-dir")
	}
	if flags.Changed("free") {
		s.KeepFreeMiB, _ = flags.GetInt64("free")
	}
	if flags.Changed("limit-rate") {
		s.RateLimitMBps, _ = flags.GetFloat64("limit-rate")
	}
	if flags.Changed("checksums") {
		s.VerifyChecksums, _ = flags.GetBool("checksums")
	}
	if flags.Changed("fix-broken") {
		s.FixBroken, _ = flags.GetBool("fix-broken")
	}
	if flags.Changed("subtitles") {
		s.SubtitleLanguages, _ = flags.GetStringSlice("subtitles")
	}
}
