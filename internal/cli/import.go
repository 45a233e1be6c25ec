package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okrause/mediasync/pkg/space"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [source]",
		Short: "Copy media files from a directory or archive into the managed directory",
		Long: `Copy media files from a secondary source into the managed directory.
The source may be a directory or an archive file (zip, tar, tar.gz and
friends). Files already present with the same size are skipped; the
rest are copied newest first under the configured disk space floor.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := &cfg.Settings

	source := s.ImportDir
	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		return fmt.Errorf("no import source; pass one as an argument or set import_dir in the config file")
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

	if err := orch.Import(cmd.Context(), source); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}
