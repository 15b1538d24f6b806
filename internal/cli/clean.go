// clean.go implements the "deckhand clean" command for pruning old exports.
package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/berth-dev/deckhand/internal/cleanup"
	"github.com/berth-dev/deckhand/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old answer exports",
	Long: `Remove old answer exports from .deckhand/exports/.

By default, removes exports older than session.export_max_age_days (default 30).
Use --keep to keep only the N most recent exports instead.
Use --dry-run to preview what would be removed.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

var (
	keepFlag   int
	dryRunFlag bool
)

func init() {
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N exports (0 = use age-based cleanup)")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	return clean(cmd.OutOrStdout(), root, loadConfig(root), keepFlag, dryRunFlag)
}

func clean(w io.Writer, root string, cfg *config.Config, keep int, dryRun bool) error {
	dir := filepath.Join(config.Dir(root), "exports")

	var pruned []string
	var err error
	if keep > 0 {
		pruned, err = cleanup.PruneKeepRecent(dir, keep, dryRun)
	} else {
		maxAge := cfg.Session.ExportMaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}
		pruned, err = cleanup.PruneByAge(dir, maxAge, dryRun)
	}
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if len(pruned) == 0 {
		fmt.Fprintln(w, "No exports to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}
	for _, name := range pruned {
		fmt.Fprintf(w, "  %s %s\n", verb, name)
	}
	fmt.Fprintf(w, "%s %d export(s).\n", verb, len(pruned))
	return nil
}
