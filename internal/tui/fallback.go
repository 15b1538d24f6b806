package tui

import (
	"fmt"
	"io"

	"github.com/berth-dev/deckhand/internal/config"
)

// FallbackRunner handles non-TTY execution by guiding users to CLI commands.
type FallbackRunner struct {
	cfg         *config.Config
	projectRoot string
}

// NewFallbackRunner creates a new FallbackRunner.
func NewFallbackRunner(cfg *config.Config, projectRoot string) *FallbackRunner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &FallbackRunner{
		cfg:         cfg,
		projectRoot: projectRoot,
	}
}

// Run prints the active tuning and the scriptable subcommands.
func (f *FallbackRunner) Run(w io.Writer) error {
	lines := []string{
		"Running in non-interactive mode; the component demo needs a terminal.",
		"",
		fmt.Sprintf("Config:    %s", config.Path(f.projectRoot)),
		fmt.Sprintf("Paging:    velocity threshold %.0f pt/s, spacing %.0f pt", f.cfg.Paging.VelocityThreshold, f.cfg.Paging.Spacing),
		fmt.Sprintf("Sheet:     small floor %.0f pt, detents %v", f.cfg.Sheet.SmallFloor, f.cfg.Sheet.Detents),
		"",
		"Try:",
		"  deckhand page --count 5 --viewport 400 --offset 260 --velocity 450",
		"  deckhand detents --height 800 --current 300",
		"  deckhand answers list",
		"  deckhand docs",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
