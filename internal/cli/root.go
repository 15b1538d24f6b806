// Package cli defines Cobra command definitions for the deckhand CLI.
// This file contains the root command, which launches the component demo.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/berth-dev/deckhand/internal/config"
	"github.com/berth-dev/deckhand/internal/log"
	"github.com/berth-dev/deckhand/internal/questionnaire"
	"github.com/berth-dev/deckhand/internal/session"
	"github.com/berth-dev/deckhand/internal/tui"
	"github.com/berth-dev/deckhand/internal/tui/app"
)

var (
	projectDir string
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "deckhand",
	Short: "Terminal UI components with a live demo",
	Long: `Deckhand is a kit of terminal UI components: a paging carousel, a
bottom sheet with detents, questionnaires backed by an answer store, toasts,
page indicators and skeleton loaders.

Run without a subcommand to open the interactive demo.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runDemo,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory holding .deckhand/ (default: current directory)")

	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(detentsCmd)
	rootCmd.AddCommand(answersCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cleanCmd)
}

// projectRoot returns the --dir flag or the working directory.
func projectRoot() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return dir, nil
}

// loadConfig reads the project config, using defaults when there is none.
func loadConfig(root string) *config.Config {
	cfg, err := config.ReadConfig(root)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// loadQuestionnaires returns the builtin questionnaires followed by any in
// .deckhand/questionnaires/.
func loadQuestionnaires(root string) ([]*questionnaire.Questionnaire, error) {
	builtin, err := questionnaire.Builtin()
	if err != nil {
		return nil, err
	}
	custom, err := questionnaire.LoadDir(questionnaireDir(root))
	if err != nil {
		return nil, err
	}
	return append(builtin, custom...), nil
}

func questionnaireDir(root string) string {
	return filepath.Join(config.Dir(root), "questionnaires")
}

func runDemo(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	cfg := loadConfig(root)

	if !tui.IsTTY() {
		return tui.NewFallbackRunner(cfg, root).Run(cmd.OutOrStdout())
	}

	qns, err := loadQuestionnaires(root)
	if err != nil {
		return fmt.Errorf("loading questionnaires: %w", err)
	}

	logger, err := log.NewLogger(root)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}

	// The demo still runs without persistence.
	store, err := session.NewStore(cfg.DatabasePath(root))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: session store unavailable: %v\n", err)
	} else {
		defer func() { _ = store.Close() }()
	}

	tuiApp := app.New(cfg, root, app.Deps{
		Logger:         logger,
		Store:          store,
		Questionnaires: qns,
	})
	p := tui.NewProgram(tuiApp)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if reloads, err := config.Watch(ctx, root); err == nil {
		go func() {
			for r := range reloads {
				p.Send(tui.ConfigReloadedMsg{Config: r.Config, Err: r.Err})
			}
		}()
	} else {
		fmt.Fprintf(os.Stderr, "Warning: config changes will not be picked up: %v\n", err)
	}

	started := time.Now()
	_ = logger.Append(log.LogEvent{Event: log.EventDemoStarted, Total: len(qns)})

	_, runErr := p.Run()

	ev := log.LogEvent{
		Event:      log.EventDemoFinished,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if runErr != nil {
		ev.Error = runErr.Error()
	}
	_ = logger.Append(ev)
	return runErr
}
