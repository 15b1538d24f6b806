package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload carries the result of re-reading the config after a change.
type Reload struct {
	Config *Config
	Err    error
}

const defaultDebounce = 150 * time.Millisecond

// Watch reloads .deckhand/config.yaml whenever it changes and sends the
// result on the returned channel. The directory is watched rather than the
// file so that editors which replace the file on save are still seen.
// Rapid bursts of events are coalesced into one reload. The channel is
// closed once ctx is cancelled.
func Watch(ctx context.Context, root string) (<-chan Reload, error) {
	dir := Dir(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	out := make(chan Reload)
	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != configFile {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(defaultDebounce)
				} else {
					timer.Reset(defaultDebounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				cfg, err := ReadConfig(root)
				select {
				case out <- Reload{Config: cfg, Err: err}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case out <- Reload{Err: fmt.Errorf("watching config: %w", err)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
