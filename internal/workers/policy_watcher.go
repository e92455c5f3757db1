// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-http-core/internal/cors"
	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/metrics"
)

const defaultDebounce = 100 * time.Millisecond

// PolicyWatcher reloads the CORS policy file whenever it changes. A file
// that fails to load leaves the previous policies in place.
type PolicyWatcher struct {
	path     string
	policies *cors.Policies
	metrics  *metrics.Metrics
	logger   *logger.Logger
	debounce time.Duration
}

func NewPolicyWatcher(path string, policies *cors.Policies, m *metrics.Metrics, logger *logger.Logger) *PolicyWatcher {
	return &PolicyWatcher{
		path:     path,
		policies: policies,
		metrics:  m,
		logger:   logger,
		debounce: defaultDebounce,
	}
}

// Reload loads the policy file and swaps it in.
func (w *PolicyWatcher) Reload() error {
	set, err := cors.LoadPolicyFile(w.path)
	w.metrics.IncPolicyReload(err == nil)
	if err != nil {
		w.logger.Err(err).Str("path", w.path).Msg("cors policy reload failed, keeping previous policies")
		return err
	}

	w.policies.Store(set)
	w.logger.Info().Str("path", w.path).Int("groups", len(set.Groups)).Msg("cors policies reloaded")
	return nil
}

// Run watches the directory holding the policy file, since editors often
// replace files instead of writing them in place.
func (w *PolicyWatcher) Run(ctx context.Context) error {
	path, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve cors policy path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create cors policy watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch cors policy directory: %w", err)
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { _ = w.Reload() })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Err(err).Msg("cors policy watcher error")
		}
	}
}
