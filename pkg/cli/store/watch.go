/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/utils"
	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
)

// DefaultWatchInterval is the polling interval used by `notes watch`
const DefaultWatchInterval = 250 * time.Millisecond

// Watch polls the directory of the document every interval. When another
// process changes the document, the list is reloaded and an EventReload is
// published. A document that no longer decodes is logged and the in-memory
// list is kept. Watch returns when ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) error {
	if interval < time.Millisecond {
		return errors.Errorf("watch interval %s is shorter than 1ms", interval)
	}

	dir := filepath.Dir(s.path)
	if err := utils.EnsureDir(dir); err != nil {
		return errors.Wrap(err, "preparing data directory")
	}

	w := watcher.New()
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)
	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}

	started := make(chan error, 1)
	go func() {
		started <- w.Start(interval)
	}()
	w.Wait()
	running := true
	defer func() {
		if !running {
			return
		}

		// Start blocks on sending pending events until they are received
		go func() {
			for {
				select {
				case <-w.Event:
				case <-w.Error:
				case <-w.Closed:
					return
				}
			}
		}()
		w.Close()
	}()

	log.Debug("watching %s every %s\n", dir, interval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Event:
			if s.isDocumentEvent(ev) {
				s.reload()
			}
		case err := <-w.Error:
			if err == watcher.ErrWatchedFileDeleted {
				return errors.Wrapf(err, "watching %s", dir)
			}
			log.Debug("watcher: %s\n", err)
		case err := <-started:
			running = false
			if err != nil {
				return errors.Wrap(err, "running watcher")
			}
			return nil
		case <-w.Closed:
			running = false
			return nil
		}
	}
}

func (s *Store) isDocumentEvent(ev watcher.Event) bool {
	if ev.FileInfo != nil && ev.IsDir() {
		return false
	}

	return filepath.Clean(ev.Path) == s.path || filepath.Clean(ev.OldPath) == s.path
}

// reload picks up a document written by another process
func (s *Store) reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, digest, err := s.read()
	if err != nil {
		log.Warnf("reloading notes: %s\n", err)
		return
	}
	if digest == s.digest {
		return
	}

	s.notes = notes
	s.digest = digest
	log.Debug("reloaded %d notes from %s\n", len(notes), s.path)
	s.publish(EventReload, "", len(notes))
}
