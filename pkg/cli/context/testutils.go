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

package context

import (
	"net/http"
	"testing"

	"github.com/littledivy/notes/pkg/cli/client"
	"github.com/littledivy/notes/pkg/cli/store"
	"github.com/littledivy/notes/pkg/clock"
	"github.com/pkg/errors"
)

// getDefaultTestPaths creates default test paths with all paths pointing to a temp directory
func getDefaultTestPaths(t *testing.T) Paths {
	tmpDir := t.TempDir()
	return Paths{
		Home:   tmpDir,
		Cache:  tmpDir,
		Config: tmpDir,
		Data:   tmpDir,
	}
}

// InitTestCtx initializes a test context with an empty, loaded store and a
// temporary directory for all paths
func InitTestCtx(t *testing.T) NotesCtx {
	paths := getDefaultTestPaths(t)

	if err := InitNotesDirs(paths); err != nil {
		t.Fatal(errors.Wrap(err, "creating test directories"))
	}

	c := clock.NewMock()
	dataPath := DefaultDataPath(paths)
	s := store.New(dataPath, c)
	if _, err := s.Load(); err != nil {
		t.Fatal(errors.Wrap(err, "loading test store"))
	}

	return NotesCtx{
		Paths:    paths,
		DataPath: dataPath,
		Store:    s,
		Client:   client.New(&http.Client{}),
		Clock:    c,
	}
}
