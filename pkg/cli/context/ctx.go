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

// Package context defines the runtime context shared by the notes commands
package context

import (
	"path/filepath"

	"github.com/littledivy/notes/pkg/cli/client"
	"github.com/littledivy/notes/pkg/cli/consts"
	"github.com/littledivy/notes/pkg/cli/store"
	"github.com/littledivy/notes/pkg/clock"
)

// Paths contain the base directory definitions. The notes files live in a
// consts.NotesDirName subdirectory of each.
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// NotesCtx is a context holding the information of the current runtime
type NotesCtx struct {
	Paths Paths
	// DataPath is the path of the notes document
	DataPath  string
	Version   string
	Store     *store.Store
	Client    *client.Client
	ServerURL string
	Username  string
	Password  string
	NotesTint string
	Editor    string
	Clock     clock.Clock
}

// DefaultDataPath returns the default location of the notes document
func DefaultDataPath(paths Paths) string {
	return filepath.Join(paths.Data, consts.NotesDirName, consts.DataFilename)
}

// Credentials returns the credentials used for uploads
func (ctx NotesCtx) Credentials() client.Credentials {
	return client.Credentials{
		Username: ctx.Username,
		Password: ctx.Password,
	}
}

// LoggedIn reports whether both a server and a username are configured
func (ctx NotesCtx) LoggedIn() bool {
	return ctx.ServerURL != "" && ctx.Username != ""
}

// Redact replaces private information from the context with a set of
// placeholder values.
func Redact(ctx NotesCtx) NotesCtx {
	if ctx.Password != "" {
		ctx.Password = "<redacted>"
	}

	return ctx
}
