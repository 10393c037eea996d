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

// Package infra provides operations and definitions for the
// local infrastructure for notes
package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/littledivy/notes/pkg/cli/client"
	"github.com/littledivy/notes/pkg/cli/config"
	"github.com/littledivy/notes/pkg/cli/consts"
	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/store"
	"github.com/littledivy/notes/pkg/cli/utils"
	"github.com/littledivy/notes/pkg/clock"
	"github.com/littledivy/notes/pkg/dirs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RunEFunc is a function type of notes commands
type RunEFunc func(*cobra.Command, []string) error

// newBaseCtx creates a minimal context with paths. This base context is used
// for file initialization before being enriched with config values by
// setupCtx.
func newBaseCtx(versionTag, customDataPath string) context.NotesCtx {
	dirs.Reload()

	paths := context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}

	dataPath := customDataPath
	if dataPath == "" {
		dataPath = context.DefaultDataPath(paths)
	}

	return context.NotesCtx{
		Paths:    paths,
		DataPath: dataPath,
		Version:  versionTag,
		Clock:    clock.New(),
	}
}

// Init initializes the notes environment and returns a new context with a
// loaded store. serverURL, when set, takes precedence over the configured
// server without being written to the config file.
func Init(versionTag, serverURL, dataPath string) (*context.NotesCtx, error) {
	ctx := newBaseCtx(versionTag, dataPath)

	if err := initFiles(ctx); err != nil {
		return nil, errors.Wrap(err, "initializing files")
	}

	ctx, err := setupCtx(ctx, serverURL)
	if err != nil {
		return nil, errors.Wrap(err, "setting up the context")
	}

	if err := loadStore(&ctx); err != nil {
		return nil, errors.Wrap(err, "loading notes")
	}

	log.Debug("context: %+v\n", context.Redact(ctx))

	return &ctx, nil
}

// setupCtx enriches the base context with values from the config file and
// the environment
func setupCtx(ctx context.NotesCtx, serverURL string) (context.NotesCtx, error) {
	if err := config.LoadEnvFile(ctx); err != nil {
		return ctx, errors.Wrap(err, "loading env file")
	}

	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}
	cf = config.ApplyEnv(cf)
	if serverURL != "" {
		cf.ServerURL = serverURL
	}

	if err := config.Validate(cf); err != nil {
		return ctx, errors.Wrap(err, "invalid config")
	}

	c := client.New(client.NewRateLimitedHTTPClient())
	c.Version = ctx.Version

	ret := ctx
	ret.Client = c
	ret.ServerURL = cf.ServerURL
	ret.Username = cf.Username
	ret.Password = cf.Password
	ret.NotesTint = cf.NotesTint
	ret.Editor = cf.Editor

	return ret, nil
}

// loadStore opens the store for the data path of ctx and loads it. A
// document that cannot be decoded is copied aside, the store is cleared
// and the decode error is returned, so that the next session starts empty.
func loadStore(ctx *context.NotesCtx) error {
	if err := utils.EnsureDir(filepath.Dir(ctx.DataPath)); err != nil {
		return errors.Wrap(err, "creating the data dir")
	}

	s := store.New(ctx.DataPath, ctx.Clock)
	ctx.Store = s

	_, err := s.Load()
	if err == nil {
		return nil
	}
	if !store.IsDecodeError(err) {
		return err
	}

	backup := fmt.Sprintf("%s%s%d", s.Path(), consts.CorruptSuffix, ctx.Clock.Now().Unix())
	if cerr := utils.CopyFile(s.Path(), backup); cerr != nil {
		log.Warnf("could not back up the corrupt document: %s\n", cerr)
		return err
	}

	s.Clear()

	return errors.Wrapf(err, "the unreadable document was moved to %s", backup)
}

// getEditorCommand returns the system's editor command with appropriate flags,
// if necessary, to make the command wait until editor is close to exit.
func getEditorCommand() string {
	editor := os.Getenv("EDITOR")

	var ret string

	switch editor {
	case "atom":
		ret = "atom -w"
	case "subl":
		ret = "subl -n -w"
	case "code":
		ret = "code -n -w"
	case "mate":
		ret = "mate -w"
	case "vim", "nano", "emacs", "nvim", "hx":
		ret = editor
	default:
		ret = "vi"
	}

	return ret
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(ctx context.NotesCtx) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	cf := config.Config{
		Editor:    getEditorCommand(),
		NotesTint: consts.DefaultTint,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

// initFiles creates, if necessary, the notes directories and the config file
func initFiles(ctx context.NotesCtx) error {
	if err := context.InitNotesDirs(ctx.Paths); err != nil {
		return errors.Wrap(err, "creating the notes dir")
	}
	if err := initConfigFile(ctx); err != nil {
		return errors.Wrap(err, "generating the config file")
	}

	return nil
}
