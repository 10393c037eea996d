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

package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/littledivy/notes/pkg/assert"
	"github.com/littledivy/notes/pkg/cli/config"
	"github.com/littledivy/notes/pkg/cli/consts"
	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/note"
	"github.com/littledivy/notes/pkg/cli/store"
	"github.com/littledivy/notes/pkg/clock"
	"github.com/pkg/errors"
)

func setupEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv(consts.EnvServerURL, "")
	t.Setenv(consts.EnvUsername, "")
	t.Setenv(consts.EnvPassword, "")

	return tmpDir
}

func TestInit(t *testing.T) {
	tmpDir := setupEnv(t)

	ctx, err := Init("test-version", "", "")
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing"))
	}

	assert.Equal(t, ctx.DataPath, filepath.Join(tmpDir, "data", "notes", "notes.data"), "data path mismatch")
	assert.Equal(t, ctx.Version, "test-version", "version mismatch")
	assert.Equal(t, ctx.NotesTint, consts.DefaultTint, "tint mismatch")
	assert.Equal(t, len(ctx.Store.Notes()), 0, "store should be empty")
	assert.Equal(t, ctx.Client != nil, true, "client should be set")

	_, err = os.Stat(config.GetPath(*ctx))
	assert.Equal(t, err, nil, "config file should be created")
}

func TestInit_ServerURLOverride(t *testing.T) {
	setupEnv(t)

	ctx, err := Init("test-version", "", "")
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing"))
	}

	cf, err := config.Read(*ctx)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading config"))
	}
	cf.ServerURL = "http://127.0.0.1:3001"
	if err := config.Write(*ctx, cf); err != nil {
		t.Fatal(errors.Wrap(err, "writing config"))
	}

	override := "http://127.0.0.1:3002"
	ctx2, err := Init("test-version", override, "")
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing with override"))
	}
	assert.Equal(t, ctx2.ServerURL, override, "should use the override")

	cf2, err := config.Read(*ctx2)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading config after override"))
	}
	assert.Equal(t, cf2.ServerURL, cf.ServerURL, "config should keep the original server")
}

func TestInit_Env(t *testing.T) {
	setupEnv(t)
	t.Setenv(consts.EnvServerURL, "https://env.example.com")
	t.Setenv(consts.EnvUsername, "envuser")
	t.Setenv(consts.EnvPassword, "envpw")

	ctx, err := Init("test-version", "", "")
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing"))
	}

	assert.Equal(t, ctx.ServerURL, "https://env.example.com", "server mismatch")
	assert.Equal(t, ctx.Username, "envuser", "username mismatch")
	assert.Equal(t, ctx.Password, "envpw", "password mismatch")
}

func TestInit_InvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv(consts.EnvServerURL, "not a url")

	_, err := Init("test-version", "", "")
	assert.NotEqual(t, err, nil, "invalid server url should fail init")
}

func TestInit_CustomDataPath(t *testing.T) {
	tmpDir := setupEnv(t)
	dataPath := filepath.Join(tmpDir, "elsewhere", "my.data")

	ctx, err := Init("test-version", "", dataPath)
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing"))
	}

	if err := ctx.Store.Push(note.NewTextDraft("", "hi").Finalize("r1")); err != nil {
		t.Fatal(err)
	}

	_, err = os.Stat(dataPath)
	assert.Equal(t, err, nil, "document should be at the custom path")
}

func TestLoadStore_Corrupt(t *testing.T) {
	ctx := context.InitTestCtx(t)
	c := clock.NewMock()
	c.SetNow(time.Unix(1700000000, 0))
	ctx.Clock = c

	if err := os.WriteFile(ctx.DataPath, []byte("{corrupt"), 0600); err != nil {
		t.Fatal(err)
	}

	err := loadStore(&ctx)
	assert.Equal(t, store.IsDecodeError(err), true, "expected a DecodeError")
	assert.Equal(t, strings.Contains(err.Error(), "notes.data.corrupt-1700000000"), true, "error should name the backup")

	backup, err := os.ReadFile(ctx.DataPath + ".corrupt-1700000000")
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading backup"))
	}
	assert.Equal(t, string(backup), "{corrupt", "backup content mismatch")

	current, err := os.ReadFile(ctx.DataPath)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, string(current), "[]", "document should be cleared")

	// the next session starts empty
	if err := loadStore(&ctx); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(ctx.Store.Notes()), 0, "store should be empty")
}

func TestGetEditorCommand(t *testing.T) {
	testCases := []struct {
		editor   string
		expected string
	}{
		{editor: "code", expected: "code -n -w"},
		{editor: "nvim", expected: "nvim"},
		{editor: "", expected: "vi"},
		{editor: "unknown-editor", expected: "vi"},
	}

	for _, tc := range testCases {
		t.Setenv("EDITOR", tc.editor)
		assert.Equal(t, getEditorCommand(), tc.expected, "editor mismatch for "+tc.editor)
	}
}
