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

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/littledivy/notes/pkg/assert"
)

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	testPath := filepath.Join(tmpDir, "test", "nested", "dir")

	err := EnsureDir(testPath)
	assert.Equal(t, err, nil, "EnsureDir should succeed")

	info, err := os.Stat(testPath)
	assert.Equal(t, err, nil, "directory should exist")
	assert.Equal(t, info.IsDir(), true, "should be a directory")

	err = EnsureDir(testPath)
	assert.Equal(t, err, nil, "EnsureDir should succeed on existing directory")
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	p := filepath.Join(tmpDir, "notes.data")

	ok, err := FileExists(p)
	assert.Equal(t, err, nil, "FileExists errored")
	assert.Equal(t, ok, false, "missing file reported as existing")

	if err := os.WriteFile(p, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}

	ok, err = FileExists(p)
	assert.Equal(t, err, nil, "FileExists errored")
	assert.Equal(t, ok, true, "existing file reported as missing")
}

func TestCopyFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src")
	dest := filepath.Join(tmpDir, "dest")

	if err := os.WriteFile(src, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dest); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, string(b), "not json", "content mismatch")

	fi, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, fi.Mode().Perm(), os.FileMode(0600), "permission mismatch")
}
