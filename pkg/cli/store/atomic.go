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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// tmpFilePrefix is the prefix of the temporary file a document is written
// to before it replaces the previous one
const tmpFilePrefix = ".notes-tmp-"

// writeFileAtomic replaces filename with data. The data is written to a
// temporary file in the same directory and renamed over filename, so a
// reader sees either the old or the new document.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tmpFilePrefix+"*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	// no-op once the rename succeeded
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "syncing temp file")
	}

	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return errors.Wrap(err, "setting permission of temp file")
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return errors.Wrapf(err, "renaming temp file to %s", filename)
	}

	return nil
}
