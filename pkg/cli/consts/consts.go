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

// Package consts provides definitions of constants
package consts

var (
	// NotesDirName is the name of the application directory under each of
	// the XDG base directories
	NotesDirName = "notes"
	// DataFilename is the name of the persisted notes document
	DataFilename = "notes.data"
	// CorruptSuffix is inserted between the data filename and a unix
	// timestamp when an unreadable document is set aside
	CorruptSuffix = ".corrupt-"
	// ConfigFilename is the name of the config file
	ConfigFilename = "notesrc"
	// EnvFilename is the name of the optional dotenv file next to the config
	EnvFilename = ".env"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "NOTES_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "txt"

	// EnvServerURL overrides the configured upload endpoint
	EnvServerURL = "NOTES_SERVER_URL"
	// EnvUsername overrides the configured username
	EnvUsername = "NOTES_USERNAME"
	// EnvPassword overrides the configured password
	EnvPassword = "NOTES_PASSWORD"

	// DefaultTint is the accent color used when none is configured
	DefaultTint = "blue"
)
