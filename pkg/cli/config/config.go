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

// Package config reads and writes the notes configuration file
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/littledivy/notes/pkg/cli/consts"
	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/utils"
	"github.com/littledivy/notes/pkg/cli/validate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ErrNotesTintInvalid is an error for a tint that is not a known color
var ErrNotesTintInvalid = errors.New("unknown notes tint")

// Config holds notes configuration
type Config struct {
	Editor    string `yaml:"editor"`
	ServerURL string `yaml:"serverURL"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	NotesTint string `yaml:"notesTint"`
}

// GetPath returns the path to the notes config file
func GetPath(ctx context.NotesCtx) string {
	return filepath.Join(ctx.Paths.Config, consts.NotesDirName, consts.ConfigFilename)
}

// GetEnvPath returns the path to the optional dotenv file
func GetEnvPath(ctx context.NotesCtx) string {
	return filepath.Join(ctx.Paths.Config, consts.NotesDirName, consts.EnvFilename)
}

// Read reads the config file
func Read(ctx context.NotesCtx) (Config, error) {
	var ret Config

	configPath := GetPath(ctx)
	b, err := os.ReadFile(configPath)
	if err != nil {
		return ret, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(b, &ret)
	if err != nil {
		return ret, errors.Wrap(err, "unmarshalling config")
	}

	return ret, nil
}

// Write writes the config to the config file. The file holds credentials
// and is only readable by the owner.
func Write(ctx context.NotesCtx, cf Config) error {
	path := GetPath(ctx)

	b, err := yaml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "marshalling config into YAML")
	}

	err = os.WriteFile(path, b, 0600)
	if err != nil {
		return errors.Wrap(err, "writing the config file")
	}

	return nil
}

// LoadEnvFile loads the dotenv file next to the config file into the
// environment, if present. Variables already set are not overridden.
func LoadEnvFile(ctx context.NotesCtx) error {
	path := GetEnvPath(ctx)

	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrapf(err, "checking %s", path)
	}
	if !ok {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	log.Debug("loaded environment from %s\n", path)

	return nil
}

// ApplyEnv returns cf with the values set in the environment taking
// precedence over the file
func ApplyEnv(cf Config) Config {
	overrides := []struct {
		env   string
		field *string
	}{
		{consts.EnvServerURL, &cf.ServerURL},
		{consts.EnvUsername, &cf.Username},
		{consts.EnvPassword, &cf.Password},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.field = v
		}
	}

	return cf
}

// Validate checks the values of a config
func Validate(cf Config) error {
	if cf.ServerURL != "" {
		if err := validate.ServerURL(cf.ServerURL); err != nil {
			return errors.Wrapf(err, "serverURL '%s'", cf.ServerURL)
		}
	}

	if cf.NotesTint != "" {
		if _, ok := log.TintColor(cf.NotesTint); !ok {
			return errors.Wrapf(ErrNotesTintInvalid, "'%s'", cf.NotesTint)
		}
	}

	return nil
}
