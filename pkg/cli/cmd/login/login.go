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

package login

import (
	"fmt"
	"net/url"

	"github.com/littledivy/notes/pkg/cli/config"
	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/ui"
	"github.com/littledivy/notes/pkg/cli/validate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  notes login
  notes login --serverURL https://notes.example.com/upload`

var usernameFlag, passwordFlag, serverURLFlag string

// NewCmd returns a new login command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Save the server and credentials used to upload notes",
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&usernameFlag, "username", "u", "", "username")
	f.StringVarP(&passwordFlag, "password", "p", "", "password")
	f.StringVar(&serverURLFlag, "serverURL", "", "URL notes are uploaded to (defaults to value in config)")

	return cmd
}

// Do saves the server and credentials to the config file
func Do(ctx context.NotesCtx, serverURL, username, password string) error {
	if err := validate.ServerURL(serverURL); err != nil {
		return errors.Wrapf(err, "'%s'", serverURL)
	}
	if err := validate.Username(username); err != nil {
		return err
	}

	cf, err := config.Read(ctx)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	cf.ServerURL = serverURL
	cf.Username = username
	cf.Password = password

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

func getServerURL(ctx context.NotesCtx) (string, error) {
	if serverURLFlag != "" {
		return serverURLFlag, nil
	}
	if ctx.ServerURL != "" {
		return ctx.ServerURL, nil
	}

	var ret string
	if err := ui.PromptInput("server URL", &ret); err != nil {
		return "", errors.Wrap(err, "getting server URL input")
	}

	return ret, nil
}

func getUsername() (string, error) {
	if usernameFlag != "" {
		return usernameFlag, nil
	}

	var ret string
	if err := ui.PromptInput("username", &ret); err != nil {
		return ret, errors.Wrap(err, "getting username input")
	}

	return ret, nil
}

func getPassword() (string, error) {
	if passwordFlag != "" {
		return passwordFlag, nil
	}

	var ret string
	if err := ui.PromptPassword("password", &ret); err != nil {
		return ret, errors.Wrap(err, "getting password input")
	}

	return ret, nil
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		serverURL, err := getServerURL(ctx)
		if err != nil {
			return err
		}

		displayURL := getServerDisplayURL(serverURL)
		if displayURL != "" {
			log.Infof("logging in to %s\n", displayURL)
		}

		username, err := getUsername()
		if err != nil {
			return err
		}
		password, err := getPassword()
		if err != nil {
			return err
		}

		if err := Do(ctx, serverURL, username, password); err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Successf("logged in as %s\n", username)

		return nil
	}
}

// getServerDisplayURL returns the scheme and host of the server, without
// the path or any credentials in the URL
func getServerDisplayURL(serverURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil {
		return ""
	}

	if u.Scheme == "" || u.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}
