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

package add

import (
	"os"
	"strings"

	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/note"
	"github.com/littledivy/notes/pkg/cli/output"
	"github.com/littledivy/notes/pkg/cli/sync"
	"github.com/littledivy/notes/pkg/cli/ui"
	"github.com/littledivy/notes/pkg/cli/validate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrNoServer is returned when a note is to be uploaded but no server is
// configured
var ErrNoServer = errors.New("no server configured. Run `notes login` or add the note with --local")

var titleFlag string
var contentFlag string
var imageFlag string
var localFlag bool

var example = `
 * Open an editor to write content
 notes add -t "Groceries"

 * Skip the editor by providing content directly
 notes add -t "Groceries" -c "milk, eggs"

 * Send stdin content to a note
 echo "a branch is just a pointer to a commit" | notes add -t git

 * Add an image
 notes add -t "Whiteboard" --image ./whiteboard.png

 * Keep the note on this machine only
 notes add --local -c "offline thought"`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errors.New("Incorrect number of argument")
	}
	if imageFlag != "" && contentFlag != "" {
		return errors.New("--image and --content cannot be used together")
	}

	return nil
}

// NewCmd returns a new add command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a new note",
		Aliases: []string{"a", "n", "new"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&titleFlag, "title", "t", "", "The title of the note")
	f.StringVarP(&contentFlag, "content", "c", "", "The content of the note")
	f.StringVar(&imageFlag, "image", "", "Path to a JPEG, PNG or GIF image to add as the note")
	f.BoolVar(&localFlag, "local", false, "Keep the note on this machine without uploading it")

	return cmd
}

func getText(ctx context.NotesCtx) (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}

	if ui.StdinIsPipe() {
		b, err := ui.ReadStdin()
		if err != nil {
			return "", errors.Wrap(err, "Failed to get piped input")
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}

	fpath, err := ui.GetTmpContentPath(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting temporarily content file path")
	}

	c, err := ui.GetEditorInput(ctx, fpath)
	if err != nil {
		return "", errors.Wrap(err, "Failed to get editor input")
	}

	return strings.TrimRight(c, "\r\n"), nil
}

func getDraft(ctx context.NotesCtx) (note.Draft, error) {
	if imageFlag != "" {
		b, err := os.ReadFile(imageFlag)
		if err != nil {
			return note.Draft{}, errors.Wrap(err, "reading the image")
		}

		return note.NewImageDraft(titleFlag, b), nil
	}

	text, err := getText(ctx)
	if err != nil {
		return note.Draft{}, err
	}

	return note.NewTextDraft(titleFlag, text), nil
}

func onState(s sync.State) {
	if s == sync.StateUploading {
		log.Infof("uploading\n")
	}
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate.Title(titleFlag); err != nil {
			return errors.Wrap(err, "invalid title")
		}
		if !localFlag && ctx.ServerURL == "" {
			return ErrNoServer
		}

		draft, err := getDraft(ctx)
		if err != nil {
			return errors.Wrap(err, "getting content")
		}

		var n note.Note
		if localFlag {
			n, err = sync.CreateLocalNote(ctx.Store, draft)
		} else {
			n, err = sync.CreateNote(cmd.Context(), ctx.Store, ctx.Client, sync.Params{
				Endpoint:    ctx.ServerURL,
				Credentials: ctx.Credentials(),
				Draft:       draft,
				OnState:     onState,
			})
		}
		if err != nil {
			return errors.Wrap(err, "Failed to add note")
		}

		log.Successf("added %s\n", n.Ref)
		output.NoteInfo(cmd.OutOrStdout(), n)

		return nil
	}
}
