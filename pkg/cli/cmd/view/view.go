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

package view

import (
	"io"
	"os"

	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * View the first note listed by 'notes ls'
 notes view 1

 * View a note by its ref
 notes view 5c9b9c1e

 * Print only the content
 notes view 1 --content-only

 * Save an image note to a file
 notes view 2 -o whiteboard.png`

var contentOnly bool
var outputFlag string

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new view command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view <ref or index>",
		Aliases: []string{"v", "cat"},
		Short:   "View a note",
		Example: example,
		RunE:    newRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.BoolVarP(&contentOnly, "content-only", "", false, "print the note content only")
	f.StringVarP(&outputFlag, "output", "o", "", "write the raw content of the note to a file")

	return cmd
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if outputFlag != "" {
			return saveNote(ctx, args[0], outputFlag)
		}

		return viewNote(ctx, cmd.OutOrStdout(), args[0], contentOnly)
	}
}

func viewNote(ctx context.NotesCtx, w io.Writer, refOrIndex string, contentOnly bool) error {
	n, err := ctx.Store.Resolve(refOrIndex)
	if err != nil {
		return errors.Wrap(err, "finding the note")
	}

	if contentOnly {
		output.NoteContent(w, n)
		return nil
	}

	output.NoteInfo(w, n)

	return nil
}

func saveNote(ctx context.NotesCtx, refOrIndex, path string) error {
	n, err := ctx.Store.Resolve(refOrIndex)
	if err != nil {
		return errors.Wrap(err, "finding the note")
	}

	if err := os.WriteFile(path, n.Content, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	log.Successf("wrote %s (%d bytes)\n", path, len(n.Content))

	return nil
}
