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

package ls

import (
	"io"

	"github.com/littledivy/notes/pkg/cli/consts"
	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * List all notes
 notes ls

 * List notes whose title or text contains a term
 notes ls milk`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new ls command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls <search term?>",
		Aliases: []string{"l", "list", "search"},
		Short:   "List or search notes",
		Example: example,
		PreRunE: preRun,
		RunE:    NewRun(ctx),
	}

	return cmd
}

// NewRun returns a new run function for ls
func NewRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		var term string
		if len(args) == 1 {
			term = args[0]
		}

		return listNotes(ctx, cmd.OutOrStdout(), term)
	}
}

func listNotes(ctx context.NotesCtx, w io.Writer, term string) error {
	notes := ctx.Store.Search(term)
	if len(notes) == 0 {
		if term == "" {
			log.Info("no notes yet\n")
		} else {
			log.Infof("no notes match '%s'\n", term)
		}
		return nil
	}

	tint, ok := log.TintColor(ctx.NotesTint)
	if !ok {
		tint, _ = log.TintColor(consts.DefaultTint)
	}

	output.NoteList(w, notes, tint)

	return nil
}
