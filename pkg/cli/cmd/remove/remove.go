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

package remove

import (
	"fmt"

	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var yesFlag bool

var example = `
 * Remove the first note listed by 'notes ls'
 notes remove 1

 * Remove a note by its ref without confirmation
 notes remove 5c9b9c1e -y`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new remove command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <ref or index>",
		Short:   "Remove a note",
		Aliases: []string{"rm", "d", "delete"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "remove without confirmation")

	return cmd
}

// confirmFunc asks the user whether to go ahead
type confirmFunc func(question string, optimistic bool) (bool, error)

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		return removeNote(ctx, args[0], yesFlag, ui.Confirm)
	}
}

func removeNote(ctx context.NotesCtx, refOrIndex string, yes bool, confirm confirmFunc) error {
	n, err := ctx.Store.Resolve(refOrIndex)
	if err != nil {
		return errors.Wrap(err, "finding the note")
	}

	if !yes {
		ok, err := confirm(fmt.Sprintf("remove '%s' (%s)?", n.Title, n.Ref), false)
		if err != nil {
			return errors.Wrap(err, "getting confirmation")
		}
		if !ok {
			log.Warnf("aborted by user\n")
			return nil
		}
	}

	if err := ctx.Store.Remove(n.Ref); err != nil {
		return errors.Wrap(err, "removing the note")
	}

	log.Successf("removed %s\n", n.Ref)

	return nil
}
