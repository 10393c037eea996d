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

package clear

import (
	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var yesFlag bool

var example = `
  notes clear
  notes clear -y`

// NewCmd returns a new clear command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Remove every note",
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "clear without confirmation")

	return cmd
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		count := len(ctx.Store.Notes())
		if count == 0 {
			log.Info("no notes to clear\n")
			return nil
		}

		if !yesFlag {
			ok, err := ui.Confirm("remove all notes?", false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		ctx.Store.Clear()
		if n := len(ctx.Store.Notes()); n != 0 {
			return errors.Errorf("could not clear %d notes", n)
		}

		log.Successf("removed %d notes\n", count)

		return nil
	}
}
