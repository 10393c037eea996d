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

package watch

import (
	"time"

	"github.com/littledivy/notes/pkg/cli/context"
	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/store"
	"github.com/spf13/cobra"
)

var intervalFlag time.Duration

var example = `
  notes watch
  notes watch --interval 1s`

// NewCmd returns a new watch command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Print changes to the notes as other sessions make them",
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.DurationVar(&intervalFlag, "interval", store.DefaultWatchInterval, "how often the document is checked for changes")

	return cmd
}

func printEvents(events <-chan store.Event, done chan<- struct{}) {
	defer close(done)

	for e := range events {
		log.Infof("%s %s: %d notes\n", e.Timestamp.Format(time.Kitchen), e.Type, e.Count)
	}
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		events, cancel := ctx.Store.Subscribe()
		done := make(chan struct{})
		go printEvents(events, done)
		defer func() {
			cancel()
			<-done
		}()

		log.Infof("watching %s\n", ctx.Store.Path())

		return ctx.Store.Watch(cmd.Context(), intervalFlag)
	}
}
