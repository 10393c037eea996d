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

package root

import (
	"context"

	"github.com/spf13/cobra"
)

var dataPathFlag string

var root = &cobra.Command{
	Use:           "notes",
	Short:         "notes - text and image notes, uploaded to your server",
	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	root.PersistentFlags().StringVar(&dataPathFlag, "dataPath", "", "the path to the notes document (defaults to standard location)")
}

// GetRoot returns the root command
func GetRoot() *cobra.Command {
	return root
}

// GetDataPathFlag returns the value of the --dataPath flag
func GetDataPathFlag() string {
	return dataPathFlag
}

// Register adds a new command
func Register(cmd *cobra.Command) {
	root.AddCommand(cmd)
}

// Execute runs the main command. ctx is passed on to the commands and
// cancels uploads and watches when done.
func Execute(ctx context.Context) error {
	return root.ExecuteContext(ctx)
}
