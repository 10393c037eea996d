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

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/littledivy/notes/pkg/cli/infra"
	"github.com/littledivy/notes/pkg/cli/log"

	// commands
	"github.com/littledivy/notes/pkg/cli/cmd/add"
	"github.com/littledivy/notes/pkg/cli/cmd/clear"
	"github.com/littledivy/notes/pkg/cli/cmd/login"
	"github.com/littledivy/notes/pkg/cli/cmd/logout"
	"github.com/littledivy/notes/pkg/cli/cmd/ls"
	"github.com/littledivy/notes/pkg/cli/cmd/remove"
	"github.com/littledivy/notes/pkg/cli/cmd/root"
	"github.com/littledivy/notes/pkg/cli/cmd/version"
	"github.com/littledivy/notes/pkg/cli/cmd/view"
	"github.com/littledivy/notes/pkg/cli/cmd/watch"
)

// serverURL and versionTag are populated during link time
var serverURL string
var versionTag = "master"

// parseDataPath extracts --dataPath flag value from command line arguments
// regardless of where it appears (before or after subcommand).
// Returns empty string if not found.
func parseDataPath(args []string) string {
	for i, arg := range args {
		if strings.HasPrefix(arg, "--dataPath=") {
			return strings.TrimPrefix(arg, "--dataPath=")
		}
		if arg == "--dataPath" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	// The store is loaded before cobra parses flags, and --dataPath can
	// appear after the subcommand.
	dataPath := parseDataPath(os.Args[1:])

	ctx, err := infra.Init(versionTag, serverURL, dataPath)
	if err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}

	root.Register(add.NewCmd(*ctx))
	root.Register(ls.NewCmd(*ctx))
	root.Register(view.NewCmd(*ctx))
	root.Register(remove.NewCmd(*ctx))
	root.Register(clear.NewCmd(*ctx))
	root.Register(login.NewCmd(*ctx))
	root.Register(logout.NewCmd(*ctx))
	root.Register(watch.NewCmd(*ctx))
	root.Register(version.NewCmd(*ctx))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Execute(sigCtx); err != nil {
		stop()
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
