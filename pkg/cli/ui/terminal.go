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

package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/prompt"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
)

// stdin is shared by every prompt so that answers piped in one after
// another are not lost to an earlier buffered read
var stdin = bufio.NewReader(os.Stdin)

// PromptInput prompts the user input and saves the result to the destination
func PromptInput(message string, dest *string) error {
	log.Askf(message, false)

	input, err := prompt.ReadLine(stdin)
	if err != nil {
		return errors.Wrap(err, "getting user input")
	}

	*dest = input

	return nil
}

// PromptPassword prompts the user input a password and saves the result to the destination.
// The input is masked when stdin is a terminal.
func PromptPassword(message string, dest *string) error {
	log.Askf(message, true)

	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		input, err := prompt.ReadLine(stdin)
		if err != nil {
			return errors.Wrap(err, "getting user input")
		}

		*dest = input
		return nil
	}

	password, err := terminal.ReadPassword(fd)
	if err != nil {
		return errors.Wrap(err, "getting user input")
	}

	fmt.Println("")

	*dest = string(password)

	return nil
}

// Confirm prompts for user input to confirm a choice
func Confirm(question string, optimistic bool) (bool, error) {
	message := prompt.FormatQuestion(question, optimistic)

	log.Askf(message, false)

	confirmed, err := prompt.ReadYesNo(stdin, optimistic)
	if err != nil {
		return false, errors.Wrap(err, "Failed to get user input")
	}

	return confirmed, nil
}

// StdinIsPipe reports whether stdin is redirected from a pipe or a file
func StdinIsPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return fi.Mode()&os.ModeCharDevice == 0
}

// ReadStdin reads all of stdin, such as the content of a note piped into
// `notes add`
func ReadStdin() ([]byte, error) {
	b, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "reading pipe")
	}

	return b, nil
}
