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

// Package prompt reads answers to interactive questions, such as the
// confirmation before notes are removed and the username asked by login
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoInput is returned when the reader is exhausted before any answer
var ErrNoInput = errors.New("no input")

// FormatQuestion appends the choice indicator to a yes/no question. The
// capitalized choice is what an empty answer means.
func FormatQuestion(question string, optimistic bool) string {
	choices := "(y/N)"
	if optimistic {
		choices = "(Y/n)"
	}
	return fmt.Sprintf("%s %s", question, choices)
}

// ReadLine reads one answer from r and trims surrounding whitespace. A last
// line without a trailing newline is still an answer.
func ReadLine(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	input, err := reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", errors.Wrap(err, "reading input")
		}
		if input == "" {
			return "", ErrNoInput
		}
	}

	return strings.TrimSpace(input), nil
}

// ReadYesNo reads a yes/no answer from r. In optimistic mode an empty
// answer counts as yes.
func ReadYesNo(r io.Reader, optimistic bool) (bool, error) {
	input, err := ReadLine(r)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	case "":
		return optimistic, nil
	default:
		return false, nil
	}
}
