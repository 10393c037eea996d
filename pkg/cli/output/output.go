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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/note"
)

// previewLength is the number of characters of a text note shown in a list
const previewLength = 40

// NoteInfo prints a note information
func NoteInfo(w io.Writer, n note.Note) {
	log.Infof("title: %s\n", n.Title)
	log.Infof("type: %s\n", n.Type)
	log.Infof("note ref: %s\n", n.Ref)

	if n.Type == note.TypeImage {
		info, err := note.DecodeImageInfo(n.Content)
		if err != nil {
			log.Warnf("unreadable image: %s\n", err)
			return
		}

		log.Infof("image: %s, %dx%d, %d bytes\n", info.Format, info.Width, info.Height, len(n.Content))
		return
	}

	fmt.Fprintf(w, "\n------------------------content------------------------\n")
	fmt.Fprintf(w, "%s", n.Text())
	fmt.Fprintf(w, "\n-------------------------------------------------------\n")
}

// NoteContent writes the raw content of a note
func NoteContent(w io.Writer, n note.Note) {
	w.Write(n.Content)
}

// NoteList prints one row per note with its 1-based position. The title is
// printed in tint.
func NoteList(w io.Writer, notes []note.Note, tint *color.Color) {
	for i, n := range notes {
		fmt.Fprintf(w, "%s %s %s %s\n",
			log.ColorGray.Sprintf("(%d)", i+1),
			tint.Sprint(n.Title),
			log.ColorGray.Sprintf("[%s]", n.Ref),
			preview(n),
		)
	}
}

func preview(n note.Note) string {
	if n.Type != note.TypeText {
		return fmt.Sprintf("<%s, %d bytes>", n.Type, len(n.Content))
	}

	text := strings.Join(strings.Fields(n.Text()), " ")
	runes := []rune(text)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}

	return text
}
