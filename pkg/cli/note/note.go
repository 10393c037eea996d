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

// Package note defines the note record kept by the store and the draft a
// note is built from before it has a ref
package note

import (
	"strings"

	"github.com/pkg/errors"
)

// Type is the kind of content a note carries
type Type uint8

const (
	// TypeText is a note whose content is UTF-8 text
	TypeText Type = 0
	// TypeImage is a note whose content is an encoded raster image
	TypeImage Type = 1
)

// DefaultTitle is the title given to a note created without one
const DefaultTitle = "Untitled"

// ErrInvalidType is returned for a type outside of the known set
var ErrInvalidType = errors.New("invalid note type")

// Valid reports whether t is one of the known types
func (t Type) Valid() bool {
	return t == TypeText || t == TypeImage
}

func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeImage:
		return "image"
	default:
		return "unknown"
	}
}

// ParseType parses the name of a type as printed by String
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "text":
		return TypeText, nil
	case "image":
		return TypeImage, nil
	default:
		return 0, errors.Wrapf(ErrInvalidType, "'%s'", s)
	}
}

// Note is a single stored note. Ref is assigned by the server, or locally
// for offline notes, and identifies the note within a store.
type Note struct {
	Content []byte `json:"note"`
	Type    Type   `json:"type"`
	Ref     string `json:"ref"`
	Title   string `json:"title"`
}

// ID returns the identity of the note
func (n Note) ID() string {
	return n.Ref
}

// Text returns the content of a text note, and an empty string for other
// types
func (n Note) Text() string {
	if n.Type != TypeText {
		return ""
	}

	return string(n.Content)
}

// Matches reports whether the note is a hit for the search term. The title
// of any note, and the content of text notes, are matched case-insensitively.
// An empty term matches every note.
func (n Note) Matches(term string) bool {
	if term == "" {
		return true
	}

	t := strings.ToLower(term)
	if strings.Contains(strings.ToLower(n.Title), t) {
		return true
	}

	return n.Type == TypeText && strings.Contains(strings.ToLower(n.Text()), t)
}

// Draft is a note that has not been given a ref yet
type Draft struct {
	Title   string
	Type    Type
	Content []byte
}

// NewTextDraft returns a draft for a text note
func NewTextDraft(title, content string) Draft {
	return Draft{
		Title:   title,
		Type:    TypeText,
		Content: []byte(content),
	}
}

// NewImageDraft returns a draft for an image note
func NewImageDraft(title string, content []byte) Draft {
	return Draft{
		Title:   title,
		Type:    TypeImage,
		Content: content,
	}
}

// Finalize turns the draft into a note with the given ref
func (d Draft) Finalize(ref string) Note {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = DefaultTitle
	}

	return Note{
		Content: d.Content,
		Type:    d.Type,
		Ref:     ref,
		Title:   title,
	}
}
