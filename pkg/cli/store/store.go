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

// Package store keeps the list of notes in memory and persists it as a
// single JSON document. Every write replaces the whole document.
package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/note"
	"github.com/littledivy/notes/pkg/cli/utils"
	"github.com/littledivy/notes/pkg/clock"
	"github.com/pkg/errors"
)

// documentPerm is the permission of the persisted document
const documentPerm os.FileMode = 0600

// Store is the canonical list of notes for one session
type Store struct {
	path  string
	clock clock.Clock

	// mu guards notes and digest, and serializes every write of the
	// document
	mu     sync.Mutex
	notes  []note.Note
	digest [sha256.Size]byte

	subMu     sync.Mutex
	subs      map[int]chan Event
	nextSubID int
}

// New returns a store persisting to the document at path. The list is
// empty until Load is called.
func New(path string, c clock.Clock) *Store {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return &Store{
		path:  path,
		clock: c,
		notes: []note.Note{},
		subs:  map[int]chan Event{},
	}
}

// Path returns the path of the persisted document
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory list with the persisted document. A missing
// document is an empty list. If the document cannot be decoded, the
// in-memory list is left as it was and a *DecodeError is returned.
func (s *Store) Load() ([]note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, digest, err := s.read()
	if err != nil {
		return nil, err
	}

	s.notes = notes
	s.digest = digest
	log.Debug("loaded %d notes from %s\n", len(notes), s.path)
	s.publish(EventLoad, "", len(notes))

	return cloneNotes(notes), nil
}

// read reads and decodes the document. The caller must hold mu.
func (s *Store) read() ([]note.Note, [sha256.Size]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []note.Note{}, [sha256.Size]byte{}, nil
		}

		return nil, [sha256.Size]byte{}, &IOError{Op: "read", Path: s.path, Err: err}
	}

	notes, err := decode(b)
	if err != nil {
		return nil, [sha256.Size]byte{}, &DecodeError{Path: s.path, Err: err}
	}

	return notes, sha256.Sum256(b), nil
}

// Save persists notes as the full document and makes it the in-memory
// list. If the write fails, the previous document and list are kept.
func (s *Store) Save(notes []note.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(notes); err != nil {
		return err
	}

	s.publish(EventSave, "", len(notes))
	return nil
}

// save writes notes and commits them to memory. The caller must hold mu.
func (s *Store) save(notes []note.Note) error {
	if err := checkNotes(notes); err != nil {
		return err
	}

	b, err := encode(notes)
	if err != nil {
		return errors.Wrap(err, "encoding notes")
	}

	if err := utils.EnsureDir(filepath.Dir(s.path)); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, b, documentPerm); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}

	s.notes = cloneNotes(notes)
	s.digest = sha256.Sum256(b)
	log.Debug("saved %d notes to %s\n", len(notes), s.path)

	return nil
}

// Push appends n and saves the list. It returns once the document is
// written. If the write fails, the in-memory list is unchanged.
func (s *Store) Push(n note.Note) error {
	if err := checkNote(n); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.notes, n.Ref) != -1 {
		return errors.Wrap(ErrDuplicateRef, n.Ref)
	}

	next := make([]note.Note, 0, len(s.notes)+1)
	next = append(next, s.notes...)
	next = append(next, n)

	if err := s.save(next); err != nil {
		return errors.Wrapf(err, "pushing note %s", n.Ref)
	}

	s.publish(EventPush, n.Ref, len(next))
	return nil
}

// Remove deletes the note with the given ref and saves the list
func (s *Store) Remove(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.notes, ref)
	if idx == -1 {
		return errors.Wrap(ErrNoteNotFound, ref)
	}

	next := make([]note.Note, 0, len(s.notes)-1)
	next = append(next, s.notes[:idx]...)
	next = append(next, s.notes[idx+1:]...)

	if err := s.save(next); err != nil {
		return errors.Wrapf(err, "removing note %s", ref)
	}

	s.publish(EventRemove, ref, len(next))
	return nil
}

// Clear saves an empty list. A failure is logged and not returned.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save([]note.Note{}); err != nil {
		log.Warnf("clearing notes: %s\n", err)
		return
	}

	s.publish(EventClear, "", 0)
}

// Notes returns a copy of the in-memory list
func (s *Store) Notes() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneNotes(s.notes)
}

// Find returns the note with the given ref
func (s *Store) Find(ref string) (note.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.notes, ref)
	if idx == -1 {
		return note.Note{}, false
	}

	return s.notes[idx], true
}

// Resolve finds a note by ref, or by its 1-based position in the list as
// printed by `notes ls`. A ref takes precedence over a position.
func (s *Store) Resolve(refOrIndex string) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := indexOf(s.notes, refOrIndex); idx != -1 {
		return s.notes[idx], nil
	}
	if idx, ok := utils.ParseIndex(refOrIndex, len(s.notes)); ok {
		return s.notes[idx], nil
	}

	return note.Note{}, errors.Wrap(ErrNoteNotFound, refOrIndex)
}

// Search returns the notes matching term in list order. An empty term
// returns every note.
func (s *Store) Search(term string) []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := []note.Note{}
	for _, n := range s.notes {
		if n.Matches(term) {
			ret = append(ret, n)
		}
	}

	return ret
}

func encode(notes []note.Note) ([]byte, error) {
	if notes == nil {
		notes = []note.Note{}
	}

	return json.Marshal(notes)
}

func decode(b []byte) ([]note.Note, error) {
	var notes []note.Note

	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&notes); err != nil {
		return nil, errors.Wrap(err, "parsing document")
	}
	if dec.More() {
		return nil, errors.New("unexpected data after document")
	}

	if notes == nil {
		notes = []note.Note{}
	}

	if err := checkNotes(notes); err != nil {
		return nil, err
	}

	return notes, nil
}

// checkNote reports whether n can be part of a document
func checkNote(n note.Note) error {
	if n.Ref == "" {
		return ErrMissingRef
	}
	if err := note.CheckContent(n.Type, n.Content); err != nil {
		return errors.Wrapf(err, "note %s", n.Ref)
	}

	return nil
}

// checkNotes applies the rules every document holds to: each note is
// valid and refs are unique. Save and Load share it, so a saved list
// always loads back.
func checkNotes(notes []note.Note) error {
	seen := make(map[string]bool, len(notes))
	for i, n := range notes {
		if err := checkNote(n); err != nil {
			return errors.Wrapf(err, "note %d", i)
		}
		if seen[n.Ref] {
			return errors.Wrap(ErrDuplicateRef, n.Ref)
		}
		seen[n.Ref] = true
	}

	return nil
}

func indexOf(notes []note.Note, ref string) int {
	for i, n := range notes {
		if n.Ref == ref {
			return i
		}
	}

	return -1
}

func cloneNotes(notes []note.Note) []note.Note {
	ret := make([]note.Note, len(notes))
	copy(ret, notes)

	return ret
}
