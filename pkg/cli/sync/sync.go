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

// Package sync composes the upload of a note with its persistence. A note
// created through CreateNote is pushed to the store only after the server
// assigned its ref.
package sync

import (
	"context"

	"github.com/littledivy/notes/pkg/cli/client"
	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/littledivy/notes/pkg/cli/note"
	"github.com/littledivy/notes/pkg/cli/store"
	"github.com/littledivy/notes/pkg/cli/utils"
	"github.com/pkg/errors"
)

// State is a step of the create flow
type State int

const (
	// StateDraft is the state of a validated draft before upload
	StateDraft State = iota
	// StateUploading is entered when the upload request is sent
	StateUploading
	// StateUploaded is entered when the server returned a ref
	StateUploaded
	// StateAppended is entered when the note is handed to the store
	StateAppended
	// StatePersisted is entered when the store saved the note
	StatePersisted
	// StateFailed is entered when any step fails
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateUploading:
		return "uploading"
	case StateUploaded:
		return "uploaded"
	case StateAppended:
		return "appended"
	case StatePersisted:
		return "persisted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Uploader uploads the content of a note and returns its ref
type Uploader interface {
	Upload(ctx context.Context, endpoint string, creds client.Credentials, content []byte) (string, error)
}

// Params are the inputs of CreateNote
type Params struct {
	Endpoint    string
	Credentials client.Credentials
	Draft       note.Draft
	// OnState is called on every state transition when set
	OnState func(State)
}

func (p Params) enter(s State) {
	log.Debug("create: %s\n", s)
	if p.OnState != nil {
		p.OnState(s)
	}
}

// CreateNote uploads the draft and pushes the resulting note to s. If any
// step fails the store is left untouched and the error is returned.
func CreateNote(ctx context.Context, s *store.Store, u Uploader, p Params) (note.Note, error) {
	if err := note.ValidateDraft(p.Draft); err != nil {
		p.enter(StateFailed)
		return note.Note{}, errors.Wrap(err, "validating draft")
	}
	p.enter(StateDraft)

	p.enter(StateUploading)
	ref, err := u.Upload(ctx, p.Endpoint, p.Credentials, p.Draft.Content)
	if err != nil {
		p.enter(StateFailed)
		return note.Note{}, errors.Wrap(err, "uploading note")
	}
	p.enter(StateUploaded)

	n := p.Draft.Finalize(ref)

	p.enter(StateAppended)
	if err := s.Push(n); err != nil {
		p.enter(StateFailed)
		return note.Note{}, errors.Wrap(err, "saving note")
	}
	p.enter(StatePersisted)

	return n, nil
}

// CreateLocalNote pushes the draft to s under a locally generated ref
// without uploading it
func CreateLocalNote(s *store.Store, d note.Draft) (note.Note, error) {
	if err := note.ValidateDraft(d); err != nil {
		return note.Note{}, errors.Wrap(err, "validating draft")
	}

	ref, err := utils.GenerateUUID()
	if err != nil {
		return note.Note{}, errors.Wrap(err, "generating ref")
	}

	n := d.Finalize(ref)
	if err := s.Push(n); err != nil {
		return note.Note{}, errors.Wrap(err, "saving note")
	}

	return n, nil
}
