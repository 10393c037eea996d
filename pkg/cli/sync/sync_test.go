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

package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/littledivy/notes/pkg/assert"
	"github.com/littledivy/notes/pkg/cli/client"
	"github.com/littledivy/notes/pkg/cli/note"
	"github.com/littledivy/notes/pkg/cli/store"
	"github.com/littledivy/notes/pkg/clock"
	"github.com/pkg/errors"
)

type fakeUploader struct {
	ref     string
	err     error
	calls   int
	content []byte
}

func (f *fakeUploader) Upload(ctx context.Context, endpoint string, creds client.Credentials, content []byte) (string, error) {
	f.calls++
	f.content = content
	return f.ref, f.err
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(filepath.Join(t.TempDir(), "notes.data"), clock.NewMock())
	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}

	return s
}

func recordStates(states *[]State) func(State) {
	return func(s State) {
		*states = append(*states, s)
	}
}

func TestCreateNote(t *testing.T) {
	s := newTestStore(t)
	u := &fakeUploader{ref: "r1"}

	var states []State
	n, err := CreateNote(context.Background(), s, u, Params{
		Endpoint: "http://example.com",
		Draft:    note.NewTextDraft("", "Hello"),
		OnState:  recordStates(&states),
	})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, n.Ref, "r1", "ref mismatch")
	assert.Equal(t, n.Title, note.DefaultTitle, "title mismatch")
	assert.Equal(t, string(u.content), "Hello", "uploaded content mismatch")
	assert.DeepEqual(t, states, []State{StateDraft, StateUploading, StateUploaded, StateAppended, StatePersisted}, "states mismatch")

	reloaded, err := store.New(s.Path(), clock.NewMock()).Load()
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, reloaded, []note.Note{n}, "persisted notes mismatch")
}

func TestCreateNote_Failures(t *testing.T) {
	uploadErr := &client.NetworkError{Endpoint: "http://example.com", Err: errors.New("connection refused")}

	testCases := []struct {
		name     string
		draft    note.Draft
		uploader *fakeUploader
		existing string
		states   []State
		calls    int
	}{
		{
			name:     "empty draft",
			draft:    note.NewTextDraft("", ""),
			uploader: &fakeUploader{ref: "r1"},
			states:   []State{StateFailed},
			calls:    0,
		},
		{
			name:     "upload failure",
			draft:    note.NewTextDraft("", "Hello"),
			uploader: &fakeUploader{err: uploadErr},
			states:   []State{StateDraft, StateUploading, StateFailed},
			calls:    1,
		},
		{
			name:     "ref collision",
			draft:    note.NewTextDraft("", "Hello"),
			uploader: &fakeUploader{ref: "taken"},
			existing: "taken",
			states:   []State{StateDraft, StateUploading, StateUploaded, StateAppended, StateFailed},
			calls:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			before := 0
			if tc.existing != "" {
				if err := s.Push(note.NewTextDraft("", "old").Finalize(tc.existing)); err != nil {
					t.Fatal(err)
				}
				before = 1
			}

			var states []State
			_, err := CreateNote(context.Background(), s, tc.uploader, Params{
				Endpoint: "http://example.com",
				Draft:    tc.draft,
				OnState:  recordStates(&states),
			})

			assert.NotEqual(t, err, nil, "expected an error")
			assert.DeepEqual(t, states, tc.states, "states mismatch")
			assert.Equal(t, tc.uploader.calls, tc.calls, "upload calls mismatch")
			assert.Equal(t, len(s.Notes()), before, "store should be untouched")
		})
	}
}

func TestCreateNote_UploadError(t *testing.T) {
	s := newTestStore(t)
	uploadErr := &client.ServerError{StatusCode: 500, Message: "boom"}

	_, err := CreateNote(context.Background(), s, &fakeUploader{err: uploadErr}, Params{
		Endpoint: "http://example.com",
		Draft:    note.NewTextDraft("", "Hello"),
	})

	var se *client.ServerError
	assert.Equal(t, errors.As(err, &se), true, "server error should be preserved")
}

func TestCreateNote_DuplicateRef(t *testing.T) {
	s := newTestStore(t)
	if err := s.Push(note.NewTextDraft("", "old").Finalize("r1")); err != nil {
		t.Fatal(err)
	}

	_, err := CreateNote(context.Background(), s, &fakeUploader{ref: "r1"}, Params{
		Endpoint: "http://example.com",
		Draft:    note.NewTextDraft("", "new"),
	})

	assert.Equal(t, errors.Cause(err), store.ErrDuplicateRef, "error mismatch")
}

// The server must answer before the note reaches the document
func TestCreateNote_UploadBeforePush(t *testing.T) {
	s := newTestStore(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, len(s.Notes()), 0, "note pushed before upload completed")
		w.Write([]byte("server-ref"))
	}))
	defer ts.Close()

	n, err := CreateNote(context.Background(), s, client.New(ts.Client()), Params{
		Endpoint:    ts.URL,
		Credentials: client.Credentials{Username: "u", Password: "p"},
		Draft:       note.NewTextDraft("Greeting", "Hello"),
	})
	if err != nil {
		t.Fatal(err)
	}

	found, ok := s.Find("server-ref")
	assert.Equal(t, ok, true, "note should be in the store")
	assert.DeepEqual(t, found, n, "stored note mismatch")
}

func TestCreateLocalNote(t *testing.T) {
	s := newTestStore(t)

	n, err := CreateLocalNote(s, note.NewTextDraft("Offline", "no network"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, len(n.Ref), 36, "ref should be a uuid")
	found, ok := s.Find(n.Ref)
	assert.Equal(t, ok, true, "note should be in the store")
	assert.Equal(t, found.Title, "Offline", "title mismatch")

	_, err = CreateLocalNote(s, note.NewTextDraft("", ""))
	assert.Equal(t, errors.Cause(err), note.ErrEmptyContent, "error mismatch")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, StatePersisted.String(), "persisted", "string mismatch")
	assert.Equal(t, State(42).String(), "unknown", "string mismatch")
}
