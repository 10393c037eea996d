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

// Package testutils provides utilities used in tests
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/littledivy/notes/pkg/assert"
	"github.com/littledivy/notes/pkg/cli/note"
	"github.com/pkg/errors"
)

// Prompts for user input
const (
	PromptRemoveNote = "remove '"
	PromptClear      = "remove all notes?"
	PromptUsername   = "username"
	PromptPassword   = "password"
)

// Timeout for waiting for prompts in tests
const promptTimeout = 10 * time.Second

// ReadDocument decodes the notes document at path
func ReadDocument(t *testing.T, path string) []note.Note {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading the document"))
	}

	var ret []note.Note
	if err := json.Unmarshal(b, &ret); err != nil {
		t.Fatal(errors.Wrap(err, "decoding the document"))
	}

	return ret
}

// WriteDocument writes notes as the document at path
func WriteDocument(t *testing.T, path string, notes []note.Note) {
	t.Helper()

	b, err := json.Marshal(notes)
	if err != nil {
		t.Fatal(errors.Wrap(err, "encoding the document"))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(errors.Wrap(err, "creating the data dir"))
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		t.Fatal(errors.Wrap(err, "writing the document"))
	}
}

// MustEncodePNG returns a PNG image of the given size
func MustEncodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(errors.Wrap(err, "encoding png"))
	}

	return buf.Bytes()
}

// Upload is a request received by an UploadServer
type Upload struct {
	Username    string
	Password    string
	ContentType string
	Body        []byte
}

// UploadServer is a stand-in for the remote server. It answers every
// upload with the next ref in sequence.
type UploadServer struct {
	*httptest.Server

	mu      sync.Mutex
	uploads []Upload
	// Status, when set, is returned instead of a ref
	Status int
}

// NewUploadServer starts an UploadServer that is closed with the test
func NewUploadServer(t *testing.T) *UploadServer {
	s := &UploadServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	return s
}

func (s *UploadServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	username, password, _ := r.BasicAuth()

	s.mu.Lock()
	s.uploads = append(s.uploads, Upload{
		Username:    username,
		Password:    password,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	n := len(s.uploads)
	status := s.Status
	s.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	fmt.Fprintf(w, "ref-%d\n", n)
}

// Uploads returns the requests received so far
func (s *UploadServer) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := make([]Upload, len(s.uploads))
	copy(ret, s.uploads)

	return ret
}

// RunNotesCmdOptions is an option for RunNotesCmd
type RunNotesCmdOptions struct {
	Env []string
}

// NewNotesCmd returns a new notes command and pointers to stderr and stdout
func NewNotesCmd(opts RunNotesCmdOptions, binaryName string, arg ...string) (*exec.Cmd, *bytes.Buffer, *bytes.Buffer, error) {
	var stderr, stdout bytes.Buffer

	binaryPath, err := filepath.Abs(binaryName)
	if err != nil {
		return &exec.Cmd{}, &stderr, &stdout, errors.Wrap(err, "getting the absolute path to the test binary")
	}

	cmd := exec.Command(binaryPath, arg...)
	cmd.Stderr = &stderr
	cmd.Stdout = &stdout

	cmd.Env = opts.Env

	return cmd, &stderr, &stdout, nil
}

// RunNotesCmd runs a notes command and returns its stdout
func RunNotesCmd(t *testing.T, opts RunNotesCmdOptions, binaryName string, arg ...string) string {
	t.Logf("running: %s %s", binaryName, strings.Join(arg, " "))

	cmd, stderr, stdout, err := NewNotesCmd(opts, binaryName, arg...)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting command").Error())
	}

	cmd.Env = append(cmd.Env, "NOTES_DEBUG=1")

	if err := cmd.Run(); err != nil {
		t.Logf("\n%s", stdout)
		t.Fatal(errors.Wrapf(err, "running command %s", stderr.String()))
	}

	// Print stdout if and only if test fails later
	t.Logf("\n%s", stdout)

	return stdout.String()
}

// RunNotesCmdErr runs a notes command that is expected to fail and returns
// its stdout
func RunNotesCmdErr(t *testing.T, opts RunNotesCmdOptions, binaryName string, arg ...string) string {
	t.Logf("running: %s %s", binaryName, strings.Join(arg, " "))

	cmd, _, stdout, err := NewNotesCmd(opts, binaryName, arg...)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting command").Error())
	}

	err = cmd.Run()
	t.Logf("\n%s", stdout)
	assert.NotEqual(t, err, nil, "command should fail")

	return stdout.String()
}

// WaitNotesCmd runs a notes command and passes stdout and stdin to the
// callback, which plays the user.
func WaitNotesCmd(t *testing.T, opts RunNotesCmdOptions, runFunc func(io.Reader, io.WriteCloser) error, binaryName string, arg ...string) (string, error) {
	t.Logf("running: %s %s", binaryName, strings.Join(arg, " "))

	binaryPath, err := filepath.Abs(binaryName)
	if err != nil {
		return "", errors.Wrap(err, "getting absolute path to test binary")
	}

	cmd := exec.Command(binaryPath, arg...)
	cmd.Env = opts.Env

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", errors.Wrap(err, "getting stdout pipe")
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", errors.Wrap(err, "getting stdin")
	}
	defer stdin.Close()

	if err = cmd.Start(); err != nil {
		return "", errors.Wrap(err, "starting command")
	}

	var output bytes.Buffer
	tee := io.TeeReader(stdout, &output)

	err = runFunc(tee, stdin)
	if err != nil {
		t.Logf("\n%s", output.String())
		return output.String(), errors.Wrap(err, "running callback")
	}

	io.Copy(&output, stdout)

	if err := cmd.Wait(); err != nil {
		t.Logf("\n%s", output.String())
		return output.String(), errors.Wrapf(err, "command failed: %s", stderr.String())
	}

	t.Logf("\n%s", output.String())
	return output.String(), nil
}

// MustWaitNotesCmd runs WaitNotesCmd and fails the test on error
func MustWaitNotesCmd(t *testing.T, opts RunNotesCmdOptions, runFunc func(io.Reader, io.WriteCloser) error, binaryName string, arg ...string) string {
	output, err := WaitNotesCmd(t, opts, runFunc, binaryName, arg...)
	if err != nil {
		t.Fatal(err)
	}

	return output
}

// ConfirmRemoveNote waits for prompt for removing a note and confirms.
func ConfirmRemoveNote(stdout io.Reader, stdin io.WriteCloser) error {
	return assert.RespondToPrompt(stdout, stdin, PromptRemoveNote, "y\n", promptTimeout)
}

// CancelRemoveNote waits for prompt for removing a note and declines.
func CancelRemoveNote(stdout io.Reader, stdin io.WriteCloser) error {
	return assert.RespondToPrompt(stdout, stdin, PromptRemoveNote, "n\n", promptTimeout)
}

// ConfirmClear waits for prompt for clearing the notes and confirms.
func ConfirmClear(stdout io.Reader, stdin io.WriteCloser) error {
	return assert.RespondToPrompt(stdout, stdin, PromptClear, "y\n", promptTimeout)
}

// UserLogin answers the username and password prompts of login
func UserLogin(username, password string) func(io.Reader, io.WriteCloser) error {
	return func(stdout io.Reader, stdin io.WriteCloser) error {
		if err := assert.RespondToPrompt(stdout, stdin, PromptUsername, username+"\n", promptTimeout); err != nil {
			return err
		}

		return assert.RespondToPrompt(stdout, stdin, PromptPassword, password+"\n", promptTimeout)
	}
}

// UserContent simulates content from the user by writing to stdin.
// This is used for piped input where no prompt is shown.
func UserContent(content string) func(io.Reader, io.WriteCloser) error {
	return func(stdout io.Reader, stdin io.WriteCloser) error {
		if _, err := io.WriteString(stdin, content); err != nil {
			return errors.Wrap(err, "creating note from stdin")
		}

		// stdin needs to close so stdin reader knows to stop reading
		// otherwise test case would wait until test timeout
		return stdin.Close()
	}
}
