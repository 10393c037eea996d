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

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/littledivy/notes/pkg/assert"
	"github.com/pkg/errors"
)

func TestUpload(t *testing.T) {
	var gotBody []byte
	var gotReq *http.Request

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}

		gotBody = b
		gotReq = r
		w.Write([]byte("ref-123\n"))
	}))
	defer ts.Close()

	c := New(ts.Client())
	c.Version = "1.2.3"

	ref, err := c.Upload(context.Background(), ts.URL+"/upload", Credentials{Username: "alice", Password: "s3cret"}, []byte("Hello"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, ref, "ref-123", "ref mismatch")
	assert.Equal(t, string(gotBody), "Hello", "body mismatch")
	assert.Equal(t, gotReq.Method, http.MethodPost, "method mismatch")
	assert.Equal(t, gotReq.URL.Path, "/upload", "path mismatch")
	assert.Equal(t, gotReq.Header.Get("Content-Type"), "application/x-www-form-urlencoded", "content type mismatch")
	assert.Equal(t, gotReq.Header.Get("Authorization"), "Basic YWxpY2U6czNjcmV0", "authorization mismatch")
	assert.Equal(t, gotReq.Header.Get("User-Agent"), "notes/1.2.3", "user agent mismatch")
}

func TestUpload_BinaryContent(t *testing.T) {
	content := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.DeepEqual(t, b, content, "body mismatch")
		w.Write([]byte("img"))
	}))
	defer ts.Close()

	ref, err := New(ts.Client()).Upload(context.Background(), ts.URL, Credentials{}, content)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ref, "img", "ref mismatch")
}

func TestUpload_ServerError(t *testing.T) {
	testCases := []struct {
		status       int
		body         string
		unauthorized bool
	}{
		{
			status:       http.StatusUnauthorized,
			body:         "bad credentials\n",
			unauthorized: true,
		},
		{
			status: http.StatusInternalServerError,
			body:   "boom",
		},
		{
			status: http.StatusMovedPermanently,
			body:   "",
		},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			hc := ts.Client()
			hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			}

			_, err := New(hc).Upload(context.Background(), ts.URL, Credentials{Username: "a", Password: "b"}, []byte("x"))

			var se *ServerError
			assert.Equalf(t, errors.As(err, &se), true, "expected a ServerError")
			assert.Equal(t, se.StatusCode, tc.status, "status mismatch")
			assert.Equal(t, se.IsUnauthorized(), tc.unauthorized, "unauthorized mismatch")
		})
	}
}

func TestUpload_RefBody(t *testing.T) {
	testCases := []struct {
		body     string
		expected string
	}{
		{
			body:     "ref-1",
			expected: "ref-1",
		},
		{
			body:     "ref-1\n",
			expected: "ref-1",
		},
		{
			body:     "ref-1\r\n",
			expected: "ref-1",
		},
		{
			body:     " ref 1\t\n",
			expected: " ref 1\t",
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.body), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tc.body)
			}))
			defer ts.Close()

			ref, err := New(ts.Client()).Upload(context.Background(), ts.URL, Credentials{}, []byte("x"))
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, ref, tc.expected, "ref mismatch")
		})
	}
}

func TestUpload_InvalidRef(t *testing.T) {
	testCases := []struct {
		name string
		body []byte
	}{
		{
			name: "empty",
			body: []byte{},
		},
		{
			name: "whitespace",
			body: []byte(" \n\t"),
		},
		{
			name: "not utf8",
			body: []byte{0xff, 0xfe},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write(tc.body)
			}))
			defer ts.Close()

			_, err := New(ts.Client()).Upload(context.Background(), ts.URL, Credentials{}, []byte("x"))
			assert.Equal(t, err, ErrInvalidRef, "error mismatch")
		})
	}
}

func TestUpload_InvalidEndpoint(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	endpoints := []string{"", "example.com/upload", "ftp://example.com", "http://", "://bad"}
	for _, endpoint := range endpoints {
		_, err := New(ts.Client()).Upload(context.Background(), endpoint, Credentials{}, []byte("x"))
		assert.Equal(t, errors.Cause(err), ErrInvalidEndpoint, "error mismatch for '"+endpoint+"'")
	}

	assert.Equal(t, atomic.LoadInt32(&calls), int32(0), "no request should be made")
}

func TestUpload_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := ts.URL
	ts.Close()

	_, err := New(nil).Upload(context.Background(), endpoint, Credentials{}, []byte("x"))

	var ne *NetworkError
	assert.Equal(t, errors.As(err, &ne), true, "expected a NetworkError")
}

func TestUpload_Cancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ref"))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ts.Client()).Upload(ctx, ts.URL, Credentials{}, []byte("x"))

	var ne *NetworkError
	assert.Equalf(t, errors.As(err, &ne), true, "expected a NetworkError")
	assert.Equal(t, errors.Is(err, context.Canceled), true, "cancellation should be preserved")
}
