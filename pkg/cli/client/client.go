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

// Package client uploads note content to the remote server, which answers
// with the ref the note is stored under
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/littledivy/notes/pkg/cli/log"
	"github.com/pkg/errors"
)

const contentTypeFormURLEncoded = "application/x-www-form-urlencoded"

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 64 << 10

// Credentials are sent with every upload using HTTP Basic authentication
type Credentials struct {
	Username string
	Password string
}

// Client uploads note content
type Client struct {
	hc *http.Client
	// Version is sent in the User-Agent header when set
	Version string
}

// New returns a client sending requests with hc. A nil hc uses a rate
// limited client.
func New(hc *http.Client) *Client {
	if hc == nil {
		hc = NewRateLimitedHTTPClient()
	}

	return &Client{hc: hc}
}

// ValidateEndpoint checks that endpoint is an absolute http or https URL
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return errors.Wrap(ErrInvalidEndpoint, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Wrapf(ErrInvalidEndpoint, "scheme '%s'", u.Scheme)
	}
	if u.Host == "" {
		return errors.Wrap(ErrInvalidEndpoint, "missing host")
	}

	return nil
}

// Upload posts the raw content of a note to endpoint and returns the ref
// the server assigned to it. The request is made once and never retried.
func (c *Client) Upload(ctx context.Context, endpoint string, creds Credentials, content []byte) (string, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(content))
	if err != nil {
		return "", errors.Wrap(err, "constructing http request")
	}
	req.Header.Set("Content-Type", contentTypeFormURLEncoded)
	req.SetBasicAuth(creds.Username, creds.Password)
	if c.Version != "" {
		req.Header.Set("User-Agent", fmt.Sprintf("notes/%s", c.Version))
	}

	log.Debug("HTTP POST %s (%d bytes)\n", req.URL.Redacted(), len(content))

	res, err := c.hc.Do(req)
	if err != nil {
		return "", &NetworkError{Endpoint: req.URL.Redacted(), Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return "", &NetworkError{Endpoint: req.URL.Redacted(), Err: errors.Wrap(err, "reading the response body")}
	}

	log.Debug("HTTP %s\n", res.Status)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &ServerError{
			StatusCode: res.StatusCode,
			Message:    strings.TrimRight(string(body), "\n"),
		}
	}

	ref := strings.TrimRight(string(body), "\r\n")
	if strings.TrimSpace(ref) == "" || !utf8.ValidString(ref) {
		return "", ErrInvalidRef
	}

	return ref, nil
}
