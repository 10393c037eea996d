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

// Package validate checks user input before it reaches the store or the
// config file
package validate

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxTitleLength is the maximum number of characters in a note title
const MaxTitleLength = 200

// ErrTitleMultiline is an error for a title that has linebreaks
var ErrTitleMultiline = errors.New("The title contains multiple lines")

// ErrTitleTooLong is an error for a title longer than MaxTitleLength
var ErrTitleTooLong = errors.New("The title is too long")

// ErrUsernameEmpty is an error for an empty username
var ErrUsernameEmpty = errors.New("The username is empty")

// ErrUsernameHasColon is an error for a username that cannot be sent with
// basic authentication
var ErrUsernameHasColon = errors.New("The username cannot contain a colon")

// ErrServerURLInvalid is an error for a server URL that is not an absolute
// http or https URL
var ErrServerURLInvalid = errors.New("The server URL must be an absolute http or https URL")

// Title validates a note title. An empty title is valid and becomes the
// default title.
func Title(title string) error {
	if strings.ContainsAny(title, "\r\n") {
		return ErrTitleMultiline
	}

	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	return nil
}

// Username validates a username
func Username(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameEmpty
	}

	if strings.Contains(username, ":") {
		return ErrUsernameHasColon
	}

	return nil
}

// ServerURL validates the upload endpoint
func ServerURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return ErrServerURLInvalid
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrServerURLInvalid
	}

	return nil
}
