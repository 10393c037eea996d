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
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidEndpoint is returned for an endpoint that is not an absolute
	// http or https URL
	ErrInvalidEndpoint = errors.New("endpoint must be an absolute http or https URL")
	// ErrInvalidRef is returned when the server accepted an upload but its
	// response is not a usable ref
	ErrInvalidRef = errors.New("server did not return a ref")
)

// NetworkError is returned when the upload request could not be completed,
// including when it was cancelled
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("uploading to %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is returned when the server responds with a non-2xx status
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the server rejected the credentials
func (e *ServerError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
