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

package note

import (
	"bytes"
	"image"
	// registered so that DecodeConfig recognizes the formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyContent is returned for a draft without content
	ErrEmptyContent = errors.New("empty content")
	// ErrInvalidUTF8 is returned for text content that is not valid UTF-8
	ErrInvalidUTF8 = errors.New("text content is not valid UTF-8")
	// ErrInvalidImage is returned for image content that is not a JPEG, PNG
	// or GIF image
	ErrInvalidImage = errors.New("image content is not a JPEG, PNG or GIF image")
)

// ImageInfo describes the encoded image of an image note
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// DecodeImageInfo reads the header of an encoded image
func DecodeImageInfo(content []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return ImageInfo{}, errors.Wrap(ErrInvalidImage, err.Error())
	}

	return ImageInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// CheckContent checks that content is consistent with the type
func CheckContent(t Type, content []byte) error {
	switch t {
	case TypeText:
		if !utf8.Valid(content) {
			return ErrInvalidUTF8
		}
	case TypeImage:
		if _, err := DecodeImageInfo(content); err != nil {
			return err
		}
	default:
		return errors.Wrapf(ErrInvalidType, "%d", t)
	}

	return nil
}

// ValidateDraft checks that a draft can become a note
func ValidateDraft(d Draft) error {
	if len(d.Content) == 0 {
		return ErrEmptyContent
	}

	return CheckContent(d.Type, d.Content)
}
