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

// Package log prints user facing messages to the terminal
package log

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
)

const (
	debugEnvName  = "NOTES_DEBUG"
	debugEnvValue = "1"
)

var (
	// ColorRed is a red foreground color
	ColorRed = color.New(color.FgRed)
	// ColorGreen is a green foreground color
	ColorGreen = color.New(color.FgGreen)
	// ColorYellow is a yellow foreground color
	ColorYellow = color.New(color.FgYellow)
	// ColorBlue is a blue foreground color
	ColorBlue = color.New(color.FgBlue)
	// ColorMagenta is a magenta foreground color
	ColorMagenta = color.New(color.FgMagenta)
	// ColorCyan is a cyan foreground color
	ColorCyan = color.New(color.FgCyan)
	// ColorGray is a gray foreground color
	ColorGray = color.New(color.FgHiBlack)
)

// tints are the accent colors a user may pick for the notes list
var tints = map[string]*color.Color{
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"gray":    ColorGray,
}

var indent = "  "

var out io.Writer = color.Output

// SetOutput redirects every message to w and returns a function restoring
// the previous writer
func SetOutput(w io.Writer) func() {
	prev := out
	out = w
	return func() {
		out = prev
	}
}

// TintColor returns the color registered under name
func TintColor(name string) (*color.Color, bool) {
	c, ok := tints[name]
	return c, ok
}

// TintNames returns the sorted names of the available tints
func TintNames() []string {
	names := make([]string, 0, len(tints))
	for name := range tints {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Info prints information
func Info(msg string) {
	fmt.Fprintf(out, "%s%s %s", indent, ColorBlue.Sprint("•"), msg)
}

// Infof prints information with optional format verbs
func Infof(msg string, v ...interface{}) {
	Info(fmt.Sprintf(msg, v...))
}

// Success prints a success message
func Success(msg string) {
	fmt.Fprintf(out, "%s%s %s", indent, ColorGreen.Sprint("✔"), msg)
}

// Successf prints a success message with optional format verbs
func Successf(msg string, v ...interface{}) {
	Success(fmt.Sprintf(msg, v...))
}

// Plain prints a plain message without any prefix symbol
func Plain(msg string) {
	fmt.Fprintf(out, "%s%s", indent, msg)
}

// Plainf prints a plain message without any prefix symbol. It takes optional format verbs.
func Plainf(msg string, v ...interface{}) {
	Plain(fmt.Sprintf(msg, v...))
}

// Warnf prints a warning message with optional format verbs
func Warnf(msg string, v ...interface{}) {
	fmt.Fprintf(out, "%s%s %s", indent, ColorYellow.Sprint("•"), fmt.Sprintf(msg, v...))
}

// Error prints an error message
func Error(msg string) {
	fmt.Fprintf(out, "%s%s %s", indent, ColorRed.Sprint("⨯"), msg)
}

// Errorf prints an error message with optional format verbs
func Errorf(msg string, v ...interface{}) {
	Error(fmt.Sprintf(msg, v...))
}

// Askf prints an question with optional format verbs. The leading symbol differs in color depending
// on whether the input is masked.
func Askf(msg string, masked bool, v ...interface{}) {
	symbolChar := "[?]"

	var symbol string
	if masked {
		symbol = ColorGray.Sprint(symbolChar)
	} else {
		symbol = ColorGreen.Sprint(symbolChar)
	}

	fmt.Fprintf(out, "%s%s %s: ", indent, symbol, fmt.Sprintf(msg, v...))
}

func isDebug() bool {
	return os.Getenv(debugEnvName) == debugEnvValue
}

// Debug prints to the console if NOTES_DEBUG is set
func Debug(msg string, v ...interface{}) {
	if isDebug() {
		fmt.Fprintf(out, "%s %s", ColorGray.Sprint("DEBUG:"), fmt.Sprintf(msg, v...))
	}
}
