/*
Copyright (c) Vocabscrub Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package errs

import "fmt"

// NotFoundError reports a missing input or vocabulary file.
type NotFoundError struct {
	Path string
	Kind string // "input file" or "vocabulary file"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

func (e *NotFoundError) KindName() string {
	return e.Kind
}

// ParseError reports a malformed vocabulary line. Line is 1-based.
type ParseError struct {
	File   string
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s at line %d: %s (line text: %q)",
		e.File, e.Line, e.Reason, e.Text)
}

func (e *ParseError) LineNumber() int {
	return e.Line
}

// WriteError reports a failure writing the destination file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing output file %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
