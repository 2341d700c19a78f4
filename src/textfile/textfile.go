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

// Package textfile reads input files with charset auto-detection and writes
// UTF-8 output. Detection failures never abort a run: bytes that cannot be
// attributed to a known charset are passed through as-is.
package textfile

import (
	"os"

	goerrors "github.com/go-errors/errors"
	"github.com/saintfish/chardet"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/vocabscrub/vocabscrub/src/errs"
)

const fallbackCharset = "UTF-8"

// Read loads the file at path, detects its charset and returns the content
// decoded to UTF-8 along with the detected charset name.
func Read(path string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", &errs.NotFoundError{Path: path, Kind: "input file"}
		}
		return "", "", goerrors.Errorf("reading input file %s: %w", path, err)
	}
	text, charset := decode(raw)
	return text, charset, nil
}

func decode(raw []byte) (string, string) {
	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || result == nil {
		log.Debugf("charset detection failed (%v); assuming %s", err, fallbackCharset)
		return string(raw), fallbackCharset
	}
	if result.Charset == fallbackCharset || result.Charset == "US-ASCII" {
		return string(raw), result.Charset
	}

	enc, err := ianaindex.IANA.Encoding(result.Charset)
	if err != nil || enc == nil {
		log.Warnf("no decoder for detected charset %s; treating input as %s", result.Charset, fallbackCharset)
		return string(raw), fallbackCharset
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		log.Warnf("decoding input as %s failed (%v); treating input as %s", result.Charset, err, fallbackCharset)
		return string(raw), fallbackCharset
	}
	return string(decoded), result.Charset
}

// Write stores text at path as UTF-8. The destination directory must exist.
func Write(path string, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return &errs.WriteError{Path: path, Err: err}
	}
	return nil
}
