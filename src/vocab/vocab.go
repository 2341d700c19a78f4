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
package vocab

import (
	"os"
	"strings"

	goerrors "github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/vocabscrub/vocabscrub/src/errs"
)

// Entry is one vocabulary rule. Randomize is set for term-only lines,
// meaning each occurrence gets a freshly generated synthetic value.
type Entry struct {
	Term        string
	Replacement string
	Randomize   bool
}

// Vocabulary is the immutable term -> replacement-policy mapping for a run.
type Vocabulary struct {
	entries map[string]Entry
	terms   []string // sorted longest-first
}

// Load parses the vocabulary file at path. Each non-blank line is either
// "term<delim>replacement" or a bare "term" (randomize marker). Fields are
// whitespace-trimmed. A line with more than two fields, or with an empty
// field, is a parse error.
func Load(path string, delim string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errs.NotFoundError{Path: path, Kind: "vocabulary file"}
		}
		return nil, goerrors.Errorf("reading vocabulary file %s: %w", path, err)
	}

	entries := make(map[string]Entry)
	lines := strings.Split(string(data), "\n")
	for i, rawLine := range lines {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, perr := parseLine(path, i+1, line, delim)
		if perr != nil {
			return nil, perr
		}
		if _, ok := entries[entry.Term]; ok {
			log.Warnf("duplicate vocabulary term %q at line %d of %s; keeping the later entry", entry.Term, i+1, path)
		}
		entries[entry.Term] = entry
	}

	terms := lo.Keys(entries)
	// Longest term first so overlapping terms never partially match;
	// ties broken lexically to keep scan order deterministic.
	slices.SortFunc(terms, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return &Vocabulary{entries: entries, terms: terms}, nil
}

func parseLine(file string, lineNum int, line string, delim string) (Entry, *errs.ParseError) {
	parts := strings.Split(line, delim)
	switch len(parts) {
	case 1:
		term := strings.TrimSpace(parts[0])
		return Entry{Term: term, Randomize: true}, nil
	case 2:
		term := strings.TrimSpace(parts[0])
		replacement := strings.TrimSpace(parts[1])
		if term == "" {
			return Entry{}, &errs.ParseError{File: file, Line: lineNum, Text: line, Reason: "empty term"}
		}
		if replacement == "" {
			return Entry{}, &errs.ParseError{File: file, Line: lineNum, Text: line, Reason: "empty replacement"}
		}
		return Entry{Term: term, Replacement: replacement}, nil
	default:
		return Entry{}, &errs.ParseError{
			File: file, Line: lineNum, Text: line,
			Reason: "expected 'term" + delim + "replacement' or a bare term",
		}
	}
}

// Terms returns the vocabulary terms sorted longest-first.
func (v *Vocabulary) Terms() []string {
	return v.terms
}

func (v *Vocabulary) Lookup(term string) (Entry, bool) {
	e, ok := v.entries[term]
	return e, ok
}

func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// RequireRandomizedOnly rejects vocabularies that carry explicit replacement
// columns. Randomize mode needs term-only entries.
func (v *Vocabulary) RequireRandomizedOnly() error {
	for _, term := range v.terms {
		if !v.entries[term].Randomize {
			return goerrors.Errorf("vocabulary term %q has an explicit replacement; "+
				"randomize mode requires a vocabulary of bare terms", term)
		}
	}
	return nil
}

// RequireLiteralOnly rejects term-only entries, which have no replacement
// value outside randomize mode.
func (v *Vocabulary) RequireLiteralOnly() error {
	for _, term := range v.terms {
		if v.entries[term].Randomize {
			return goerrors.Errorf("vocabulary term %q has no replacement; "+
				"add one or run with --randomize", term)
		}
	}
	return nil
}
