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
package scrub

import (
	"strings"

	goerrors "github.com/go-errors/errors"

	"github.com/vocabscrub/vocabscrub/src/vocab"
)

// Resolver produces the replacement for a matched term. Literal mode returns
// the vocabulary value; randomize mode generates a fresh value per call.
type Resolver interface {
	Resolve(term string) (string, error)
}

// ValueGenerator is the synthetic-data source used in randomize mode.
type ValueGenerator interface {
	Value(term string) string
}

// Result is the outcome of one scrub pass over a text.
type Result struct {
	Text         string
	Replacements int
	PerTerm      map[string]int
}

// Engine scans a text for vocabulary terms and replaces every occurrence.
// Matching is case-sensitive and literal; at each position the longest
// matching term wins, so overlapping terms never corrupt each other.
type Engine struct {
	terms   []string // longest-first, from the vocabulary
	resolve Resolver
}

func NewEngine(v *vocab.Vocabulary, r Resolver) *Engine {
	return &Engine{terms: v.Terms(), resolve: r}
}

// Scrub runs one pass over text. The matched region is consumed whole, so a
// replacement value is never rescanned.
func (e *Engine) Scrub(text string) (*Result, error) {
	result := &Result{PerTerm: make(map[string]int)}
	var out strings.Builder
	out.Grow(len(text))

	for i := 0; i < len(text); {
		term := e.matchAt(text, i)
		if term == "" {
			out.WriteByte(text[i])
			i++
			continue
		}
		replacement, err := e.resolve.Resolve(term)
		if err != nil {
			return nil, goerrors.Errorf("resolving replacement for %q: %w", term, err)
		}
		out.WriteString(replacement)
		result.Replacements++
		result.PerTerm[term]++
		i += len(term)
	}

	result.Text = out.String()
	return result, nil
}

// matchAt returns the longest vocabulary term starting at offset i, or "".
// e.terms is already sorted longest-first.
func (e *Engine) matchAt(text string, i int) string {
	rest := text[i:]
	for _, term := range e.terms {
		if strings.HasPrefix(rest, term) {
			return term
		}
	}
	return ""
}

// literalResolver replaces a term with its vocabulary value.
type literalResolver struct {
	v *vocab.Vocabulary
}

func NewLiteralResolver(v *vocab.Vocabulary) Resolver {
	return &literalResolver{v: v}
}

func (r *literalResolver) Resolve(term string) (string, error) {
	entry, ok := r.v.Lookup(term)
	if !ok {
		return "", goerrors.Errorf("term %q is not in the vocabulary", term)
	}
	if entry.Randomize {
		return "", goerrors.Errorf("term %q has no replacement value", term)
	}
	return entry.Replacement, nil
}

// randomResolver generates a fresh synthetic value for every occurrence.
type randomResolver struct {
	gen ValueGenerator
}

func NewRandomResolver(gen ValueGenerator) Resolver {
	return &randomResolver{gen: gen}
}

func (r *randomResolver) Resolve(term string) (string, error) {
	return r.gen.Value(term), nil
}
