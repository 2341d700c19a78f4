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

// Package fake generates synthetic replacement values for randomize mode.
// The kind of value is inferred from the term itself: a term that looks like
// a date field gets a date, an email-like term gets an email address, and so
// on. Terms with no recognizable category get a person name.
package fake

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

type Category string

const (
	CategoryName    Category = "name"
	CategoryDate    Category = "date"
	CategoryEmail   Category = "email"
	CategoryPhone   Category = "phone"
	CategoryAddress Category = "address"
	CategoryCity    Category = "city"
	CategoryCompany Category = "company"
	CategorySSN     Category = "ssn"
)

// categoryHints maps substrings of a (lowercased) term to a category.
// Checked in order; first hit wins.
var categoryHints = []struct {
	hint     string
	category Category
}{
	{"email", CategoryEmail},
	{"e-mail", CategoryEmail},
	{"phone", CategoryPhone},
	{"mobile", CategoryPhone},
	{"birth", CategoryDate},
	{"dob", CategoryDate},
	{"date", CategoryDate},
	{"address", CategoryAddress},
	{"street", CategoryAddress},
	{"city", CategoryCity},
	{"company", CategoryCompany},
	{"employer", CategoryCompany},
	{"ssn", CategorySSN},
	{"social security", CategorySSN},
}

// Categorize infers the replacement category for a vocabulary term.
func Categorize(term string) Category {
	lower := strings.ToLower(term)
	for _, h := range categoryHints {
		if strings.Contains(lower, h.hint) {
			return h.category
		}
	}
	return CategoryName
}

// maxRegenerate bounds the retries used to guarantee a generated value
// does not contain the term it replaces.
const maxRegenerate = 10

type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator returns a generator seeded from the system entropy source.
func NewGenerator() *Generator {
	return &Generator{faker: gofakeit.New(0)}
}

// NewSeededGenerator returns a deterministic generator, for tests.
func NewSeededGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Value generates a synthetic value for one occurrence of term. The result
// never contains term, so the original text cannot leak through verbatim.
func (g *Generator) Value(term string) string {
	category := Categorize(term)
	for i := 0; i < maxRegenerate; i++ {
		v := g.generate(category)
		if !strings.Contains(v, term) {
			return v
		}
	}
	// A term that keeps colliding with generated values gets an opaque token.
	for {
		v := g.faker.LetterN(12)
		if !strings.Contains(v, term) {
			return v
		}
	}
}

func (g *Generator) generate(category Category) string {
	switch category {
	case CategoryDate:
		return g.faker.Date().Format("2006-01-02")
	case CategoryEmail:
		return g.faker.Email()
	case CategoryPhone:
		return g.faker.Phone()
	case CategoryAddress:
		return g.faker.Address().Address
	case CategoryCity:
		return g.faker.City()
	case CategoryCompany:
		return g.faker.Company()
	case CategorySSN:
		return g.faker.SSN()
	default:
		return g.faker.Name()
	}
}
