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
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/vocabscrub/vocabscrub/src/config"
	"github.com/vocabscrub/vocabscrub/src/fake"
	"github.com/vocabscrub/vocabscrub/src/scrub"
	"github.com/vocabscrub/vocabscrub/src/textfile"
	"github.com/vocabscrub/vocabscrub/src/utils"
	"github.com/vocabscrub/vocabscrub/src/vocab"
)

// scrubRun is the whole pipeline: load vocabulary, read input, substitute,
// write output. Any failure exits non-zero without touching the output file.
func scrubRun(inputPath string, vocabPath string, outputPath string) {
	outDir := filepath.Dir(outputPath)
	if !utils.FileOrFolderExists(outDir) {
		utils.ErrExit("output directory does not exist: %s", outDir)
	}

	vocabulary, err := vocab.Load(vocabPath, delimiter)
	if err != nil {
		utils.ErrExit("%v", err)
	}
	log.Infof("loaded %d vocabulary term(s) from %s", vocabulary.Len(), vocabPath)
	if config.IsLogLevelDebugOrBelow() {
		log.Debugf("terms (longest first): %v", vocabulary.Terms())
	}
	if vocabulary.Len() == 0 {
		log.Warnf("vocabulary file %s has no entries; output will be a copy of the input", vocabPath)
		fmt.Println(warnColor.Sprint("!") + " vocabulary is empty; nothing will be replaced")
	}

	if randomize {
		err = vocabulary.RequireRandomizedOnly()
	} else {
		err = vocabulary.RequireLiteralOnly()
	}
	if err != nil {
		utils.ErrExit("%v", err)
	}

	text, charset, err := textfile.Read(inputPath)
	if err != nil {
		utils.ErrExit("%v", err)
	}
	log.Infof("read %s from %s (detected charset: %s)",
		humanize.Bytes(uint64(len(text))), inputPath, charset)

	var resolver scrub.Resolver
	if randomize {
		resolver = scrub.NewRandomResolver(fake.NewGenerator())
	} else {
		resolver = scrub.NewLiteralResolver(vocabulary)
	}

	result, err := scrub.NewEngine(vocabulary, resolver).Scrub(text)
	if err != nil {
		utils.ErrExit("scrubbing %s: %v", inputPath, err)
	}

	if err := textfile.Write(outputPath, result.Text); err != nil {
		utils.ErrExit("%v", err)
	}

	utils.PrintAndLog("Replaced %d occurrence(s) across %d term(s). Output saved to %s",
		result.Replacements, len(result.PerTerm), outputPath)
	if reportCount {
		printReplacementReport(result)
	}
}

// printReplacementReport prints per-term counts, most-replaced first.
func printReplacementReport(result *scrub.Result) {
	terms := make([]string, 0, len(result.PerTerm))
	for term := range result.PerTerm {
		terms = append(terms, term)
	}
	slices.SortFunc(terms, func(a, b string) int {
		if result.PerTerm[a] != result.PerTerm[b] {
			return result.PerTerm[b] - result.PerTerm[a]
		}
		return strings.Compare(a, b)
	})

	fmt.Println()
	fmt.Println(headerColor.Sprint("Replacement counts"))
	for _, term := range terms {
		fmt.Printf("  %-40s %d\n", term, result.PerTerm[term])
	}
	fmt.Println(successLine(fmt.Sprintf("%d total", result.Replacements)))
}
