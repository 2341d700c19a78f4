//go:build unit

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabscrub/vocabscrub/src/config"
	"github.com/vocabscrub/vocabscrub/src/utils"
)

type exitPanic struct {
	code int
}

// runRoot executes the root command with args and returns the exit code that
// ErrExit would have terminated with (0 when the run completes).
func runRoot(t *testing.T, args ...string) (code int) {
	t.Helper()
	resetFlagState()
	utils.SetExitHook(func(c int) {
		panic(exitPanic{code: c})
	})
	defer utils.SetExitHook(nil)
	defer func() {
		if r := recover(); r != nil {
			ep, ok := r.(exitPanic)
			if !ok {
				panic(r)
			}
			code = ep.code
		}
	}()

	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return 0
}

// resetFlagState restores flag-backed globals between runs; cobra re-parses
// only the flags present in the next invocation.
func resetFlagState() {
	randomize = false
	delimiter = ","
	logDir = ""
	reportCount = false
	config.LogLevel = "info"
	utils.ErrExitErr = nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScrubLiteralEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "patient has flu symptoms")
	vocab := writeFile(t, dir, "vocab.csv", "flu,ILLNESS_A\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output)
	require.Zero(t, code)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "patient has ILLNESS_A symptoms", string(data))

	// input file is never mutated
	in, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, "patient has flu symptoms", string(in))
}

func TestScrubOverlappingTermsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "flu virus detected")
	vocab := writeFile(t, dir, "vocab.csv", "flu,SHORT\nflu virus,LONG\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output)
	require.Zero(t, code)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "LONG detected", string(data))
}

func TestMalformedVocabularyLeavesOutputUnwritten(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "patient has flu symptoms")
	vocab := writeFile(t, dir, "vocab.csv", "flu,ILLNESS_A,extra\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output)
	assert.Equal(t, 1, code)
	assert.Error(t, utils.ErrExitErr)
	assert.NoFileExists(t, output)
}

func TestMissingInputFileExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	vocab := writeFile(t, dir, "vocab.csv", "flu,ILLNESS_A\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, filepath.Join(dir, "missing.txt"), vocab, output)
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, output)
}

func TestMissingVocabularyFileExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "some text")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, filepath.Join(dir, "missing.csv"), output)
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, output)
}

func TestRandomizeNeverEmitsTerm(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt",
		"record for patient zero; patient zero was discharged; patient zero follow-up")
	vocab := writeFile(t, dir, "vocab.csv", "patient zero\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output, "--randomize")
	require.Zero(t, code)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "patient zero"),
		"randomized output still contains the term: %q", string(data))
}

func TestRandomizeRejectsReplacementColumns(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "patient has flu symptoms")
	vocab := writeFile(t, dir, "vocab.csv", "flu,ILLNESS_A\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output, "--randomize")
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, output)
}

func TestLiteralModeRejectsBareTerms(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "patient has flu symptoms")
	vocab := writeFile(t, dir, "vocab.csv", "flu\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output)
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, output)
}

func TestCustomDelimiterFlag(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "patient has flu symptoms")
	vocab := writeFile(t, dir, "vocab.csv", "flu|ILLNESS_A\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output, "--delimiter", "|")
	require.Zero(t, code)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "patient has ILLNESS_A symptoms", string(data))
}

func TestInvalidLogLevelExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "text")
	vocab := writeFile(t, dir, "vocab.csv", "a,b\n")
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, input, vocab, output, "--log_level", "loud")
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, output)
}

func TestHelpExitsZeroAndWritesNothing(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "output.txt")

	code := runRoot(t, "-h")
	assert.Zero(t, code)
	assert.NoFileExists(t, output)
}

func TestVersionCommand(t *testing.T) {
	code := runRoot(t, "version")
	assert.Zero(t, code)
	assert.True(t, strings.Contains(getVersionInfo(), "VERSION="))
}
