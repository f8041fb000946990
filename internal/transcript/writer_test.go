package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzotomasdiez/owls/internal/debate"
)

var testStart = time.Date(2026, 8, 30, 12, 34, 56, 0, time.UTC)

func openTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := Open(dir, "debate", "Plan A vs Plan B", "sess-1", "Pro, Con, Mediator", "Topic: Plan A vs Plan B", testStart)
	require.NoError(t, err)
	return w, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestOpenFilenameEmbedsPrefixAndTimestamp(t *testing.T) {
	w, dir := openTestWriter(t)
	assert.Equal(t, filepath.Join(dir, "debate_20260830_123456.md"), w.Path())
}

func TestOpenWritesHeader(t *testing.T) {
	w, _ := openTestWriter(t)
	text := readFile(t, w.Path())

	assert.Contains(t, text, "# AI Debate Session")
	assert.Contains(t, text, "**Session:** sess-1")
	assert.Contains(t, text, "**Topic:** Plan A vs Plan B")
	assert.Contains(t, text, "**Started:** 2026-08-30 12:34:56")
	assert.Contains(t, text, "**Participants:** Pro, Con, Mediator")
	assert.Contains(t, text, "**Status:** in-progress")
	assert.Equal(t, 1, strings.Count(text, sectionBreak))
}

func TestAppendTurnWritesDurableBlocks(t *testing.T) {
	w, _ := openTestWriter(t)

	require.NoError(t, w.AppendTurn("Pro", "Plan A is better.", 1, testStart.Add(time.Second)))
	require.NoError(t, w.AppendTurn("Con", "Plan B is better.", 2, testStart.Add(2*time.Second)))

	// Each append is a full open-write-close cycle, so the file on disk
	// already holds both blocks.
	text := readFile(t, w.Path())
	assert.Contains(t, text, "## Turn 1: Pro")
	assert.Contains(t, text, "Plan A is better.")
	assert.Contains(t, text, "## Turn 2: Con")
	assert.Contains(t, text, "Plan B is better.")
	assert.Equal(t, 3, strings.Count(text, sectionBreak), "header plus one break per turn")
}

func TestFinalizeCompleted(t *testing.T) {
	w, _ := openTestWriter(t)
	for i := 1; i <= 9; i++ {
		require.NoError(t, w.AppendTurn("Pro", "content", i, testStart.Add(time.Duration(i)*time.Second)))
	}

	end := testStart.Add(83 * time.Second)
	require.NoError(t, w.Finalize(end, 9, debate.StatusCompleted))

	text := readFile(t, w.Path())
	assert.NotContains(t, text, "in-progress")
	assert.Contains(t, text, "**Status:** completed")
	assert.Contains(t, text, "**Ended:** 2026-08-30 12:36:19")
	assert.Contains(t, text, "**Duration:** 83.0s (1m23s)")
	assert.Contains(t, text, "**Turns:** 9")
	assert.Equal(t, 1, strings.Count(text, "**Status:**"))
	assert.Equal(t, 10, strings.Count(text, sectionBreak), "finalize must not duplicate the section break")
}

func TestFinalizeFailedPreservesPartialTranscript(t *testing.T) {
	w, _ := openTestWriter(t)
	for i := 1; i <= 4; i++ {
		require.NoError(t, w.AppendTurn("Pro", "content", i, testStart))
	}

	require.NoError(t, w.Finalize(testStart.Add(time.Minute), 4, debate.StatusFailed))

	text := readFile(t, w.Path())
	assert.Contains(t, text, "**Status:** failed")
	assert.Contains(t, text, "**Turns:** 4")
	assert.Equal(t, 4, strings.Count(text, "## Turn"))
}

func TestFinalizeMissingSectionBreakFailsLoudly(t *testing.T) {
	w, _ := openTestWriter(t)
	require.NoError(t, os.WriteFile(w.Path(), []byte("externally clobbered"), 0o644))

	err := w.Finalize(testStart.Add(time.Minute), 0, debate.StatusFailed)
	require.ErrorIs(t, err, ErrMalformedTranscript)
}

func TestFinalizeMissingStatusMarkerFailsLoudly(t *testing.T) {
	w, _ := openTestWriter(t)
	text := readFile(t, w.Path())
	clobbered := strings.Replace(text, "**Status:** in-progress", "status gone", 1)
	require.NoError(t, os.WriteFile(w.Path(), []byte(clobbered), 0o644))

	err := w.Finalize(testStart.Add(time.Minute), 0, debate.StatusCompleted)
	require.ErrorIs(t, err, ErrMalformedTranscript)
}

func TestFinalizeTwiceFails(t *testing.T) {
	w, _ := openTestWriter(t)
	require.NoError(t, w.Finalize(testStart.Add(time.Minute), 0, debate.StatusCompleted))

	err := w.Finalize(testStart.Add(2*time.Minute), 0, debate.StatusCompleted)
	require.ErrorIs(t, err, ErrMalformedTranscript)
}

func TestPremiseRenderedAsBlockquote(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir, "debate", "topic", "s", "legend", "line one\n\nline two", testStart)
	require.NoError(t, err)

	text := readFile(t, w.Path())
	assert.Contains(t, text, "> line one\n>\n> line two")
	// A premise must never introduce a second section break before the real one.
	assert.Equal(t, 1, strings.Count(text, sectionBreak))
}
