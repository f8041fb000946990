// Package transcript persists a debate to a markdown file, incrementally
// enough that a partial transcript survives the process dying mid-session.
package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lorenzotomasdiez/owls/internal/debate"
)

// ErrMalformedTranscript is returned by Finalize when the file no longer
// carries the expected header structure. No repair is attempted.
var ErrMalformedTranscript = errors.New("transcript: malformed transcript file")

const (
	sectionBreak     = "\n---\n"
	timeLayout       = "2006-01-02 15:04:05"
	fileStampLayout  = "20060102_150405"
	statusLinePrefix = "**Status:** "
	inProgressMarker = statusLinePrefix + string(debate.StatusInProgress)
)

// Writer owns one transcript file for the duration of a session.
type Writer struct {
	path      string
	startTime time.Time
}

// Open creates the transcript file and writes its header block. The
// filename embeds the prefix and a second-resolution timestamp; two
// sessions starting within the same second collide, which is accepted.
func Open(dir, prefix, topic, sessionID, participants, premise string, start time.Time) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("transcript: creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.md", prefix, start.Format(fileStampLayout)))

	var b strings.Builder
	b.WriteString("# AI Debate Session\n\n")
	fmt.Fprintf(&b, "**Session:** %s\n\n", sessionID)
	fmt.Fprintf(&b, "**Topic:** %s\n\n", topic)
	fmt.Fprintf(&b, "**Started:** %s\n\n", start.Format(timeLayout))
	fmt.Fprintf(&b, "**Participants:** %s\n\n", participants)
	if premise != "" {
		b.WriteString("**Premise:**\n\n")
		b.WriteString(blockquote(premise))
		b.WriteString("\n\n")
	}
	b.WriteString(inProgressMarker + "\n")
	b.WriteString(sectionBreak + "\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("transcript: creating %s: %w", path, err)
	}
	return &Writer{path: path, startTime: start}, nil
}

// Path returns the transcript file path.
func (w *Writer) Path() string { return w.path }

// AppendTurn writes one turn block with a full open-write-close cycle so
// the block is durable before the next generation call starts.
func (w *Writer) AppendTurn(speaker, content string, index int, ts time.Time) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("transcript: opening %s: %w", w.path, err)
	}

	block := fmt.Sprintf("## Turn %d: %s\n\n_%s_\n\n%s\n%s\n", index, speaker, ts.Format(timeLayout), content, sectionBreak)
	if _, err := f.WriteString(block); err != nil {
		f.Close()
		return fmt.Errorf("transcript: appending turn %d: %w", index, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("transcript: closing %s: %w", w.path, err)
	}
	return nil
}

// Finalize rewrites the in-progress marker to the terminal status and
// injects end time, duration, and turn count into the header, located by
// the first section break. A missing marker means the file was corrupted
// or edited externally; Finalize fails loudly rather than guessing.
func (w *Writer) Finalize(end time.Time, turnCount int, status debate.Status) error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("transcript: reading %s: %w", w.path, err)
	}
	text := string(data)

	idx := strings.Index(text, sectionBreak)
	if idx < 0 {
		return fmt.Errorf("%w: no section break in %s", ErrMalformedTranscript, w.path)
	}
	header, rest := text[:idx], text[idx:]

	if !strings.Contains(header, inProgressMarker) {
		return fmt.Errorf("%w: no in-progress status marker in %s", ErrMalformedTranscript, w.path)
	}
	header = strings.Replace(header, inProgressMarker, statusLinePrefix+string(status), 1)

	duration := end.Sub(w.startTime)
	header += fmt.Sprintf("\n**Ended:** %s\n\n**Duration:** %.1fs (%dm%ds)\n\n**Turns:** %d\n",
		end.Format(timeLayout),
		duration.Seconds(),
		int(duration.Minutes()),
		int(duration.Seconds())%60,
		turnCount,
	)

	if err := os.WriteFile(w.path, []byte(header+rest), 0o644); err != nil {
		return fmt.Errorf("transcript: finalizing %s: %w", w.path, err)
	}
	return nil
}

func blockquote(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}
