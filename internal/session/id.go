// Package session drives the ingestion pipeline: discovering transcript
// files, scoring them, and keeping the score store in sync with a
// live-written session directory.
package session

import (
	"path/filepath"
	"strings"
)

// TranscriptExt is the recognized transcript file extension.
const TranscriptExt = ".jsonl"

// transcriptPrefix is the fixed prefix the session recorder puts on
// transcript file names.
const transcriptPrefix = "rollout-"

// IDFromPath derives the session id from a transcript file name.
func IDFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), TranscriptExt)
	return strings.TrimPrefix(name, transcriptPrefix)
}

// IsTranscript reports whether the path names a transcript file.
func IsTranscript(path string) bool {
	return strings.HasSuffix(path, TranscriptExt)
}
