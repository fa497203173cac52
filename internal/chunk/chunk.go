// Package chunk splits extracted document text into paragraph-aligned
// pieces bounded by a target size.
package chunk

import (
	"regexp"
	"strings"
)

var paragraphSep = regexp.MustCompile(`\n\s*\n`)

// Split cuts text on blank-line boundaries and accumulates paragraphs into
// chunks of at most maxChunkSize characters. Paragraphs are never reordered
// or split further: a single paragraph larger than maxChunkSize becomes its
// own chunk verbatim, and an oversized leading paragraph is emitted as a
// standalone chunk before seeding the next buffer.
//
// Split is a pure function of its inputs and never fails. Empty input yields
// an empty slice; callers guard against zero chunks upstream.
func Split(text string, maxChunkSize int) []string {
	paragraphs := paragraphSep.Split(text, -1)

	var chunks []string
	var current strings.Builder

	for _, paragraph := range paragraphs {
		if current.Len()+len(paragraph) > maxChunkSize {
			if current.Len() > 0 {
				flushed := strings.TrimSpace(current.String())
				if flushed != "" {
					chunks = append(chunks, flushed)
				}
				current.Reset()
				current.WriteString(paragraph)
			} else {
				chunks = append(chunks, paragraph)
				current.WriteString(paragraph)
			}
		} else {
			current.WriteString("\n\n")
			current.WriteString(paragraph)
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		chunks = append(chunks, rest)
	}

	return chunks
}
