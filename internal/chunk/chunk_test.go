package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func para(ch byte, n int) string {
	return strings.Repeat(string(ch), n)
}

func TestSplit_EmptyInput(t *testing.T) {
	assert.Empty(t, Split("", 1000))
	assert.Empty(t, Split("   \n\n  \n ", 1000))
}

func TestSplit_SingleParagraph(t *testing.T) {
	chunks := Split("hello world", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplit_ParagraphsThatFitStayTogether(t *testing.T) {
	chunks := Split("first paragraph\n\nsecond paragraph", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "first paragraph\n\nsecond paragraph", chunks[0])
}

func TestSplit_FlushesOnOverflow(t *testing.T) {
	p1 := para('a', 60)
	p2 := para('b', 60)
	p3 := para('c', 60)
	chunks := Split(p1+"\n\n"+p2+"\n\n"+p3, 100)

	require.Equal(t, []string{p1, p2, p3}, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}
}

func TestSplit_RespectsBlankLinesWithWhitespace(t *testing.T) {
	chunks := Split("one\n   \ntwo\n\t\nthree", 4)
	assert.Equal(t, []string{"one", "two", "three"}, chunks)
}

func TestSplit_OversizedMiddleParagraphBecomesOwnChunk(t *testing.T) {
	p1 := para('a', 50)
	big := para('b', 150)
	p3 := para('c', 50)
	chunks := Split(p1+"\n\n"+big+"\n\n"+p3, 100)

	require.Equal(t, []string{p1, big, p3}, chunks)
	// The oversized paragraph is the only chunk allowed past the bound.
	assert.Greater(t, len(chunks[1]), 100)
}

func TestSplit_OversizedLeadingParagraphIsStandalone(t *testing.T) {
	big := para('a', 150)
	p2 := para('b', 50)
	chunks := Split(big+"\n\n"+p2, 100)

	// A long leading paragraph is emitted immediately and again when the
	// buffer it seeded flushes.
	require.Equal(t, []string{big, big, p2}, chunks)
}

func TestSplit_Deterministic(t *testing.T) {
	text := para('a', 30) + "\n\n" + para('b', 300) + "\n\n" + para('c', 30) + "\n\n" + para('d', 90)
	first := Split(text, 100)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Split(text, 100))
	}
}

func TestSplit_PreservesParagraphOrder(t *testing.T) {
	paragraphs := []string{
		para('a', 40), para('b', 40), para('c', 40),
		para('d', 40), para('e', 40), para('f', 40),
	}
	chunks := Split(strings.Join(paragraphs, "\n\n"), 90)

	joined := strings.Join(chunks, "\n\n")
	pos := 0
	for _, p := range paragraphs {
		idx := strings.Index(joined[pos:], p)
		require.GreaterOrEqual(t, idx, 0, "paragraph missing or out of order")
		pos += idx + len(p)
	}
}
