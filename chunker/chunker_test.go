package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

func TestChunkShortTextIsSingleChunk(t *testing.T) {
	c := New()

	text := "This manual covers installation and troubleshooting."

	chunks := c.Chunk(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkEmptyText(t *testing.T) {
	c := New(WithMaxChars(100))

	assert.Nil(t, c.Chunk(""))
	assert.Nil(t, c.Chunk("   \n\t  "))
}

func TestChunkPrefersSentenceBoundary(t *testing.T) {
	c := New(WithMaxChars(1000))

	sentence := strings.Repeat("a", 99) + "."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 50))

	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 1000)
		assert.True(t, strings.HasSuffix(chunk, "."), "chunk should end at a sentence boundary: %q", chunk[len(chunk)-10:])
	}
}

func TestChunkFallsBackToNewline(t *testing.T) {
	c := New(WithMaxChars(500))

	line := strings.Repeat("b", 79) + "\n"
	text := strings.TrimSpace(strings.Repeat(line, 30))

	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 500)
		assert.NotContains(t, chunk[len(chunk)-5:], " ")
	}
}

func TestChunkFallsBackToSpace(t *testing.T) {
	c := New(WithMaxChars(200))

	text := strings.TrimSpace(strings.Repeat("word ", 200))

	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
		assert.False(t, strings.HasPrefix(chunk, "ord"), "no word should be split: %q", chunk[:4])
	}
}

func TestChunkHardCut(t *testing.T) {
	c := New(WithMaxChars(1000))

	text := strings.Repeat("x", 2500)

	chunks := c.Chunk(text)

	require.Len(t, chunks, 3)
	assert.Equal(t, 1000, len(chunks[0]))
	assert.Equal(t, 1000, len(chunks[1]))
	assert.Equal(t, 500, len(chunks[2]))
}

func TestChunkKeepsMultiByteRunesIntact(t *testing.T) {
	c := New(WithMaxChars(101))

	text := strings.Repeat("é", 200)

	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
		assert.LessOrEqual(t, len(chunk), 101)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestChunkReconstructsContent(t *testing.T) {
	c := New(WithMaxChars(300))

	text := strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 100))

	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	assert.Equal(t, stripWhitespace(text), stripWhitespace(strings.Join(chunks, "")))
}

func TestChunkIsDeterministic(t *testing.T) {
	c := New(WithMaxChars(250))

	text := strings.TrimSpace(strings.Repeat("Some sentence about settings. Another about safety.\n", 40))

	first := c.Chunk(text)
	second := c.Chunk(text)

	assert.Equal(t, first, second)
}

func TestChunkLongManual(t *testing.T) {
	c := New()

	sentence := "The device must be powered off before replacing the filter assembly. "
	var sb strings.Builder
	for sb.Len() < 25000 {
		sb.WriteString(sentence)
	}
	text := strings.TrimSpace(sb.String()[:25000])

	chunks := c.Chunk(text)

	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), DefaultMaxChars)
	}
	assert.True(t, strings.HasSuffix(chunks[0], "."))
	assert.True(t, strings.HasSuffix(chunks[1], "."))
}

func TestWithMaxCharsIgnoresInvalid(t *testing.T) {
	c := New(WithMaxChars(0))
	assert.Equal(t, DefaultMaxChars, c.MaxChars())

	c = New(WithMaxChars(-5))
	assert.Equal(t, DefaultMaxChars, c.MaxChars())
}
