// Package chunker splits long text into bounded-size segments at natural
// boundaries so each segment can be embedded independently.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the default maximum segment size in characters.
const DefaultMaxChars = 12000

const (
	sentenceLookback = 500
	spaceLookback    = 100
)

type Chunker struct {
	maxChars int
}

type Option func(*Chunker)

func WithMaxChars(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxChars: DefaultMaxChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Chunker) MaxChars() int {
	return c.maxChars
}

// Chunk splits text into ordered segments of at most MaxChars characters.
// Each segment prefers to end at, in order: the latest sentence terminator
// within the trailing 500 characters of the window, the latest newline within
// that region, the latest space within the trailing 100 characters, or a hard
// cut at exactly MaxChars. Segments are trimmed and empty segments dropped.
func (c *Chunker) Chunk(text string) []string {
	if len(text) <= c.maxChars {
		trimmed := strings.TrimSpace(text)
		if len(trimmed) == 0 {
			return nil
		}
		return []string{trimmed}
	}

	var chunks []string

	start := 0
	for start < len(text) {
		remaining := text[start:]
		if len(remaining) <= c.maxChars {
			if trimmed := strings.TrimSpace(remaining); len(trimmed) > 0 {
				chunks = append(chunks, trimmed)
			}
			break
		}

		window := remaining[:c.maxChars]
		cut := boundary(window)

		// a hard cut must not split a multi-byte rune
		for cut > 0 && cut < len(remaining) && !utf8.RuneStart(remaining[cut]) {
			cut--
		}

		if trimmed := strings.TrimSpace(window[:cut]); len(trimmed) > 0 {
			chunks = append(chunks, trimmed)
		}

		start += cut
	}

	return chunks
}

// boundary returns the cut position for a full-size window, always in (0, len(window)].
func boundary(window string) int {
	tail := sentenceLookback
	if tail > len(window) {
		tail = len(window)
	}
	region := window[len(window)-tail:]

	if i := strings.LastIndexByte(region, '.'); i >= 0 {
		return len(window) - tail + i + 1
	}

	if i := strings.LastIndexByte(region, '\n'); i >= 0 {
		return len(window) - tail + i + 1
	}

	tail = spaceLookback
	if tail > len(window) {
		tail = len(window)
	}
	region = window[len(window)-tail:]

	if i := strings.LastIndexByte(region, ' '); i >= 0 {
		return len(window) - tail + i + 1
	}

	return len(window)
}
