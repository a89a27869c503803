package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperchat/paperchat/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	c := New()

	assert.Equal(t, DefaultWindow, c.Window())
	assert.Equal(t, DefaultWindow-DefaultOverlap, c.Stride())
}

func TestNew_OverlapAtLeastWindowFallsBack(t *testing.T) {
	c := New(WithWindow(100), WithOverlap(100))

	// Overlap collapses to a quarter window so the stride stays positive.
	assert.Equal(t, 100-25, c.Stride())
}

func TestNew_IgnoresInvalidOptions(t *testing.T) {
	c := New(WithWindow(0), WithOverlap(-5))

	assert.Equal(t, DefaultWindow, c.Window())
	assert.Equal(t, DefaultWindow-DefaultOverlap, c.Stride())
}

func TestChunk_ShortPageSingleChunk(t *testing.T) {
	c := New()
	pages := []domain.Page{{Number: 1, Text: "short page"}}

	chunks := c.Chunk("doc", pages)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short page", chunks[0].Text)
	assert.Equal(t, 1, chunks[0].Page)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "doc", chunks[0].DocumentID)
}

func TestChunk_WindowsOverlap(t *testing.T) {
	c := New(WithWindow(10), WithOverlap(4))
	text := "abcdefghijklmnop" // 16 chars, stride 6
	pages := []domain.Page{{Number: 1, Text: text}}

	chunks := c.Chunk("doc", pages)

	require.Len(t, chunks, 3)
	assert.Equal(t, "abcdefghij", chunks[0].Text)
	assert.Equal(t, "ghijklmnop", chunks[1].Text)
	assert.Equal(t, "mnop", chunks[2].Text)
}

func TestChunk_ReconstructsPageText(t *testing.T) {
	c := New(WithWindow(50), WithOverlap(10))
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20)
	pages := []domain.Page{{Number: 3, Text: text}}

	chunks := c.Chunk("doc", pages)
	require.NotEmpty(t, chunks)

	// Dropping each follow-on chunk's overlap region reassembles the page.
	var b strings.Builder
	b.WriteString(chunks[0].Text)
	for _, chunk := range chunks[1:] {
		if len(chunk.Text) > 10 {
			b.WriteString(chunk.Text[10:])
		}
	}
	assert.Equal(t, text, b.String())
}

func TestChunk_MultiByteTextCutsOnRuneBoundaries(t *testing.T) {
	c := New(WithWindow(10), WithOverlap(4))
	text := strings.Repeat("哈", 16) // 3 bytes per rune, stride 6
	pages := []domain.Page{{Number: 1, Text: text}}

	chunks := c.Chunk("doc", pages)

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk.Text), "chunk %d must be valid UTF-8", i)
	}
	assert.Equal(t, 10, utf8.RuneCountInString(chunks[0].Text))
	assert.Equal(t, 10, utf8.RuneCountInString(chunks[1].Text))
	assert.Equal(t, 4, utf8.RuneCountInString(chunks[2].Text))
}

func TestChunk_WindowCountsRunesNotBytes(t *testing.T) {
	c := New()
	// 400 runes but 1200 bytes; a byte-based window would split this page.
	pages := []domain.Page{{Number: 1, Text: strings.Repeat("哈", 400)}}

	chunks := c.Chunk("doc", pages)

	require.Len(t, chunks, 1)
	assert.Equal(t, pages[0].Text, chunks[0].Text)
}

func TestChunk_NeverCrossesPageBoundary(t *testing.T) {
	c := New(WithWindow(10), WithOverlap(2))
	pages := []domain.Page{
		{Number: 1, Text: strings.Repeat("a", 15)},
		{Number: 2, Text: strings.Repeat("b", 15)},
	}

	chunks := c.Chunk("doc", pages)

	for _, chunk := range chunks {
		switch chunk.Page {
		case 1:
			assert.NotContains(t, chunk.Text, "b")
		case 2:
			assert.NotContains(t, chunk.Text, "a")
		default:
			t.Fatalf("unexpected page %d", chunk.Page)
		}
	}
}

func TestChunk_SkipsEmptyPages(t *testing.T) {
	c := New()
	pages := []domain.Page{
		{Number: 1, Text: ""},
		{Number: 2, Text: "content"},
		{Number: 3, Text: ""},
	}

	chunks := c.Chunk("doc", pages)

	require.Len(t, chunks, 1)
	assert.Equal(t, 2, chunks[0].Page)
}

func TestChunk_IndexIsContiguousAcrossPages(t *testing.T) {
	c := New(WithWindow(10), WithOverlap(2))
	pages := []domain.Page{
		{Number: 1, Text: strings.Repeat("a", 20)},
		{Number: 2, Text: strings.Repeat("b", 20)},
	}

	chunks := c.Chunk("doc", pages)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestChunk_NoPages(t *testing.T) {
	c := New()

	assert.Empty(t, c.Chunk("doc", nil))
	assert.Empty(t, c.Chunk("doc", []domain.Page{{Number: 1, Text: ""}}))
}
