package ingestion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("w%d", i)
	}
	return out
}

func TestChunkWords_Empty(t *testing.T) {
	assert.Nil(t, ChunkWords("", 800, 100))
	assert.Nil(t, ChunkWords("   \n\t  ", 800, 100))
}

func TestChunkWords_SingleWindow(t *testing.T) {
	text := "one  two\nthree four"
	chunks := ChunkWords(text, 800, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "one two three four", chunks[0])
}

func TestChunkWords_OverlapSharing(t *testing.T) {
	all := words(2000)
	chunks := ChunkWords(strings.Join(all, " "), 800, 100)

	// windows start at 0, 700, 1400
	require.Len(t, chunks, 3)
	assert.Len(t, strings.Fields(chunks[0]), 800)
	assert.Len(t, strings.Fields(chunks[1]), 800)
	assert.Len(t, strings.Fields(chunks[2]), 600)

	// consecutive chunks share exactly the last/first 100 words
	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	assert.Equal(t, first[700:], second[:100])

	// concatenating the non-overlapping spans reconstructs the input
	rebuilt := append([]string{}, first...)
	rebuilt = append(rebuilt, second[100:]...)
	rebuilt = append(rebuilt, strings.Fields(chunks[2])[100:]...)
	assert.Equal(t, all, rebuilt)
}

func TestChunkWords_FinalPartialWindow(t *testing.T) {
	chunks := ChunkWords(strings.Join(words(750), " "), 800, 100)
	require.Len(t, chunks, 2)
	assert.Len(t, strings.Fields(chunks[0]), 750)
	// the trailing window re-covers the overlap region only
	assert.Len(t, strings.Fields(chunks[1]), 50)
}

func TestChunkWords_MinimumAdvance(t *testing.T) {
	// overlap >= chunkSize must still advance one word per window
	chunks := ChunkWords("a b c d", 2, 5)
	assert.Equal(t, []string{"a b", "b c", "c d", "d"}, chunks)
}
