package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numberedWords builds "w0 w1 ... w<n-1>" so tests can assert exact
// window boundaries.
func numberedWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestSplitEmptyText(t *testing.T) {
	chunks, err := Split("", DefaultChunkSize, DefaultOverlap)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = Split("   \n\t  ", DefaultChunkSize, DefaultOverlap)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitInvalidWindow(t *testing.T) {
	cases := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"zero chunk size", 0, 0},
		{"negative chunk size", -1, 0},
		{"negative overlap", 10, -1},
		{"overlap equals chunk size", 10, 10},
		{"overlap exceeds chunk size", 10, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := Split("some text here", tc.chunkSize, tc.overlap)
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.Nil(t, chunks)
		})
	}
}

func TestSplitSingleChunk(t *testing.T) {
	// Up to chunkSize words fit in one chunk.
	text := numberedWords(DefaultChunkSize)

	chunks, err := Split(text, DefaultChunkSize, DefaultOverlap)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitOverlappingWindows(t *testing.T) {
	// 400 words, window 220, overlap 40: starts at 0 and 180; the
	// second window reaches the last word, so splitting stops there.
	text := numberedWords(400)

	chunks, err := Split(text, 220, 40)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])

	assert.Len(t, first, 220)
	assert.Len(t, second, 220)

	assert.Equal(t, "w0", first[0])
	assert.Equal(t, "w180", second[0])
	assert.Equal(t, "w399", second[len(second)-1])

	// The last 40 words of the first window reappear at the head of
	// the second.
	assert.Equal(t, first[180:], second[:40])
}

func TestSplitNoRedundantTailWindow(t *testing.T) {
	// Once a window covers the last word, no further window starts: a
	// chunk that would repeat only its predecessor's tail is never
	// emitted.
	t.Run("text shorter than one stride past the window", func(t *testing.T) {
		// 240 words: the window at 180 runs to the end, and no window
		// at 360 exists.
		chunks, err := Split(numberedWords(240), 220, 40)
		require.NoError(t, err)
		require.Len(t, chunks, 2)

		tail := strings.Fields(chunks[1])
		assert.Equal(t, "w180", tail[0])
		assert.Equal(t, "w239", tail[len(tail)-1])
	})

	t.Run("every chunk ends past its predecessor", func(t *testing.T) {
		for _, n := range []int{220, 221, 260, 400, 401, 1000} {
			chunks, err := Split(numberedWords(n), 220, 40)
			require.NoError(t, err)

			prevLast := ""
			for i, chunk := range chunks {
				words := strings.Fields(chunk)
				last := words[len(words)-1]
				assert.NotEqual(t, prevLast, last, "n=%d chunk=%d", n, i)
				prevLast = last
			}
		}
	})
}

func TestSplitZeroOverlap(t *testing.T) {
	chunks, err := Split(numberedWords(10), 4, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "w0 w1 w2 w3", chunks[0])
	assert.Equal(t, "w4 w5 w6 w7", chunks[1])
	assert.Equal(t, "w8 w9", chunks[2])
}

func TestSplitNormalizesWhitespace(t *testing.T) {
	chunks, err := Split("alpha\n\n beta\tgamma   delta", 10, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "alpha beta gamma delta", chunks[0])
}

func TestSplitDeterministic(t *testing.T) {
	text := numberedWords(777)

	a, err := Split(text, DefaultChunkSize, DefaultOverlap)
	require.NoError(t, err)
	b, err := Split(text, DefaultChunkSize, DefaultOverlap)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSplitCoversAllWords(t *testing.T) {
	for _, n := range []int{1, 39, 180, 219, 221, 500} {
		text := numberedWords(n)

		chunks, err := Split(text, 220, 40)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)

		last := strings.Fields(chunks[len(chunks)-1])
		assert.Equal(t, fmt.Sprintf("w%d", n-1), last[len(last)-1], "n=%d", n)
	}
}
