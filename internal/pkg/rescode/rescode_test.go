package rescode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	code, err := Generate()

	require.NoError(t, err)
	assert.Len(t, code, Length)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateAlphabetOmitsAmbiguousCharacters(t *testing.T) {
	for _, ambiguous := range "ILO01" {
		assert.False(t, strings.ContainsRune(alphabet, ambiguous))
	}
}

func TestGenerateCoversWholeAlphabet(t *testing.T) {
	// Rejection sampling keeps the character distribution flat. Over a few
	// thousand characters every alphabet character shows up.
	seen := make(map[rune]bool)
	for i := 0; i < 200; i++ {
		code, err := Generate()
		require.NoError(t, err)
		for _, r := range code {
			seen[r] = true
		}
	}

	for _, r := range alphabet {
		assert.True(t, seen[r], "character %q never generated", r)
	}
}

func TestGenerateIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate code %v after %d draws", code, i)
		seen[code] = true
	}
}
