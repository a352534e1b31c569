package chapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPaper(t *testing.T) {
	firstPaper, ok := ForPaper(FirstPaper)
	require.True(t, ok)
	require.Len(t, firstPaper, 10)

	secondPaper, ok := ForPaper(SecondPaper)
	require.True(t, ok)
	require.Len(t, secondPaper, 9)

	for i, ch := range firstPaper {
		assert.Equal(t, i+1, ch.ID)
		assert.Equal(t, FirstPaper, ch.Paper)
		assert.NotEmpty(t, ch.Title)
	}
	for i, ch := range secondPaper {
		assert.Equal(t, i+1, ch.ID)
		assert.Equal(t, SecondPaper, ch.Paper)
		assert.NotEmpty(t, ch.Title)
	}
}

func TestForPaper_UnknownPaper(t *testing.T) {
	for _, paper := range []string{"", "3rd Paper", "1st paper", "first"} {
		chs, ok := ForPaper(paper)
		assert.False(t, ok, "paper: %q", paper)
		assert.Nil(t, chs)
	}
}
