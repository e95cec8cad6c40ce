package vim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

func TestGraphemeCount_ASCII(t *testing.T) {
	assert.Equal(t, 5, vim.GraphemeCount("hello"))
}

func TestGraphemeCount_CombiningMark(t *testing.T) {
	// "e" + combining acute accent is one grapheme cluster, two runes.
	assert.Equal(t, 1, vim.GraphemeCount("é"))
}

func TestNthGrapheme_InBounds(t *testing.T) {
	cluster, offset := vim.NthGrapheme("abc", 1)
	assert.Equal(t, "b", cluster)
	assert.Equal(t, 1, offset)
}

func TestNthGrapheme_OutOfBounds(t *testing.T) {
	cluster, offset := vim.NthGrapheme("abc", 10)
	assert.Equal(t, "", cluster)
	assert.Equal(t, -1, offset)
}

func TestNthGrapheme_Negative(t *testing.T) {
	cluster, offset := vim.NthGrapheme("abc", -1)
	assert.Equal(t, "", cluster)
	assert.Equal(t, -1, offset)
}

func TestGraphemeToByteOffset_RoundTripsWithByteToGraphemeOffset(t *testing.T) {
	s := "a😀b"
	for g := 0; g <= vim.GraphemeCount(s); g++ {
		b := vim.GraphemeToByteOffset(s, g)
		assert.Equal(t, g, vim.ByteToGraphemeOffset(s, b))
	}
}

func TestSliceByGraphemes_MultibyteCluster(t *testing.T) {
	s := "a😀b"
	assert.Equal(t, "😀", vim.SliceByGraphemes(s, 1, 2))
	assert.Equal(t, "a😀", vim.SliceByGraphemes(s, 0, 2))
}

func TestSliceByGraphemes_InvalidRangeIsEmpty(t *testing.T) {
	assert.Equal(t, "", vim.SliceByGraphemes("abc", 2, 1))
}

func TestGraphemeIterator_VisitsEveryCluster(t *testing.T) {
	iter := vim.NewGraphemeIterator("a😀b")
	var got []string
	for iter.Next() {
		got = append(got, iter.Cluster())
	}
	assert.Equal(t, []string{"a", "😀", "b"}, got)
}

func TestInsertAtGrapheme(t *testing.T) {
	assert.Equal(t, "aXb", vim.InsertAtGrapheme("ab", 1, "X"))
}

func TestDeleteGraphemeRange(t *testing.T) {
	assert.Equal(t, "ac", vim.DeleteGraphemeRange("abc", 1, 2))
}

func TestDeleteGraphemeRange_MultibyteCluster(t *testing.T) {
	assert.Equal(t, "ab", vim.DeleteGraphemeRange("a😀b", 1, 2))
}
