package evalrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDiff_IdenticalProducesAllEqualLines(t *testing.T) {
	diff := LineDiff("a\nb\n", "a\nb\n")
	assert.Equal(t, " a\n b\n", diff)
}

func TestLineDiff_MarksInsertedAndDeletedLines(t *testing.T) {
	diff := LineDiff("a\nb\n", "a\nc\n")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")
	assert.Contains(t, diff, " a")
}
