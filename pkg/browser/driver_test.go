package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanContent(t *testing.T) {
	assert.Equal(t, "a b c", CleanContent("  a\n\n b \t c  ", 100))
	assert.Equal(t, "", CleanContent(" \n ", 100))

	long := strings.Repeat("ab ", 3000)
	got := CleanContent(long, maxContentLength)
	assert.Len(t, []rune(got), maxContentLength)

	assert.Equal(t, "नमस्", CleanContent("नमस्ते", 4))
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 0, wrapIndex(3, 3))
	assert.Equal(t, 2, wrapIndex(-1, 3))
	assert.Equal(t, 1, wrapIndex(1, 3))
	assert.Equal(t, 0, wrapIndex(-1, 1))
}

func TestEvaluateConversions(t *testing.T) {
	assert.Equal(t, 3, asInt(3))
	assert.Equal(t, 2, asInt(float64(2)))
	assert.Equal(t, 0, asInt("x"))
	assert.True(t, asBool(true))
	assert.False(t, asBool(nil))
	assert.Equal(t, "x", asString("x"))
	assert.Equal(t, "", asString(1))
}
