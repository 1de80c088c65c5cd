package response

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsSurvivesWrapping(t *testing.T) {
	sentinel := NewError(404, "not found")
	wrapped := fmt.Errorf("%w: trigger %q", sentinel, "lunch")

	assert.ErrorIs(t, wrapped, sentinel)
	assert.ErrorIs(t, wrapped, NewError(404, "not found"))
	assert.NotErrorIs(t, wrapped, NewError(400, "not found"))
	assert.NotErrorIs(t, wrapped, NewError(404, "gone"))
}

func TestStatusOf(t *testing.T) {
	code, ok := StatusOf(fmt.Errorf("outer: %w", NewError(422, "unknown")))
	assert.True(t, ok)
	assert.Equal(t, 422, code)

	_, ok = StatusOf(errors.New("plain"))
	assert.False(t, ok)
}
