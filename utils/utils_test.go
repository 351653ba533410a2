package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"csv2json/utils"
)

func TestIsInRange(t *testing.T) {
	t.Parallel()

	assert.True(t, utils.IsInRange(0, 4, 8))
	assert.True(t, utils.IsInRange(0, 0, 8))
	assert.True(t, utils.IsInRange(1, 64, 64))
	assert.False(t, utils.IsInRange(1, 0, 64))
	assert.False(t, utils.IsInRange(0.5, 2.0, 1.5))
}

func TestUnpack2(t *testing.T) {
	t.Parallel()

	a, b := utils.Unpack2([]string{"x", "y", "z"})
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)

	a, b = utils.Unpack2([]string{"x"})
	assert.Equal(t, "x", a)
	assert.Empty(t, b)

	a, b = utils.Unpack2([]string(nil))
	assert.Empty(t, a)
	assert.Empty(t, b)
}
