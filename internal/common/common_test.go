package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"csv2json/internal/common"
)

func TestSlices(t *testing.T) {
	t.Parallel()

	assert.True(t, common.IsEmpty([]int{}))
	assert.True(t, common.IsSingle([]int{1}))
	assert.True(t, common.IsMultiple([]int{1, 2}))

	first, ok := common.First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok = common.First([]string(nil))
	assert.False(t, ok)
}

func TestUnique(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"b", "a", "c"}, common.Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Nil(t, common.Unique([]string(nil)))

	got := common.UniqueFunc([]string{"Zip", "zip", "ZIP", "plz"}, func(s string) string {
		if s == "" {
			return s
		}

		return string(s[0]|0x20) + s[1:]
	})
	assert.Equal(t, []string{"Zip", "ZIP", "plz"}, got)
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "orders", common.Stem("/tmp/data/orders.dt"))
	assert.Equal(t, "", common.Stem(""))
	assert.Equal(t, "/tmp/in.json", common.ReplaceExt("/tmp/in.csv", ".json"))
	assert.Equal(t, "noext.json", common.ReplaceExt("noext", ".json"))
	assert.Equal(t, ".xlsx", common.Ext("Book.XLSX"))
}
