package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 9: 1, 10: 1, 11: 2, 20: 2, 21: 3}
	for total, want := range cases {
		assert.Equal(t, want, TotalPages(total, DefaultPageSize), "total=%d", total)
	}
}

func TestBounds(t *testing.T) {
	start, end := Bounds(20, Params{Page: 2})
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = Bounds(11, Params{Page: 2, PageSize: 10})
	assert.Equal(t, 10, start)
	assert.Equal(t, 11, end)

	start, end = Bounds(5, Params{Page: 3})
	assert.Equal(t, start, end)

	start, end = Bounds(5, Params{Page: 0})
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end = Bounds(0, Params{Page: 1})
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(-4))
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 7, NormalizePage(7))
}
