package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNormalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		p, err := Page{}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, 1, p.Number)
		assert.Equal(t, DefaultPageSize, p.Size)
	})

	t.Run("negative page becomes first", func(t *testing.T) {
		p, err := Page{Number: -3, Size: 5}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, 1, p.Number)
		assert.Equal(t, 5, p.Size)
	})

	t.Run("oversized page rejected", func(t *testing.T) {
		_, err := Page{Number: 1, Size: MaxPageSize + 1}.Normalize()
		assert.Error(t, err)
	})
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 10, Page{Number: 2, Size: 10}.Offset())
	assert.Equal(t, 28, Page{Number: 8, Size: 4}.Offset())
}

func TestResultTotalPages(t *testing.T) {
	r := Result[int]{TotalCount: 15, Page: Page{Number: 1, Size: 10}}
	assert.Equal(t, 2, r.TotalPages())

	r.TotalCount = 20
	assert.Equal(t, 2, r.TotalPages())

	r.TotalCount = 0
	assert.Equal(t, 0, r.TotalPages())
}
