package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUintptrToInt(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := UintptrToInt(0)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("valid positive", func(t *testing.T) {
		got, err := UintptrToInt(4096)
		assert.NoError(t, err)
		assert.Equal(t, 4096, got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := UintptrToInt(^uintptr(0))
		assert.Error(t, err)
	})
}
