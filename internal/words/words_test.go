package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	t.Parallel()

	t.Run("known category draws from its pool", func(t *testing.T) {
		t.Parallel()
		for i := 0; i < 20; i++ {
			assert.Contains(t, Pools["Animals"], Pick("Animals"))
		}
	})

	t.Run("unknown category falls back", func(t *testing.T) {
		t.Parallel()
		w := Pick("No Such Category")
		assert.Contains(t, fallback, w)
	})
}

func TestCategories(t *testing.T) {
	t.Parallel()
	cats := Categories()
	assert.Len(t, cats, len(Pools))
	assert.Contains(t, cats, "Footballers")
}
