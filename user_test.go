package bookmarkai_test

import (
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ada@example.com", bookmarkai.NormalizeEmail("  Ada@Example.COM "))
	assert.Equal(t, "ada@example.com", bookmarkai.NormalizeEmail("ada@example.com"))
	assert.Empty(t, bookmarkai.NormalizeEmail("   "))
}
