package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "abc", Truncate("  abc  ", 10))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "зд...", Truncate("здравствуй", 2))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
