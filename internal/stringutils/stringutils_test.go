package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNonEmpty(t *testing.T) {
	assert.Nil(t, SplitNonEmpty("", ","))
	assert.Equal(t, []string{"a"}, SplitNonEmpty("a", ","))
	assert.Equal(t, []string{"a", "b"}, SplitNonEmpty("a,b", ","))
	assert.Equal(t, []string{"a", "b"}, SplitNonEmpty("a,,b,", ","))
}
