package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	assert.Equal(t, "", Value[string](nil))
	assert.Equal(t, "1001", Value(Ptr("1001")))
	assert.Equal(t, 0, Value[int](nil))
}
