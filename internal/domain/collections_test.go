package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExposed(t *testing.T) {
	allowed := []string{"Courses", "Orders"}

	assert.True(t, IsExposed(allowed, "Courses"))
	assert.True(t, IsExposed(allowed, "Orders"))
	assert.False(t, IsExposed(allowed, "courses"), "matching is case-sensitive")
	assert.False(t, IsExposed(allowed, "Users"))
	assert.False(t, IsExposed(allowed, ""))
	assert.False(t, IsExposed(nil, "Courses"))
}
