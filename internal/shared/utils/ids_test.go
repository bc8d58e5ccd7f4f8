package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUserID(t *testing.T) {
	assert.True(t, IsValidUserID("U1001"))
	assert.True(t, IsValidUserID("U1"))
	assert.False(t, IsValidUserID("1001"))
	assert.False(t, IsValidUserID("u1001"))
	assert.False(t, IsValidUserID("U"))
	assert.False(t, IsValidUserID("U10a1"))
	assert.False(t, IsValidUserID(""))
}

func TestIsValidBookID(t *testing.T) {
	assert.True(t, IsValidBookID("B1001"))
	assert.True(t, IsValidBookID("B1700000000"))
	assert.False(t, IsValidBookID("U1001"))
	assert.False(t, IsValidBookID("B"))
	assert.False(t, IsValidBookID("book-1"))
}
