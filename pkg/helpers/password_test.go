package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptComparer(t *testing.T) {
	c := BcryptComparer{}

	stored, err := c.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored)

	assert.True(t, c.Compare(stored, "supersecret"))
	assert.False(t, c.Compare(stored, "wrong"))
	assert.False(t, c.Compare("not-a-hash", "supersecret"))
}
