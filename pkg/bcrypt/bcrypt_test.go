package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashCompare(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.Hash("482913")
	require.NoError(t, err)
	assert.NotEqual(t, "482913", hash)

	assert.NoError(t, b.Compare(hash, "482913"))
	assert.ErrorIs(t, b.Compare(hash, "482914"), ErrMismatch)
}
