package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeySymmetric(t *testing.T) {
	ab, err := DeriveKey("0a6f3b1e-0000-4000-8000-000000000001", "0b7f3b1e-0000-4000-8000-000000000002")
	require.NoError(t, err)
	ba, err := DeriveKey("0b7f3b1e-0000-4000-8000-000000000002", "0a6f3b1e-0000-4000-8000-000000000001")
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.Equal(t, "0a6f3b1e-0000-4000-8000-000000000001:0b7f3b1e-0000-4000-8000-000000000002", ab)
}

func TestDeriveKeyOrdersLexicographically(t *testing.T) {
	key, err := DeriveKey("zzz", "aaa")
	require.NoError(t, err)
	assert.Equal(t, "aaa:zzz", key)
}

func TestDeriveKeyEmptyParticipant(t *testing.T) {
	_, err := DeriveKey("", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = DeriveKey("a", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeriveKeySelfConversation(t *testing.T) {
	key, err := DeriveKey("same-id", "same-id")
	require.NoError(t, err)
	assert.Equal(t, "same-id:same-id", key)
}
