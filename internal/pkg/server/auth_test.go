package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_TokenRoundTrip(t *testing.T) {
	t.Parallel()
	a := newAuth("hunter2")

	_, err := a.login("wrong")
	assert.ErrorIs(t, err, errInvalidPassword)

	token, err := a.login("hunter2")
	require.NoError(t, err)
	assert.NoError(t, a.verify(token))
}

func TestAuth_SecretIsPerInstance(t *testing.T) {
	t.Parallel()
	first := newAuth("hunter2")
	second := newAuth("hunter2")

	token, err := first.login("hunter2")
	require.NoError(t, err)

	// A restart mints a new secret, so old tokens stop verifying.
	assert.ErrorIs(t, second.verify(token), errInvalidToken)
}
