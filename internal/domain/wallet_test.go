package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallet_Empty(t *testing.T) {
	w, err := ParseWallet("  ")
	require.NoError(t, err)
	assert.True(t, w.IsZero())
}

func TestParseWallet_Normalizes(t *testing.T) {
	w, err := ParseWallet("0x56687BF447DB6FFA42FFE2204A05EDAA20F55839")
	require.NoError(t, err)
	assert.Equal(t, "0x56687bf447db6ffa42ffe2204a05edaa20f55839", w.String())
	assert.False(t, w.IsZero())
	assert.Equal(t, "0x5668…5839", w.Short())
}

func TestParseWallet_Invalid(t *testing.T) {
	_, err := ParseWallet("not-an-address")
	assert.ErrorIs(t, err, ErrInvalidWallet)

	_, err = ParseWallet("0x1234")
	assert.ErrorIs(t, err, ErrInvalidWallet)
}
