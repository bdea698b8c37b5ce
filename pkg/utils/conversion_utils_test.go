package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64ToStr(t *testing.T) {
	assert.Equal(t, "42", Int64ToStr(42))
	assert.Equal(t, "-7", Int64ToStr(-7))
	assert.Equal(t, "0", Int64ToStr(0))
}

func TestStrToInt64(t *testing.T) {
	n, err := StrToInt64("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = StrToInt64("-7")
	require.NoError(t, err)
	assert.Equal(t, int64(-7), n)

	_, err = StrToInt64("abc")
	assert.Error(t, err)

	_, err = StrToInt64("")
	assert.Error(t, err)
}

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString(""))

	s := NewNullString("spa")
	require.NotNil(t, s)
	assert.Equal(t, "spa", *s)
}
