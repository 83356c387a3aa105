package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	ct, ext, data, err := DecodeDataURI("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)
	assert.Equal(t, ".jpg", ext)
	assert.Equal(t, []byte("hello"), data)

	_, _, _, err = DecodeDataURI("data:text/plain;base64,aGVsbG8=")
	assert.Error(t, err)
	_, _, _, err = DecodeDataURI("aGVsbG8=")
	assert.Error(t, err)
	_, _, _, err = DecodeDataURI("data:image/png;base64,!!!")
	assert.Error(t, err)
}
