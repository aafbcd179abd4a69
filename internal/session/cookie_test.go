package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_EncodeDecode(t *testing.T) {
	codec := NewCodec("secret")

	id, err := GenerateID()
	require.NoError(t, err)

	decoded, err := codec.Decode(codec.Encode(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestCodec_RejectsTamperedValue(t *testing.T) {
	codec := NewCodec("secret")
	value := codec.Encode("session-id")

	_, err := codec.Decode("other-id" + value[len("session-id"):])
	assert.ErrorIs(t, err, ErrBadCookie)
}

func TestCodec_RejectsWrongSecret(t *testing.T) {
	value := NewCodec("secret-a").Encode("session-id")

	_, err := NewCodec("secret-b").Decode(value)
	assert.ErrorIs(t, err, ErrBadCookie)
}

func TestCodec_RejectsMalformedValues(t *testing.T) {
	codec := NewCodec("secret")

	for _, value := range []string{"", "no-separator", ".only-sig", "id.!!!not-base64!!!"} {
		_, err := codec.Decode(value)
		assert.ErrorIs(t, err, ErrBadCookie, "value %q", value)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43) // 32 bytes, base64url without padding
}
