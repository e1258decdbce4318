package queryparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const sampleHex = "65a1b2c3d4e5f60718293a4b"

func TestIsObjectIDHex(t *testing.T) {
	assert.True(t, IsObjectIDHex(sampleHex))
	assert.True(t, IsObjectIDHex("65A1B2C3D4E5F60718293A4B"))
	assert.False(t, IsObjectIDHex("65a1b2c3d4e5f60718293a4"))
	assert.False(t, IsObjectIDHex("65a1b2c3d4e5f60718293a4bc"))
	assert.False(t, IsObjectIDHex("zza1b2c3d4e5f60718293a4b"))
	assert.False(t, IsObjectIDHex(""))
}

func TestObjectIDCoercer_IsIdentifier(t *testing.T) {
	c := ObjectIDCoercer{}
	assert.True(t, c.IsIdentifier(sampleHex))
	assert.True(t, c.IsIdentifier(primitive.NewObjectID()))
	assert.False(t, c.IsIdentifier("active"))
	assert.False(t, c.IsIdentifier(int64(42)))
	assert.False(t, c.IsIdentifier(nil))
}

func TestObjectIDCoercer_Coerce(t *testing.T) {
	c := ObjectIDCoercer{}

	out, err := c.Coerce(sampleHex)
	require.NoError(t, err)
	want, _ := primitive.ObjectIDFromHex(sampleHex)
	assert.Equal(t, want, out)

	id := primitive.NewObjectID()
	out, err = c.Coerce(id)
	require.NoError(t, err)
	assert.Equal(t, id, out)

	_, err = c.Coerce("a")
	assert.True(t, errors.Is(err, ErrInvalidIdentifier))

	_, err = c.Coerce(3.5)
	assert.True(t, errors.Is(err, ErrInvalidIdentifier))
}
