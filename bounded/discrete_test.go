package bounded

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNibbleConstruction(t *testing.T) {
	require.Panics(t, func() { NewNibble(16) })
	assert.Equal(t, uint8(4), NibbleCircular(20).Value())
	assert.Equal(t, uint8(15), NibbleCircular(15).Value())
}

func TestNibbleCircularArithmetic(t *testing.T) {
	assert.Equal(t, uint8(1), NewNibble(14).CircularAdd(NewNibble(3)).Value())
	assert.Equal(t, uint8(15), NibbleZero.CircularAddInt(-1).Value())
	assert.Equal(t, uint8(0), NibbleMax.CircularAddInt(1).Value())
	assert.Equal(t, uint8(3), NewNibble(5).CircularAddInt(-34).Value())
	assert.Equal(t, uint8(2), NewNibble(6).CircularMultiply(NewNibble(3)).Value())
}

func TestNibbleZeroDivisor(t *testing.T) {
	assert.Equal(t, uint8(0), NewNibble(7).Divide(NibbleZero).Value())
	assert.Equal(t, uint8(0), NewNibble(7).Modulus(NibbleZero).Value())
	assert.Equal(t, uint8(3), NewNibble(7).Divide(NewNibble(2)).Value())
	assert.Equal(t, uint8(1), NewNibble(7).Modulus(NewNibble(2)).Value())
}

func TestByteWrapping(t *testing.T) {
	assert.Equal(t, uint8(4), NewByte(250).CircularAdd(NewByte(10)).Value())
	assert.Equal(t, uint8(0), NewByte(255).CircularAddInt(1).Value())
	assert.Equal(t, uint8(255), NewByte(0).CircularAddInt(-1).Value())
	assert.Equal(t, uint8(255), NewByte(250).ClampedAddInt(100).Value())
	assert.Equal(t, uint8(0), NewByte(5).ClampedAddInt(-100).Value())
	assert.Equal(t, uint8(0), NewByte(16).CircularMultiply(NewByte(16)).Value())
}

func TestByteInvertWrapped(t *testing.T) {
	assert.Equal(t, uint8(255), NewByte(0).InvertWrapped().Value())
	assert.Equal(t, uint8(0), NewByte(255).InvertWrapped().Value())
	assert.Equal(t, uint8(155), NewByte(100).InvertWrapped().Value())
}

func TestByteZeroDivisor(t *testing.T) {
	assert.Equal(t, uint8(0), NewByte(200).Divide(ByteZero).Value())
	assert.Equal(t, uint8(0), NewByte(200).Modulus(ByteZero).Value())
}

func TestByteUNFloatRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := NewByte(uint8(v))
		assert.Equal(t, b, ByteFromUNFloat(b.ToUNFloat()))
	}
}

func TestUIntWrapping(t *testing.T) {
	max := NewUInt(^uint32(0))
	assert.Equal(t, uint32(0), max.CircularAdd(NewUInt(1)).Value())
	assert.Equal(t, uint32(0), NewUInt(9).Divide(NewUInt(0)).Value())
	assert.Equal(t, uint32(3), NewUInt(9).Divide(NewUInt(3)).Value())
}

func TestSIntWrapping(t *testing.T) {
	max := NewSInt(1<<31 - 1)
	assert.Equal(t, int32(-1<<31), max.CircularAdd(NewSInt(1)).Value())
	assert.Equal(t, int32(0), NewSInt(9).Modulus(NewSInt(0)).Value())
	assert.Equal(t, int32(-3), NewSInt(-9).Divide(NewSInt(3)).Value())
}

func TestDiscreteMutateKeepsInvariant(t *testing.T) {
	rng := testRNG()
	n := NewNibble(8)
	for i := 0; i < 200; i++ {
		n.Mutate(rng, nil)
		require.LessOrEqual(t, n.Value(), uint8(15))
	}
}

func TestDiscreteJSON(t *testing.T) {
	n := NewNibble(11)
	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, "11", string(data))

	var back Nibble
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, n, back)

	var bad Nibble
	err = json.Unmarshal([]byte("17"), &bad)
	require.ErrorIs(t, err, ErrOutOfRange)

	b := NewByte(200)
	data, err = json.Marshal(b)
	require.NoError(t, err)
	var bback Byte
	require.NoError(t, json.Unmarshal(data, &bback))
	assert.Equal(t, b, bback)
}
