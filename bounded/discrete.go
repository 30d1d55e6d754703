package bounded

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/mutagen"
)

// --- Boolean ---

// Boolean wraps a bool so it participates in generation and mutation like
// the numeric types.
type Boolean struct {
	value bool
}

func NewBoolean(v bool) Boolean {
	return Boolean{v}
}

// RandomBoolean flips a fair coin.
func RandomBoolean(rng *rand.Rand) Boolean {
	return Boolean{rng.IntN(2) == 0}
}

// GenerateBoolean is the framework generation entry point.
func GenerateBoolean(rng *rand.Rand, ctx *mutagen.Context) Boolean {
	ctx.Report("Boolean", mutagen.EventGenerate)
	return RandomBoolean(rng)
}

func (b Boolean) Value() bool { return b.value }

func (b Boolean) Toggle() Boolean {
	return Boolean{!b.value}
}

// Mutate resamples or toggles, by coin flip.
func (b *Boolean) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("Boolean", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*b = RandomBoolean(rng)
	} else {
		*b = b.Toggle()
	}
}

func (b Boolean) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.value)
}

func (b *Boolean) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.value)
}

// --- Nibble ---

// Nibble is an unsigned integer confined to [0, 15].
type Nibble struct {
	value uint8
}

var (
	NibbleZero = Nibble{0}
	NibbleMax  = Nibble{15}
)

// NewNibble asserts the [0,15] invariant.
func NewNibble(v uint8) Nibble {
	if v > 15 {
		panic(fmt.Sprintf("invalid Nibble value: %d", v))
	}
	return Nibble{v}
}

// NibbleCircular repairs v by reduction modulo 16.
func NibbleCircular(v uint8) Nibble {
	return Nibble{v % 16}
}

// NibbleFromUNFloat quantises u onto [0, 15].
func NibbleFromUNFloat(u UNFloat) Nibble {
	return Nibble{uint8(math.Round(u.Value() * 15.0))}
}

// RandomNibble samples uniformly from [0, 15].
func RandomNibble(rng *rand.Rand) Nibble {
	return Nibble{uint8(rng.IntN(16))}
}

// GenerateNibble is the framework generation entry point.
func GenerateNibble(rng *rand.Rand, ctx *mutagen.Context) Nibble {
	ctx.Report("Nibble", mutagen.EventGenerate)
	return RandomNibble(rng)
}

func (n Nibble) Value() uint8 { return n.value }

func (n Nibble) CircularAdd(other Nibble) Nibble {
	return Nibble{(n.value + other.value) % 16}
}

// CircularAddInt adds an arbitrary signed offset with euclidean wrap, so
// negative offsets rotate backwards.
func (n Nibble) CircularAddInt(offset int) Nibble {
	v := (int(n.value) + offset) % 16
	if v < 0 {
		v += 16
	}
	return Nibble{uint8(v)}
}

func (n Nibble) CircularMultiply(other Nibble) Nibble {
	return Nibble{(n.value * other.value) % 16}
}

// Divide returns the divisor unchanged when it is zero rather than
// faulting; generated arithmetic trees hit zero divisors routinely.
func (n Nibble) Divide(other Nibble) Nibble {
	if other.value == 0 {
		return other
	}
	return Nibble{n.value / other.value}
}

// Modulus follows the same zero-divisor rule as Divide.
func (n Nibble) Modulus(other Nibble) Nibble {
	if other.value == 0 {
		return other
	}
	return Nibble{n.value % other.value}
}

func (n Nibble) ToUNFloat() UNFloat {
	return NewUNFloat(float64(n.value) / 15.0)
}

// Mutate steps up, steps down or resamples, with equal probability.
func (n *Nibble) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("Nibble", mutagen.EventMutate)
	switch rng.IntN(3) {
	case 0:
		*n = n.CircularAddInt(1)
	case 1:
		*n = n.CircularAddInt(-1)
	default:
		*n = RandomNibble(rng)
	}
}

func (n Nibble) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

func (n *Nibble) UnmarshalJSON(data []byte) error {
	var v uint8
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding Nibble: %w", err)
	}
	if v > 15 {
		return fmt.Errorf("Nibble %d: %w", v, ErrOutOfRange)
	}
	n.value = v
	return nil
}

// --- Byte ---

// Byte is an 8-bit unsigned integer with wrapping arithmetic.
type Byte struct {
	value uint8
}

var (
	ByteZero = Byte{0}
	ByteMax  = Byte{255}
)

func NewByte(v uint8) Byte {
	return Byte{v}
}

// ByteFromUNFloat quantises u onto [0, 255].
func ByteFromUNFloat(u UNFloat) Byte {
	return Byte{uint8(math.Round(u.Value() * 255.0))}
}

// RandomByte samples uniformly from [0, 255].
func RandomByte(rng *rand.Rand) Byte {
	return Byte{uint8(rng.IntN(256))}
}

// GenerateByte is the framework generation entry point.
func GenerateByte(rng *rand.Rand, ctx *mutagen.Context) Byte {
	ctx.Report("Byte", mutagen.EventGenerate)
	return RandomByte(rng)
}

func (b Byte) Value() uint8 { return b.value }

func (b Byte) CircularAdd(other Byte) Byte {
	return Byte{b.value + other.value}
}

// CircularAddInt adds an arbitrary signed offset with euclidean wrap.
func (b Byte) CircularAddInt(offset int) Byte {
	v := (int(b.value) + offset) % 256
	if v < 0 {
		v += 256
	}
	return Byte{uint8(v)}
}

// ClampedAddInt adds an arbitrary signed offset, saturating at the range
// ends instead of wrapping.
func (b Byte) ClampedAddInt(offset int) Byte {
	v := int(b.value) + offset
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return Byte{uint8(v)}
}

func (b Byte) CircularMultiply(other Byte) Byte {
	return Byte{b.value * other.value}
}

// Divide returns the divisor unchanged when it is zero.
func (b Byte) Divide(other Byte) Byte {
	if other.value == 0 {
		return other
	}
	return Byte{b.value / other.value}
}

// Modulus follows the same zero-divisor rule as Divide.
func (b Byte) Modulus(other Byte) Byte {
	if other.value == 0 {
		return other
	}
	return Byte{b.value % other.value}
}

// InvertWrapped reflects the value across the middle of the range.
func (b Byte) InvertWrapped() Byte {
	return Byte{255 - b.value}
}

func (b Byte) ToUNFloat() UNFloat {
	return NewUNFloat(float64(b.value) / 255.0)
}

// Mutate steps by one in either direction, wrapping or saturating, or
// resamples, with equal probability.
func (b *Byte) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("Byte", mutagen.EventMutate)
	switch rng.IntN(5) {
	case 0:
		*b = b.CircularAddInt(1)
	case 1:
		*b = b.CircularAddInt(-1)
	case 2:
		*b = b.ClampedAddInt(1)
	case 3:
		*b = b.ClampedAddInt(-1)
	default:
		*b = RandomByte(rng)
	}
}

func (b Byte) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.value)
}

func (b *Byte) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &b.value); err != nil {
		return fmt.Errorf("decoding Byte: %w", err)
	}
	return nil
}

// --- UInt ---

// UInt is a 32-bit unsigned integer with wrapping arithmetic.
type UInt struct {
	value uint32
}

func NewUInt(v uint32) UInt {
	return UInt{v}
}

// RandomUInt samples the full 32-bit range.
func RandomUInt(rng *rand.Rand) UInt {
	return UInt{rng.Uint32()}
}

// GenerateUInt is the framework generation entry point.
func GenerateUInt(rng *rand.Rand, ctx *mutagen.Context) UInt {
	ctx.Report("UInt", mutagen.EventGenerate)
	return RandomUInt(rng)
}

func (u UInt) Value() uint32 { return u.value }

func (u UInt) CircularAdd(other UInt) UInt {
	return UInt{u.value + other.value}
}

func (u UInt) CircularMultiply(other UInt) UInt {
	return UInt{u.value * other.value}
}

// Divide returns the divisor unchanged when it is zero.
func (u UInt) Divide(other UInt) UInt {
	if other.value == 0 {
		return other
	}
	return UInt{u.value / other.value}
}

// Modulus follows the same zero-divisor rule as Divide.
func (u UInt) Modulus(other UInt) UInt {
	if other.value == 0 {
		return other
	}
	return UInt{u.value % other.value}
}

// Mutate resamples the value.
func (u *UInt) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("UInt", mutagen.EventMutate)
	*u = RandomUInt(rng)
}

func (u UInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.value)
}

func (u *UInt) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &u.value); err != nil {
		return fmt.Errorf("decoding UInt: %w", err)
	}
	return nil
}

// --- SInt ---

// SInt is a 32-bit signed integer with wrapping arithmetic.
type SInt struct {
	value int32
}

func NewSInt(v int32) SInt {
	return SInt{v}
}

// RandomSInt samples the full 32-bit range.
func RandomSInt(rng *rand.Rand) SInt {
	return SInt{int32(rng.Uint32())}
}

// GenerateSInt is the framework generation entry point.
func GenerateSInt(rng *rand.Rand, ctx *mutagen.Context) SInt {
	ctx.Report("SInt", mutagen.EventGenerate)
	return RandomSInt(rng)
}

func (s SInt) Value() int32 { return s.value }

func (s SInt) CircularAdd(other SInt) SInt {
	return SInt{s.value + other.value}
}

func (s SInt) CircularMultiply(other SInt) SInt {
	return SInt{s.value * other.value}
}

// Divide returns the divisor unchanged when it is zero.
func (s SInt) Divide(other SInt) SInt {
	if other.value == 0 {
		return other
	}
	return SInt{s.value / other.value}
}

// Modulus follows the same zero-divisor rule as Divide.
func (s SInt) Modulus(other SInt) SInt {
	if other.value == 0 {
		return other
	}
	return SInt{s.value % other.value}
}

// Mutate resamples the value.
func (s *SInt) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("SInt", mutagen.EventMutate)
	*s = RandomSInt(rng)
}

func (s SInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *SInt) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &s.value); err != nil {
		return fmt.Errorf("decoding SInt: %w", err)
	}
	return nil
}
