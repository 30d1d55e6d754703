// Package color provides the RGBA color representations used by generated
// imagery, at bit, nibble, byte and float precision, plus the HSV, CMYK and
// LAB spaces and blend modes built on top of them. Conversions to and from
// the perceptual spaces go through go-colorful.
package color

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/mutagen"
)

// --- BitColor ---

// BitColor is a 1-bit-per-channel color: the eight corners of the RGB cube.
type BitColor uint8

const (
	BitBlack BitColor = iota
	BitRed
	BitGreen
	BitBlue
	BitCyan
	BitMagenta
	BitYellow
	BitWhite
)

var bitColorNames = map[BitColor]string{
	BitBlack:   "black",
	BitRed:     "red",
	BitGreen:   "green",
	BitBlue:    "blue",
	BitCyan:    "cyan",
	BitMagenta: "magenta",
	BitYellow:  "yellow",
	BitWhite:   "white",
}

// BitColorValues lists every BitColor in declaration order.
func BitColorValues() [8]BitColor {
	return [8]BitColor{
		BitBlack, BitRed, BitGreen, BitBlue,
		BitCyan, BitMagenta, BitYellow, BitWhite,
	}
}

// ToComponents splits the color into r/g/b channel bits.
func (c BitColor) ToComponents() [3]bool {
	switch c {
	case BitBlack:
		return [3]bool{false, false, false}
	case BitRed:
		return [3]bool{true, false, false}
	case BitGreen:
		return [3]bool{false, true, false}
	case BitBlue:
		return [3]bool{false, false, true}
	case BitCyan:
		return [3]bool{false, true, true}
	case BitMagenta:
		return [3]bool{true, false, true}
	case BitYellow:
		return [3]bool{true, true, false}
	case BitWhite:
		return [3]bool{true, true, true}
	}
	panic(fmt.Sprintf("unknown BitColor %d", uint8(c)))
}

// BitColorFromComponents is the inverse of ToComponents.
func BitColorFromComponents(components [3]bool) BitColor {
	switch components {
	case [3]bool{false, false, false}:
		return BitBlack
	case [3]bool{true, false, false}:
		return BitRed
	case [3]bool{false, true, false}:
		return BitGreen
	case [3]bool{false, false, true}:
		return BitBlue
	case [3]bool{false, true, true}:
		return BitCyan
	case [3]bool{true, false, true}:
		return BitMagenta
	case [3]bool{true, true, false}:
		return BitYellow
	default:
		return BitWhite
	}
}

// HasColor reports whether the two colors share any lit channel.
func (c BitColor) HasColor(other BitColor) bool {
	cc := c.ToComponents()
	oc := other.ToComponents()
	for i := 0; i < 3; i++ {
		if cc[i] && oc[i] {
			return true
		}
	}
	return false
}

// GiveColor unions the channel bits of both colors.
func (c BitColor) GiveColor(other BitColor) BitColor {
	cc := c.ToComponents()
	oc := other.ToComponents()
	var out [3]bool
	for i := 0; i < 3; i++ {
		out[i] = cc[i] || oc[i]
	}
	return BitColorFromComponents(out)
}

// TakeColor keeps the channels lit in c that other doesn't light.
func (c BitColor) TakeColor(other BitColor) BitColor {
	cc := c.ToComponents()
	oc := other.ToComponents()
	var out [3]bool
	for i := 0; i < 3; i++ {
		out[i] = cc[i] && !oc[i]
	}
	return BitColorFromComponents(out)
}

// XorColor lights the channels lit in exactly one of the two colors.
func (c BitColor) XorColor(other BitColor) BitColor {
	cc := c.ToComponents()
	oc := other.ToComponents()
	var out [3]bool
	for i := 0; i < 3; i++ {
		out[i] = cc[i] != oc[i]
	}
	return BitColorFromComponents(out)
}

// EqColor lights the channels on which the two colors agree.
func (c BitColor) EqColor(other BitColor) BitColor {
	cc := c.ToComponents()
	oc := other.ToComponents()
	var out [3]bool
	for i := 0; i < 3; i++ {
		out[i] = cc[i] == oc[i]
	}
	return BitColorFromComponents(out)
}

// ToByteColor expands the channel bits to full-intensity bytes, opaque.
func (c BitColor) ToByteColor() ByteColor {
	comp := c.ToComponents()
	channel := func(on bool) bounded.Byte {
		if on {
			return bounded.ByteMax
		}
		return bounded.ByteZero
	}
	return ByteColor{
		R: channel(comp[0]),
		G: channel(comp[1]),
		B: channel(comp[2]),
		A: bounded.ByteMax,
	}
}

// ToFloatColor expands the channel bits to unit floats, opaque.
func (c BitColor) ToFloatColor() FloatColor {
	comp := c.ToComponents()
	channel := func(on bool) bounded.UNFloat {
		if on {
			return bounded.UNFloatOne
		}
		return bounded.UNFloatZero
	}
	return FloatColor{
		R: channel(comp[0]),
		G: channel(comp[1]),
		B: channel(comp[2]),
		A: bounded.UNFloatOne,
	}
}

// RandomBitColor samples each channel bit independently.
func RandomBitColor(rng *rand.Rand) BitColor {
	return BitColorFromComponents([3]bool{
		rng.IntN(2) == 0,
		rng.IntN(2) == 0,
		rng.IntN(2) == 0,
	})
}

// GenerateBitColor is the framework generation entry point.
func GenerateBitColor(rng *rand.Rand, ctx *mutagen.Context) BitColor {
	ctx.Report("BitColor", mutagen.EventGenerate)
	return RandomBitColor(rng)
}

// Mutate re-rolls each channel bit behind an independent coin flip.
func (c *BitColor) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("BitColor", mutagen.EventMutate)
	comp := c.ToComponents()
	for i := range comp {
		if rng.IntN(2) == 0 {
			comp[i] = rng.IntN(2) == 0
		}
	}
	*c = BitColorFromComponents(comp)
}

func (c BitColor) String() string {
	if s, ok := bitColorNames[c]; ok {
		return s
	}
	return fmt.Sprintf("BitColor(%d)", uint8(c))
}

func (c BitColor) MarshalJSON() ([]byte, error) {
	s, ok := bitColorNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown BitColor %d", uint8(c))
	}
	return []byte(`"` + s + `"`), nil
}

func (c *BitColor) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalString(data, &s); err != nil {
		return fmt.Errorf("decoding BitColor: %w", err)
	}
	for k, v := range bitColorNames {
		if v == s {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown BitColor %q", s)
}

// --- NibbleColor ---

// NibbleColor is a 4-bit-per-channel RGBA color.
type NibbleColor struct {
	R bounded.Nibble `json:"r"`
	G bounded.Nibble `json:"g"`
	B bounded.Nibble `json:"b"`
	A bounded.Nibble `json:"a"`
}

// RandomNibbleColor samples each channel independently.
func RandomNibbleColor(rng *rand.Rand) NibbleColor {
	return NibbleColor{
		R: bounded.RandomNibble(rng),
		G: bounded.RandomNibble(rng),
		B: bounded.RandomNibble(rng),
		A: bounded.RandomNibble(rng),
	}
}

// GenerateNibbleColor is the framework generation entry point.
func GenerateNibbleColor(rng *rand.Rand, ctx *mutagen.Context) NibbleColor {
	ctx.Report("NibbleColor", mutagen.EventGenerate)
	return RandomNibbleColor(rng)
}

// Mutate perturbs a single random channel or resamples the whole color.
func (c *NibbleColor) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("NibbleColor", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*c = RandomNibbleColor(rng)
		return
	}
	switch rng.IntN(4) {
	case 0:
		c.R.Mutate(rng, ctx)
	case 1:
		c.G.Mutate(rng, ctx)
	case 2:
		c.B.Mutate(rng, ctx)
	default:
		c.A.Mutate(rng, ctx)
	}
}

// --- ByteColor ---

// ByteColor is an 8-bit-per-channel RGBA color.
type ByteColor struct {
	R bounded.Byte `json:"r"`
	G bounded.Byte `json:"g"`
	B bounded.Byte `json:"b"`
	A bounded.Byte `json:"a"`
}

// AddBitColor nudges each channel one step towards or away from the bit
// color's lit channels, wrapping at the range ends. Alpha is untouched.
func (c ByteColor) AddBitColor(other BitColor) ByteColor {
	comp := other.ToComponents()
	step := func(b bounded.Byte, on bool) bounded.Byte {
		if on {
			return b.CircularAddInt(1)
		}
		return b.CircularAddInt(-1)
	}
	return ByteColor{
		R: step(c.R, comp[0]),
		G: step(c.G, comp[1]),
		B: step(c.B, comp[2]),
		A: c.A,
	}
}

// ToFloatColor rescales each channel onto [0, 1].
func (c ByteColor) ToFloatColor() FloatColor {
	return FloatColor{
		R: c.R.ToUNFloat(),
		G: c.G.ToUNFloat(),
		B: c.B.ToUNFloat(),
		A: c.A.ToUNFloat(),
	}
}

// ToBitColor thresholds each channel at the midpoint.
func (c ByteColor) ToBitColor() BitColor {
	return BitColorFromComponents([3]bool{
		c.R.Value() > 127,
		c.G.Value() > 127,
		c.B.Value() > 127,
	})
}

// RandomByteColor samples each channel independently.
func RandomByteColor(rng *rand.Rand) ByteColor {
	return ByteColor{
		R: bounded.RandomByte(rng),
		G: bounded.RandomByte(rng),
		B: bounded.RandomByte(rng),
		A: bounded.RandomByte(rng),
	}
}

// GenerateByteColor is the framework generation entry point.
func GenerateByteColor(rng *rand.Rand, ctx *mutagen.Context) ByteColor {
	ctx.Report("ByteColor", mutagen.EventGenerate)
	return RandomByteColor(rng)
}

// Mutate perturbs a single random channel or resamples the whole color.
func (c *ByteColor) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("ByteColor", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*c = RandomByteColor(rng)
		return
	}
	switch rng.IntN(4) {
	case 0:
		c.R.Mutate(rng, ctx)
	case 1:
		c.G.Mutate(rng, ctx)
	case 2:
		c.B.Mutate(rng, ctx)
	default:
		c.A.Mutate(rng, ctx)
	}
}

// --- FloatColor ---

// FloatColor is the working RGBA representation: four unit floats. All
// blending and space conversions route through it.
type FloatColor struct {
	R bounded.UNFloat `json:"r"`
	G bounded.UNFloat `json:"g"`
	B bounded.UNFloat `json:"b"`
	A bounded.UNFloat `json:"a"`
}

var (
	FloatColorAllZero = FloatColor{}
	FloatColorBlack   = FloatColor{A: bounded.UNFloatOne}
	FloatColorWhite   = FloatColor{
		R: bounded.UNFloatOne,
		G: bounded.UNFloatOne,
		B: bounded.UNFloatOne,
		A: bounded.UNFloatOne,
	}
)

// GetAverage is the mean of the three color channels, ignoring alpha.
func (c FloatColor) GetAverage() float64 {
	return (c.R.Value() + c.G.Value() + c.B.Value()) / 3.0
}

func (c FloatColor) Lerp(other FloatColor, scalar bounded.UNFloat) FloatColor {
	return FloatColor{
		R: c.R.Lerp(other.R, scalar),
		G: c.G.Lerp(other.G, scalar),
		B: c.B.Lerp(other.B, scalar),
		A: c.A.Lerp(other.A, scalar),
	}
}

// ToByteColor quantises each channel to 8 bits.
func (c FloatColor) ToByteColor() ByteColor {
	return ByteColor{
		R: bounded.ByteFromUNFloat(c.R),
		G: bounded.ByteFromUNFloat(c.G),
		B: bounded.ByteFromUNFloat(c.B),
		A: bounded.ByteFromUNFloat(c.A),
	}
}

// ToNibbleColor quantises each channel to 4 bits.
func (c FloatColor) ToNibbleColor() NibbleColor {
	return NibbleColor{
		R: bounded.NibbleFromUNFloat(c.R),
		G: bounded.NibbleFromUNFloat(c.G),
		B: bounded.NibbleFromUNFloat(c.B),
		A: bounded.NibbleFromUNFloat(c.A),
	}
}

// ToBitColor thresholds each channel at the midpoint.
func (c FloatColor) ToBitColor() BitColor {
	return BitColorFromComponents([3]bool{
		c.R.Value() >= 0.5,
		c.G.Value() >= 0.5,
		c.B.Value() >= 0.5,
	})
}

// RandomFloatColor samples each channel independently.
func RandomFloatColor(rng *rand.Rand) FloatColor {
	return FloatColor{
		R: bounded.RandomUNFloat(rng),
		G: bounded.RandomUNFloat(rng),
		B: bounded.RandomUNFloat(rng),
		A: bounded.RandomUNFloat(rng),
	}
}

// GenerateFloatColor is the framework generation entry point.
func GenerateFloatColor(rng *rand.Rand, ctx *mutagen.Context) FloatColor {
	ctx.Report("FloatColor", mutagen.EventGenerate)
	return RandomFloatColor(rng)
}

// Mutate perturbs a single random channel or resamples the whole color.
func (c *FloatColor) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("FloatColor", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*c = RandomFloatColor(rng)
		return
	}
	switch rng.IntN(4) {
	case 0:
		c.R.Mutate(rng, ctx)
	case 1:
		c.G.Mutate(rng, ctx)
	case 2:
		c.B.Mutate(rng, ctx)
	default:
		c.A.Mutate(rng, ctx)
	}
}
