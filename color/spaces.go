package color

import (
	"encoding/json"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/geom"
	"github.com/lixenwraith/substrate/mutagen"
)

func unmarshalString(data []byte, s *string) error {
	return json.Unmarshal(data, s)
}

func colorfulFrom(c FloatColor) colorful.Color {
	return colorful.Color{R: c.R.Value(), G: c.G.Value(), B: c.B.Value()}
}

// --- HSVColor ---

// HSVColor stores hue as an Angle so hue arithmetic wraps naturally.
type HSVColor struct {
	H bounded.Angle   `json:"h"`
	S bounded.UNFloat `json:"s"`
	V bounded.UNFloat `json:"v"`
	A bounded.UNFloat `json:"a"`
}

var (
	HSVColorAllZero = HSVColor{H: bounded.AngleZero}
	HSVColorWhite   = HSVColor{H: bounded.AngleZero, V: bounded.UNFloatOne, A: bounded.UNFloatOne}
	HSVColorBlack   = HSVColor{H: bounded.AngleZero, A: bounded.UNFloatOne}
)

// HSVFromFloatColor converts through go-colorful, keeping alpha.
func HSVFromFloatColor(c FloatColor) HSVColor {
	h, s, v := colorfulFrom(c).Hsv()
	return HSVColor{
		H: bounded.NewAngle(h * math.Pi / 180.0),
		S: bounded.UNFloatClamped(s),
		V: bounded.UNFloatClamped(v),
		A: c.A,
	}
}

// ToFloatColor converts back to RGBA, clamping gamut escapes.
func (c HSVColor) ToFloatColor() FloatColor {
	deg := c.H.Value() * 180.0 / math.Pi
	if deg < 0.0 {
		deg += 360.0
	}
	rgb := colorful.Hsv(deg, c.S.Value(), c.V.Value()).Clamped()
	return FloatColor{
		R: bounded.UNFloatClamped(rgb.R),
		G: bounded.UNFloatClamped(rgb.G),
		B: bounded.UNFloatClamped(rgb.B),
		A: c.A,
	}
}

func (c HSVColor) Lerp(other HSVColor, scalar bounded.UNFloat) HSVColor {
	return HSVColor{
		H: c.H.Lerp(other.H, scalar),
		S: c.S.Lerp(other.S, scalar),
		V: c.V.Lerp(other.V, scalar),
		A: c.A.Lerp(other.A, scalar),
	}
}

// OffsetHue rotates the hue, leaving the other channels alone.
func (c HSVColor) OffsetHue(hue bounded.Angle) HSVColor {
	return HSVColor{H: c.H.Add(hue), S: c.S, V: c.V, A: c.A}
}

// RandomHSVColor samples each channel independently.
func RandomHSVColor(rng *rand.Rand) HSVColor {
	return HSVColor{
		H: bounded.RandomAngle(rng),
		S: bounded.RandomUNFloat(rng),
		V: bounded.RandomUNFloat(rng),
		A: bounded.RandomUNFloat(rng),
	}
}

// GenerateHSVColor is the framework generation entry point.
func GenerateHSVColor(rng *rand.Rand, ctx *mutagen.Context) HSVColor {
	ctx.Report("HSVColor", mutagen.EventGenerate)
	return RandomHSVColor(rng)
}

// Mutate perturbs a single random channel or resamples the whole color.
func (c *HSVColor) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("HSVColor", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*c = RandomHSVColor(rng)
		return
	}
	switch rng.IntN(4) {
	case 0:
		c.H.Mutate(rng, ctx)
	case 1:
		c.S.Mutate(rng, ctx)
	case 2:
		c.V.Mutate(rng, ctx)
	default:
		c.A.Mutate(rng, ctx)
	}
}

// --- CMYKColor ---

// CMYKColor is the subtractive representation, alpha carried alongside.
type CMYKColor struct {
	C bounded.UNFloat `json:"c"`
	M bounded.UNFloat `json:"m"`
	Y bounded.UNFloat `json:"y"`
	K bounded.UNFloat `json:"k"`
	A bounded.UNFloat `json:"a"`
}

var (
	CMYKColorAllZero = CMYKColor{}
	CMYKColorWhite   = CMYKColor{A: bounded.UNFloatOne}
	CMYKColorBlack   = CMYKColor{K: bounded.UNFloatOne, A: bounded.UNFloatOne}
)

// CMYKFromFloatColor derives ink coverage from the brightest channel.
// Pure black has no defined chroma, so it maps to full key with zeroed inks.
func CMYKFromFloatColor(c FloatColor) CMYKColor {
	r := c.R.Value()
	g := c.G.Value()
	b := c.B.Value()

	m := math.Max(r, math.Max(g, b))
	if m <= 0.0 {
		out := CMYKColorBlack
		out.A = c.A
		return out
	}
	return CMYKColor{
		C: bounded.NewUNFloat((m - r) / m),
		M: bounded.NewUNFloat((m - g) / m),
		Y: bounded.NewUNFloat((m - b) / m),
		K: bounded.NewUNFloat(1.0 - m),
		A: c.A,
	}
}

// ToFloatColor undoes the ink decomposition.
func (c CMYKColor) ToFloatColor() FloatColor {
	k := c.K.Value()
	return FloatColor{
		R: bounded.NewUNFloat((1.0 - c.C.Value()) * (1.0 - k)),
		G: bounded.NewUNFloat((1.0 - c.M.Value()) * (1.0 - k)),
		B: bounded.NewUNFloat((1.0 - c.Y.Value()) * (1.0 - k)),
		A: c.A,
	}
}

func (c CMYKColor) Lerp(other CMYKColor, scalar bounded.UNFloat) CMYKColor {
	return CMYKColor{
		C: c.C.Lerp(other.C, scalar),
		M: c.M.Lerp(other.M, scalar),
		Y: c.Y.Lerp(other.Y, scalar),
		K: c.K.Lerp(other.K, scalar),
		A: c.A.Lerp(other.A, scalar),
	}
}

// RandomCMYKColor samples each channel independently.
func RandomCMYKColor(rng *rand.Rand) CMYKColor {
	return CMYKColor{
		C: bounded.RandomUNFloat(rng),
		M: bounded.RandomUNFloat(rng),
		Y: bounded.RandomUNFloat(rng),
		K: bounded.RandomUNFloat(rng),
		A: bounded.RandomUNFloat(rng),
	}
}

// GenerateCMYKColor is the framework generation entry point.
func GenerateCMYKColor(rng *rand.Rand, ctx *mutagen.Context) CMYKColor {
	ctx.Report("CMYKColor", mutagen.EventGenerate)
	return RandomCMYKColor(rng)
}

// Mutate perturbs a single random channel or resamples the whole color.
func (c *CMYKColor) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("CMYKColor", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*c = RandomCMYKColor(rng)
		return
	}
	switch rng.IntN(5) {
	case 0:
		c.C.Mutate(rng, ctx)
	case 1:
		c.M.Mutate(rng, ctx)
	case 2:
		c.Y.Mutate(rng, ctx)
	case 3:
		c.K.Mutate(rng, ctx)
	default:
		c.A.Mutate(rng, ctx)
	}
}

// --- LABColor ---

// LABColor is the perceptual representation. The a/b chroma pair is packed
// into an SNComplex so chroma evolves as a single planar value.
type LABColor struct {
	L     bounded.SNFloat `json:"l"`
	AB    geom.SNComplex  `json:"ab"`
	Alpha bounded.UNFloat `json:"alpha"`
}

var (
	LABColorAllZero = LABColor{}
	LABColorWhite   = LABColor{L: bounded.SNFloatOne, Alpha: bounded.UNFloatOne}
	LABColorBlack   = LABColor{Alpha: bounded.UNFloatOne}
)

// LABFromFloatColor converts through go-colorful, whose L component is
// already on [0, 1]. Chroma components are clamped into the signed unit
// range; saturated sRGB corners stay comfortably inside it.
func LABFromFloatColor(c FloatColor) LABColor {
	l, a, b := colorfulFrom(c).Lab()
	return LABColor{
		L:     bounded.SNFloatClamped(l),
		AB:    geom.SNComplexFromValues(clampSigned(a), clampSigned(b)),
		Alpha: c.A,
	}
}

// ToFloatColor converts back to RGBA, clamping gamut escapes.
func (c LABColor) ToFloatColor() FloatColor {
	rgb := colorful.Lab(c.L.Value(), c.AB.Re().Value(), c.AB.Im().Value()).Clamped()
	return FloatColor{
		R: bounded.UNFloatClamped(rgb.R),
		G: bounded.UNFloatClamped(rgb.G),
		B: bounded.UNFloatClamped(rgb.B),
		A: c.Alpha,
	}
}

func (c LABColor) Lerp(other LABColor, scalar bounded.UNFloat) LABColor {
	return LABColor{
		L:     c.L.Lerp(other.L, scalar),
		AB:    c.AB.Lerp(other.AB, scalar),
		Alpha: c.Alpha.Lerp(other.Alpha, scalar),
	}
}

// RandomLABColor samples each component independently.
func RandomLABColor(rng *rand.Rand) LABColor {
	return LABColor{
		L:     bounded.RandomSNFloat(rng),
		AB:    geom.RandomSNComplex(rng),
		Alpha: bounded.RandomUNFloat(rng),
	}
}

// GenerateLABColor is the framework generation entry point.
func GenerateLABColor(rng *rand.Rand, ctx *mutagen.Context) LABColor {
	ctx.Report("LABColor", mutagen.EventGenerate)
	return RandomLABColor(rng)
}

// Mutate perturbs a single random component or resamples the whole color.
func (c *LABColor) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("LABColor", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*c = RandomLABColor(rng)
		return
	}
	switch rng.IntN(3) {
	case 0:
		c.L.Mutate(rng, ctx)
	case 1:
		c.AB.Mutate(rng, ctx)
	default:
		c.Alpha.Mutate(rng, ctx)
	}
}

func clampSigned(v float64) float64 {
	return math.Max(-1.0, math.Min(1.0, v))
}

// GetHue extracts the HSV hue as a turn fraction on [0, 1].
func (c FloatColor) GetHue() bounded.UNFloat {
	h, _, _ := colorfulFrom(c).Hsv()
	return bounded.UNFloatClamped(h / 360.0)
}

// GetSaturation extracts the HSV saturation.
func (c FloatColor) GetSaturation() bounded.UNFloat {
	_, s, _ := colorfulFrom(c).Hsv()
	return bounded.UNFloatClamped(s)
}

// GetValue extracts the HSV value.
func (c FloatColor) GetValue() bounded.UNFloat {
	_, _, v := colorfulFrom(c).Hsv()
	return bounded.UNFloatClamped(v)
}
