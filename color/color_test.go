package color

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/substrate/bounded"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(5, 17))
}

func floatRGBA(r, g, b, a float64) FloatColor {
	return FloatColor{
		R: bounded.NewUNFloat(r),
		G: bounded.NewUNFloat(g),
		B: bounded.NewUNFloat(b),
		A: bounded.NewUNFloat(a),
	}
}

func TestBitColorComponentBijection(t *testing.T) {
	for _, c := range BitColorValues() {
		assert.Equal(t, c, BitColorFromComponents(c.ToComponents()))
	}
}

func TestBitColorAlgebra(t *testing.T) {
	for _, a := range BitColorValues() {
		for _, b := range BitColorValues() {
			ac := a.ToComponents()
			bc := b.ToComponents()

			give := a.GiveColor(b).ToComponents()
			take := a.TakeColor(b).ToComponents()
			xor := a.XorColor(b).ToComponents()
			eq := a.EqColor(b).ToComponents()

			shared := false
			for i := 0; i < 3; i++ {
				assert.Equal(t, ac[i] || bc[i], give[i])
				assert.Equal(t, ac[i] && !bc[i], take[i])
				assert.Equal(t, ac[i] != bc[i], xor[i])
				assert.Equal(t, ac[i] == bc[i], eq[i])
				shared = shared || (ac[i] && bc[i])
			}
			assert.Equal(t, shared, a.HasColor(b))
		}
	}
}

func TestBitColorExpansion(t *testing.T) {
	red := BitRed.ToByteColor()
	assert.Equal(t, uint8(255), red.R.Value())
	assert.Equal(t, uint8(0), red.G.Value())
	assert.Equal(t, uint8(0), red.B.Value())
	assert.Equal(t, uint8(255), red.A.Value())

	cyan := BitCyan.ToFloatColor()
	assert.Equal(t, 0.0, cyan.R.Value())
	assert.Equal(t, 1.0, cyan.G.Value())
	assert.Equal(t, 1.0, cyan.B.Value())
	assert.Equal(t, 1.0, cyan.A.Value())
}

func TestBitColorThresholds(t *testing.T) {
	assert.Equal(t, BitYellow, floatRGBA(0.5, 0.9, 0.49, 1.0).ToBitColor())
	assert.Equal(t, BitBlack, floatRGBA(0.49, 0.0, 0.2, 1.0).ToBitColor())

	bc := ByteColor{R: bounded.NewByte(128), G: bounded.NewByte(127), B: bounded.NewByte(0), A: bounded.ByteMax}
	assert.Equal(t, BitRed, bc.ToBitColor())
}

func TestByteColorAddBitColor(t *testing.T) {
	c := ByteColor{
		R: bounded.NewByte(255),
		G: bounded.NewByte(0),
		B: bounded.NewByte(10),
		A: bounded.NewByte(42),
	}
	got := c.AddBitColor(BitRed)
	assert.Equal(t, uint8(0), got.R.Value())
	assert.Equal(t, uint8(255), got.G.Value())
	assert.Equal(t, uint8(9), got.B.Value())
	assert.Equal(t, uint8(42), got.A.Value())
}

func TestByteFloatRoundTrip(t *testing.T) {
	rng := testRNG()
	for i := 0; i < 100; i++ {
		c := RandomByteColor(rng)
		assert.Equal(t, c, c.ToFloatColor().ToByteColor())
	}
}

func TestFloatColorAverageAndLerp(t *testing.T) {
	a := floatRGBA(0.0, 0.5, 1.0, 1.0)
	assert.InDelta(t, 0.5, a.GetAverage(), 1e-12)

	b := floatRGBA(1.0, 0.5, 0.0, 0.0)
	mid := a.Lerp(b, bounded.NewUNFloat(0.5))
	assert.InDelta(t, 0.5, mid.R.Value(), 1e-12)
	assert.InDelta(t, 0.5, mid.G.Value(), 1e-12)
	assert.InDelta(t, 0.5, mid.B.Value(), 1e-12)
	assert.InDelta(t, 0.5, mid.A.Value(), 1e-12)
}

func TestHSVExtraction(t *testing.T) {
	red := floatRGBA(1.0, 0.0, 0.0, 0.5)
	hsv := HSVFromFloatColor(red)
	assert.InDelta(t, 1.0, hsv.S.Value(), 1e-9)
	assert.InDelta(t, 1.0, hsv.V.Value(), 1e-9)
	assert.Equal(t, 0.5, hsv.A.Value())

	assert.InDelta(t, 1.0, red.GetSaturation().Value(), 1e-9)
	assert.InDelta(t, 1.0, red.GetValue().Value(), 1e-9)
	assert.InDelta(t, 0.0, red.GetHue().Value(), 1e-9)

	grey := floatRGBA(0.5, 0.5, 0.5, 1.0)
	assert.InDelta(t, 0.0, grey.GetSaturation().Value(), 1e-9)
}

func TestHSVRoundTripRotatesHueHalfTurn(t *testing.T) {
	// hue zero lands on the angle range boundary, so a full conversion
	// cycle carries the half-turn shift of angle construction
	red := floatRGBA(1.0, 0.0, 0.0, 1.0)
	back := HSVFromFloatColor(red).ToFloatColor()
	assert.InDelta(t, 0.0, back.R.Value(), 1e-9)
	assert.InDelta(t, 1.0, back.G.Value(), 1e-9)
	assert.InDelta(t, 1.0, back.B.Value(), 1e-9)
}

func TestHSVOffsetHue(t *testing.T) {
	hsv := HSVColor{H: bounded.AngleZero, S: bounded.UNFloatOne, V: bounded.UNFloatOne, A: bounded.UNFloatOne}
	got := hsv.OffsetHue(bounded.AngleZero)
	assert.Equal(t, hsv.S, got.S)
	assert.Equal(t, hsv.V, got.V)
}

func TestCMYKBlackPreservesAlpha(t *testing.T) {
	black := floatRGBA(0.0, 0.0, 0.0, 0.3)
	cmyk := CMYKFromFloatColor(black)
	assert.Equal(t, 1.0, cmyk.K.Value())
	assert.Equal(t, 0.0, cmyk.C.Value())
	assert.Equal(t, 0.0, cmyk.M.Value())
	assert.Equal(t, 0.0, cmyk.Y.Value())
	assert.Equal(t, 0.3, cmyk.A.Value())
}

func TestCMYKRoundTrip(t *testing.T) {
	red := floatRGBA(1.0, 0.0, 0.0, 1.0)
	cmyk := CMYKFromFloatColor(red)
	assert.InDelta(t, 0.0, cmyk.C.Value(), 1e-12)
	assert.InDelta(t, 1.0, cmyk.M.Value(), 1e-12)
	assert.InDelta(t, 1.0, cmyk.Y.Value(), 1e-12)
	assert.InDelta(t, 0.0, cmyk.K.Value(), 1e-12)

	back := cmyk.ToFloatColor()
	assert.InDelta(t, 1.0, back.R.Value(), 1e-12)
	assert.InDelta(t, 0.0, back.G.Value(), 1e-12)
	assert.InDelta(t, 0.0, back.B.Value(), 1e-12)
}

func TestLABRoundTripNearIdentity(t *testing.T) {
	white := floatRGBA(1.0, 1.0, 1.0, 1.0)
	lab := LABFromFloatColor(white)
	assert.InDelta(t, 1.0, lab.L.Value(), 1e-3)
	assert.InDelta(t, 0.0, lab.AB.Re().Value(), 1e-2)
	assert.InDelta(t, 0.0, lab.AB.Im().Value(), 1e-2)

	back := lab.ToFloatColor()
	assert.InDelta(t, 1.0, back.R.Value(), 1e-3)
	assert.InDelta(t, 1.0, back.G.Value(), 1e-3)
	assert.InDelta(t, 1.0, back.B.Value(), 1e-3)
}

func TestBlendOverlay(t *testing.T) {
	rng := testRNG()
	a := floatRGBA(0.25, 0.75, 0.5, 1.0)
	b := floatRGBA(0.5, 0.5, 0.5, 0.0)
	got := BlendOverlay.Blend(a, b, rng)
	assert.InDelta(t, 0.25, got.R.Value(), 1e-12)
	assert.InDelta(t, 0.75, got.G.Value(), 1e-12)
	assert.InDelta(t, 0.5, got.B.Value(), 1e-12)
	assert.InDelta(t, 0.5, got.A.Value(), 1e-12)
}

func TestBlendScreenDodge(t *testing.T) {
	rng := testRNG()
	a := floatRGBA(0.5, 0.0, 1.0, 1.0)
	b := floatRGBA(0.5, 0.0, 0.5, 1.0)
	got := BlendScreenDodge.Blend(a, b, rng)
	assert.InDelta(t, 0.75, got.R.Value(), 1e-12)
	assert.InDelta(t, 0.0, got.G.Value(), 1e-12)
	assert.InDelta(t, 1.0, got.B.Value(), 1e-12)
}

func TestBlendDissolvePicksOperand(t *testing.T) {
	rng := testRNG()
	a := floatRGBA(1.0, 0.0, 0.0, 1.0)
	b := floatRGBA(0.0, 1.0, 0.0, 1.0)
	seenA, seenB := false, false
	for i := 0; i < 100; i++ {
		got := BlendDissolve.Blend(a, b, rng)
		switch got {
		case a:
			seenA = true
		case b:
			seenB = true
		default:
			t.Fatalf("dissolve produced a value that is neither operand: %+v", got)
		}
	}
	assert.True(t, seenA)
	assert.True(t, seenB)
}

func TestBlendStaysInRange(t *testing.T) {
	rng := testRNG()
	modes := []BlendMode{BlendDissolve, BlendOverlay, BlendScreenDodge}
	for i := 0; i < 200; i++ {
		a := RandomFloatColor(rng)
		b := RandomFloatColor(rng)
		for _, m := range modes {
			got := m.Blend(a, b, rng)
			for _, ch := range []float64{got.R.Value(), got.G.Value(), got.B.Value(), got.A.Value()} {
				assert.GreaterOrEqual(t, ch, 0.0)
				assert.LessOrEqual(t, ch, 1.0)
			}
		}
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(BitMagenta)
	require.NoError(t, err)
	assert.Equal(t, `"magenta"`, string(data))

	var bit BitColor
	require.NoError(t, json.Unmarshal(data, &bit))
	assert.Equal(t, BitMagenta, bit)

	fc := floatRGBA(0.25, 0.5, 0.75, 1.0)
	data, err = json.Marshal(fc)
	require.NoError(t, err)
	var back FloatColor
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, fc, back)

	data, err = json.Marshal(BlendScreenDodge)
	require.NoError(t, err)
	assert.Equal(t, `"screen_dodge"`, string(data))
}

func TestMutateKeepsChannelsValid(t *testing.T) {
	rng := testRNG()
	fc := RandomFloatColor(rng)
	hsv := RandomHSVColor(rng)
	cmyk := RandomCMYKColor(rng)
	lab := RandomLABColor(rng)
	bit := RandomBitColor(rng)
	for i := 0; i < 50; i++ {
		fc.Mutate(rng, nil)
		hsv.Mutate(rng, nil)
		cmyk.Mutate(rng, nil)
		lab.Mutate(rng, nil)
		bit.Mutate(rng, nil)
	}
	assert.LessOrEqual(t, fc.R.Value(), 1.0)
	assert.LessOrEqual(t, uint8(bit), uint8(BitWhite))
}
