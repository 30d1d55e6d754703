// Package bounded implements range-constrained numeric primitives. Every
// constructor either asserts its invariant (trusted callers, panics on
// violation) or repairs the value through an explicit normalisation
// function (externally derived values). No value of these types exists
// that bypassed one of those two paths.
package bounded

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/mutagen"
)

// ErrOutOfRange is returned when externally supplied data fails a bound
// check during decoding.
var ErrOutOfRange = errors.New("value out of range")

// fract returns the fractional part of v with the sign of v, matching the
// truncation convention the wrap formulas are built on.
func fract(v float64) float64 {
	return v - math.Trunc(v)
}

// sawtooth maps v into [0,1) by discarding whole periods.
func sawtooth(v float64) float64 {
	f := fract(v)
	if math.Signbit(v) {
		f += 1.0
	}
	return f
}

// finiteOrZero coerces NaN and infinities to zero before normalisation.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// mapRange linearly remaps value from one interval onto another. The value
// must lie within the source interval; violations are caller bugs.
func mapRange(value, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMin >= fromMax || toMin >= toMax {
		panic(fmt.Sprintf("invalid range arguments to mapRange: [%v, %v] -> [%v, %v]", fromMin, fromMax, toMin, toMax))
	}
	if value < fromMin || value > fromMax {
		panic(fmt.Sprintf("mapRange value %v outside source range [%v, %v]", value, fromMin, fromMax))
	}
	return (value-fromMin)/(fromMax-fromMin)*(toMax-toMin) + toMin
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// --- UNFloat ---

// UNFloat is a float confined to [0, 1].
type UNFloat struct {
	value float64
}

var (
	UNFloatZero = UNFloat{0.0}
	UNFloatOne  = UNFloat{1.0}
)

// NewUNFloat asserts the [0,1] invariant. Use the normalising constructors
// for values that are not already known to be in range.
func NewUNFloat(v float64) UNFloat {
	if v < 0.0 || v > 1.0 {
		panic(fmt.Sprintf("invalid UNFloat value: %v", v))
	}
	return UNFloat{v}
}

// UNFloatClamped repairs v by clamping into [0,1].
func UNFloatClamped(v float64) UNFloat {
	return UNFloat{math.Max(0.0, math.Min(1.0, v))}
}

// UNFloatSawtooth repairs v by wrapping whole periods.
func UNFloatSawtooth(v float64) UNFloat {
	return NewUNFloat(sawtooth(v))
}

// UNFloatTriangle repairs v by reflecting alternate periods.
func UNFloatTriangle(v float64) UNFloat {
	scaled := (v - 1.0) / 2.0
	return NewUNFloat(math.Abs(sawtooth(scaled)-0.5) * 2.0)
}

// UNFloatSin folds v through a single sine half-period.
func UNFloatSin(v float64) UNFloat {
	return NewUNFloat(math.Sin((v-0.5)*math.Pi)/2.0 + 0.5)
}

// UNFloatSinRepeating folds v through a repeating sine.
func UNFloatSinRepeating(v float64) UNFloat {
	return NewUNFloat(math.Sin((v+0.5)*math.Pi*2.0)/2.0 + 0.5)
}

// UNFloatRandomClamped keeps in-range values and resamples anything else.
func UNFloatRandomClamped(rng *rand.Rand, v float64) UNFloat {
	if v < 0.0 || v > 1.0 {
		return RandomUNFloat(rng)
	}
	return UNFloat{v}
}

// UNFloatFromRange remaps v from [min, max] onto [0, 1].
func UNFloatFromRange(v, min, max float64) UNFloat {
	return UNFloat{mapRange(v, min, max, 0.0, 1.0)}
}

// RandomUNFloat samples uniformly from [0, 1).
func RandomUNFloat(rng *rand.Rand) UNFloat {
	return UNFloat{rng.Float64()}
}

// GenerateUNFloat is the framework generation entry point.
func GenerateUNFloat(rng *rand.Rand, ctx *mutagen.Context) UNFloat {
	ctx.Report("UNFloat", mutagen.EventGenerate)
	return RandomUNFloat(rng)
}

func (f UNFloat) Value() float64 { return f.value }

func (f UNFloat) Average(other UNFloat) UNFloat {
	return NewUNFloat((f.value + other.value) * 0.5)
}

func (f UNFloat) Multiply(other UNFloat) UNFloat {
	return NewUNFloat(f.value * other.value)
}

func (f UNFloat) Lerp(other UNFloat, scalar UNFloat) UNFloat {
	return NewUNFloat(lerp(f.value, other.value, scalar.value))
}

func (f UNFloat) SawtoothAdd(other UNFloat) UNFloat {
	return f.SawtoothAddFloat(other.value)
}

func (f UNFloat) SawtoothAddFloat(other float64) UNFloat {
	return UNFloatSawtooth(f.value + other)
}

func (f UNFloat) TriangleAdd(other UNFloat) UNFloat {
	return f.TriangleAddFloat(other.value)
}

func (f UNFloat) TriangleAddFloat(other float64) UNFloat {
	return UNFloatTriangle(f.value + other)
}

// SubdivideSawtooth scales f into divisor periods and wraps.
func (f UNFloat) SubdivideSawtooth(divisor Nibble) UNFloat {
	return UNFloatSawtooth(f.value * float64(divisor.Value()))
}

// SubdivideTriangle scales f into divisor periods and reflects.
func (f UNFloat) SubdivideTriangle(divisor Nibble) UNFloat {
	return UNFloatTriangle(f.value * float64(divisor.Value()))
}

func (f UNFloat) ToSigned() SNFloat {
	return SNFloat{mapRange(f.value, 0.0, 1.0, -1.0, 1.0)}
}

func (f UNFloat) ToAngle() Angle {
	return Angle{mapRange(f.value, 0.0, 1.0, -math.Pi, math.Pi)}
}

// Mutate resamples the value. UNFloat is a leaf; there is no smaller
// perturbation to make.
func (f *UNFloat) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("UNFloat", mutagen.EventMutate)
	*f = RandomUNFloat(rng)
}

func (f UNFloat) String() string {
	return fmt.Sprintf("%.4f", f.value)
}

func (f UNFloat) MarshalJSON() ([]byte, error) {
	return jsonFloat(f.value)
}

func (f *UNFloat) UnmarshalJSON(data []byte) error {
	v, err := parseJSONFloat(data)
	if err != nil {
		return err
	}
	if v < 0.0 || v > 1.0 {
		return fmt.Errorf("UNFloat %v: %w", v, ErrOutOfRange)
	}
	f.value = v
	return nil
}

// --- SNFloat ---

// SNFloat is a float confined to [-1, 1].
type SNFloat struct {
	value float64
}

var (
	SNFloatZero   = SNFloat{0.0}
	SNFloatOne    = SNFloat{1.0}
	SNFloatNegOne = SNFloat{-1.0}
)

// NewSNFloat asserts the [-1,1] invariant.
func NewSNFloat(v float64) SNFloat {
	if v < -1.0 || v > 1.0 {
		panic(fmt.Sprintf("invalid SNFloat value: %v", v))
	}
	return SNFloat{v}
}

// SNFloatClamped repairs v by clamping into [-1,1].
func SNFloatClamped(v float64) SNFloat {
	return SNFloat{math.Max(-1.0, math.Min(1.0, v))}
}

// SNFloatSawtooth repairs v by wrapping whole periods.
func SNFloatSawtooth(v float64) SNFloat {
	scaled := (v + 1.0) / 2.0
	return NewSNFloat(sawtooth(scaled)*2.0 - 1.0)
}

// SNFloatTriangle repairs v by reflecting alternate periods.
func SNFloatTriangle(v float64) SNFloat {
	scaled := (v - 1.0) / 4.0
	return NewSNFloat(math.Abs(sawtooth(scaled)-0.5)*4.0 - 1.0)
}

// SNFloatSin folds v through a slow sine.
func SNFloatSin(v float64) SNFloat {
	return NewSNFloat(math.Sin(v / (2.0 * math.Pi)))
}

// SNFloatSinRepeating folds v through a repeating sine.
func SNFloatSinRepeating(v float64) SNFloat {
	return NewSNFloat(math.Sin(v * math.Pi))
}

// SNFloatFractional repairs v by keeping only its fractional part.
func SNFloatFractional(v float64) SNFloat {
	return NewSNFloat(fract(v))
}

// SNFloatTanH squashes v through the hyperbolic tangent.
func SNFloatTanH(v float64) SNFloat {
	return NewSNFloat(math.Tanh(v))
}

// SNFloatRandomClamped keeps in-range values and resamples anything else.
func SNFloatRandomClamped(rng *rand.Rand, v float64) SNFloat {
	if v < -1.0 || v > 1.0 {
		return RandomSNFloat(rng)
	}
	return SNFloat{v}
}

// SNFloatFromRange remaps v from [min, max] onto [-1, 1].
func SNFloatFromRange(v, min, max float64) SNFloat {
	return SNFloat{mapRange(v, min, max, -1.0, 1.0)}
}

// RandomSNFloat samples uniformly from [-1, 1).
func RandomSNFloat(rng *rand.Rand) SNFloat {
	return SNFloat{rng.Float64()*2.0 - 1.0}
}

// GenerateSNFloat is the framework generation entry point.
func GenerateSNFloat(rng *rand.Rand, ctx *mutagen.Context) SNFloat {
	ctx.Report("SNFloat", mutagen.EventGenerate)
	return RandomSNFloat(rng)
}

func (f SNFloat) Value() float64 { return f.value }

func (f SNFloat) Abs() SNFloat {
	return NewSNFloat(math.Abs(f.value))
}

// ForceSign returns |f| with the given sign, true meaning positive.
func (f SNFloat) ForceSign(sign bool) SNFloat {
	v := math.Abs(f.value)
	if !sign {
		v = -v
	}
	return NewSNFloat(v)
}

func (f SNFloat) Invert() SNFloat {
	return NewSNFloat(f.value * -1.0)
}

func (f SNFloat) Average(other SNFloat) SNFloat {
	return NewSNFloat((f.value + other.value) * 0.5)
}

func (f SNFloat) Multiply(other SNFloat) SNFloat {
	return NewSNFloat(f.value * other.value)
}

func (f SNFloat) MultiplyUN(other UNFloat) SNFloat {
	return NewSNFloat(f.value * other.Value())
}

// Subdivide scales f into divisor periods, wrapping symmetrically about zero.
func (f SNFloat) Subdivide(divisor Nibble) SNFloat {
	total := f.value * float64(divisor.Value())
	abs := math.Abs(total)
	v := abs - math.Floor(abs)
	if math.Signbit(total) {
		v = -v
	}
	return NewSNFloat(v)
}

// NormalisedAdd adds other and maps the sum back into range with the
// supplied policy.
func (f SNFloat) NormalisedAdd(other SNFloat, n SFloatNormaliser, rng *rand.Rand) SNFloat {
	return n.Normalise(f.value+other.value, rng)
}

// NormalisedSub subtracts other and maps the difference back into range
// with the supplied policy.
func (f SNFloat) NormalisedSub(other SNFloat, n SFloatNormaliser, rng *rand.Rand) SNFloat {
	return n.Normalise(f.value-other.value, rng)
}

func (f SNFloat) Lerp(other SNFloat, scalar UNFloat) SNFloat {
	return NewSNFloat(lerp(f.value, other.value, scalar.Value()))
}

func (f SNFloat) ToUnsigned() UNFloat {
	return UNFloat{mapRange(f.value, -1.0, 1.0, 0.0, 1.0)}
}

func (f SNFloat) ToAngle() Angle {
	return Angle{mapRange(f.value, -1.0, 1.0, -math.Pi, math.Pi)}
}

// Mutate resamples the value.
func (f *SNFloat) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("SNFloat", mutagen.EventMutate)
	*f = RandomSNFloat(rng)
}

func (f SNFloat) String() string {
	return fmt.Sprintf("%.4f", f.value)
}

func (f SNFloat) MarshalJSON() ([]byte, error) {
	return jsonFloat(f.value)
}

func (f *SNFloat) UnmarshalJSON(data []byte) error {
	v, err := parseJSONFloat(data)
	if err != nil {
		return err
	}
	if v < -1.0 || v > 1.0 {
		return fmt.Errorf("SNFloat %v: %w", v, ErrOutOfRange)
	}
	f.value = v
	return nil
}

// --- Angle ---

// Angle is a float confined to [-π, π], renormalised by modular reduction
// on every construction.
type Angle struct {
	value float64
}

var AngleZero = Angle{0.0}

// NewAngle reduces v modulo a full turn into [-π, π]. Negative inputs gain
// a full turn before reduction so the result lands in the same interval.
func NewAngle(v float64) Angle {
	turn := 2.0 * math.Pi

	var normalised float64
	switch {
	case v > 0.0:
		normalised = fract(v/turn) * turn
	case v < 0.0:
		normalised = fract(v/turn)*turn + turn
	default:
		normalised = v
	}
	normalised -= math.Pi

	if !(normalised >= -math.Pi && normalised <= math.Pi) {
		panic(fmt.Sprintf("failed to normalise angle: %v -> %v", v, normalised))
	}
	return Angle{normalised}
}

// AngleFromRange remaps v from [min, max] onto [-π, π].
func AngleFromRange(v, min, max float64) Angle {
	return Angle{mapRange(v, min, max, -math.Pi, math.Pi)}
}

// RandomAngle samples uniformly from [-π, π).
func RandomAngle(rng *rand.Rand) Angle {
	return Angle{rng.Float64()*2.0*math.Pi - math.Pi}
}

// GenerateAngle is the framework generation entry point.
func GenerateAngle(rng *rand.Rand, ctx *mutagen.Context) Angle {
	ctx.Report("Angle", mutagen.EventGenerate)
	return RandomAngle(rng)
}

func (a Angle) Value() float64 { return a.value }

func (a Angle) Add(other Angle) Angle {
	return NewAngle(a.value + other.value)
}

func (a Angle) Sub(other Angle) Angle {
	return NewAngle(a.value - other.value)
}

func (a Angle) Average(other Angle) Angle {
	return NewAngle((a.value + other.value) * 0.5)
}

func (a Angle) ToSigned() SNFloat {
	return SNFloat{mapRange(a.value, -math.Pi, math.Pi, -1.0, 1.0)}
}

func (a Angle) ToUnsigned() UNFloat {
	return UNFloat{mapRange(a.value, -math.Pi, math.Pi, 0.0, 1.0)}
}

// Lerp interpolates along the shorter arc between the two angles.
func (a Angle) Lerp(other Angle, scalar UNFloat) Angle {
	av := a.value
	bv := other.value
	s := scalar.Value()

	diff := bv - av
	switch {
	case diff > math.Pi:
		return NewAngle(lerp(av+2.0*math.Pi, bv, s))
	case diff < -math.Pi:
		return NewAngle(lerp(av, bv+2.0*math.Pi, s))
	default:
		return NewAngle(lerp(av, bv, s))
	}
}

// Mutate resamples the value.
func (a *Angle) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("Angle", mutagen.EventMutate)
	*a = RandomAngle(rng)
}

func (a Angle) String() string {
	return fmt.Sprintf("%.4f", a.value)
}

func (a Angle) MarshalJSON() ([]byte, error) {
	return jsonFloat(a.value)
}

func (a *Angle) UnmarshalJSON(data []byte) error {
	v, err := parseJSONFloat(data)
	if err != nil {
		return err
	}
	if v < -math.Pi || v > math.Pi {
		return fmt.Errorf("Angle %v: %w", v, ErrOutOfRange)
	}
	a.value = v
	return nil
}
