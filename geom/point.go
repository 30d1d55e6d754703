// Package geom provides range-confined planar primitives built on the
// bounded numeric kernel: cartesian points, complex values and the distance
// metrics used to compare them. All coordinates live in the signed unit
// square.
package geom

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/mutagen"
)

// SNPoint is a point with both coordinates in [-1, 1].
type SNPoint struct {
	x, y bounded.SNFloat
}

var SNPointZero = SNPoint{}

// NewSNPoint builds a point from already-bounded coordinates.
func NewSNPoint(x, y bounded.SNFloat) SNPoint {
	return SNPoint{x: x, y: y}
}

// SNPointFromValues asserts both coordinates into range.
func SNPointFromValues(x, y float64) SNPoint {
	return SNPoint{x: bounded.NewSNFloat(x), y: bounded.NewSNFloat(y)}
}

// SNPointNormalised repairs both coordinates with the given policy.
func SNPointNormalised(x, y float64, n bounded.SFloatNormaliser, rng *rand.Rand) SNPoint {
	return SNPoint{x: n.Normalise(x, rng), y: n.Normalise(y, rng)}
}

// SNPointFromRange remaps val from the rectangle [min, max] onto the unit
// square.
func SNPointFromRange(valX, valY, minX, minY, maxX, maxY float64) SNPoint {
	return SNPoint{
		x: bounded.SNFloatFromRange(valX, minX, maxX),
		y: bounded.SNFloatFromRange(valY, minY, maxY),
	}
}

// SNPointFromPolar converts polar components to a cartesian point. Theta is
// measured from the positive y axis.
func SNPointFromPolar(theta bounded.Angle, rho bounded.UNFloat) SNPoint {
	t := theta.Value()
	r := rho.Value()
	return SNPoint{
		x: bounded.NewSNFloat(r * math.Sin(t)),
		y: bounded.NewSNFloat(r * math.Cos(t)),
	}
}

// SNPointFromComplex reinterprets a complex value as a point.
func SNPointFromComplex(c SNComplex) SNPoint {
	return SNPoint{x: c.Re(), y: c.Im()}
}

// RandomSNPoint samples uniformly from the unit square.
func RandomSNPoint(rng *rand.Rand) SNPoint {
	return SNPoint{
		x: bounded.RandomSNFloat(rng),
		y: bounded.RandomSNFloat(rng),
	}
}

// GenerateSNPoint is the framework generation entry point.
func GenerateSNPoint(rng *rand.Rand, ctx *mutagen.Context) SNPoint {
	ctx.Report("SNPoint", mutagen.EventGenerate)
	return RandomSNPoint(rng)
}

func (p SNPoint) X() bounded.SNFloat { return p.x }
func (p SNPoint) Y() bounded.SNFloat { return p.y }

func (p SNPoint) Abs() SNPoint {
	return SNPoint{x: p.x.Abs(), y: p.y.Abs()}
}

func (p SNPoint) InvertX() SNPoint {
	return SNPoint{x: p.x.Invert(), y: p.y}
}

func (p SNPoint) Average(other SNPoint) SNPoint {
	return SNPoint{x: p.x.Average(other.x), y: p.y.Average(other.y)}
}

// ToAngle measures the point's direction from the positive y axis.
func (p SNPoint) ToAngle() bounded.Angle {
	return bounded.NewAngle(math.Atan2(p.x.Value(), p.y.Value()))
}

func (p SNPoint) NormalisedAdd(other SNPoint, n bounded.SFloatNormaliser, rng *rand.Rand) SNPoint {
	return SNPoint{
		x: p.x.NormalisedAdd(other.x, n, rng),
		y: p.y.NormalisedAdd(other.y, n, rng),
	}
}

func (p SNPoint) NormalisedSub(other SNPoint, n bounded.SFloatNormaliser, rng *rand.Rand) SNPoint {
	return SNPoint{
		x: p.x.NormalisedSub(other.x, n, rng),
		y: p.y.NormalisedSub(other.y, n, rng),
	}
}

// SubtractNormalised subtracts other and rescales by the separation, with
// the divisor floored at 0.1 so near-coincident points don't blow up. The
// result is a direction-preserving value that always fits the unit square.
func (p SNPoint) SubtractNormalised(other SNPoint) SNPoint {
	dx := p.x.Value() - other.x.Value()
	dy := p.y.Value() - other.y.Value()
	d := math.Max(math.Hypot(dx, dy), 0.1)
	return SNPointFromValues(dx/d, dy/d)
}

func (p SNPoint) Scale(s bounded.SNFloat) SNPoint {
	return SNPoint{x: p.x.Multiply(s), y: p.y.Multiply(s)}
}

func (p SNPoint) ScaleUNFloat(s bounded.UNFloat) SNPoint {
	return SNPoint{x: p.x.MultiplyUN(s), y: p.y.MultiplyUN(s)}
}

func (p SNPoint) ScalePoint(other SNPoint) SNPoint {
	return SNPoint{x: p.x.Multiply(other.x), y: p.y.Multiply(other.y)}
}

// ToPolar packs the point's polar form into another point: x holds the
// angle from the vertical axis, y the radius capped at 1. The vertical
// axis of symmetry reads better than the mathematical convention in
// generated imagery.
func (p SNPoint) ToPolar() SNPoint {
	theta := bounded.NewAngle(math.Atan2(-p.x.Value(), p.y.Value()))
	rho := bounded.NewUNFloat(math.Min(math.Hypot(p.x.Value(), p.y.Value()), 1.0))
	return SNPoint{x: theta.ToSigned(), y: rho.ToSigned()}
}

// FromPolar is the inverse reading of ToPolar's packing.
func (p SNPoint) FromPolar() SNPoint {
	theta := p.x.ToAngle().Value()
	rho := p.y.ToUnsigned().Value()
	return SNPoint{
		x: bounded.NewSNFloat(rho * math.Sin(theta)),
		y: bounded.NewSNFloat(rho * math.Cos(theta)),
	}
}

// ToComplex reinterprets the point as a complex value.
func (p SNPoint) ToComplex() SNComplex {
	return SNComplex{re: p.x, im: p.y}
}

// Mutate resamples the point.
func (p *SNPoint) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("SNPoint", mutagen.EventMutate)
	*p = RandomSNPoint(rng)
}

func (p SNPoint) String() string {
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// MarshalJSON encodes the point as its "(x, y)" text form.
func (p SNPoint) MarshalJSON() ([]byte, error) {
	return marshalPair(p.String())
}

// UnmarshalJSON parses the "(x, y)" text form, rejecting out-of-range
// coordinates.
func (p *SNPoint) UnmarshalJSON(data []byte) error {
	x, y, err := unmarshalPair(data, "SNPoint")
	if err != nil {
		return err
	}
	p.x = bounded.NewSNFloat(x)
	p.y = bounded.NewSNFloat(y)
	return nil
}
