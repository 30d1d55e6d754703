package geom

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/mutagen"
)

// SNComplex is a complex value with both components in [-1, 1]. It mirrors
// SNPoint but reads as re/im, for iterative fractal-style formulas.
type SNComplex struct {
	re, im bounded.SNFloat
}

var SNComplexZero = SNComplex{}

// NewSNComplex builds a complex value from already-bounded components.
func NewSNComplex(re, im bounded.SNFloat) SNComplex {
	return SNComplex{re: re, im: im}
}

// SNComplexFromValues asserts both components into range.
func SNComplexFromValues(re, im float64) SNComplex {
	return SNComplex{re: bounded.NewSNFloat(re), im: bounded.NewSNFloat(im)}
}

// SNComplexNormalised repairs both components with the given policy.
func SNComplexNormalised(re, im float64, n bounded.SFloatNormaliser, rng *rand.Rand) SNComplex {
	return SNComplex{re: n.Normalise(re, rng), im: n.Normalise(im, rng)}
}

// SNComplexFromPoint reinterprets a point as a complex value.
func SNComplexFromPoint(p SNPoint) SNComplex {
	return SNComplex{re: p.X(), im: p.Y()}
}

// RandomSNComplex samples uniformly from the unit square.
func RandomSNComplex(rng *rand.Rand) SNComplex {
	return SNComplex{
		re: bounded.RandomSNFloat(rng),
		im: bounded.RandomSNFloat(rng),
	}
}

// GenerateSNComplex is the framework generation entry point.
func GenerateSNComplex(rng *rand.Rand, ctx *mutagen.Context) SNComplex {
	ctx.Report("SNComplex", mutagen.EventGenerate)
	return RandomSNComplex(rng)
}

func (c SNComplex) Re() bounded.SNFloat { return c.re }
func (c SNComplex) Im() bounded.SNFloat { return c.im }

// ToPoint reinterprets the complex value as a point.
func (c SNComplex) ToPoint() SNPoint {
	return SNPoint{x: c.re, y: c.im}
}

// ToAngle measures the value's direction from the positive imaginary axis.
func (c SNComplex) ToAngle() bounded.Angle {
	return bounded.NewAngle(math.Atan2(c.re.Value(), c.im.Value()))
}

// NormalisedAdd adds componentwise, repairing each sum with the policy.
func (c SNComplex) NormalisedAdd(other SNComplex, n bounded.SFloatNormaliser, rng *rand.Rand) SNComplex {
	return SNComplexNormalised(
		c.re.Value()+other.re.Value(),
		c.im.Value()+other.im.Value(),
		n, rng,
	)
}

func (c SNComplex) Lerp(other SNComplex, scalar bounded.UNFloat) SNComplex {
	return SNComplex{
		re: c.re.Lerp(other.re, scalar),
		im: c.im.Lerp(other.im, scalar),
	}
}

// Mutate resamples the value.
func (c *SNComplex) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("SNComplex", mutagen.EventMutate)
	*c = RandomSNComplex(rng)
}

func (c SNComplex) String() string {
	return fmt.Sprintf("(%s, %s)", c.re, c.im)
}

// MarshalJSON encodes the value as its "(re, im)" text form.
func (c SNComplex) MarshalJSON() ([]byte, error) {
	return marshalPair(c.String())
}

// UnmarshalJSON parses the "(re, im)" text form, rejecting out-of-range
// components.
func (c *SNComplex) UnmarshalJSON(data []byte) error {
	re, im, err := unmarshalPair(data, "SNComplex")
	if err != nil {
		return err
	}
	c.re = bounded.NewSNFloat(re)
	c.im = bounded.NewSNFloat(im)
	return nil
}
