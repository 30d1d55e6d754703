package geom

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/mutagen"
)

// DistanceFunction is an evolvable choice of planar metric. Euclidean and
// Manhattan are halved so that typical separations inside the unit square
// stay near [0, 1]; the result is still not guaranteed in range, which is
// why CalculateNormalised takes a repair policy.
type DistanceFunction uint8

const (
	DistanceEuclidean DistanceFunction = iota
	DistanceManhattan
	DistanceChebyshev
	DistanceMinimum

	distanceFunctionCount
)

var distanceFunctionNames = map[DistanceFunction]string{
	DistanceEuclidean: "euclidean",
	DistanceManhattan: "manhattan",
	DistanceChebyshev: "chebyshev",
	DistanceMinimum:   "minimum",
}

// Calculate evaluates the metric on raw coordinates.
func (d DistanceFunction) Calculate(ax, ay, bx, by float64) float64 {
	x := bx - ax
	y := by - ay

	switch d {
	case DistanceEuclidean:
		return math.Hypot(x, y) * 0.5
	case DistanceManhattan:
		return (math.Abs(x) + math.Abs(y)) * 0.5
	case DistanceChebyshev:
		return math.Max(math.Abs(x), math.Abs(y))
	case DistanceMinimum:
		return math.Min(math.Abs(x), math.Abs(y))
	}
	panic(fmt.Sprintf("unknown DistanceFunction %d", d))
}

// CalculatePoints evaluates the metric between two points.
func (d DistanceFunction) CalculatePoints(a, b SNPoint) float64 {
	return d.Calculate(a.X().Value(), a.Y().Value(), b.X().Value(), b.Y().Value())
}

// CalculateNormalised evaluates the metric and repairs the result into
// [0, 1] with the supplied policy.
func (d DistanceFunction) CalculateNormalised(a, b SNPoint, n bounded.UFloatNormaliser, rng *rand.Rand) bounded.UNFloat {
	return n.Normalise(d.CalculatePoints(a, b), rng)
}

// RandomDistanceFunction samples a metric uniformly.
func RandomDistanceFunction(rng *rand.Rand) DistanceFunction {
	return DistanceFunction(rng.IntN(int(distanceFunctionCount)))
}

// GenerateDistanceFunction is the framework generation entry point.
func GenerateDistanceFunction(rng *rand.Rand, ctx *mutagen.Context) DistanceFunction {
	ctx.Report("DistanceFunction", mutagen.EventGenerate)
	return RandomDistanceFunction(rng)
}

// Mutate resamples the metric.
func (d *DistanceFunction) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("DistanceFunction", mutagen.EventMutate)
	*d = RandomDistanceFunction(rng)
}

func (d DistanceFunction) String() string {
	if s, ok := distanceFunctionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DistanceFunction(%d)", uint8(d))
}

func (d DistanceFunction) MarshalJSON() ([]byte, error) {
	s, ok := distanceFunctionNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown DistanceFunction %d", uint8(d))
	}
	return []byte(`"` + s + `"`), nil
}

func (d *DistanceFunction) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalString(data, &s); err != nil {
		return fmt.Errorf("decoding DistanceFunction: %w", err)
	}
	for k, v := range distanceFunctionNames {
		if v == s {
			*d = k
			return nil
		}
	}
	return fmt.Errorf("unknown DistanceFunction %q", s)
}
