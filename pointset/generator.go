// Package pointset generates bounded point collections from compact
// descriptors: deterministic grids, ring sequences, spirals and stochastic
// samplers including Poisson-disk. A descriptor plus a randomness source
// fully determines a set, which is what makes sets cheap to serialize:
// only the descriptor is stored and the points are regenerated on load.
package pointset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/geom"
	"github.com/lixenwraith/substrate/mutagen"
)

// GeneratorKind tags the point-placement algorithm a Generator runs.
type GeneratorKind uint8

const (
	// KindOrigin is the single-point fallback. The empty set would crash
	// consumers, so the zero descriptor yields the origin instead.
	KindOrigin GeneratorKind = iota
	KindMoore
	KindVonNeumann
	KindUniformGrid
	KindSparseGrid
	KindHexGrid
	KindTriGrid
	KindUniformDistribution
	KindPoisson
	KindSpiral
	KindRandomRings
	KindLinearIncreasingRings
	KindFibonacciRings
	KindSquaredRings

	generatorKindCount
)

var generatorKindNames = map[GeneratorKind]string{
	KindOrigin:                "origin",
	KindMoore:                 "moore",
	KindVonNeumann:            "von_neumann",
	KindUniformGrid:           "uniform_grid",
	KindSparseGrid:            "sparse_grid",
	KindHexGrid:               "hex_grid",
	KindTriGrid:               "tri_grid",
	KindUniformDistribution:   "uniform_distribution",
	KindPoisson:               "poisson",
	KindSpiral:                "spiral",
	KindRandomRings:           "random_rings",
	KindLinearIncreasingRings: "linear_increasing_rings",
	KindFibonacciRings:        "fibonacci_rings",
	KindSquaredRings:          "squared_rings",
}

func (k GeneratorKind) String() string {
	if s, ok := generatorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("GeneratorKind(%d)", uint8(k))
}

// Generator is a tagged point-set descriptor. Only the parameters relevant
// to Kind are consulted; the rest ride along as zero values.
type Generator struct {
	Kind GeneratorKind `json:"kind"`

	// grid variants
	XCount bounded.Nibble  `json:"x_count"`
	YCount bounded.Nibble  `json:"y_count"`
	XMod   bounded.Boolean `json:"x_mod"`
	YMod   bounded.Boolean `json:"y_mod"`

	// stochastic variants
	Count  bounded.Byte    `json:"count"`
	Radius bounded.UNFloat `json:"radius"`

	// spiral
	Scalar  bounded.UNFloat `json:"scalar"`
	Maximum bounded.Angle   `json:"maximum"`
	Linear  bounded.Boolean `json:"linear"`
	// Covers both squaring and square rooting once doubled back to [0, 2].
	NonlinearityFactorHalved bounded.UNFloat `json:"nonlinearity_factor_halved"`

	// ring sequences
	MaxRings      bounded.Nibble `json:"max_rings"`
	MaxCount      bounded.Byte   `json:"max_count"`
	RingSizeDelta bounded.Nibble `json:"ring_size_delta"`
}

// RandomGenerator samples a descriptor with random parameters. The origin
// fallback is deliberately never sampled.
func RandomGenerator(rng *rand.Rand) Generator {
	kind := GeneratorKind(1 + rng.IntN(int(generatorKindCount)-1))
	g := Generator{Kind: kind}
	switch kind {
	case KindUniformGrid, KindHexGrid, KindTriGrid:
		g.XCount = bounded.RandomNibble(rng)
		g.YCount = bounded.RandomNibble(rng)
	case KindSparseGrid:
		g.XCount = bounded.RandomNibble(rng)
		g.YCount = bounded.RandomNibble(rng)
		g.XMod = bounded.RandomBoolean(rng)
		g.YMod = bounded.RandomBoolean(rng)
	case KindUniformDistribution:
		g.Count = bounded.RandomByte(rng)
	case KindPoisson:
		g.Count = bounded.RandomByte(rng)
		g.Radius = bounded.RandomUNFloat(rng)
	case KindSpiral:
		g.Count = bounded.RandomByte(rng)
		g.Scalar = bounded.RandomUNFloat(rng)
		g.Maximum = bounded.RandomAngle(rng)
		g.Linear = bounded.RandomBoolean(rng)
		g.NonlinearityFactorHalved = bounded.RandomUNFloat(rng)
	case KindRandomRings:
		g.MaxRings = bounded.RandomNibble(rng)
	case KindLinearIncreasingRings:
		g.MaxCount = bounded.RandomByte(rng)
		g.RingSizeDelta = bounded.RandomNibble(rng)
	case KindFibonacciRings, KindSquaredRings:
		g.MaxCount = bounded.RandomByte(rng)
	}
	return g
}

// Generate runs the descriptor's placement algorithm and wraps the result.
// Generators must never produce an empty set; that is a bug, not a
// sampling shortfall, and trips the size assertion in NewPointSet.
func (g Generator) Generate(rng *rand.Rand) PointSet {
	var points []geom.SNPoint
	switch g.Kind {
	case KindOrigin:
		points = []geom.SNPoint{geom.SNPointZero}
	case KindMoore:
		points = moorePoints()
	case KindVonNeumann:
		points = vonNeumannPoints()
	case KindUniformGrid:
		points = gridPoints(int(g.XCount.Value())+1, int(g.YCount.Value())+1, keepAll, centeredX)
	case KindSparseGrid:
		points = g.sparseGridPoints()
	case KindHexGrid:
		points = g.hexGridPoints()
	case KindTriGrid:
		points = gridPoints(int(g.XCount.Value())+1, int(g.YCount.Value())+1, keepAll, staggeredX)
	case KindUniformDistribution:
		points = uniformPoints(rng, max(int(g.Count.Value()), 2))
	case KindPoisson:
		normaliser := bounded.GenerateSFloatNormaliser(rng, nil)
		count := max(int(g.Count.Value()), 4)
		radius := math.Max(
			2.0*g.Radius.Value()/math.Max(math.Sqrt(float64(g.Count.Value())), 2.0),
			0.01,
		)
		points = poissonPoints(rng, count, radius, normaliser)
	case KindSpiral:
		points = g.spiralPoints()
	case KindRandomRings:
		sequence := make([]int, int(g.MaxRings.Value())+1)
		for i := range sequence {
			sequence[i] = int(bounded.RandomNibble(rng).Value()) + 1
		}
		points = ringPoints(sequence)
	case KindLinearIncreasingRings:
		points = ringPoints(ringSequence(int(g.MaxCount.Value()), func(prev int) int {
			return prev + int(g.RingSizeDelta.Value())
		}))
	case KindFibonacciRings:
		points = ringPoints(ringSequence(int(g.MaxCount.Value()), nil))
	case KindSquaredRings:
		points = ringPoints(ringSequence(int(g.MaxCount.Value()), func(prev int) int {
			return prev * 2
		}))
	default:
		panic(fmt.Sprintf("unknown GeneratorKind %d", uint8(g.Kind)))
	}

	if len(points) == 0 {
		panic(fmt.Sprintf("generator %s produced an empty point set", g.Kind))
	}
	return NewPointSet(points, g)
}

// GeneratePointSet is the framework generation entry point.
func GeneratePointSet(rng *rand.Rand, ctx *mutagen.Context) PointSet {
	ctx.Report("PointSet", mutagen.EventGenerate)
	return RandomGenerator(rng).Generate(rng)
}

func moorePoints() []geom.SNPoint {
	return []geom.SNPoint{
		geom.SNPointFromValues(-1, -1),
		geom.SNPointFromValues(-1, 0),
		geom.SNPointFromValues(-1, 1),
		geom.SNPointFromValues(0, -1),
		geom.SNPointFromValues(0, 1),
		geom.SNPointFromValues(1, -1),
		geom.SNPointFromValues(1, 0),
		geom.SNPointFromValues(1, 1),
	}
}

func vonNeumannPoints() []geom.SNPoint {
	return []geom.SNPoint{
		geom.SNPointFromValues(1, 0),
		geom.SNPointFromValues(-1, 0),
		geom.SNPointFromValues(0, 1),
		geom.SNPointFromValues(0, -1),
	}
}

// gridPoints tiles the unit square with cell-center sampling. keep filters
// cells out; xOffset picks the in-cell x position per row parity.
func gridPoints(xCount, yCount int, keep func(x, y int) bool, xOffset func(xRatio float64, y int) float64) []geom.SNPoint {
	xRatio := 1.0 / float64(xCount)
	yRatio := 1.0 / float64(yCount)

	points := make([]geom.SNPoint, 0, xCount*yCount)
	for x := 0; x < xCount; x++ {
		for y := 0; y < yCount; y++ {
			if !keep(x, y) {
				continue
			}
			points = append(points, geom.SNPointFromValues(
				2.0*(xRatio*float64(x)+xOffset(xRatio, y))-1.0,
				2.0*(yRatio*float64(y)+yRatio*0.5)-1.0,
			))
		}
	}
	return points
}

func keepAll(int, int) bool { return true }

func centeredX(xRatio float64, _ int) float64 { return xRatio * 0.5 }

// staggeredX shifts alternate rows so columns interleave triangularly.
func staggeredX(xRatio float64, y int) float64 {
	if y%2 == 0 {
		return 0.25 * xRatio
	}
	return 0.75 * xRatio
}

// sparseGridPoints forces odd counts on both axes, then drops the cells
// whose coordinate parities match the mod flags.
func (g Generator) sparseGridPoints() []geom.SNPoint {
	xCount := int(g.XCount.Value()) + 1
	yCount := int(g.YCount.Value()) + 1
	if xCount%2 == 0 {
		xCount++
	}
	if yCount%2 == 0 {
		yCount++
	}

	xMod, yMod := 0, 0
	if g.XMod.Value() {
		xMod = 1
	}
	if g.YMod.Value() {
		yMod = 1
	}

	return gridPoints(xCount, yCount, func(x, y int) bool {
		return !(x%2 == xMod && y%2 == yMod)
	}, centeredX)
}

// hexGridPoints rounds the x count up to 2 mod 3 and the y count to even,
// which keeps the hex pattern clean along the right and bottom edges.
func (g Generator) hexGridPoints() []geom.SNPoint {
	xCount := int(g.XCount.Value()) + 1
	yCount := int(g.YCount.Value()) + 1
	switch xCount % 3 {
	case 0:
		xCount += 2
	case 1:
		xCount++
	}
	if yCount%2 == 1 {
		yCount++
	}

	return gridPoints(xCount, yCount, func(x, y int) bool {
		return y%2 != x%3
	}, staggeredX)
}

func uniformPoints(rng *rand.Rand, count int) []geom.SNPoint {
	points := make([]geom.SNPoint, count)
	for i := range points {
		points[i] = geom.SNPointFromValues(rng.Float64(), rng.Float64())
	}
	return points
}

func (g Generator) spiralPoints() []geom.SNPoint {
	count := max(int(g.Count.Value()), 1)
	scalar := g.Scalar.Value()
	maximum := g.Maximum.Value()
	nonlinearity := g.NonlinearityFactorHalved.Value() * 2.0

	points := make([]geom.SNPoint, count)
	for i := range points {
		rho := float64(i) / float64(count)
		curve := rho
		if !g.Linear.Value() {
			curve = math.Pow(rho, nonlinearity)
		}
		theta := float64(count) * maximum * scalar * curve
		points[i] = geom.SNPointFromValues(rho*math.Sin(theta), rho*math.Cos(theta))
	}
	return points
}

// ringSequence builds ring sizes from a lagged accumulation recurrence,
// stopping once the running total would exceed budget but always keeping
// at least one ring. A nil step means Fibonacci accumulation.
func ringSequence(budget int, step func(prev int) int) []int {
	budget = max(budget, 1)

	prevTotal := 0
	newTotal := 1
	totalTotal := 0

	var sequence []int
	for {
		currentTotal := newTotal
		if step == nil {
			newTotal += prevTotal
		} else {
			newTotal = step(prevTotal)
		}
		prevTotal = currentTotal

		totalTotal += newTotal
		if totalTotal <= budget || len(sequence) == 0 {
			sequence = append(sequence, prevTotal)
		} else {
			break
		}
	}
	return sequence
}

// ringPoints places each ring's points evenly by angle at a radius
// proportional to the ring index. Rings of size zero contribute nothing.
func ringPoints(sequence []int) []geom.SNPoint {
	ringCount := len(sequence)

	var points []geom.SNPoint
	for index, pointCount := range sequence {
		rho := float64(index) / float64(ringCount)
		for i := 0; i < pointCount; i++ {
			theta := float64(i)*(2.0*math.Pi/float64(pointCount)) - math.Pi
			points = append(points, geom.SNPointFromValues(rho*math.Sin(theta), rho*math.Cos(theta)))
		}
	}
	return points
}

func (k GeneratorKind) MarshalJSON() ([]byte, error) {
	s, ok := generatorKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown GeneratorKind %d", uint8(k))
	}
	return []byte(`"` + s + `"`), nil
}

func (k *GeneratorKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalString(data, &s); err != nil {
		return fmt.Errorf("decoding GeneratorKind: %w", err)
	}
	for key, v := range generatorKindNames {
		if v == s {
			*k = key
			return nil
		}
	}
	return fmt.Errorf("unknown GeneratorKind %q", s)
}
