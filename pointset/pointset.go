package pointset

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/geom"
	"github.com/lixenwraith/substrate/mutagen"
)

// PointSet pairs generated points with the descriptor that produced them.
// The point slice is shared on copy and treated as immutable; operations
// that reorder it work on a fresh copy and swap the slice in, so clones of
// a set never observe each other's reordering.
type PointSet struct {
	points    []geom.SNPoint
	generator Generator
}

// NewPointSet asserts the set size into [1, 256]. Byte-indexed consumers
// rely on the upper bound; the lower bound keeps closest-point queries
// total.
func NewPointSet(points []geom.SNPoint, generator Generator) PointSet {
	if len(points) == 0 || len(points) > 256 {
		panic(fmt.Sprintf("invalid point set size %d", len(points)))
	}
	return PointSet{points: points, generator: generator}
}

// DefaultPointSet is the single-origin fallback set.
func DefaultPointSet() PointSet {
	return Generator{Kind: KindOrigin}.Generate(nil)
}

// RandomPointSet samples a random descriptor and runs it.
func RandomPointSet(rng *rand.Rand) PointSet {
	return RandomGenerator(rng).Generate(rng)
}

// Points exposes the backing slice. Callers must not modify it.
func (s PointSet) Points() []geom.SNPoint {
	return s.points
}

func (s PointSet) Len() int {
	return len(s.points)
}

// Generator returns the descriptor that produced the set.
func (s PointSet) Generator() Generator {
	return s.generator
}

// At indexes the set; out-of-range indices are caller bugs.
func (s PointSet) At(i int) geom.SNPoint {
	return s.points[i]
}

// AtByte indexes the set by a bounded byte.
func (s PointSet) AtByte(b bounded.Byte) geom.SNPoint {
	return s.points[int(b.Value())]
}

// Replace swaps in a new point list, keeping the descriptor.
func (s *PointSet) Replace(points []geom.SNPoint) {
	*s = NewPointSet(points, s.generator)
}

// GetOffsets scales every point down to single-cell units for a raster of
// the given dimensions.
func (s PointSet) GetOffsets(width, height int) []geom.SNPoint {
	scale := geom.SNPointFromValues(1.0/float64(width), 1.0/float64(height))
	offsets := make([]geom.SNPoint, len(s.points))
	for i, p := range s.points {
		offsets[i] = p.ScalePoint(scale)
	}
	return offsets
}

// GetClosestPoint returns the nearest point to other, excluding an exact
// coincidence with other itself. If every point coincides, other is
// returned unchanged.
func (s PointSet) GetClosestPoint(other geom.SNPoint) geom.SNPoint {
	best := other
	bestDist := 0.0
	found := false
	for _, p := range s.points {
		if p == other {
			continue
		}
		d := euclidean(p, other)
		if !found || d < bestDist {
			best = p
			bestDist = d
			found = true
		}
	}
	return best
}

// GetFurthestPoint mirrors GetClosestPoint with the comparison reversed.
func (s PointSet) GetFurthestPoint(other geom.SNPoint) geom.SNPoint {
	best := other
	bestDist := 0.0
	found := false
	for _, p := range s.points {
		if p == other {
			continue
		}
		d := euclidean(p, other)
		if !found || d > bestDist {
			best = p
			bestDist = d
			found = true
		}
	}
	return best
}

// GetNClosestPoints sorts the set by distance to other and returns the
// first n points. A point coinciding with other sorts before everything
// else. The sort happens on a copy that replaces the shared slice.
func (s *PointSet) GetNClosestPoints(other geom.SNPoint, n int) []geom.SNPoint {
	sorted := make([]geom.SNPoint, len(s.points))
	copy(sorted, s.points)

	sort.SliceStable(sorted, func(i, j int) bool {
		di := euclidean(sorted[i], other)
		dj := euclidean(sorted[j], other)
		if (di == 0.0) != (dj == 0.0) {
			return di == 0.0
		}
		return di < dj
	})

	s.points = sorted
	return sorted[:min(n, len(sorted))]
}

// GetRandomPoint picks a member uniformly.
func (s PointSet) GetRandomPoint(rng *rand.Rand) geom.SNPoint {
	return s.points[rng.IntN(len(s.points))]
}

// Mutate resamples the whole set from a fresh random descriptor.
func (s *PointSet) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("PointSet", mutagen.EventMutate)
	*s = RandomPointSet(rng)
}

// MarshalJSON stores only the descriptor; the points are reconstructed on
// load.
func (s PointSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.generator)
}

// UnmarshalJSON decodes the descriptor and replays it with a fresh random
// source. Stochastic variants therefore reload to an equivalent but not
// identical set.
func (s *PointSet) UnmarshalJSON(data []byte) error {
	var g Generator
	if err := json.Unmarshal(data, &g); err != nil {
		return fmt.Errorf("decoding point set descriptor: %w", err)
	}
	*s = g.Generate(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	return nil
}

func unmarshalString(data []byte, s *string) error {
	return json.Unmarshal(data, s)
}
