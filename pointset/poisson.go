package pointset

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/geom"
)

// poissonAttempts bounds the candidates tried per active point before it
// is retired.
const poissonAttempts = 30

// poissonPoints runs Bridson-style Poisson-disk sampling over the signed
// unit square. Candidates that leave the square are wrapped back in by the
// normaliser policy rather than rejected, so the sampler keeps its yield
// near the boundary. The backing grid has cell size radius/sqrt(2), which
// caps occupancy at one point per cell and bounds the rejection test to
// the 3x3 cell neighbourhood. The sampler may return fewer than count
// points when the active list empties; that is a sampling shortfall, not
// an error.
func poissonPoints(rng *rand.Rand, count int, radius float64, normaliser bounded.SFloatNormaliser) []geom.SNPoint {
	if radius <= 0.0 {
		panic("poisson radius must be positive")
	}
	if count <= 0 {
		panic("poisson count must be positive")
	}

	cellSize := radius / math.Sqrt2
	gridSize := int(math.Ceil(1.0/cellSize)) * 2

	toGrid := func(p geom.SNPoint) (int, int) {
		gx := int(math.Floor((p.X().Value() + 1.0) / cellSize))
		gy := int(math.Floor((p.Y().Value() + 1.0) / cellSize))
		return min(gx, gridSize-1), min(gy, gridSize-1)
	}

	grid := make([]int, gridSize*gridSize)
	for i := range grid {
		grid[i] = -1
	}

	points := make([]geom.SNPoint, 0, count)
	active := make([]int, 0, count)

	p0 := geom.SNPointFromValues(rng.Float64(), rng.Float64())
	points = append(points, p0)
	active = append(active, 0)
	gx, gy := toGrid(p0)
	grid[gx*gridSize+gy] = 0

	for len(points) < count && len(active) > 0 {
		activeIdx := rng.IntN(len(active))
		p := points[active[activeIdx]]

		accepted := false
		for attempts := 0; attempts < poissonAttempts; attempts++ {
			theta := rng.Float64() * 2.0 * math.Pi
			r := radius + rng.Float64()*radius
			dx := math.Cos(theta) * r
			dy := math.Sin(theta) * r

			candidate := geom.NewSNPoint(
				normaliser.Normalise(p.X().Value()+dx, rng),
				normaliser.Normalise(p.Y().Value()+dy, rng),
			)

			cx, cy := toGrid(candidate)
			if poissonTooClose(grid, points, gridSize, cx, cy, candidate, radius) {
				continue
			}

			grid[cx*gridSize+cy] = len(points)
			active = append(active, len(points))
			points = append(points, candidate)
			accepted = true
			break
		}

		if !accepted {
			active = append(active[:activeIdx], active[activeIdx+1:]...)
		}
	}

	return points
}

func poissonTooClose(grid []int, points []geom.SNPoint, gridSize, cx, cy int, candidate geom.SNPoint, radius float64) bool {
	for tx := -1; tx <= 1; tx++ {
		for ty := -1; ty <= 1; ty++ {
			nx := min(max(cx+tx, 0), gridSize-1)
			ny := min(max(cy+ty, 0), gridSize-1)
			if i := grid[nx*gridSize+ny]; i >= 0 {
				if euclidean(points[i], candidate) <= radius {
					return true
				}
			}
		}
	}
	return false
}

func euclidean(a, b geom.SNPoint) float64 {
	return math.Hypot(a.X().Value()-b.X().Value(), a.Y().Value()-b.Y().Value())
}
