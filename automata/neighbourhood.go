// Package automata provides cellular-automaton rule representations:
// an elementary binary rule, a neighbour-count colour rule, and a
// life-like per-colour birth/survival rule, all evaluated over fixed
// neighbourhood offset patterns on a toroidal cell grid.
package automata

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/mutagen"
)

// CellOffset is a relative cell coordinate within a neighbourhood.
type CellOffset struct {
	DX int
	DY int
}

// PixelNeighbourhood selects one of the fixed offset patterns a rule
// samples its neighbours from.
type PixelNeighbourhood uint8

const (
	NeighbourhoodVertical PixelNeighbourhood = iota
	NeighbourhoodHorizontal
	NeighbourhoodDiagLeft
	NeighbourhoodDiagRight
	NeighbourhoodMelt
	NeighbourhoodBigMelt
	NeighbourhoodVonNeumann
	NeighbourhoodAntiVonNeumann
	NeighbourhoodCross
	NeighbourhoodMoore
	NeighbourhoodSpiral
	NeighbourhoodDiamond
	NeighbourhoodCircle
	NeighbourhoodFlower
	NeighbourhoodSquare

	pixelNeighbourhoodCount
)

var pixelNeighbourhoodNames = map[PixelNeighbourhood]string{
	NeighbourhoodVertical:       "vertical",
	NeighbourhoodHorizontal:     "horizontal",
	NeighbourhoodDiagLeft:       "diag_left",
	NeighbourhoodDiagRight:      "diag_right",
	NeighbourhoodMelt:           "melt",
	NeighbourhoodBigMelt:        "big_melt",
	NeighbourhoodVonNeumann:     "von_neumann",
	NeighbourhoodAntiVonNeumann: "anti_von_neumann",
	NeighbourhoodCross:          "cross",
	NeighbourhoodMoore:          "moore",
	NeighbourhoodSpiral:         "spiral",
	NeighbourhoodDiamond:        "diamond",
	NeighbourhoodCircle:         "circle",
	NeighbourhoodFlower:         "flower",
	NeighbourhoodSquare:         "square",
}

var pixelNeighbourhoodOffsets = map[PixelNeighbourhood][]CellOffset{
	NeighbourhoodVertical:   {{0, -1}, {0, 1}},
	NeighbourhoodHorizontal: {{-1, 0}, {1, 0}},
	NeighbourhoodDiagLeft:   {{-1, -1}, {1, 1}},
	NeighbourhoodDiagRight:  {{1, -1}, {-1, 1}},
	NeighbourhoodMelt:       {{-1, -1}, {0, -1}, {1, -1}},
	NeighbourhoodBigMelt: {
		{-1, -1}, {0, -1}, {1, -1},
		{-1, -2}, {0, -2}, {1, -2},
	},
	NeighbourhoodVonNeumann: {{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	// the repeated (1, -1) weights that diagonal twice in neighbour counts
	NeighbourhoodAntiVonNeumann: {{-1, -1}, {1, -1}, {1, -1}, {1, 1}},
	NeighbourhoodCross: {
		{-1, 0}, {-2, 0}, {1, 0}, {2, 0},
		{0, -1}, {0, -2}, {0, 1}, {0, 2},
	},
	NeighbourhoodMoore: {
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	},
	NeighbourhoodSpiral: {
		{-1, 0}, {-2, 1}, {1, 0}, {2, 1},
		{0, -1}, {1, -2}, {0, 1}, {1, 2},
	},
	NeighbourhoodDiamond: {
		{-1, -1}, {-2, 0}, {-1, 1}, {2, 0},
		{1, -1}, {0, -2}, {1, 1}, {0, 2},
	},
	NeighbourhoodCircle: {
		{-2, -1}, {-2, 0}, {-2, 1},
		{2, -1}, {2, 0}, {2, 1},
		{-1, -2}, {0, -2}, {1, -2},
		{-1, 2}, {0, 2}, {1, 2},
	},
	NeighbourhoodFlower: {
		{-2, -1}, {-1, 0}, {-2, 1},
		{2, -1}, {1, 0}, {2, 1},
		{-1, -2}, {0, -1}, {1, -2},
		{-1, 2}, {0, 1}, {1, 2},
	},
	NeighbourhoodSquare: {
		{-2, -2}, {-2, -1}, {-2, 0}, {-2, 1},
		{2, -2}, {2, -1}, {2, 0}, {2, 1},
		{-2, 2}, {-1, -2}, {0, -2}, {1, -2},
		{2, 2}, {-1, 2}, {0, 2}, {1, 2},
	},
}

// Offsets returns the fixed offset pattern for the neighbourhood.
// Callers must not modify the returned slice.
func (n PixelNeighbourhood) Offsets() []CellOffset {
	offsets, ok := pixelNeighbourhoodOffsets[n]
	if !ok {
		panic(fmt.Sprintf("invalid pixel neighbourhood %d", n))
	}
	return offsets
}

func RandomPixelNeighbourhood(rng *rand.Rand) PixelNeighbourhood {
	return PixelNeighbourhood(rng.IntN(int(pixelNeighbourhoodCount)))
}

func GeneratePixelNeighbourhood(rng *rand.Rand, ctx *mutagen.Context) PixelNeighbourhood {
	ctx.Report("PixelNeighbourhood", mutagen.EventGenerate)
	return RandomPixelNeighbourhood(rng)
}

func (n PixelNeighbourhood) String() string {
	if name, ok := pixelNeighbourhoodNames[n]; ok {
		return name
	}
	return fmt.Sprintf("PixelNeighbourhood(%d)", uint8(n))
}

func (n PixelNeighbourhood) MarshalJSON() ([]byte, error) {
	name, ok := pixelNeighbourhoodNames[n]
	if !ok {
		return nil, fmt.Errorf("invalid pixel neighbourhood %d", n)
	}
	return []byte(`"` + name + `"`), nil
}

func (n *PixelNeighbourhood) UnmarshalJSON(data []byte) error {
	var name string
	if err := unmarshalString(data, &name); err != nil {
		return err
	}
	for k, v := range pixelNeighbourhoodNames {
		if v == name {
			*n = k
			return nil
		}
	}
	return fmt.Errorf("unknown pixel neighbourhood %q", name)
}
