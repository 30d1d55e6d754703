package automata

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/buffer"
	"github.com/lixenwraith/substrate/color"
	"github.com/lixenwraith/substrate/mutagen"
)

// NeighbourCountRule maps per-channel neighbour counts to a next colour.
// The truth table is a cube with side len(offsets)+1, so each axis covers
// zero through all-neighbours-present for one RGB channel.
type NeighbourCountRule struct {
	neighbourhood PixelNeighbourhood
	table         []color.BitColor
}

// NewNeighbourCountRule asserts the table length against the
// neighbourhood's cube size.
func NewNeighbourCountRule(neighbourhood PixelNeighbourhood, table []color.BitColor) NeighbourCountRule {
	side := len(neighbourhood.Offsets()) + 1
	if len(table) != side*side*side {
		panic(fmt.Sprintf("invalid neighbour count table length %d for side %d", len(table), side))
	}
	return NeighbourCountRule{neighbourhood: neighbourhood, table: table}
}

func RandomNeighbourCountRule(rng *rand.Rand) NeighbourCountRule {
	neighbourhood := RandomPixelNeighbourhood(rng)
	side := len(neighbourhood.Offsets()) + 1
	table := make([]color.BitColor, side*side*side)
	for i := range table {
		table[i] = color.RandomBitColor(rng)
	}
	return NeighbourCountRule{neighbourhood: neighbourhood, table: table}
}

func GenerateNeighbourCountRule(rng *rand.Rand, ctx *mutagen.Context) NeighbourCountRule {
	ctx.Report("NeighbourCountRule", mutagen.EventGenerate)
	return RandomNeighbourCountRule(rng)
}

func (r NeighbourCountRule) Neighbourhood() PixelNeighbourhood {
	return r.neighbourhood
}

// Side is the per-axis extent of the truth table.
func (r NeighbourCountRule) Side() int {
	return len(r.neighbourhood.Offsets()) + 1
}

// At indexes the table by per-channel neighbour counts.
func (r NeighbourCountRule) At(red, green, blue int) color.BitColor {
	side := r.Side()
	return r.table[(red*side+green)*side+blue]
}

// Next reads the neighbourhood of (x, y) with toroidal wrapping, counts
// neighbours carrying each RGB component, and looks the counts up in the
// table.
func (r NeighbourCountRule) Next(cells *buffer.Buffer[color.BitColor], x, y int) color.BitColor {
	var red, green, blue int
	for _, off := range r.neighbourhood.Offsets() {
		components := cells.AtWrapped(x+off.DX, y+off.DY).ToComponents()
		if components[0] {
			red++
		}
		if components[1] {
			green++
		}
		if components[2] {
			blue++
		}
	}
	return r.At(red, green, blue)
}

// Mutate resamples the whole rule or one table entry.
func (r *NeighbourCountRule) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("NeighbourCountRule", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*r = RandomNeighbourCountRule(rng)
	} else {
		r.table[rng.IntN(len(r.table))] = color.RandomBitColor(rng)
	}
}

type neighbourCountRuleJSON struct {
	Neighbourhood PixelNeighbourhood `json:"neighbourhood"`
	Table         []color.BitColor   `json:"table"`
}

func (r NeighbourCountRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(neighbourCountRuleJSON{
		Neighbourhood: r.neighbourhood,
		Table:         r.table,
	})
}

func (r *NeighbourCountRule) UnmarshalJSON(data []byte) error {
	var decoded neighbourCountRuleJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decoding neighbour count rule: %w", err)
	}
	side := len(decoded.Neighbourhood.Offsets()) + 1
	if len(decoded.Table) != side*side*side {
		return fmt.Errorf("decoding neighbour count rule: table length %d does not match side %d", len(decoded.Table), side)
	}
	*r = NeighbourCountRule{neighbourhood: decoded.Neighbourhood, table: decoded.Table}
	return nil
}
