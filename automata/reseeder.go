package automata

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/buffer"
	"github.com/lixenwraith/substrate/color"
	"github.com/lixenwraith/substrate/mutagen"
)

// Reseeder repopulates a colour cell grid with a modulus pattern: each
// cell picks one of four colours depending on whether its offset x and y
// coordinates land on their modulus. Limit caps the moduli and offsets at
// the smaller grid dimension so mutation keeps the pattern visible.
type Reseeder struct {
	XMod       int                  `json:"x_mod"`
	YMod       int                  `json:"y_mod"`
	XOffset    int                  `json:"x_offset"`
	YOffset    int                  `json:"y_offset"`
	Limit      int                  `json:"limit"`
	ColorTable [2][2]color.BitColor `json:"color_table"`
}

// NewReseeder builds a reseeder for a grid of the given dimensions, with
// random pattern parameters. Moduli and offsets stay in [1, Limit].
func NewReseeder(rng *rand.Rand, width, height int) Reseeder {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid reseeder grid dimensions %dx%d", width, height))
	}
	limit := min(width, height)
	r := Reseeder{
		XMod:    rng.IntN(limit) + 1,
		YMod:    rng.IntN(limit) + 1,
		XOffset: rng.IntN(limit) + 1,
		YOffset: rng.IntN(limit) + 1,
		Limit:   limit,
	}
	for i := range r.ColorTable {
		for j := range r.ColorTable[i] {
			r.ColorTable[i][j] = color.RandomBitColor(rng)
		}
	}
	return r
}

// ReseedCell picks the colour for one cell.
func (r Reseeder) ReseedCell(x, y int) color.BitColor {
	xi, yi := 0, 0
	if (x+r.XOffset)%r.XMod == 0 {
		xi = 1
	}
	if (y+r.YOffset)%r.YMod == 0 {
		yi = 1
	}
	return r.ColorTable[xi][yi]
}

// Reseed overwrites every cell of the grid.
func (r Reseeder) Reseed(cells *buffer.Buffer[color.BitColor]) {
	for y := 0; y < cells.Height(); y++ {
		for x := 0; x < cells.Width(); x++ {
			cells.Set(x, y, r.ReseedCell(x, y))
		}
	}
}

// Mutate perturbs each pattern parameter behind its own coin flip, either
// resampling it or nudging it by one within [1, Limit], and optionally
// re-rolls one colour table entry.
func (r *Reseeder) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("Reseeder", mutagen.EventMutate)

	nudge := func(v int) int { return (v % r.Limit) + 1 }

	for _, field := range []*int{&r.XMod, &r.XOffset, &r.YMod, &r.YOffset} {
		if rng.IntN(2) == 0 {
			*field = rng.IntN(r.Limit) + 1
		}
		if rng.IntN(2) == 0 {
			*field = nudge(*field)
		}
	}

	if rng.IntN(2) == 0 {
		r.ColorTable[rng.IntN(2)][rng.IntN(2)] = color.RandomBitColor(rng)
	}
}
