// Package buffer provides a rectangular cell grid addressed either by
// integer cell coordinates or by signed-unit-square points. It backs the
// automata rule engine's cell arrays and any rasterised intermediate a
// generator wants to draw into.
package buffer

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/geom"
	"github.com/lixenwraith/substrate/mutagen"
)

// Buffer is a width x height grid of T stored row-major.
type Buffer[T any] struct {
	cells  []T
	width  int
	height int
}

// New returns a zero-valued buffer. Dimensions must be positive.
func New[T any](width, height int) *Buffer[T] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid buffer dimensions %dx%d", width, height))
	}
	return &Buffer[T]{
		cells:  make([]T, width*height),
		width:  width,
		height: height,
	}
}

// NewFilled returns a buffer with every cell set to fill.
func NewFilled[T any](width, height int, fill T) *Buffer[T] {
	b := New[T](width, height)
	b.Fill(fill)
	return b
}

// Generate builds a buffer with random dimensions in [1, 256] per axis and
// every cell drawn from gen.
func Generate[T any](rng *rand.Rand, ctx *mutagen.Context, gen mutagen.GenerateFunc[T]) *Buffer[T] {
	ctx.Report("Buffer", mutagen.EventGenerate)
	b := New[T](
		int(bounded.RandomByte(rng).Value())+1,
		int(bounded.RandomByte(rng).Value())+1,
	)
	for i := range b.cells {
		b.cells[i] = gen(rng, ctx)
	}
	return b
}

func (b *Buffer[T]) Width() int  { return b.width }
func (b *Buffer[T]) Height() int { return b.height }

// At indexes a cell; out-of-range coordinates are caller bugs.
func (b *Buffer[T]) At(x, y int) T {
	return b.cells[y*b.width+x]
}

// Set writes a cell; out-of-range coordinates are caller bugs.
func (b *Buffer[T]) Set(x, y int, value T) {
	b.cells[y*b.width+x] = value
}

// AtWrapped indexes a cell with toroidal wrapping on both axes, so any
// integer coordinate is valid. Neighbourhood sampling uses this to read
// across the grid edge.
func (b *Buffer[T]) AtWrapped(x, y int) T {
	x %= b.width
	if x < 0 {
		x += b.width
	}
	y %= b.height
	if y < 0 {
		y += b.height
	}
	return b.cells[y*b.width+x]
}

// Fill sets every cell to value.
func (b *Buffer[T]) Fill(value T) {
	for i := range b.cells {
		b.cells[i] = value
	}
}

// PointToCell maps a signed-unit-square point to cell coordinates. The
// point is shifted to [0, 1] per axis, scaled by the axis size, rounded,
// and clamped so that +1.0 lands on the last cell rather than one past it.
func (b *Buffer[T]) PointToCell(p geom.SNPoint) (int, int) {
	x := int(math.Round(p.X().ToUnsigned().Value() * float64(b.width)))
	y := int(math.Round(p.Y().ToUnsigned().Value() * float64(b.height)))
	return min(x, b.width-1), min(y, b.height-1)
}

// AtPoint reads the cell under p.
func (b *Buffer[T]) AtPoint(p geom.SNPoint) T {
	x, y := b.PointToCell(p)
	return b.At(x, y)
}

// DrawDot writes value into the single cell under pos.
func (b *Buffer[T]) DrawDot(pos geom.SNPoint, value T) {
	x, y := b.PointToCell(pos)
	b.Set(x, y, value)
}

// DrawLine writes value along the Bresenham line between the cells under
// from and to, inclusive of both endpoints.
func (b *Buffer[T]) DrawLine(from, to geom.SNPoint, value T) {
	x0, y0 := b.PointToCell(from)
	x1, y1 := b.PointToCell(to)

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	dy = -dy

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		b.Set(x0, y0, value)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Info describes a buffer's dimensions. Serialization keeps only this;
// cell contents are transient and reload zero-valued.
type Info struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (b *Buffer[T]) Info() Info {
	return Info{Width: b.width, Height: b.height}
}

func (b *Buffer[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Info())
}

func (b *Buffer[T]) UnmarshalJSON(data []byte) error {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return fmt.Errorf("decoding buffer info: %w", err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return fmt.Errorf("decoding buffer info: invalid dimensions %dx%d", info.Width, info.Height)
	}
	*b = *New[T](info.Width, info.Height)
	return nil
}
