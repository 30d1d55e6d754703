package color

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/mutagen"
)

// BlendMode is an evolvable choice of color compositing function. Alpha is
// always the mean of the operands' alphas; only the color channels differ
// between modes.
type BlendMode uint8

const (
	BlendDissolve BlendMode = iota
	BlendOverlay
	BlendScreenDodge

	blendModeCount
)

var blendModeNames = map[BlendMode]string{
	BlendDissolve:    "dissolve",
	BlendOverlay:     "overlay",
	BlendScreenDodge: "screen_dodge",
}

// Blend composites a over b. rng drives the dissolve mode's per-call pick
// and is required for every mode so blend choices stay swappable.
func (m BlendMode) Blend(a, b FloatColor, rng *rand.Rand) FloatColor {
	switch m {
	case BlendDissolve:
		if rng.IntN(2) == 0 {
			return a
		}
		return b
	case BlendOverlay:
		return FloatColor{
			R: overlayChannel(a.R.Value(), b.R.Value()),
			G: overlayChannel(a.G.Value(), b.G.Value()),
			B: overlayChannel(a.B.Value(), b.B.Value()),
			A: a.A.Average(b.A),
		}
	case BlendScreenDodge:
		return FloatColor{
			R: screenChannel(a.R.Value(), b.R.Value()),
			G: screenChannel(a.G.Value(), b.G.Value()),
			B: screenChannel(a.B.Value(), b.B.Value()),
			A: a.A.Average(b.A),
		}
	}
	panic(fmt.Sprintf("unknown BlendMode %d", uint8(m)))
}

func overlayChannel(a, b float64) bounded.UNFloat {
	if a < 0.5 {
		return bounded.NewUNFloat(2.0 * a * b)
	}
	return bounded.NewUNFloat(1.0 - 2.0*(1.0-a)*(1.0-b))
}

func screenChannel(a, b float64) bounded.UNFloat {
	return bounded.NewUNFloat(1.0 - (1.0-a)*(1.0-b))
}

// RandomBlendMode samples a mode uniformly.
func RandomBlendMode(rng *rand.Rand) BlendMode {
	return BlendMode(rng.IntN(int(blendModeCount)))
}

// GenerateBlendMode is the framework generation entry point.
func GenerateBlendMode(rng *rand.Rand, ctx *mutagen.Context) BlendMode {
	ctx.Report("BlendMode", mutagen.EventGenerate)
	return RandomBlendMode(rng)
}

// Mutate resamples the mode.
func (m *BlendMode) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("BlendMode", mutagen.EventMutate)
	*m = RandomBlendMode(rng)
}

func (m BlendMode) String() string {
	if s, ok := blendModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

func (m BlendMode) MarshalJSON() ([]byte, error) {
	s, ok := blendModeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown BlendMode %d", uint8(m))
	}
	return []byte(`"` + s + `"`), nil
}

func (m *BlendMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalString(data, &s); err != nil {
		return fmt.Errorf("decoding BlendMode: %w", err)
	}
	for k, v := range blendModeNames {
		if v == s {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("unknown BlendMode %q", s)
}
