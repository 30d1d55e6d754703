package bounded

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/mutagen"
)

// A normaliser is a named policy for forcing an unbounded float back into
// a bounded type's range. Arithmetic on bounded values goes through one of
// these whenever a sum or difference can escape the range, so the escape
// behaviour itself is an evolvable parameter. Non-finite inputs are
// coerced to zero before any policy is applied.

// SFloatNormaliser maps arbitrary floats into [-1, 1].
type SFloatNormaliser uint8

const (
	SFloatNormSawtooth SFloatNormaliser = iota
	SFloatNormTriangle
	SFloatNormSin
	SFloatNormSinRepeating
	SFloatNormTanH
	SFloatNormClamp
	SFloatNormFractional
	SFloatNormRandom

	sFloatNormCount
)

var sFloatNormNames = map[SFloatNormaliser]string{
	SFloatNormSawtooth:     "sawtooth",
	SFloatNormTriangle:     "triangle",
	SFloatNormSin:          "sin",
	SFloatNormSinRepeating: "sin_repeating",
	SFloatNormTanH:         "tanh",
	SFloatNormClamp:        "clamp",
	SFloatNormFractional:   "fractional",
	SFloatNormRandom:       "random",
}

// Normalise applies the policy to v. rng is consulted only by the random
// policy but is required so callers never special-case it.
func (n SFloatNormaliser) Normalise(v float64, rng *rand.Rand) SNFloat {
	v = finiteOrZero(v)
	switch n {
	case SFloatNormSawtooth:
		return SNFloatSawtooth(v)
	case SFloatNormTriangle:
		return SNFloatTriangle(v)
	case SFloatNormSin:
		return SNFloatSin(v)
	case SFloatNormSinRepeating:
		return SNFloatSinRepeating(v)
	case SFloatNormTanH:
		return SNFloatTanH(v)
	case SFloatNormClamp:
		return SNFloatClamped(v)
	case SFloatNormFractional:
		return SNFloatFractional(v)
	case SFloatNormRandom:
		return SNFloatRandomClamped(rng, v)
	}
	panic(fmt.Sprintf("unknown SFloatNormaliser %d", n))
}

// RandomSFloatNormaliser samples a policy uniformly.
func RandomSFloatNormaliser(rng *rand.Rand) SFloatNormaliser {
	return SFloatNormaliser(rng.IntN(int(sFloatNormCount)))
}

// GenerateSFloatNormaliser is the framework generation entry point.
func GenerateSFloatNormaliser(rng *rand.Rand, ctx *mutagen.Context) SFloatNormaliser {
	ctx.Report("SFloatNormaliser", mutagen.EventGenerate)
	return RandomSFloatNormaliser(rng)
}

// Mutate resamples the policy.
func (n *SFloatNormaliser) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("SFloatNormaliser", mutagen.EventMutate)
	*n = RandomSFloatNormaliser(rng)
}

func (n SFloatNormaliser) String() string {
	if s, ok := sFloatNormNames[n]; ok {
		return s
	}
	return fmt.Sprintf("SFloatNormaliser(%d)", uint8(n))
}

func (n SFloatNormaliser) MarshalJSON() ([]byte, error) {
	s, ok := sFloatNormNames[n]
	if !ok {
		return nil, fmt.Errorf("unknown SFloatNormaliser %d", uint8(n))
	}
	return []byte(`"` + s + `"`), nil
}

func (n *SFloatNormaliser) UnmarshalJSON(data []byte) error {
	name, err := unquote(data)
	if err != nil {
		return fmt.Errorf("decoding SFloatNormaliser: %w", err)
	}
	for k, v := range sFloatNormNames {
		if v == name {
			*n = k
			return nil
		}
	}
	return fmt.Errorf("unknown SFloatNormaliser %q", name)
}

// UFloatNormaliser maps arbitrary floats into [0, 1].
type UFloatNormaliser uint8

const (
	UFloatNormSawtooth UFloatNormaliser = iota
	UFloatNormTriangle
	UFloatNormSin
	UFloatNormSinRepeating
	UFloatNormClamp
	UFloatNormRandom

	uFloatNormCount
)

var uFloatNormNames = map[UFloatNormaliser]string{
	UFloatNormSawtooth:     "sawtooth",
	UFloatNormTriangle:     "triangle",
	UFloatNormSin:          "sin",
	UFloatNormSinRepeating: "sin_repeating",
	UFloatNormClamp:        "clamp",
	UFloatNormRandom:       "random",
}

// Normalise applies the policy to v.
func (n UFloatNormaliser) Normalise(v float64, rng *rand.Rand) UNFloat {
	v = finiteOrZero(v)
	switch n {
	case UFloatNormSawtooth:
		return UNFloatSawtooth(v)
	case UFloatNormTriangle:
		return UNFloatTriangle(v)
	case UFloatNormSin:
		return UNFloatSin(v)
	case UFloatNormSinRepeating:
		return UNFloatSinRepeating(v)
	case UFloatNormClamp:
		return UNFloatClamped(v)
	case UFloatNormRandom:
		return UNFloatRandomClamped(rng, v)
	}
	panic(fmt.Sprintf("unknown UFloatNormaliser %d", n))
}

// RandomUFloatNormaliser samples a policy uniformly.
func RandomUFloatNormaliser(rng *rand.Rand) UFloatNormaliser {
	return UFloatNormaliser(rng.IntN(int(uFloatNormCount)))
}

// GenerateUFloatNormaliser is the framework generation entry point.
func GenerateUFloatNormaliser(rng *rand.Rand, ctx *mutagen.Context) UFloatNormaliser {
	ctx.Report("UFloatNormaliser", mutagen.EventGenerate)
	return RandomUFloatNormaliser(rng)
}

// Mutate resamples the policy.
func (n *UFloatNormaliser) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("UFloatNormaliser", mutagen.EventMutate)
	*n = RandomUFloatNormaliser(rng)
}

func (n UFloatNormaliser) String() string {
	if s, ok := uFloatNormNames[n]; ok {
		return s
	}
	return fmt.Sprintf("UFloatNormaliser(%d)", uint8(n))
}

func (n UFloatNormaliser) MarshalJSON() ([]byte, error) {
	s, ok := uFloatNormNames[n]
	if !ok {
		return nil, fmt.Errorf("unknown UFloatNormaliser %d", uint8(n))
	}
	return []byte(`"` + s + `"`), nil
}

func (n *UFloatNormaliser) UnmarshalJSON(data []byte) error {
	name, err := unquote(data)
	if err != nil {
		return fmt.Errorf("decoding UFloatNormaliser: %w", err)
	}
	for k, v := range uFloatNormNames {
		if v == name {
			*n = k
			return nil
		}
	}
	return fmt.Errorf("unknown UFloatNormaliser %q", name)
}
