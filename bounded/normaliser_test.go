package bounded

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSFloatNormaliserAllPoliciesInRange(t *testing.T) {
	rng := testRNG()
	policies := []SFloatNormaliser{
		SFloatNormSawtooth, SFloatNormTriangle, SFloatNormSin,
		SFloatNormSinRepeating, SFloatNormTanH, SFloatNormClamp,
		SFloatNormFractional, SFloatNormRandom,
	}
	inputs := []float64{0.0, 0.5, -0.5, 1.0, -1.0, 17.3, -42.9, 1e9, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, p := range policies {
		for _, v := range inputs {
			got := p.Normalise(v, rng)
			assert.GreaterOrEqual(t, got.Value(), -1.0, "%s(%v)", p, v)
			assert.LessOrEqual(t, got.Value(), 1.0, "%s(%v)", p, v)
		}
	}
}

func TestUFloatNormaliserAllPoliciesInRange(t *testing.T) {
	rng := testRNG()
	policies := []UFloatNormaliser{
		UFloatNormSawtooth, UFloatNormTriangle, UFloatNormSin,
		UFloatNormSinRepeating, UFloatNormClamp, UFloatNormRandom,
	}
	inputs := []float64{0.0, 0.5, 1.0, -3.7, 128.1, math.NaN(), math.Inf(1)}
	for _, p := range policies {
		for _, v := range inputs {
			got := p.Normalise(v, rng)
			assert.GreaterOrEqual(t, got.Value(), 0.0, "%s(%v)", p, v)
			assert.LessOrEqual(t, got.Value(), 1.0, "%s(%v)", p, v)
		}
	}
}

func TestNormaliserNonFiniteCoercesToZero(t *testing.T) {
	rng := testRNG()
	assert.Equal(t, 0.0, SFloatNormClamp.Normalise(math.NaN(), rng).Value())
	assert.Equal(t, 0.0, SFloatNormClamp.Normalise(math.Inf(1), rng).Value())
	assert.Equal(t, 0.0, UFloatNormClamp.Normalise(math.Inf(-1), rng).Value())
}

func TestNormaliserRandomPolicyKeepsInRangeValues(t *testing.T) {
	rng := testRNG()
	assert.Equal(t, 0.25, SFloatNormRandom.Normalise(0.25, rng).Value())
	assert.Equal(t, 0.75, UFloatNormRandom.Normalise(0.75, rng).Value())
}

func TestNormalisedAddSub(t *testing.T) {
	rng := testRNG()
	a := NewSNFloat(0.75)
	b := NewSNFloat(0.75)
	assert.InDelta(t, -0.5, a.NormalisedAdd(b, SFloatNormSawtooth, rng).Value(), 1e-12)
	assert.InDelta(t, 1.0, a.NormalisedAdd(b, SFloatNormClamp, rng).Value(), 1e-12)
	assert.InDelta(t, 0.0, a.NormalisedSub(b, SFloatNormClamp, rng).Value(), 1e-12)
}

func TestNormaliserJSONRoundTrip(t *testing.T) {
	p := SFloatNormSinRepeating
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"sin_repeating"`, string(data))

	var back SFloatNormaliser
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)

	var bad UFloatNormaliser
	err = json.Unmarshal([]byte(`"spline"`), &bad)
	require.Error(t, err)
}

func TestRandomNormaliserCoversVariants(t *testing.T) {
	rng := testRNG()
	seen := map[SFloatNormaliser]bool{}
	for i := 0; i < 500; i++ {
		seen[RandomSFloatNormaliser(rng)] = true
	}
	assert.Len(t, seen, int(sFloatNormCount))
}
