package automata

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/buffer"
	"github.com/lixenwraith/substrate/color"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 13))
}

func TestRule110Table(t *testing.T) {
	rule := ElementaryFromWolframCode(110)

	cases := []struct {
		l, c, r bool
		want    bool
	}{
		{true, true, true, false},
		{true, true, false, true},
		{true, false, true, true},
		{true, false, false, false},
		{false, true, true, true},
		{false, true, false, true},
		{false, false, true, true},
		{false, false, false, false},
	}
	for _, tc := range cases {
		got := rule.Next(
			bounded.NewBoolean(tc.l),
			bounded.NewBoolean(tc.c),
			bounded.NewBoolean(tc.r),
		)
		assert.Equal(t, tc.want, got.Value(), "neighbourhood %v %v %v", tc.l, tc.c, tc.r)
	}
}

func TestElementaryIndexPacking(t *testing.T) {
	on := bounded.NewBoolean(true)
	off := bounded.NewBoolean(false)

	assert.Equal(t, uint8(1), ElementaryIndex(off, off, on))
	assert.Equal(t, uint8(2), ElementaryIndex(off, on, off))
	assert.Equal(t, uint8(4), ElementaryIndex(on, off, off))
	assert.Equal(t, uint8(7), ElementaryIndex(on, on, on))
}

func TestNeighbourhoodOffsetCounts(t *testing.T) {
	counts := map[PixelNeighbourhood]int{
		NeighbourhoodVertical:       2,
		NeighbourhoodHorizontal:     2,
		NeighbourhoodDiagLeft:       2,
		NeighbourhoodDiagRight:      2,
		NeighbourhoodMelt:           3,
		NeighbourhoodBigMelt:        6,
		NeighbourhoodVonNeumann:     4,
		NeighbourhoodAntiVonNeumann: 4,
		NeighbourhoodCross:          8,
		NeighbourhoodMoore:          8,
		NeighbourhoodSpiral:         8,
		NeighbourhoodDiamond:        8,
		NeighbourhoodCircle:         12,
		NeighbourhoodFlower:         12,
		NeighbourhoodSquare:         16,
	}
	require.Len(t, counts, int(pixelNeighbourhoodCount))
	for n, want := range counts {
		assert.Len(t, n.Offsets(), want, n.String())
	}
}

func TestNeighbourCountRuleLookup(t *testing.T) {
	side := len(NeighbourhoodVonNeumann.Offsets()) + 1
	table := make([]color.BitColor, side*side*side)
	table[(2*side+1)*side+1] = color.BitMagenta

	rule := NewNeighbourCountRule(NeighbourhoodVonNeumann, table)

	cells := buffer.New[color.BitColor](3, 3)
	cells.Set(0, 1, color.BitRed)
	cells.Set(2, 1, color.BitYellow)
	cells.Set(1, 0, color.BitBlue)

	// red count 2 (red, yellow), green count 1 (yellow), blue count 1
	assert.Equal(t, color.BitMagenta, rule.Next(cells, 1, 1))
	assert.Equal(t, color.BitBlack, rule.Next(cells, 0, 0))
}

func TestNeighbourCountRuleTableAssertion(t *testing.T) {
	require.Panics(t, func() {
		NewNeighbourCountRule(NeighbourhoodMoore, make([]color.BitColor, 8))
	})
}

func conwayRule() LifeLikeRule {
	deadTable := func(n PixelNeighbourhood) IndivRule {
		return IndivRule{
			Neighbourhood: n,
			Rules:         make([]LifeLikeTable, len(n.Offsets())+1),
		}
	}

	conway := deadTable(NeighbourhoodMoore)
	conway.Rules[2].Survival = bounded.NewBoolean(true)
	conway.Rules[3].Survival = bounded.NewBoolean(true)
	conway.Rules[3].Birth = bounded.NewBoolean(true)

	rule := LifeLikeRule{ColorOrder: color.BitColorValues()}
	for i := range rule.ColorRules {
		rule.ColorRules[i] = deadTable(NeighbourhoodVertical)
	}
	for i, c := range rule.ColorOrder {
		if c == color.BitWhite {
			rule.ColorRules[i] = conway
		}
	}
	return rule
}

func TestLifeLikeBlinker(t *testing.T) {
	rule := conwayRule()

	cells := buffer.New[color.BitColor](5, 5)
	cells.Set(1, 2, color.BitWhite)
	cells.Set(2, 2, color.BitWhite)
	cells.Set(3, 2, color.BitWhite)

	next := buffer.New[color.BitColor](5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			next.Set(x, y, rule.Next(cells, x, y))
		}
	}

	// horizontal blinker flips to vertical
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := color.BitBlack
			if x == 2 && y >= 1 && y <= 3 {
				want = color.BitWhite
			}
			assert.Equal(t, want, next.At(x, y), "cell (%d, %d)", x, y)
		}
	}
}

func TestLifeLikeNothingFiresGoesBlack(t *testing.T) {
	rule := LifeLikeRule{ColorOrder: color.BitColorValues()}
	for i := range rule.ColorRules {
		rule.ColorRules[i] = IndivRule{
			Neighbourhood: NeighbourhoodVertical,
			Rules:         make([]LifeLikeTable, 3),
		}
	}

	cells := buffer.NewFilled(3, 3, color.BitCyan)
	assert.Equal(t, color.BitBlack, rule.Next(cells, 1, 1))
}

func TestIndivRuleApply(t *testing.T) {
	rule := IndivRule{
		Neighbourhood: NeighbourhoodVertical,
		Rules: []LifeLikeTable{
			{Birth: bounded.NewBoolean(true)},
			{Survival: bounded.NewBoolean(true)},
			{},
		},
	}

	assert.True(t, rule.Apply(false, 0))
	assert.False(t, rule.Apply(true, 0))
	assert.True(t, rule.Apply(true, 1))
	assert.False(t, rule.Apply(false, 1))
	assert.False(t, rule.Apply(true, 2))
}

func TestReseederPattern(t *testing.T) {
	r := Reseeder{
		XMod:    2,
		YMod:    3,
		XOffset: 1,
		YOffset: 2,
		Limit:   4,
		ColorTable: [2][2]color.BitColor{
			{color.BitBlack, color.BitRed},
			{color.BitGreen, color.BitBlue},
		},
	}

	// x=1 hits its modulus, y=1 hits its modulus
	assert.Equal(t, color.BitBlue, r.ReseedCell(1, 1))
	assert.Equal(t, color.BitGreen, r.ReseedCell(1, 0))
	assert.Equal(t, color.BitRed, r.ReseedCell(0, 1))
	assert.Equal(t, color.BitBlack, r.ReseedCell(0, 0))

	cells := buffer.New[color.BitColor](4, 4)
	r.Reseed(cells)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, r.ReseedCell(x, y), cells.At(x, y))
		}
	}
}

func TestReseederMutateKeepsParametersBounded(t *testing.T) {
	rng := testRNG()
	r := NewReseeder(rng, 16, 9)
	require.Equal(t, 9, r.Limit)

	for i := 0; i < 200; i++ {
		r.Mutate(rng, nil)
		for _, v := range []int{r.XMod, r.YMod, r.XOffset, r.YOffset} {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, r.Limit)
		}
	}
}

func TestRuleMutationKeepsShape(t *testing.T) {
	rng := testRNG()

	elementary := RandomElementaryRule(rng)
	neighbourCount := RandomNeighbourCountRule(rng)
	indiv := RandomIndivRule(rng)
	lifeLike := RandomLifeLikeRule(rng)

	for i := 0; i < 100; i++ {
		elementary.Mutate(rng, nil)
		neighbourCount.Mutate(rng, nil)
		indiv.Mutate(rng, nil)
		lifeLike.Mutate(rng, nil)
	}

	side := neighbourCount.Side()
	assert.Equal(t, side, len(neighbourCount.Neighbourhood().Offsets())+1)
	assert.Len(t, indiv.Rules, len(indiv.Neighbourhood.Offsets())+1)
	for i := range lifeLike.ColorRules {
		assert.Len(t, lifeLike.ColorRules[i].Rules,
			len(lifeLike.ColorRules[i].Neighbourhood.Offsets())+1)
	}
}

func TestAutomataJSON(t *testing.T) {
	data, err := json.Marshal(NeighbourhoodVonNeumann)
	require.NoError(t, err)
	assert.Equal(t, `"von_neumann"`, string(data))

	rng := testRNG()

	elementary := RandomElementaryRule(rng)
	data, err = json.Marshal(elementary)
	require.NoError(t, err)
	var elementaryBack ElementaryRule
	require.NoError(t, json.Unmarshal(data, &elementaryBack))
	assert.Equal(t, elementary, elementaryBack)

	neighbourCount := RandomNeighbourCountRule(rng)
	data, err = json.Marshal(neighbourCount)
	require.NoError(t, err)
	var countBack NeighbourCountRule
	require.NoError(t, json.Unmarshal(data, &countBack))
	assert.Equal(t, neighbourCount, countBack)

	lifeLike := RandomLifeLikeRule(rng)
	data, err = json.Marshal(lifeLike)
	require.NoError(t, err)
	var lifeBack LifeLikeRule
	require.NoError(t, json.Unmarshal(data, &lifeBack))
	assert.Equal(t, lifeLike, lifeBack)

	assert.Error(t, json.Unmarshal(
		[]byte(`{"neighbourhood": "moore", "rules": []}`), &IndivRule{}))
}
