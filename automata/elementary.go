package automata

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/mutagen"
)

// ElementaryRule is a binary elementary cellular automaton rule: an
// 8-entry truth table indexed by the (left, centre, right) neighbourhood.
type ElementaryRule struct {
	Pattern [8]bounded.Boolean `json:"pattern"`
}

// ElementaryIndex packs a 3-cell neighbourhood into a table index with
// right as bit 0, centre as bit 1 and left as bit 2.
func ElementaryIndex(l, c, r bounded.Boolean) uint8 {
	var index uint8
	if r.Value() {
		index |= 1
	}
	if c.Value() {
		index |= 2
	}
	if l.Value() {
		index |= 4
	}
	return index
}

// ElementaryFromWolframCode builds the rule whose table is the binary
// expansion of the Wolfram code, least significant bit first.
func ElementaryFromWolframCode(code uint8) ElementaryRule {
	var rule ElementaryRule
	for i := range rule.Pattern {
		rule.Pattern[i] = bounded.NewBoolean(code&(1<<i) != 0)
	}
	return rule
}

func RandomElementaryRule(rng *rand.Rand) ElementaryRule {
	var rule ElementaryRule
	for i := range rule.Pattern {
		rule.Pattern[i] = bounded.RandomBoolean(rng)
	}
	return rule
}

func GenerateElementaryRule(rng *rand.Rand, ctx *mutagen.Context) ElementaryRule {
	ctx.Report("ElementaryRule", mutagen.EventGenerate)
	return RandomElementaryRule(rng)
}

// Next evaluates the rule for one neighbourhood.
func (r ElementaryRule) Next(l, c, right bounded.Boolean) bounded.Boolean {
	return r.Pattern[ElementaryIndex(l, c, right)]
}

// Mutate resamples the whole table or toggles a single entry.
func (r *ElementaryRule) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("ElementaryRule", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*r = RandomElementaryRule(rng)
	} else {
		i := rng.IntN(len(r.Pattern))
		r.Pattern[i] = r.Pattern[i].Toggle()
	}
}

func unmarshalString(data []byte, s *string) error {
	return json.Unmarshal(data, s)
}
