package engine

import (
	"math/rand"
	"strings"

	"github.com/thornsfall/lore-engine/pkg/state"
)

// Engine selects scenes and applies choice effects against a StoryState.
// All randomness flows through one seeded stream: given the same seed and
// the same sequence of choices, two runs replay identically. That contract
// is what keeps loaded saves reproducible, so nothing here may draw from
// the stream outside RenderScene and Drift.
type Engine struct {
	rng *rand.Rand
}

// New creates an engine seeded for one playthrough.
func New(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Reseed resets the random stream. Called after loading a save, so the
// resumed session continues with the state's own seed.
func (e *Engine) Reseed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// chance reports true with probability p, consuming exactly one draw.
func (e *Engine) chance(p float64) bool {
	return e.rng.Float64() < p
}

var driftDeltas = []int{-2, -1, 1, 2}

// Drift applies the incidental post-choice health nudge: with probability
// 0.15, health moves by ±1 or ±2. At most two draws, in a fixed order.
func (e *Engine) Drift(st *state.StoryState) {
	if !e.chance(0.15) {
		return
	}
	st.Adjust(state.AttrHealth, driftDeltas[e.rng.Intn(len(driftDeltas))])
}

// demonLordName returns the frozen demon lord name, or a neutral fallback
// for states that have not yet rendered the intro.
func demonLordName(st *state.StoryState) string {
	if st.DemonLordName != "" {
		return st.DemonLordName
	}
	return "the Demon Lord"
}

// interpolate substitutes the demon lord name into a narration template.
func interpolate(text string, st *state.StoryState) string {
	return strings.ReplaceAll(text, "{dl}", demonLordName(st))
}
