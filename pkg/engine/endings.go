package engine

import (
	"github.com/thornsfall/lore-engine/pkg/state"
)

// Ending is a terminal narration. Reaching one ends the session; the state
// record itself is not marked.
type Ending struct {
	Name      string `json:"name"`
	Narration string `json:"narration"`
}

// Ending names, in priority order.
const (
	EndingDeath     = "death"
	EndingAlliance  = "alliance"
	EndingSovereign = "sovereign"
	EndingGuardian  = "guardian"
	EndingExile     = "exile"
)

type endingRule struct {
	name      string
	when      func(st *state.StoryState) bool
	narration string
}

// endingRules are evaluated in order; the first match wins. Death outranks
// everything else, so a dead oath-bound champion still dies.
var endingRules = []endingRule{
	{
		name:      EndingDeath,
		when:      func(st *state.StoryState) bool { return st.Health <= 0 },
		narration: "Your story ends beneath black boughs. Even the forest bows its head.",
	},
	{
		name: EndingAlliance,
		when: func(st *state.StoryState) bool {
			return st.TrustDemonLord >= 80 && st.Power >= 70 && st.Flag("oath_bound")
		},
		narration: "Side by side with {dl}, you confront the crown. Proof and power make a quiet revolution.\n" +
			"The heroes who betrayed you kneel, not to force, but to truth. The forest grows less afraid.",
	},
	{
		name: EndingSovereign,
		when: func(st *state.StoryState) bool {
			return st.Notoriety >= 80 && st.Power >= 80 && st.Morality <= -30
		},
		narration: "Feared and unstoppable, you become a storm that keeps its own counsel. Kings learn to read the sky.",
	},
	{
		name: EndingGuardian,
		when: func(st *state.StoryState) bool {
			return st.Morality >= 80 && st.Power >= 50
		},
		narration: "You choose to guard rather than rule. Roads are safer where your shadow falls.",
	},
	{
		name: EndingExile,
		when: func(st *state.StoryState) bool {
			return st.Chapter >= 30 && st.TrustDemonLord < 40 && st.Notoriety < 40
		},
		narration: "Years pass like leaves. Your name fades, but the people you saved remember.\n" +
			"Not all legends need thrones.",
	},
}

// CheckEnding evaluates the ending predicates in priority order and returns
// the first match, or nil while the story continues.
func (e *Engine) CheckEnding(st *state.StoryState) *Ending {
	for _, rule := range endingRules {
		if rule.when(st) {
			return &Ending{
				Name:      rule.name,
				Narration: interpolate(rule.narration, st),
			}
		}
	}
	return nil
}
