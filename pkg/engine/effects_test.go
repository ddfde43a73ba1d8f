package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornsfall/lore-engine/pkg/state"
)

func freshState() *state.StoryState {
	st := state.New("Effects", 1)
	st.DemonLordName = "Nyx"
	return st
}

func TestApplyChoice_ExactDeltas(t *testing.T) {
	tests := []struct {
		tag   string
		check func(t *testing.T, st *state.StoryState)
	}{
		{
			tag: "intro_plead",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 10, st.Morality)
				assert.Equal(t, 25, st.TrustDemonLord)
				assert.True(t, st.Flags["seeking_truth"])
			},
		},
		{
			tag: "intro_vengeance",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, -10, st.Morality)
				assert.Equal(t, 30, st.Power)
				assert.Equal(t, 15, st.TrustDemonLord)
				assert.True(t, st.Flags["vow_revenge"])
			},
		},
		{
			tag: "intro_fight",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 65, st.Health)
				assert.Equal(t, 25, st.Power)
				assert.Equal(t, 20, st.TrustDemonLord)
			},
		},
		{
			tag: "train_sync",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 26, st.Power)
				assert.Equal(t, 20, st.TrustDemonLord)
				assert.Equal(t, 1, st.BondDemonLord)
			},
		},
		{
			tag: "oath_sworn",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 30, st.TrustDemonLord)
				assert.Equal(t, 3, st.BondDemonLord)
				assert.True(t, st.Flags["oath_bound"])
			},
		},
		{
			tag: "oath_refuse",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 0, st.TrustDemonLord) // 10 - 12, clamped at the floor
				assert.False(t, st.Flags["allied"])
			},
		},
		{
			tag: "bargain_memory",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 35, st.Power)
				assert.Equal(t, -8, st.Morality)
				require.Len(t, st.History, 1)
				assert.Equal(t, "You traded a cherished memory at the Thorn Altar.", st.History[0])
			},
		},
		{
			tag: "ruins_force",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 28, st.Power)
				assert.Equal(t, -4, st.Morality)
				assert.Contains(t, st.Inventory, "Vault Relic")
			},
		},
		{
			tag: "rescue_shield",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 10, st.Morality)
				assert.Equal(t, 72, st.Health)
				assert.Equal(t, 14, st.TrustDemonLord)
			},
		},
		{
			tag: "whisper_follow",
			check: func(t *testing.T, st *state.StoryState) {
				assert.Equal(t, 4, st.Notoriety)
				assert.True(t, st.Flags["betrayer_trail"])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			st := freshState()
			eng := New(1)

			narration := eng.ApplyChoice(st, tc.tag)

			assert.Equal(t, 1, st.Chapter)
			assert.NotEmpty(t, narration)
			assert.NotContains(t, narration, "{dl}", "templates must be interpolated")
			tc.check(t, st)
		})
	}
}

func TestApplyChoice_RepeatedRelicStaysUnique(t *testing.T) {
	st := freshState()
	eng := New(1)

	eng.ApplyChoice(st, "ruins_force")
	eng.ApplyChoice(st, "ruins_force")

	count := 0
	for _, item := range st.Inventory {
		if item == "Vault Relic" {
			count++
		}
	}
	assert.Equal(t, 1, count, "inventory must stay duplicate-free")
}

func TestApplyChoice_UnknownTag(t *testing.T) {
	st := freshState()
	eng := New(1)
	before := *st

	narration := eng.ApplyChoice(st, "stale_scene_tag")

	assert.Equal(t, unknownChoiceNarration, narration)
	assert.Equal(t, before.Chapter+1, st.Chapter)

	// No other mutation happens on an unknown tag.
	assert.Equal(t, before.Health, st.Health)
	assert.Equal(t, before.Power, st.Power)
	assert.Equal(t, before.Morality, st.Morality)
	assert.Equal(t, before.Notoriety, st.Notoriety)
	assert.Equal(t, before.TrustDemonLord, st.TrustDemonLord)
	assert.Equal(t, before.BondDemonLord, st.BondDemonLord)
}

func TestEffectTable_Interpolation(t *testing.T) {
	st := freshState()
	eng := New(1)

	narration := eng.ApplyChoice(st, "intro_pact")
	assert.Contains(t, narration, "Nyx")
}

func TestEffectTable_Complete(t *testing.T) {
	// One entry per choice across all scenes.
	sceneTags := make(map[string]bool)
	st := state.Default()
	st.DemonLordName = "Nyx"
	for _, render := range sceneRenderers {
		for _, c := range render(st).Choices {
			sceneTags[c.Tag] = true
		}
	}
	for _, tag := range []string{"intro_plead", "intro_vengeance", "intro_pact", "intro_fight"} {
		sceneTags[tag] = true
	}

	for tag := range sceneTags {
		_, ok := effects[tag]
		assert.True(t, ok, "scene offers tag %q with no effect entry", tag)
	}
	for tag := range effects {
		assert.True(t, sceneTags[tag], "effect entry %q is offered by no scene", tag)
	}
}
