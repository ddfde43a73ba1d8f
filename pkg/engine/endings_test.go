package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornsfall/lore-engine/pkg/state"
)

func TestCheckEnding_InProgress(t *testing.T) {
	eng := New(1)
	assert.Nil(t, eng.CheckEnding(state.Default()))
}

func TestCheckEnding_Predicates(t *testing.T) {
	tests := []struct {
		name  string
		setup func(st *state.StoryState)
		want  string
	}{
		{
			name:  "death at zero health",
			setup: func(st *state.StoryState) { st.Health = 0 },
			want:  EndingDeath,
		},
		{
			name: "alliance needs trust, power and the oath",
			setup: func(st *state.StoryState) {
				st.TrustDemonLord = 80
				st.Power = 70
				st.Flags["oath_bound"] = true
			},
			want: EndingAlliance,
		},
		{
			name: "sovereign needs infamy and dark morality",
			setup: func(st *state.StoryState) {
				st.Notoriety = 85
				st.Power = 90
				st.Morality = -30
			},
			want: EndingSovereign,
		},
		{
			name: "guardian needs virtue and strength",
			setup: func(st *state.StoryState) {
				st.Morality = 80
				st.Power = 50
			},
			want: EndingGuardian,
		},
		{
			name: "exile after a long unremarkable road",
			setup: func(st *state.StoryState) {
				st.Chapter = 30
				st.TrustDemonLord = 39
				st.Notoriety = 39
			},
			want: EndingExile,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := state.Default()
			tc.setup(st)

			ending := New(1).CheckEnding(st)
			require.NotNil(t, ending)
			assert.Equal(t, tc.want, ending.Name)
			assert.NotEmpty(t, ending.Narration)
		})
	}
}

func TestCheckEnding_DeathOutranksAlliance(t *testing.T) {
	st := state.Default()
	st.Health = 0
	st.TrustDemonLord = 100
	st.Power = 100
	st.Flags["oath_bound"] = true

	ending := New(1).CheckEnding(st)
	require.NotNil(t, ending)
	assert.Equal(t, EndingDeath, ending.Name)
}

func TestCheckEnding_AllianceOutranksSovereign(t *testing.T) {
	st := state.Default()
	st.TrustDemonLord = 90
	st.Power = 90
	st.Notoriety = 90
	st.Morality = -50
	st.Flags["oath_bound"] = true

	ending := New(1).CheckEnding(st)
	require.NotNil(t, ending)
	assert.Equal(t, EndingAlliance, ending.Name)
}

func TestCheckEnding_AllianceNamesTheDemonLord(t *testing.T) {
	st := state.Default()
	st.DemonLordName = "Velaria"
	st.TrustDemonLord = 80
	st.Power = 70
	st.Flags["oath_bound"] = true

	ending := New(1).CheckEnding(st)
	require.NotNil(t, ending)
	assert.Contains(t, ending.Narration, "Velaria")
	assert.NotContains(t, ending.Narration, "{dl}")
}

func TestCheckEnding_NearMisses(t *testing.T) {
	tests := []struct {
		name  string
		setup func(st *state.StoryState)
	}{
		{
			name: "alliance without the oath",
			setup: func(st *state.StoryState) {
				st.TrustDemonLord = 100
				st.Power = 100
			},
		},
		{
			name: "sovereign with neutral morality",
			setup: func(st *state.StoryState) {
				st.Notoriety = 100
				st.Power = 100
				st.Morality = 0
			},
		},
		{
			name: "guardian without the strength",
			setup: func(st *state.StoryState) {
				st.Morality = 100
				st.Power = 49
			},
		},
		{
			name: "exile too early",
			setup: func(st *state.StoryState) {
				st.Chapter = 29
				st.TrustDemonLord = 0
				st.Notoriety = 0
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := state.Default()
			tc.setup(st)
			assert.Nil(t, New(1).CheckEnding(st))
		})
	}
}
