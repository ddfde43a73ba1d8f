package engine

import (
	"github.com/thornsfall/lore-engine/pkg/state"
)

// attrDelta is one clamped attribute adjustment.
type attrDelta struct {
	Attr  state.Attribute
	Delta int
}

// Effect is the full outcome of one choice tag: attribute deltas, flag
// writes, bond growth, items, history lines and the narration shown to the
// player. The narration may interpolate the demon lord's name via {dl}.
type Effect struct {
	Deltas    []attrDelta
	SetFlags  map[string]bool
	Bond      int
	AddItems  []string
	History   []string
	Narration string
}

const unknownChoiceNarration = "Time moves, yet nothing decisive happens. Perhaps the next choice will cut deeper."

// effects is the exhaustive tag→effect table. One entry per choice across
// every scene; the deltas and flag names here are the story's balance and
// must not drift casually.
var effects = map[string]Effect{
	// Intro
	"intro_plead": {
		Deltas:    []attrDelta{{state.AttrMorality, 10}, {state.AttrTrust, 15}},
		SetFlags:  map[string]bool{"seeking_truth": true},
		Narration: "You speak plainly of betrayal. {dl} studies the cracks in your voice and lowers her hand. \"Truth cuts deeper than any blade,\" she says.",
	},
	"intro_vengeance": {
		Deltas:    []attrDelta{{state.AttrMorality, -10}, {state.AttrPower, 10}, {state.AttrTrust, 5}},
		SetFlags:  map[string]bool{"vow_revenge": true},
		Narration: "Vengeance burns like pitch. {dl} smiles—a small, dangerous thing. \"Then we understand each other.\"",
	},
	"intro_pact": {
		Deltas:    []attrDelta{{state.AttrTrust, 20}},
		SetFlags:  map[string]bool{"allied": true},
		Narration: "You offer terms, not supplication. {dl} clasps your wrist. \"We hunt different prey—but we can share the trail.\"",
	},
	"intro_fight": {
		// Respect through defiance.
		Deltas:    []attrDelta{{state.AttrHealth, -15}, {state.AttrPower, 5}, {state.AttrTrust, 10}},
		Narration: "Steel rings. You draw blood and pay in kind. {dl} laughs like thunder far away. \"Live, then. Earn the right to stand.\"",
	},

	// Camp
	"camp_confide": {
		Deltas:    []attrDelta{{state.AttrMorality, 5}, {state.AttrTrust, 12}},
		Narration: "Your memory is a splinter. You let it out. {dl} listens without mercy—without judgment. The fire warms, just a little.",
	},
	"camp_silence": {
		Deltas:    []attrDelta{{state.AttrPower, 5}, {state.AttrTrust, 2}},
		Narration: "You sharpen steel and silence. Sparks chart constellations no map has named.",
	},
	"camp_probe": {
		Deltas:    []attrDelta{{state.AttrTrust, -3}, {state.AttrNotoriety, 5}},
		Narration: "Questions are knives. {dl} answers some and turns aside others. You learn enough to be wary—and useful.",
	},
	"camp_scout": {
		Deltas:    []attrDelta{{state.AttrPower, 3}, {state.AttrHealth, 3}},
		Narration: "You pace the warding ring. Footprints. A bent reed. The forest is a chessboard and you are learning the moves.",
	},

	// Training
	"train_defense": {
		Deltas:    []attrDelta{{state.AttrPower, 7}, {state.AttrMorality, 5}, {state.AttrTrust, 5}},
		Narration: "Your ward blooms like a quiet star. It holds when claws descend. Somewhere, someone will live because of this.",
	},
	"train_wrath": {
		Deltas:    []attrDelta{{state.AttrPower, 12}, {state.AttrMorality, -6}, {state.AttrNotoriety, 6}},
		Narration: "You inhale the storm and exhale ruin. The stones remember your name as a crack.",
	},
	"train_sync": {
		Deltas:    []attrDelta{{state.AttrPower, 6}, {state.AttrTrust, 10}},
		Bond:      1,
		Narration: "Step, strike, breathe—together. {dl}'s motion becomes a language you begin to read.",
	},

	// Council
	"council_diplomacy": {
		Deltas:    []attrDelta{{state.AttrMorality, 8}, {state.AttrTrust, 6}},
		SetFlags:  map[string]bool{"seeking_truth": true},
		Narration: "You chart a path of proof and patience. The hall quiets; even war can listen.",
	},
	"council_raids": {
		Deltas:    []attrDelta{{state.AttrPower, 8}, {state.AttrNotoriety, 10}},
		SetFlags:  map[string]bool{"vow_revenge": true},
		Narration: "Targets line the map like sins. You thread a needle through them made of fire.",
	},
	"council_parley": {
		Deltas:    []attrDelta{{state.AttrMorality, 3}, {state.AttrNotoriety, 3}},
		SetFlags:  map[string]bool{"parley_set": true},
		Narration: "A secret parley—dangerous, delicate. If it holds, the story changes.",
	},

	// Oath
	"oath_sworn": {
		Deltas:    []attrDelta{{state.AttrTrust, 20}},
		SetFlags:  map[string]bool{"oath_bound": true},
		Bond:      3,
		Narration: "You swear by fang and star. The Moonwell seals the promise with a chill that tastes like dawn.",
	},
	"oath_hesitate": {
		Deltas:    []attrDelta{{state.AttrTrust, -5}},
		Narration: "You ask for time. The Moonwell reflects two strangers trying to be allies.",
	},
	"oath_refuse": {
		Deltas:    []attrDelta{{state.AttrTrust, -12}},
		SetFlags:  map[string]bool{"allied": false},
		Narration: "You step back from the brink. Freedom is a lonely country.",
	},

	// Spies
	"spy_intercept": {
		Deltas:    []attrDelta{{state.AttrMorality, 4}, {state.AttrNotoriety, 5}},
		Narration: "You unmask the trap and free the bait. Rumors begin to turn toward truth.",
	},
	"spy_reverse": {
		Deltas:    []attrDelta{{state.AttrPower, 7}, {state.AttrMorality, -2}, {state.AttrNotoriety, 9}},
		Narration: "Hunters become the hunted. The forest keeps your secrets.",
	},
	"spy_ignore": {
		Deltas:    []attrDelta{{state.AttrPower, 4}, {state.AttrMorality, -4}},
		Narration: "You let the game play on without you—for now.",
	},

	// Ambush
	"ambush_shadow": {
		Deltas:    []attrDelta{{state.AttrPower, 8}, {state.AttrMorality, -6}, {state.AttrNotoriety, 8}},
		Narration: "No witnesses. No mercy. The bridge remembers only silence.",
	},
	"ambush_capture": {
		Deltas:    []attrDelta{{state.AttrMorality, 6}, {state.AttrNotoriety, 4}},
		Narration: "Under your blade, a scout chooses life—and answers. Names spill like beads from a torn chain.",
	},
	"ambush_letgo": {
		Deltas:    []attrDelta{{state.AttrMorality, 2}, {state.AttrNotoriety, 6}},
		Narration: "Mercy travels faster than hoofbeats. Fear travels faster still.",
	},

	// Rescue
	"rescue_shield": {
		Deltas:    []attrDelta{{state.AttrMorality, 10}, {state.AttrHealth, -8}, {state.AttrTrust, 4}},
		Narration: "You take the blows others could not bear. A child's cough becomes a laugh.",
	},
	"rescue_ruse": {
		Deltas:    []attrDelta{{state.AttrMorality, 6}, {state.AttrPower, 3}},
		Narration: "Illusions, footprints, a staged cry—bandits chase ghosts while the caravan slips free.",
	},
	"rescue_walk": {
		Deltas:    []attrDelta{{state.AttrMorality, -10}, {state.AttrPower, 4}, {state.AttrNotoriety, 5}},
		Narration: "You turn away. The road learns your name without deciding if it loves you.",
	},

	// Grim bargain
	"bargain_memory": {
		Deltas:    []attrDelta{{state.AttrPower, 15}, {state.AttrMorality, -8}},
		History:   []string{"You traded a cherished memory at the Thorn Altar."},
		Narration: "You give the altar a memory of home. Power rushes in to fill the hollow it leaves.",
	},
	"bargain_reject": {
		Deltas:    []attrDelta{{state.AttrMorality, 5}, {state.AttrTrust, 3}},
		Narration: "You walk away from easy strength. The altar hums, disappointed.",
	},
	"bargain_token": {
		Deltas:    []attrDelta{{state.AttrPower, 10}, {state.AttrNotoriety, 7}},
		Narration: "You place a betrayer's token on the altar. The thorns drink deep and answer with power.",
	},

	// Ruins
	"ruins_study": {
		Deltas:    []attrDelta{{state.AttrPower, 4}, {state.AttrMorality, 2}},
		History:   []string{"Discovered records of prior heroes consumed by their crowns."},
		Narration: "Glyphs confess: heroes burned an age to keep a throne warm. Truth is an ember you pocket.",
	},
	"ruins_force": {
		Deltas:    []attrDelta{{state.AttrPower, 8}, {state.AttrMorality, -4}},
		AddItems:  []string{"Vault Relic"},
		Narration: "The vault yields with a scream of stone. Inside waits a relic that knows your pulse.",
	},
	"ruins_mark": {
		Deltas:    []attrDelta{{state.AttrMorality, 1}, {state.AttrTrust, 2}},
		Narration: "You leave a mark, not a wound. Even ruins deserve a future.",
	},

	// Wild Hunt
	"hunt_race": {
		Deltas:    []attrDelta{{state.AttrPower, 5}, {state.AttrNotoriety, 3}},
		Narration: "You run with ghosts until your lungs are bells. They teach you shortcuts through moonlight.",
	},
	"hunt_duel": {
		Deltas:    []attrDelta{{state.AttrPower, 10}, {state.AttrHealth, -6}, {state.AttrNotoriety, 6}},
		Narration: "Steel rings against antler and oath. You win a scar and a salute.",
	},
	"hunt_hide": {
		Deltas:    []attrDelta{{state.AttrMorality, 2}},
		Narration: "You watch unseen as the Wild Hunt redraws the night's borders.",
	},

	// Whispers
	"whisper_follow": {
		Deltas:    []attrDelta{{state.AttrNotoriety, 4}},
		SetFlags:  map[string]bool{"betrayer_trail": true},
		Narration: "The whisper leads to a sigil cut in bark: a hero's mark. The trail warms under your gaze.",
	},
	"whisper_ward": {
		Deltas:    []attrDelta{{state.AttrPower, 3}, {state.AttrMorality, 1}},
		Narration: "You hush the forest with a ward that tastes like peppermint and thunder.",
	},
	"whisper_together": {
		Deltas:    []attrDelta{{state.AttrTrust, 8}},
		Bond:      1,
		Narration: "You and {dl} listen as one. The voices braid into a map only two can read.",
	},
}

// KnownTags returns every tag in the effect table. Used by the simulator
// and by tests that sweep the whole table.
func KnownTags() []string {
	tags := make([]string, 0, len(effects))
	for tag := range effects {
		tags = append(tags, tag)
	}
	return tags
}

// ApplyChoice advances the chapter by exactly one and applies the tagged
// effect. Unknown or stale tags still advance the chapter and produce the
// fixed fallback narration; they are not an error.
func (e *Engine) ApplyChoice(st *state.StoryState, tag string) string {
	st.Chapter++

	eff, ok := effects[tag]
	if !ok {
		return unknownChoiceNarration
	}

	for _, d := range eff.Deltas {
		st.Adjust(d.Attr, d.Delta)
	}
	for name, value := range eff.SetFlags {
		st.Flags[name] = value
	}
	st.RaiseBond(eff.Bond)
	for _, item := range eff.AddItems {
		st.AddItem(item)
	}
	for _, line := range eff.History {
		st.AppendHistory(line)
	}

	return interpolate(eff.Narration, st)
}
