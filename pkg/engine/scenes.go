package engine

import (
	"github.com/thornsfall/lore-engine/pkg/state"
)

// Choice is one selectable option in a rendered scene. The tag binds the
// option to its entry in the effect table.
type Choice struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Scene is a rendered story beat: a location, a narration paragraph and an
// ordered list of 3-4 choices.
type Scene struct {
	Archetype string   `json:"archetype"`
	Location  string   `json:"location"`
	Text      string   `json:"text"`
	Choices   []Choice `json:"choices"`
}

// Scene archetypes.
const (
	ArchetypeOathBond        = "oath_bond"
	ArchetypeCouncil         = "council"
	ArchetypeTraining        = "training"
	ArchetypeTenseCamp       = "tense_camp"
	ArchetypeSpyReport       = "spy_report"
	ArchetypeAmbushScouts    = "ambush_king_scouts"
	ArchetypeRescueTravelers = "rescue_travelers"
	ArchetypeGrimBargain     = "grim_bargain"
	ArchetypeMysticRuins     = "mystic_ruins"
	ArchetypeWildHunt        = "wild_hunt"
	ArchetypeWhisperingTrees = "whispering_trees"
)

var demonLordNames = []string{
	"Nyx", "Velaria", "Lilithe", "Morrigan",
	"Eresh", "Seraphine", "Astariel", "Noctra",
}

// eligibilityRule adds archetypes to the candidate set when its predicate
// holds. Rules are evaluated independently and unioned; order only fixes the
// candidate ordering, never membership.
type eligibilityRule struct {
	when       func(st *state.StoryState) bool
	archetypes []string
}

var eligibilityRules = []eligibilityRule{
	{
		when: func(st *state.StoryState) bool {
			return st.Flag("met_demon_lord") && st.TrustDemonLord >= 60 && !st.Flag("oath_bound")
		},
		archetypes: []string{ArchetypeOathBond},
	},
	{
		when: func(st *state.StoryState) bool {
			return st.Flag("met_demon_lord") && st.TrustDemonLord >= 30
		},
		archetypes: []string{ArchetypeCouncil, ArchetypeTraining},
	},
	{
		when: func(st *state.StoryState) bool {
			return st.Flag("met_demon_lord") && st.TrustDemonLord < 30
		},
		archetypes: []string{ArchetypeTenseCamp},
	},
	{
		when: func(st *state.StoryState) bool {
			return st.Flag("vow_revenge")
		},
		archetypes: []string{ArchetypeSpyReport, ArchetypeAmbushScouts},
	},
	{
		when: func(st *state.StoryState) bool {
			return st.Morality >= 40
		},
		archetypes: []string{ArchetypeRescueTravelers},
	},
	{
		when: func(st *state.StoryState) bool {
			return st.Morality <= -40
		},
		archetypes: []string{ArchetypeGrimBargain},
	},
	{
		// General exploration, always available. Guarantees the candidate
		// set is never empty.
		when: func(st *state.StoryState) bool {
			return true
		},
		archetypes: []string{ArchetypeMysticRuins, ArchetypeWildHunt, ArchetypeWhisperingTrees},
	},
}

// EligibleArchetypes evaluates every rule against the state and returns the
// union of matching archetypes, de-duplicated, in rule order.
func EligibleArchetypes(st *state.StoryState) []string {
	var candidates []string
	seen := make(map[string]bool)
	for _, rule := range eligibilityRules {
		if !rule.when(st) {
			continue
		}
		for _, a := range rule.archetypes {
			if !seen[a] {
				seen[a] = true
				candidates = append(candidates, a)
			}
		}
	}
	return candidates
}

var sceneRenderers = map[string]func(st *state.StoryState) *Scene{
	ArchetypeTenseCamp:       renderTenseCamp,
	ArchetypeTraining:        renderTraining,
	ArchetypeCouncil:         renderCouncil,
	ArchetypeOathBond:        renderOathBond,
	ArchetypeSpyReport:       renderSpyReport,
	ArchetypeAmbushScouts:    renderAmbush,
	ArchetypeRescueTravelers: renderRescue,
	ArchetypeGrimBargain:     renderGrimBargain,
	ArchetypeMysticRuins:     renderRuins,
	ArchetypeWildHunt:        renderWildHunt,
	ArchetypeWhisperingTrees: renderWhispers,
}

// RenderScene produces the current scene for the state. Chapter 0 always
// yields the introduction; otherwise one archetype is drawn uniformly from
// the eligible set. The render sets the state's location and may lazily
// initialize flags, but never touches the chapter counter.
func (e *Engine) RenderScene(st *state.StoryState) *Scene {
	if st.Chapter == 0 {
		return e.renderIntro(st)
	}

	candidates := EligibleArchetypes(st)
	chosen := candidates[e.rng.Intn(len(candidates))]
	scene := sceneRenderers[chosen](st)
	st.Location = scene.Location
	return scene
}

func (e *Engine) renderIntro(st *state.StoryState) *Scene {
	st.Location = "Demon Forest — Thornsfall Edge"
	st.SetFlagDefault("betrayed", true)
	st.SetFlagDefault("met_demon_lord", true)
	st.SetFlagDefault("allied", false)
	st.SetFlagDefault("vow_revenge", false)
	st.SetFlagDefault("seeking_truth", true)
	st.AppendHistory("Banished to the Demon Forest after betrayal by the kingdom and fellow heroes.")

	// The demon lord's name is drawn once and frozen for the playthrough.
	if st.DemonLordName == "" {
		st.DemonLordName = demonLordNames[e.rng.Intn(len(demonLordNames))]
	}

	text := interpolate(
		"You awaken in briars and ash. The kingdom you died to protect has cast you out.\n"+
			"Branches claw your cloak as you stumble through the Demon Forest. A presence watches.\n\n"+
			"She steps from the gloom: the Demon Lord, a girl with eyes like eclipsed moons.\n"+
			"\"I am {dl}. Your light reeks of betrayal,\" she says. \"Why should I spare you?\"", st)

	return &Scene{
		Archetype: "intro",
		Location:  st.Location,
		Text:      text,
		Choices: []Choice{
			{"Plead your case: you were framed and seek only the truth.", "intro_plead"},
			{"Swear vengeance: you'll raze the kingdom that betrayed you.", "intro_vengeance"},
			{"Offer a pact: strength for strength—become uneasy allies.", "intro_pact"},
			{"Draw steel: if she wants blood, she'll earn it.", "intro_fight"},
		},
	}
}

func renderTenseCamp(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeTenseCamp,
		Location:  "Forest Camp — Ember Clearing",
		Text: interpolate("A small fire sputters beneath twisted pines. {dl} watches you from across the flames.\n"+
			"Trust flickers like kindling. The forest listens.", st),
		Choices: []Choice{
			{"Share a painful memory to earn her empathy.", "camp_confide"},
			{"Hone your blade in silence; let actions speak.", "camp_silence"},
			{"Probe her motives—why rule the demons at all?", "camp_probe"},
			{"Scout the perimeter; danger stalks the dark.", "camp_scout"},
		},
	}
}

func renderTraining(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeTraining,
		Location:  "Obsidian Glade — Training Stones",
		Text: interpolate("In the Obsidian Glade, {dl} tests you. Demonic sigils fracture the air.\n"+
			"Power strains your scars as you push beyond mortal limits.", st),
		Choices: []Choice{
			{"Master a defensive ward to shield the weak.", "train_defense"},
			{"Channel wrath—strike harder, faster, crueler.", "train_wrath"},
			{interpolate("Synchronize with {dl}'s rhythm; trust the dance of blades.", st), "train_sync"},
		},
	}
}

func renderCouncil(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeCouncil,
		Location:  "Eclipse Hall — Council of Cinders",
		Text: interpolate("{dl}'s lieutenants argue under lanterns filled with captured starlight.\n"+
			"War or peace? Retaliation or secrecy? They seek your counsel.", st),
		Choices: []Choice{
			{"Advise diplomacy—seek proof of the kingdom's treachery.", "council_diplomacy"},
			{"Plan raids on corrupt nobles and supply lines.", "council_raids"},
			{"Propose a secret parley with a sympathetic hero.", "council_parley"},
		},
	}
}

func renderOathBond(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeOathBond,
		Location:  "Moonwell — Mirror of Vows",
		Text: interpolate("Beside the Moonwell, {dl} offers her hand. \"We choose each other—against crown and fate.\"\n"+
			"The water reflects futures you barely recognize.", st),
		Choices: []Choice{
			{"Swear an oath of alliance.", "oath_sworn"},
			{"Hesitate—the cost of vows is always hidden.", "oath_hesitate"},
			{"Refuse—freedom above all.", "oath_refuse"},
		},
	}
}

func renderSpyReport(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeSpyReport,
		Location:  "Shadespine — Scout's Path",
		Text: "A demon scout kneels, breathless: the kingdom moves hunters into the forest.\n" +
			"They bear your crest—bait for a public execution.",
		Choices: []Choice{
			{"Intercept and expose the ruse.", "spy_intercept"},
			{"Turn the ambush onto the hunters.", "spy_reverse"},
			{"Ignore; focus on power first.", "spy_ignore"},
		},
	}
}

func renderAmbush(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeAmbushScouts,
		Location:  "Ravine Verge — Broken Bridge",
		Text: "You spot royal scouts across a broken bridge, whispering your name like a curse.\n" +
			"Their signal mirrors glint. A choice, sharp as shale.",
		Choices: []Choice{
			{"Strike from shadow—no witnesses.", "ambush_shadow"},
			{"Seize a scout alive for information.", "ambush_capture"},
			{"Let them flee; plant fear and rumor.", "ambush_letgo"},
		},
	}
}

func renderRescue(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeRescueTravelers,
		Location:  "Cairn Road — Bleak Mile",
		Text: "A caravan of refugees stumbles under the weight of injustice. Bandits circle.\n" +
			"You hear a child's cough beneath the wind.",
		Choices: []Choice{
			{"Shield the caravan; take the blows for them.", "rescue_shield"},
			{"Outwit the bandits with a ruse.", "rescue_ruse"},
			{"Walk away. Mercy is a luxury.", "rescue_walk"},
		},
	}
}

func renderGrimBargain(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeGrimBargain,
		Location:  "Thorn Altar — Price of Power",
		Text: interpolate("A thorned altar hums with forbidden strength. {dl}'s gaze is unreadable.\n"+
			"The altar grants might… and takes what you value most.", st),
		Choices: []Choice{
			{"Bleed for power: sacrifice a memory.", "bargain_memory"},
			{"Spare yourself—reject the altar.", "bargain_reject"},
			{"Offer the altar a token from your betrayers.", "bargain_token"},
		},
	}
}

func renderRuins(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeMysticRuins,
		Location:  "Ancient Ruins — Vault of Mists",
		Text: "Fog curls around cracked archways. Glyphs speak of heroes who burned their own ages ago.\n" +
			"A vault door breathes cold secrets.",
		Choices: []Choice{
			{"Study the glyphs for hidden history.", "ruins_study"},
			{"Force the vault—whatever lies within is yours.", "ruins_force"},
			{"Leave a mark: a promise to return stronger.", "ruins_mark"},
		},
	}
}

func renderWildHunt(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeWildHunt,
		Location:  "Night Plains — The Wild Hunt",
		Text: "Horns sound. Spectral riders rise like storm-surf, seeking a worthy quarry.\n" +
			"They circle, inviting chase or challenge.",
		Choices: []Choice{
			{"Race with them; learn their paths.", "hunt_race"},
			{"Challenge the huntmaster to single combat.", "hunt_duel"},
			{"Hide and observe; knowledge first.", "hunt_hide"},
		},
	}
}

func renderWhispers(st *state.StoryState) *Scene {
	return &Scene{
		Archetype: ArchetypeWhisperingTrees,
		Location:  "Whispering Trees — Root of Echoes",
		Text: "Leaves speak in voices you once trusted. They tell different truths now.\n" +
			"One whisper carries the name of a hero who betrayed you.",
		Choices: []Choice{
			{"Follow the whisper to its source.", "whisper_follow"},
			{"Silence the voices with a ward.", "whisper_ward"},
			{interpolate("Ask {dl} to listen with you.", st), "whisper_together"},
		},
	}
}
