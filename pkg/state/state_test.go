package state

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestDefault(t *testing.T) {
	st := Default()

	if st.Name != "Nameless" {
		t.Errorf("Expected default name Nameless, got %q", st.Name)
	}
	if st.Chapter != 0 {
		t.Errorf("Expected chapter 0, got %d", st.Chapter)
	}
	if st.Health != 80 || st.Power != 20 || st.TrustDemonLord != 10 {
		t.Errorf("Unexpected default attributes: health=%d power=%d trust=%d",
			st.Health, st.Power, st.TrustDemonLord)
	}
	if len(st.Inventory) != 2 || st.Inventory[0] != "Torn Cloak" || st.Inventory[1] != "Rusty Sword" {
		t.Errorf("Unexpected starting inventory: %v", st.Inventory)
	}
	if st.Flags == nil || st.History == nil {
		t.Error("Containers must be non-nil on a default record")
	}
}

func TestNew_StarterFlags(t *testing.T) {
	st := New("Arden", 99)

	if st.Name != "Arden" {
		t.Errorf("Expected name Arden, got %q", st.Name)
	}
	if st.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", st.Seed)
	}
	for _, tc := range []struct {
		flag string
		want bool
	}{
		{"betrayed", true},
		{"met_demon_lord", true},
		{"allied", false},
		{"seeking_truth", true},
	} {
		got, ok := st.Flags[tc.flag]
		if !ok || got != tc.want {
			t.Errorf("Flag %q: expected %v (present), got %v (present=%v)", tc.flag, tc.want, got, ok)
		}
	}
}

func TestNew_EmptyNameFallsBack(t *testing.T) {
	st := New("", 1)
	if st.Name != "Nameless" {
		t.Errorf("Expected fallback name Nameless, got %q", st.Name)
	}
}

func TestAdjust_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attribute
		start func(st *StoryState)
		delta int
		check func(st *StoryState) int
		want  int
	}{
		{"health saturates high", AttrHealth, nil, 1000, func(st *StoryState) int { return st.Health }, 100},
		{"health saturates low", AttrHealth, nil, -1000, func(st *StoryState) int { return st.Health }, 0},
		{"power saturates high", AttrPower, nil, 90, func(st *StoryState) int { return st.Power }, 100},
		{"morality saturates low", AttrMorality, nil, -150, func(st *StoryState) int { return st.Morality }, -100},
		{"morality saturates high", AttrMorality, nil, 150, func(st *StoryState) int { return st.Morality }, 100},
		{"notoriety floor", AttrNotoriety, nil, -5, func(st *StoryState) int { return st.Notoriety }, 0},
		{"trust ordinary delta", AttrTrust, nil, 15, func(st *StoryState) int { return st.TrustDemonLord }, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := Default()
			if tc.start != nil {
				tc.start(st)
			}
			st.Adjust(tc.attr, tc.delta)
			if got := tc.check(st); got != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRaiseBond_NeverDecrements(t *testing.T) {
	st := Default()
	st.RaiseBond(3)
	if st.BondDemonLord != 3 {
		t.Fatalf("Expected bond 3, got %d", st.BondDemonLord)
	}
	st.RaiseBond(-10)
	if st.BondDemonLord != 3 {
		t.Errorf("Bond must never decrease, got %d", st.BondDemonLord)
	}
	st.RaiseBond(200)
	if st.BondDemonLord != 100 {
		t.Errorf("Bond must clamp at 100, got %d", st.BondDemonLord)
	}
}

func TestAddItem_Deduplicates(t *testing.T) {
	st := Default()
	st.AddItem("Vault Relic")
	st.AddItem("Rusty Sword") // already in starting inventory
	st.AddItem("Vault Relic")

	want := []string{"Torn Cloak", "Rusty Sword", "Vault Relic"}
	if len(st.Inventory) != len(want) {
		t.Fatalf("Expected %d items, got %v", len(want), st.Inventory)
	}
	for i, item := range want {
		if st.Inventory[i] != item {
			t.Errorf("Item %d: expected %q, got %q", i, item, st.Inventory[i])
		}
	}
}

func TestSetFlagDefault(t *testing.T) {
	st := Default()
	st.SetFlagDefault("vow_revenge", false)
	if got, ok := st.Flags["vow_revenge"]; !ok || got {
		t.Errorf("Expected vow_revenge initialized to false, got %v (present=%v)", got, ok)
	}

	st.Flags["vow_revenge"] = true
	st.SetFlagDefault("vow_revenge", false)
	if !st.Flags["vow_revenge"] {
		t.Error("SetFlagDefault must not overwrite an existing flag")
	}
}

func TestLoad_ForwardCompat(t *testing.T) {
	// A save from an older version: most fields missing, one unknown field.
	data := []byte(`{"name":"Old Hero","chapter":7,"unknown_field":"ignored"}`)

	st, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Name != "Old Hero" || st.Chapter != 7 {
		t.Errorf("Explicit fields lost: name=%q chapter=%d", st.Name, st.Chapter)
	}
	if st.Health != 80 || st.TrustDemonLord != 10 {
		t.Errorf("Missing fields must default: health=%d trust=%d", st.Health, st.TrustDemonLord)
	}
	if st.Flags == nil || st.History == nil || st.Inventory == nil {
		t.Error("Containers must be re-materialized as non-nil")
	}
	if len(st.Inventory) != 2 {
		t.Errorf("Missing inventory must keep the default, got %v", st.Inventory)
	}
}

func TestLoad_Malformed(t *testing.T) {
	if _, err := Load([]byte(`{not json`)); err == nil {
		t.Error("Expected an error for malformed input")
	}
}

func TestRoundTrip_Idempotent(t *testing.T) {
	st := New("Rover", 1234)
	st.Chapter = 12
	st.DemonLordName = "Noctra"
	st.Adjust(AttrMorality, -44)
	st.AddItem("Vault Relic")
	st.Flags["oath_bound"] = true
	st.AppendHistory("Traded a memory.")

	first, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	loaded, err := Load(first)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := json.Marshal(loaded)
	if err != nil {
		t.Fatalf("Re-marshal failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("Round trip is not idempotent:\n first=%s\nsecond=%s", first, second)
	}
}

func TestDeriveSeed_Distinct(t *testing.T) {
	a := DeriveSeed("Arden")
	b := DeriveSeed("Brona")
	if a == b {
		t.Error("Different names at different instants should not collide")
	}
	if a < 0 || b < 0 {
		t.Errorf("Seeds must be non-negative 32-bit values: %d, %d", a, b)
	}
}
