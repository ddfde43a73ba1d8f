package state

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"
)

// Attribute names the bounded integer fields of a StoryState.
type Attribute string

const (
	AttrHealth    Attribute = "health"
	AttrPower     Attribute = "power"
	AttrMorality  Attribute = "morality"
	AttrNotoriety Attribute = "notoriety"
	AttrTrust     Attribute = "trust_demon_lord"
)

// StoryState is the persistent record of a single playthrough.
// It is mutated only through the engine's operations and the helpers below.
type StoryState struct {
	Name           string          `json:"name"`
	Chapter        int             `json:"chapter"`
	Location       string          `json:"location"`
	Health         int             `json:"health"`
	Power          int             `json:"power"`
	Morality       int             `json:"morality"` // -100 (ruthless) to +100 (noble)
	Notoriety      int             `json:"notoriety"`
	TrustDemonLord int             `json:"trust_demon_lord"`
	BondDemonLord  int             `json:"bond_demon_lord"` // long-term relationship metric, never decremented
	DemonLordName  string          `json:"demon_lord_name,omitempty"`
	Inventory      []string        `json:"inventory"`
	Flags          map[string]bool `json:"flags"`
	History        []string        `json:"history"`
	Seed           int64           `json:"seed"`
}

// Default returns a default-constructed record. It is also the baseline for
// deserialization, so missing fields in old saves fall back to these values.
func Default() *StoryState {
	return &StoryState{
		Name:           "Nameless",
		Chapter:        0,
		Location:       "Demon Forest",
		Health:         80,
		Power:          20,
		Morality:       0,
		Notoriety:      0,
		TrustDemonLord: 10,
		BondDemonLord:  0,
		Inventory:      []string{"Torn Cloak", "Rusty Sword"},
		Flags:          make(map[string]bool),
		History:        make([]string, 0),
	}
}

// New creates the record for a fresh playthrough.
func New(name string, seed int64) *StoryState {
	st := Default()
	if name != "" {
		st.Name = name
	}
	st.Seed = seed
	st.Flags = map[string]bool{
		"betrayed":       true,
		"met_demon_lord": true,
		"allied":         false,
		"seeking_truth":  true,
	}
	return st
}

// DeriveSeed builds a playthrough seed from the player name and wall-clock
// time. Collision-resistant, not cryptographically meaningful.
func DeriveSeed(name string) int64 {
	src := fmt.Sprintf("%s-%d", name, time.Now().UnixNano())
	sum := sha256.Sum256([]byte(src))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

// Load deserializes a record. Unknown fields are ignored and missing fields
// keep their defaults, so saves from older versions stay loadable. Container
// fields always come back as fresh, non-nil containers.
func Load(data []byte) (*StoryState, error) {
	st := Default()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal story state: %w", err)
	}
	if st.Inventory == nil {
		st.Inventory = make([]string, 0)
	}
	if st.Flags == nil {
		st.Flags = make(map[string]bool)
	}
	if st.History == nil {
		st.History = make([]string, 0)
	}
	return st, nil
}

// Adjust applies a delta to a bounded attribute, saturating at the
// attribute's interval. Out-of-range deltas are normal, not errors.
func (st *StoryState) Adjust(attr Attribute, delta int) {
	switch attr {
	case AttrHealth:
		st.Health = clamp(st.Health+delta, 0, 100)
	case AttrPower:
		st.Power = clamp(st.Power+delta, 0, 100)
	case AttrMorality:
		st.Morality = clamp(st.Morality+delta, -100, 100)
	case AttrNotoriety:
		st.Notoriety = clamp(st.Notoriety+delta, 0, 100)
	case AttrTrust:
		st.TrustDemonLord = clamp(st.TrustDemonLord+delta, 0, 100)
	}
}

// RaiseBond increments the bond metric. Bond only ever goes up.
func (st *StoryState) RaiseBond(n int) {
	if n <= 0 {
		return
	}
	st.BondDemonLord = clamp(st.BondDemonLord+n, 0, 100)
}

// AddItem appends an item unless it is already held. Insertion order is
// preserved; duplicates are suppressed.
func (st *StoryState) AddItem(item string) {
	for _, have := range st.Inventory {
		if have == item {
			return
		}
	}
	st.Inventory = append(st.Inventory, item)
}

// Flag reads a flag, defaulting to false.
func (st *StoryState) Flag(name string) bool {
	return st.Flags[name]
}

// SetFlagDefault sets a flag only if it has never been set. Flags are never
// removed, only added or overwritten.
func (st *StoryState) SetFlagDefault(name string, value bool) {
	if _, ok := st.Flags[name]; !ok {
		st.Flags[name] = value
	}
}

// AppendHistory appends one log line to the playthrough history.
func (st *StoryState) AppendHistory(line string) {
	st.History = append(st.History, line)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
