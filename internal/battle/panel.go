package battle

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrEmptyIdentity is returned when submitting a blank player name
	ErrEmptyIdentity = errors.New("identity must not be empty")
	// ErrUnknownSlot is returned for a slot other than SlotA or SlotB
	ErrUnknownSlot = errors.New("unknown slot")
)

// ResultsPath is where a filled panel navigates to
const ResultsPath = "/battle/results"

// Query parameter names carrying the two players
const (
	ParamPlayerOne = "identityA"
	ParamPlayerTwo = "identityB"
)

// SlotID names one of the two player slots
type SlotID int

const (
	SlotA SlotID = iota
	SlotB
)

func (id SlotID) String() string {
	switch id {
	case SlotA:
		return "Player One"
	case SlotB:
		return "Player Two"
	default:
		return fmt.Sprintf("SlotID(%d)", int(id))
	}
}

// Slot is either empty or filled with an identity
type Slot struct {
	identity string
	filled   bool
}

// Empty returns an empty slot
func Empty() Slot { return Slot{} }

// Filled returns a slot holding identity
func Filled(identity string) Slot { return Slot{identity: identity, filled: true} }

// Identity returns the identity and whether the slot is filled
func (s Slot) Identity() (string, bool) {
	return s.identity, s.filled
}

// IsEmpty reports whether the slot still collects input
func (s Slot) IsEmpty() bool { return !s.filled }

// Panel holds the two player slots of the battle setup screen
type Panel struct {
	slots [2]Slot
}

// NewPanel returns a panel with both slots empty
func NewPanel() *Panel {
	return &Panel{}
}

// Submit fills slot id with identity. The identity is not checked against GitHub.
func (p *Panel) Submit(id SlotID, identity string) error {
	if id != SlotA && id != SlotB {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, int(id))
	}
	if identity == "" {
		return fmt.Errorf("submit %s: %w", id, ErrEmptyIdentity)
	}
	p.slots[id] = Filled(identity)
	return nil
}

// Clear empties slot id. Unknown slots are ignored.
func (p *Panel) Clear(id SlotID) {
	if id != SlotA && id != SlotB {
		return
	}
	p.slots[id] = Empty()
}

// Slot returns the current value of slot id
func (p *Panel) Slot(id SlotID) Slot {
	if id != SlotA && id != SlotB {
		return Empty()
	}
	return p.slots[id]
}

// BothFilled reports whether the battle can start
func (p *Panel) BothFilled() bool {
	return !p.slots[SlotA].IsEmpty() && !p.slots[SlotB].IsEmpty()
}

// Target returns where the panel navigates once both players are set
func (p *Panel) Target() (Target, bool) {
	if !p.BothFilled() {
		return Target{}, false
	}
	one, _ := p.slots[SlotA].Identity()
	two, _ := p.slots[SlotB].Identity()
	return Target{PlayerOne: one, PlayerTwo: two}, true
}

// Target identifies a battle between two players
type Target struct {
	PlayerOne string
	PlayerTwo string
}

// Query returns the URL query encoding of the target
func (t Target) Query() string {
	v := url.Values{}
	v.Set(ParamPlayerOne, t.PlayerOne)
	v.Set(ParamPlayerTwo, t.PlayerTwo)
	return v.Encode()
}

// String returns the results path with the encoded query
func (t Target) String() string {
	return ResultsPath + "?" + t.Query()
}

// ParseTarget reads a target back from its query encoding
func ParseTarget(query string) (Target, error) {
	v, err := url.ParseQuery(query)
	if err != nil {
		return Target{}, fmt.Errorf("failed to parse battle query: %w", err)
	}
	t := Target{PlayerOne: v.Get(ParamPlayerOne), PlayerTwo: v.Get(ParamPlayerTwo)}
	if t.PlayerOne == "" || t.PlayerTwo == "" {
		return Target{}, fmt.Errorf("parse battle query: %w", ErrEmptyIdentity)
	}
	return t, nil
}
