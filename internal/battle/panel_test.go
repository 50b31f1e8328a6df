package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanel_StartsEmpty(t *testing.T) {
	p := NewPanel()
	assert.True(t, p.Slot(SlotA).IsEmpty())
	assert.True(t, p.Slot(SlotB).IsEmpty())
	assert.False(t, p.BothFilled())

	_, ok := p.Target()
	assert.False(t, ok)
}

func TestPanel_SubmitBothAndNavigate(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.Submit(SlotA, "alice"))
	assert.False(t, p.BothFilled())
	require.NoError(t, p.Submit(SlotB, "bob"))
	assert.True(t, p.BothFilled())

	target, ok := p.Target()
	require.True(t, ok)
	assert.Equal(t, "identityA=alice&identityB=bob", target.Query())
	assert.Equal(t, "/battle/results?identityA=alice&identityB=bob", target.String())
}

func TestPanel_ClearBreaksReadiness(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.Submit(SlotA, "alice"))
	require.NoError(t, p.Submit(SlotB, "bob"))

	p.Clear(SlotA)
	assert.False(t, p.BothFilled())
	id, filled := p.Slot(SlotB).Identity()
	assert.True(t, filled)
	assert.Equal(t, "bob", id)

	require.NoError(t, p.Submit(SlotA, "carol"))
	assert.True(t, p.BothFilled())
}

func TestPanel_ClearRestoresInitialSlot(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.Submit(SlotB, "x"))
	p.Clear(SlotB)

	assert.Equal(t, Empty(), p.Slot(SlotB))
	assert.Equal(t, NewPanel(), p)

	p.Clear(SlotB)
	assert.Equal(t, Empty(), p.Slot(SlotB), "clearing twice is harmless")
}

func TestPanel_SubmitRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		slot     SlotID
		identity string
		wantErr  error
	}{
		{name: "empty identity", slot: SlotA, identity: "", wantErr: ErrEmptyIdentity},
		{name: "unknown slot", slot: SlotID(7), identity: "alice", wantErr: ErrUnknownSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPanel()
			err := p.Submit(tt.slot, tt.identity)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, NewPanel(), p)
		})
	}
}

func TestPanel_ResubmitReplacesIdentity(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.Submit(SlotA, "alice"))
	require.NoError(t, p.Submit(SlotA, "dave"))

	id, _ := p.Slot(SlotA).Identity()
	assert.Equal(t, "dave", id)
}

func TestTarget_EncodesAndParses(t *testing.T) {
	target := Target{PlayerOne: "a b", PlayerTwo: "c&d"}
	assert.Equal(t, "identityA=a+b&identityB=c%26d", target.Query())

	parsed, err := ParseTarget(target.Query())
	require.NoError(t, err)
	assert.Equal(t, target, parsed)

	_, err = ParseTarget("identityA=alice")
	assert.ErrorIs(t, err, ErrEmptyIdentity)
}

func TestSlotID_String(t *testing.T) {
	assert.Equal(t, "Player One", SlotA.String())
	assert.Equal(t, "Player Two", SlotB.String())
	assert.Equal(t, "SlotID(5)", SlotID(5).String())
}
