package battlerules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

func buildStub(id identifiers.CardId) func(Trigger) StackItem {
	return func(Trigger) StackItem { return StackItem{ID: id} }
}

func TestTriggerManager_HandleMatchesOnKindOnly(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 1, Kind: "materialized", Build: buildStub(100)})
	tm.Register(&AbilityTrigger{SourceID: 2, Kind: "dissolved", Build: buildStub(200)})

	items := tm.Handle(Trigger{Kind: "materialized"}, 0)
	require.Len(t, items, 1)
	assert.Equal(t, identifiers.CardId(100), items[0].ID)
}

func TestTriggerManager_HandleRespectsCondition(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{
		SourceID:  1,
		Kind:      "materialized",
		Condition: func(trig Trigger) bool { return trig.Controller == identifiers.PlayerOne },
		Build:     buildStub(100),
	})

	assert.Empty(t, tm.Handle(Trigger{Kind: "materialized", Controller: identifiers.PlayerTwo}, 0))
	items := tm.Handle(Trigger{Kind: "materialized", Controller: identifiers.PlayerOne}, 0)
	assert.Len(t, items, 1)
}

func TestTriggerManager_OncePerTurnFiresOnlyOncePerTurn(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 1, Kind: "judgment", OncePerTurn: true, Build: buildStub(100)})

	assert.Len(t, tm.Handle(Trigger{Kind: "judgment"}, 0), 1)
	assert.Empty(t, tm.Handle(Trigger{Kind: "judgment"}, 0))

	// a new turn clears the fired bit.
	assert.Len(t, tm.Handle(Trigger{Kind: "judgment"}, 1), 1)
}

func TestTriggerManager_ResetTurnClearsFiredBitWithinTheSameTurnId(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 1, Kind: "judgment", OncePerTurn: true, Build: buildStub(100)})

	tm.Handle(Trigger{Kind: "judgment"}, 0)
	assert.Empty(t, tm.Handle(Trigger{Kind: "judgment"}, 0))

	tm.ResetTurn()
	assert.Len(t, tm.Handle(Trigger{Kind: "judgment"}, 0), 1)
}

func TestTriggerManager_HandleOrdersByControllerThenSourceThenAbility(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 5, Controller: identifiers.PlayerTwo, Ability: 0, Kind: "k", Build: buildStub(5)})
	tm.Register(&AbilityTrigger{SourceID: 1, Controller: identifiers.PlayerOne, Ability: 1, Kind: "k", Build: buildStub(1)})
	tm.Register(&AbilityTrigger{SourceID: 1, Controller: identifiers.PlayerOne, Ability: 0, Kind: "k", Build: buildStub(0)})

	items := tm.Handle(Trigger{Kind: "k"}, 0)
	require.Len(t, items, 3)
	assert.Equal(t, identifiers.CardId(0), items[0].ID)
	assert.Equal(t, identifiers.CardId(1), items[1].ID)
	assert.Equal(t, identifiers.CardId(5), items[2].ID)
}

func TestTriggerManager_UnregisterRemovesBySourceAndAbility(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 1, Ability: 0, Kind: "k", Build: buildStub(1)})
	tm.Register(&AbilityTrigger{SourceID: 1, Ability: 1, Kind: "k", Build: buildStub(2)})

	tm.Unregister(1, 0)
	items := tm.Handle(Trigger{Kind: "k"}, 0)
	require.Len(t, items, 1)
	assert.Equal(t, identifiers.CardId(2), items[0].ID)
}

func TestTriggerManager_FireOnceNeverFiresAgainEvenAcrossTurns(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 1, Kind: "end-of-turn", FireOnce: true, Build: buildStub(100)})

	assert.Len(t, tm.Handle(Trigger{Kind: "end-of-turn"}, 0), 1)
	assert.Empty(t, tm.Handle(Trigger{Kind: "end-of-turn"}, 0))

	tm.ResetTurn()
	assert.Empty(t, tm.Handle(Trigger{Kind: "end-of-turn"}, 1))
}

func TestTriggerManager_CloneFireOnceBitIsIndependent(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 1, Kind: "end-of-turn", FireOnce: true, Build: buildStub(100)})

	clone := tm.Clone()
	assert.Len(t, clone.Handle(Trigger{Kind: "end-of-turn"}, 0), 1)

	// firing it in the clone must not retire it in the original.
	assert.Len(t, tm.Handle(Trigger{Kind: "end-of-turn"}, 0), 1)
}

func TestTriggerManager_CloneFiredBitIsIndependent(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(&AbilityTrigger{SourceID: 1, Kind: "judgment", OncePerTurn: true, Build: buildStub(100)})
	tm.Handle(Trigger{Kind: "judgment"}, 0)

	clone := tm.Clone()
	assert.Empty(t, clone.Handle(Trigger{Kind: "judgment"}, 0))

	clone.ResetTurn()
	assert.Len(t, clone.Handle(Trigger{Kind: "judgment"}, 0), 1)
	// the original is unaffected by resetting the clone.
	assert.Empty(t, tm.Handle(Trigger{Kind: "judgment"}, 0))
}
