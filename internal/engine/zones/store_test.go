package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

func TestStore_NewCardStartsInDeck(t *testing.T) {
	s := NewStore()
	id := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("test-card"))

	assert.True(t, s.ContainsCard(identifiers.PlayerOne, id, ZoneDeck))
	zone, owner, ok := s.CardZone(id)
	require.True(t, ok)
	assert.Equal(t, ZoneDeck, zone)
	assert.Equal(t, identifiers.PlayerOne, owner)

	name, ok := s.Name(id)
	require.True(t, ok)
	assert.Equal(t, identifiers.BaseCardId("test-card"), name)
}

func TestStore_MoveCardTracksZoneTransitions(t *testing.T) {
	s := NewStore()
	id := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("test-card"))

	s.MoveCard(identifiers.PlayerOne, id, ZoneDeck, ZoneHand)
	assert.True(t, s.ContainsCard(identifiers.PlayerOne, id, ZoneHand))
	assert.False(t, s.ContainsCard(identifiers.PlayerOne, id, ZoneDeck))

	s.MoveCard(identifiers.PlayerOne, id, ZoneHand, ZoneBattlefield)
	assert.True(t, s.ContainsCard(identifiers.PlayerOne, id, ZoneBattlefield))
	cs, ok := s.CharacterState(id)
	require.True(t, ok)
	assert.Equal(t, identifiers.Spark(0), cs.SparkModifier)
}

func TestStore_MoveCardToStackTracksControllerAndOrder(t *testing.T) {
	s := NewStore()
	first := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("a"))
	second := s.NewCard(identifiers.PlayerTwo, identifiers.BaseCardId("b"))

	s.MoveCard(identifiers.PlayerOne, first, ZoneDeck, ZoneStack)
	s.MoveCard(identifiers.PlayerTwo, second, ZoneDeck, ZoneStack)

	assert.True(t, s.HasStack())
	top, ok := s.TopOfStack()
	require.True(t, ok)
	assert.Equal(t, second, top)

	st, ok := s.StackState(first)
	require.True(t, ok)
	assert.Equal(t, identifiers.PlayerOne, st.Controller)

	ids := s.StackIds()
	require.Len(t, ids, 2)
	assert.Equal(t, identifiers.StackCardId(first), ids[0])
	assert.Equal(t, identifiers.StackCardId(second), ids[1])

	s.MoveCard(identifiers.PlayerOne, first, ZoneStack, ZoneVoid)
	assert.True(t, s.HasStack()) // stack still has `second`
	assert.Equal(t, 1, len(s.StackIds()))
}

func TestStore_CharacterStateClearedOnLeavingBattlefield(t *testing.T) {
	s := NewStore()
	id := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("a"))
	s.MoveCard(identifiers.PlayerOne, id, ZoneDeck, ZoneBattlefield)
	_, ok := s.CharacterState(id)
	require.True(t, ok)

	s.MoveCard(identifiers.PlayerOne, id, ZoneBattlefield, ZoneVoid)
	_, ok = s.CharacterState(id)
	assert.False(t, ok)
}

func TestStore_AbilityUsageTrackingResetsPerTurn(t *testing.T) {
	s := NewStore()
	id := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("a"))
	s.MoveCard(identifiers.PlayerOne, id, ZoneDeck, ZoneBattlefield)

	assert.False(t, s.AbilityUsedThisTurn(id, identifiers.AbilityNumber(0)))
	s.MarkAbilityUsed(id, identifiers.AbilityNumber(0))
	assert.True(t, s.AbilityUsedThisTurn(id, identifiers.AbilityNumber(0)))

	s.ResetAbilityUsage()
	assert.False(t, s.AbilityUsedThisTurn(id, identifiers.AbilityNumber(0)))
}

func TestStore_DeckTopIsSmallestRemainingId(t *testing.T) {
	s := NewStore()
	s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("a"))
	second := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("b"))
	s.MoveCard(identifiers.PlayerOne, identifiers.CardId(0), ZoneDeck, ZoneHand)

	top, ok := s.DeckTop(identifiers.PlayerOne)
	require.True(t, ok)
	assert.Equal(t, second, top)
}

func TestStore_CloneIsIndependent(t *testing.T) {
	s := NewStore()
	id := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("a"))
	clone := s.Clone()

	clone.MoveCard(identifiers.PlayerOne, id, ZoneDeck, ZoneHand)
	assert.True(t, clone.ContainsCard(identifiers.PlayerOne, id, ZoneHand))
	assert.True(t, s.ContainsCard(identifiers.PlayerOne, id, ZoneDeck))
}

func TestStore_BanishedIdsReturnsPlainCardIds(t *testing.T) {
	s := NewStore()
	id := s.NewCard(identifiers.PlayerOne, identifiers.BaseCardId("a"))
	s.MoveCard(identifiers.PlayerOne, id, ZoneDeck, ZoneBanished)

	banished := s.BanishedIds(identifiers.PlayerOne)
	require.Len(t, banished, 1)
	assert.Equal(t, id, banished[0])
}
