package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtides/battlecore/internal/engine/battle"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/replay"
)

const testCard = identifiers.BaseCardId("test-character")

func testTabula() *content.Tabula {
	spark := identifiers.Spark(2)
	cost := identifiers.Energy(0)
	return &content.Tabula{
		Cards: map[identifiers.BaseCardId]*content.CardDefinition{
			testCard: {BaseID: testCard, Name: "Test Character", CardType: content.CardTypeCharacter, EnergyCost: &cost, Spark: &spark},
		},
		Dreamwell:      map[identifiers.BaseCardId]*content.DreamwellCardDefinition{},
		DreamwellOrder: nil,
		CardLists:      map[string]content.CardList{},
	}
}

func testDecks() map[identifiers.PlayerName]battle.Deck {
	var cards []identifiers.BaseCardId
	for i := 0; i < 10; i++ {
		cards = append(cards, testCard)
	}
	return map[identifiers.PlayerName]battle.Deck{
		identifiers.PlayerOne: {Cards: cards},
		identifiers.PlayerTwo: {Cards: cards},
	}
}

func testOpts() battle.SetupOptions {
	return battle.SetupOptions{VictoryPointThreshold: identifiers.Points(25)}
}

func TestSession_ApplyAndViewOperateOnTheSameState(t *testing.T) {
	s := NewSession("session-1", testTabula(), 1, testDecks(), testOpts())

	view := s.View(identifiers.PlayerOne)
	require.NotEmpty(t, view.Legal.PlayCardFromHand)
	handCard := view.Legal.PlayCardFromHand[0]

	require.NoError(t, s.Apply(identifiers.PlayerOne, battle.PlayCardFromHand(handCard)))

	after := s.View(identifiers.PlayerOne)
	assert.Len(t, after.Stack, 1)
}

func TestSession_ApplyReturnsTheUnderlyingEngineError(t *testing.T) {
	s := NewSession("session-1", testTabula(), 1, testDecks(), testOpts())
	err := s.Apply(identifiers.PlayerTwo, battle.PassPriority())
	assert.Error(t, err)
}

func TestSession_ExposesItsConstructionParameters(t *testing.T) {
	decks := testDecks()
	s := NewSession("session-1", testTabula(), 7, decks, testOpts())

	assert.Equal(t, uint64(7), s.Seed())
	assert.Equal(t, decks, s.Decks())
	assert.Equal(t, testOpts(), s.Options())
}

func TestRestore_ReplaysRecordsOntoAFreshSetup(t *testing.T) {
	tabula := testTabula()
	live := NewSession("session-1", tabula, 1, testDecks(), testOpts())
	view := live.View(identifiers.PlayerOne)
	handCard := view.Legal.PlayCardFromHand[0]
	require.NoError(t, live.Apply(identifiers.PlayerOne, battle.PlayCardFromHand(handCard)))

	records := []replay.ActionRecord{
		{Player: identifiers.PlayerOne, Action: battle.PlayCardFromHand(handCard)},
	}
	restored, err := Restore("session-1", tabula, 1, testDecks(), testOpts(), records)
	require.NoError(t, err)

	liveView := live.View(identifiers.PlayerOne)
	restoredView := restored.View(identifiers.PlayerOne)
	assert.Equal(t, liveView.Stack, restoredView.Stack)
}

func TestRestore_PropagatesAReplayFailure(t *testing.T) {
	records := []replay.ActionRecord{
		{Player: identifiers.PlayerOne, Action: battle.PlayCardFromHand(identifiers.HandCardId(999))},
	}
	_, err := Restore("session-1", testTabula(), 1, testDecks(), testOpts(), records)
	assert.Error(t, err)
}

func TestSessionRegistry_AddGetRemove(t *testing.T) {
	r := NewSessionRegistry(nil)
	s := NewSession("session-1", testTabula(), 1, testDecks(), testOpts())

	_, ok := r.Get("session-1")
	assert.False(t, ok)

	r.Add(s)
	got, ok := r.Get("session-1")
	require.True(t, ok)
	assert.Same(t, s, got)

	r.Remove("session-1")
	_, ok = r.Get("session-1")
	assert.False(t, ok)
}
