package battle

import (
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

const (
	testCharacterOne = identifiers.BaseCardId("test-character-one")
	testCharacterTwo = identifiers.BaseCardId("test-character-two")
	testEventDraw    = identifiers.BaseCardId("test-event-draw")
)

func energy(v uint32) *identifiers.Energy {
	e := identifiers.Energy(v)
	return &e
}

func spark(v uint32) *identifiers.Spark {
	s := identifiers.Spark(v)
	return &s
}

// testTabula builds a small, self-contained content table: two cheap
// characters and a fast, targetless event, enough to exercise Setup, the
// stack/priority machine, and the view builder without needing TOML fixture
// files on disk.
func testTabula() *content.Tabula {
	return &content.Tabula{
		Cards: map[identifiers.BaseCardId]*content.CardDefinition{
			testCharacterOne: {
				BaseID:     testCharacterOne,
				Name:       "Test Character One",
				CardType:   content.CardTypeCharacter,
				EnergyCost: energy(1),
				Spark:      spark(2),
				RulesText:  "",
			},
			testCharacterTwo: {
				BaseID:     testCharacterTwo,
				Name:       "Test Character Two",
				CardType:   content.CardTypeCharacter,
				EnergyCost: energy(2),
				Spark:      spark(3),
				RulesText:  "",
			},
			testEventDraw: {
				BaseID:     testEventDraw,
				Name:       "Test Event Draw",
				CardType:   content.CardTypeEvent,
				EnergyCost: energy(1),
				IsFast:     true,
				RulesText:  "",
			},
		},
		Dreamwell:      map[identifiers.BaseCardId]*content.DreamwellCardDefinition{},
		DreamwellOrder: nil,
		CardLists:      map[string]content.CardList{},
	}
}

// testDeck repeats the given base card ids enough times to outlast a test's
// draws without running out mid-battle.
func testDeck(ids ...identifiers.BaseCardId) Deck {
	var cards []identifiers.BaseCardId
	for i := 0; i < 10; i++ {
		cards = append(cards, ids...)
	}
	return Deck{Cards: cards}
}

func testDecks() map[identifiers.PlayerName]Deck {
	return map[identifiers.PlayerName]Deck{
		identifiers.PlayerOne: testDeck(testCharacterOne, testCharacterTwo, testEventDraw),
		identifiers.PlayerTwo: testDeck(testCharacterOne, testCharacterTwo, testEventDraw),
	}
}

func newTestBattle(seed uint64) *State {
	return Setup(testTabula(), seed, testDecks(), SetupOptions{
		VictoryPointThreshold: identifiers.Points(25),
	})
}
