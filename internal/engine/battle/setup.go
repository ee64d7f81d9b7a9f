package battle

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// DefaultStartingHandSize is how many cards each player draws before the
// first turn begins, absent an explicit override (§4.3 gives the phase
// sequence but leaves the opening-hand size to the engine's configuration,
// same as victoryThreshold).
const DefaultStartingHandSize = 5

// Deck is one player's deck list for battle setup: card names in
// whatever order the caller assembled them (a saved decklist, a random
// draft result). Setup shuffles this order before assigning CardIds, per
// zones.Store.DeckTop's documented contract that ascending CardId is the
// post-shuffle deck order.
type Deck struct {
	Cards []identifiers.BaseCardId
}

// SetupOptions configures Setup beyond the mandatory tabula/decks/seed.
// Zero-value StartingHandSize falls back to DefaultStartingHandSize.
type SetupOptions struct {
	VictoryPointThreshold identifiers.Points
	StartingHandSize      int
	Logger                *zap.Logger
}

// Setup builds a fresh battle: constructs each player's deck from their
// decklist (shuffled with the battle's own seeded RNG, so the same seed
// always produces the same opening game), draws each player's starting
// hand, then runs PlayerOne's automatic Starting, Judgment, Dreamwell and
// Draw phases, leaving the state at turn 0, PlayerOne's Main phase,
// priority with PlayerOne.
func Setup(tabula *content.Tabula, seed uint64, decks map[identifiers.PlayerName]Deck, opts SetupOptions) *State {
	threshold := opts.VictoryPointThreshold
	s := New(tabula, seed, threshold, opts.Logger)

	handSize := opts.StartingHandSize
	if handSize <= 0 {
		handSize = DefaultStartingHandSize
	}

	for _, player := range []identifiers.PlayerName{identifiers.PlayerOne, identifiers.PlayerTwo} {
		deck := decks[player]
		shuffled := shuffledCopy(s.RNG, deck.Cards)
		for _, name := range shuffled {
			s.Zones.NewCard(player, name)
		}
		drawCards(s, player, handSize)
	}

	advanceToFirstMain(s)
	return s
}

// advanceToFirstMain runs the new battle's Starting/Judgment/Dreamwell/Draw
// phases (Starting has no fixed effect of its own) so the state lands on
// PlayerOne's Main phase before anyone ever gets priority. Every later turn
// reaches Main the same way via applyStartNextTurn; this is the one time it
// happens without a preceding StartNextTurn action, since Setup has no prior
// Ending phase to advance out of (§4.3).
func advanceToFirstMain(s *State) {
	for {
		phase := s.Turn.CurrentPhase()
		if phase == battlerules.PhaseMain || phase == battlerules.PhaseGameOver {
			return
		}
		runAutomaticPhase(s, phase)
		if s.IsGameOver() {
			return
		}
		if s.Turn.AdvancePhase() == battlerules.PhaseGameOver {
			return
		}
	}
}

// shuffledCopy returns a freshly-allocated, Fisher-Yates-shuffled copy of
// cards using rng, leaving the caller's slice untouched.
func shuffledCopy(rng *rand.Rand, cards []identifiers.BaseCardId) []identifiers.BaseCardId {
	out := append([]identifiers.BaseCardId(nil), cards...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
