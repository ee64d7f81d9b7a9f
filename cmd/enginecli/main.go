// Command enginecli runs one full battle to completion outside the
// network stack, driving it by always submitting the first action each
// player's legal-action set offers. Grounded on the role the teacher's
// now-deleted cmd/web-demo/main.go played (a single-process scripted
// driver proving the wiring works end to end), generalized from printing
// a hardcoded demo board to playing a real battle from a content table
// and two named decklists.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/api"
	"github.com/dreamtides/battlecore/internal/engine/battle"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/enginelog"
	"github.com/dreamtides/battlecore/internal/config"
)

// maxSteps bounds the scripted playout so a content/ability authoring bug
// that produces an infinite pass-priority loop fails fast instead of
// hanging the CLI forever.
const maxSteps = 100000

func main() {
	cardsPath := flag.String("cards", "content/cards.toml", "path to the card definition table")
	dreamwellPath := flag.String("dreamwell", "content/dreamwell.toml", "path to the dreamwell table")
	cardListsPath := flag.String("card-lists", "content/card_lists.toml", "path to the named card list table")
	deckOneName := flag.String("deck-one", "starter", "named card list to use as player one's deck")
	deckTwoName := flag.String("deck-two", "starter", "named card list to use as player two's deck")
	seed := flag.Uint64("seed", 1, "battle RNG seed")
	threshold := flag.Uint("victory-points", 25, "victory point threshold")
	flag.Parse()

	logger, err := enginelog.New(config.LoggingConfig{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "enginecli: building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	tabula, err := content.LoadTabula(*cardsPath, *dreamwellPath, *cardListsPath)
	if err != nil {
		logger.Fatal("loading content tables", zap.Error(err))
	}

	deckOne, ok := tabula.CardLists[*deckOneName]
	if !ok {
		logger.Fatal("no such card list", zap.String("name", *deckOneName))
	}
	deckTwo, ok := tabula.CardLists[*deckTwoName]
	if !ok {
		logger.Fatal("no such card list", zap.String("name", *deckTwoName))
	}

	decks := map[identifiers.PlayerName]battle.Deck{
		identifiers.PlayerOne: {Cards: deckOne.Cards},
		identifiers.PlayerTwo: {Cards: deckTwo.Cards},
	}
	state := battle.Setup(tabula, *seed, decks, battle.SetupOptions{
		VictoryPointThreshold: identifiers.Points(*threshold),
		Logger:                logger,
	})

	steps := 0
	for !state.IsGameOver() && steps < maxSteps {
		player := playerToAct(state)
		legal := battle.Enumerate(state, player)
		actions := legal.All()
		if len(actions) == 0 {
			logger.Warn("no legal actions but game not over; stopping", zap.Int("step", steps))
			break
		}
		if err := battle.Apply(state, player, actions[0]); err != nil {
			logger.Fatal("scripted action rejected", zap.Error(err), zap.String("action", actions[0].String()))
		}
		steps++
	}

	logger.Info("battle finished", zap.Int("steps", steps), zap.Bool("game_over", state.IsGameOver()))

	view := api.BuildViewWire(battle.BuildView(state, identifiers.PlayerOne))
	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		logger.Fatal("marshaling final view", zap.Error(err))
	}
	fmt.Println(string(out))
}

// playerToAct picks whichever player actually has something to do: the
// pending prompt's owner if a prompt is parked, else the priority holder.
func playerToAct(s *battle.State) identifiers.PlayerName {
	if prompt, ok := s.PendingPrompt(); ok {
		return prompt.Owner
	}
	return s.Turn.PriorityPlayer()
}
