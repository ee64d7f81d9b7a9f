package battle

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/zones"
)

// PlayerState is the per-player aggregate scalar state; hand/deck/void
// shapes are derived from the zone store, not duplicated here (§3).
type PlayerState struct {
	Energy         identifiers.Energy
	ProducedEnergy identifiers.Energy
	Points         identifiers.Points

	// DreamwellIndex is this player's cursor into Tabula.DreamwellOrder: the
	// next dreamwell card revealed at the start of one of their turns.
	DreamwellIndex int
}

// TurnCounters tracks per-turn, per-player bookkeeping reset at end of
// turn: how many characters have been materialized this turn (backing the
// MaterializeNthThisTurn trigger, §9 open question (c)).
type TurnCounters struct {
	MaterializedThisTurn int
}

// PromptKind is the closed set of prompt payload shapes the prompt queue
// can hold.
type PromptKind int

const (
	PromptSelectCharacter PromptKind = iota
	PromptSelectStackCard
	PromptSelectVoidCard
	PromptSelectHandCard
	PromptChoice
	PromptEnergyValue
)

// Prompt is one pending decision a player must answer before the engine
// resumes (§3 "Prompt queue").
type Prompt struct {
	Kind     PromptKind
	Owner    identifiers.PlayerName
	Source   identifiers.CardId
	Optional bool

	ValidCharacters []identifiers.CharacterId
	ValidStackCards []identifiers.StackCardId
	ValidVoidCards  []identifiers.VoidCardId
	ValidHandCards  []identifiers.HandCardId
	ChoiceCount     int
	MinEnergy       identifiers.Energy
	MaxEnergy       identifiers.Energy

	// Continuation resumes the effect that issued the prompt once answered;
	// see §9 "Prompt-driven effect continuation": an explicit continuation
	// record rather than a language-level coroutine.
	Continuation func(state *State, answer PromptAnswer) error
}

// PromptAnswer is the payload of a prompt-answering action, validated
// against the pending prompt's Kind before the continuation runs.
type PromptAnswer struct {
	Character identifiers.CharacterId
	StackCard identifiers.StackCardId
	VoidCard  identifiers.VoidCardId
	HandCard  identifiers.HandCardId
	Choice    int
	Energy    identifiers.Energy
}

// State is the single owning record of one battle: zones, per-player
// scalars, turn/phase machinery, the stack, prompts, RNG, and a shared
// handle to the loaded content. Grounded on engineGameState in
// mage_engine.go.
type State struct {
	Zones    *zones.Store
	Turn     *battlerules.TurnManager
	Stack    *battlerules.StackManager
	Triggers *battlerules.TriggerManager

	Players      map[identifiers.PlayerName]*PlayerState
	TurnCounters map[identifiers.PlayerName]*TurnCounters

	Prompts []Prompt

	// Animations accumulates the display-layer animation command sequence
	// for the action currently resolving (§4.4 "emitting animations"); Apply
	// resets it to nil before dispatching each action, and BuildView copies
	// it onto the View it returns.
	Animations []AnimationCommand

	RNG       *rand.Rand
	rngSource *rand.PCG

	Tabula *content.Tabula
	Logger *zap.Logger

	// VictoryPointThreshold is the points total that ends the battle in the
	// holder's favor (§3 "the first player to reach the configured
	// threshold wins"). Unlike most configuration this is carried on State
	// rather than left to the caller, since GainPoints-family effects must
	// be able to declare the game over the instant they apply.
	VictoryPointThreshold identifiers.Points

	// Winner is set the instant a player reaches VictoryPointThreshold or an
	// effect ends the game outright (EffectYouWin).
	Winner *identifiers.PlayerName

	// activePromptParked is never set; whether an action is suspended
	// waiting on Prompts[0] is read from Prompts itself (PendingPrompt).
	activePromptParked bool

	// consecutivePasses counts PassPriority actions since the last action
	// that was not a pass; two in a row resolves the top of the stack
	// (§4.3 "priority passes back and forth; two consecutive passes resolve
	// the topmost stack item").
	consecutivePasses int
}

// New creates a battle state for a fresh seed, carrying victoryThreshold on
// the state itself so GainPoints-family effects can declare the game over
// the instant they apply (§6.3).
func New(tabula *content.Tabula, seed uint64, victoryThreshold identifiers.Points, logger *zap.Logger) *State {
	source := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &State{
		Zones:    zones.NewStore(),
		Turn:     battlerules.NewTurnManager(identifiers.PlayerOne),
		Stack:    battlerules.NewStackManager(),
		Triggers: battlerules.NewTriggerManager(),
		Players: map[identifiers.PlayerName]*PlayerState{
			identifiers.PlayerOne: {},
			identifiers.PlayerTwo: {},
		},
		TurnCounters: map[identifiers.PlayerName]*TurnCounters{
			identifiers.PlayerOne: {},
			identifiers.PlayerTwo: {},
		},
		RNG:                   rand.New(source),
		rngSource:             source,
		Tabula:                tabula,
		Logger:                logger,
		VictoryPointThreshold: victoryThreshold,
	}
}

func (s *State) logf() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// PendingPrompt returns the prompt the active decision-maker must answer,
// if any.
func (s *State) PendingPrompt() (Prompt, bool) {
	if len(s.Prompts) == 0 {
		return Prompt{}, false
	}
	return s.Prompts[0], true
}

func (s *State) pushPrompt(p Prompt) {
	s.Prompts = append(s.Prompts, p)
}

func (s *State) popPrompt() Prompt {
	p := s.Prompts[0]
	s.Prompts = s.Prompts[1:]
	return p
}

// IsGameOver reports whether either player has reached a terminal state.
func (s *State) IsGameOver() bool {
	return s.Turn.IsGameOver()
}

// Clone returns an independent deep copy suitable for AI rollouts (§5
// "state clone independence"). The content tabula is shared by reference
// (it is immutable), everything else is deep-copied.
func (s *State) Clone() *State {
	clone := &State{
		Zones:                 s.Zones.Clone(),
		Turn:                  s.Turn.Clone(),
		Stack:                 battlerules.NewStackManager(),
		Triggers:              s.Triggers.Clone(),
		Players:               map[identifiers.PlayerName]*PlayerState{},
		TurnCounters:          map[identifiers.PlayerName]*TurnCounters{},
		Tabula:                s.Tabula,
		Logger:                s.Logger,
		VictoryPointThreshold: s.VictoryPointThreshold,
		consecutivePasses:     s.consecutivePasses,
	}
	if s.Winner != nil {
		winner := *s.Winner
		clone.Winner = &winner
	}
	for player, ps := range s.Players {
		copied := *ps
		clone.Players[player] = &copied
	}
	for player, tc := range s.TurnCounters {
		copied := *tc
		clone.TurnCounters[player] = &copied
	}
	for _, item := range s.Stack.List() {
		clone.Stack.Push(item)
	}
	clone.Prompts = append([]Prompt(nil), s.Prompts...)
	clone.Animations = append([]AnimationCommand(nil), s.Animations...)

	if rngState, err := s.rngSource.MarshalBinary(); err == nil {
		source := &rand.PCG{}
		if unmarshalErr := source.UnmarshalBinary(rngState); unmarshalErr == nil {
			clone.rngSource = source
			clone.RNG = rand.New(source)
		}
	}
	if clone.RNG == nil {
		clone.rngSource = s.rngSource
		clone.RNG = s.RNG
	}
	return clone
}
