// Package battlerules holds the small, independently-testable rule engines
// that the battle aggregate composes: the stack, the trigger manager, the
// turn/phase sequencer, and legality checks. Adapted from the teacher's
// internal/game/rules package.
package battlerules

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// Phase is one step of a turn, in the fixed order §4.3 specifies:
// Starting -> Judgment -> Dreamwell -> Draw -> Main -> Ending, then the
// opponent's Starting. GameOver is a terminal phase reached from any point.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseJudgment
	PhaseDreamwell
	PhaseDraw
	PhaseMain
	PhaseEnding
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseStarting:  "STARTING",
	PhaseJudgment:  "JUDGMENT",
	PhaseDreamwell: "DREAMWELL",
	PhaseDraw:      "DRAW",
	PhaseMain:      "MAIN",
	PhaseEnding:    "ENDING",
	PhaseGameOver:  "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

var turnSequence = []Phase{
	PhaseStarting,
	PhaseJudgment,
	PhaseDreamwell,
	PhaseDraw,
	PhaseMain,
	PhaseEnding,
}

// TurnManager tracks the active player, the player currently holding
// priority, the current phase, and the turn counter.
type TurnManager struct {
	orderIndex     int
	turnID         identifiers.TurnId
	activePlayer   identifiers.PlayerName
	priorityPlayer identifiers.PlayerName
	gameOver       bool
	extraTurn      bool
}

// NewTurnManager creates a turn manager starting at turn 0, Starting phase,
// with the given player active.
func NewTurnManager(active identifiers.PlayerName) *TurnManager {
	return &TurnManager{
		orderIndex:     0,
		turnID:         0,
		activePlayer:   active,
		priorityPlayer: active,
	}
}

func (tm *TurnManager) CurrentPhase() Phase {
	if tm.gameOver {
		return PhaseGameOver
	}
	return turnSequence[tm.orderIndex]
}

func (tm *TurnManager) TurnID() identifiers.TurnId         { return tm.turnID }
func (tm *TurnManager) ActivePlayer() identifiers.PlayerName { return tm.activePlayer }

func (tm *TurnManager) PriorityPlayer() identifiers.PlayerName {
	return tm.priorityPlayer
}

func (tm *TurnManager) SetPriority(player identifiers.PlayerName) {
	tm.priorityPlayer = player
}

// IsGameOver reports whether the battle has reached a terminal state.
func (tm *TurnManager) IsGameOver() bool { return tm.gameOver }

// DeclareGameOver transitions permanently to PhaseGameOver.
func (tm *TurnManager) DeclareGameOver() { tm.gameOver = true }

// AdvancePhase moves to the next phase in sequence. At the end of Ending it
// wraps to Starting and hands the turn to the opponent, incrementing the
// turn counter. Priority always reverts to the (possibly new) active player.
func (tm *TurnManager) AdvancePhase() Phase {
	if tm.gameOver {
		return PhaseGameOver
	}

	tm.orderIndex++
	if tm.orderIndex >= len(turnSequence) {
		tm.orderIndex = 0
		tm.turnID++
		if tm.extraTurn {
			tm.extraTurn = false
		} else {
			tm.activePlayer = tm.activePlayer.Opponent()
		}
	}

	tm.priorityPlayer = tm.activePlayer
	return tm.CurrentPhase()
}

// GrantExtraTurn marks that the next turn wrap keeps the current active
// player active instead of handing the turn to the opponent (the
// TakeExtraTurn effect).
func (tm *TurnManager) GrantExtraTurn() { tm.extraTurn = true }

// Clone returns an independent copy.
func (tm *TurnManager) Clone() *TurnManager {
	copied := *tm
	return &copied
}

// SkipToEnding implements EndTurn: jump directly from Main to Ending,
// skipping any remaining non-terminal steps within the current turn.
func (tm *TurnManager) SkipToEnding() Phase {
	if tm.gameOver {
		return PhaseGameOver
	}
	for i, phase := range turnSequence {
		if phase == PhaseEnding {
			tm.orderIndex = i
			break
		}
	}
	tm.priorityPlayer = tm.activePlayer
	return tm.CurrentPhase()
}
