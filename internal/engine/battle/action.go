// Package battle implements the aggregate battle state (§3), the
// legal-action enumerator (§4.2), the action applier (§4.3), the effect
// executor (§4.4), trigger dispatch (§4.5), and the view builder. Grounded
// on mage_engine.go's engineGameState/MageEngine for the HOW (bookmark/
// rollback ProcessAction, notification pub-sub, hidden-info view
// projection) and on legal_actions_data.rs (original_source) almost 1:1
// for the WHAT of the enumerator.
package battle

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// ActionKind is the closed set of actions a caller can submit to Apply.
type ActionKind int

const (
	ActionPlayCardFromHand ActionKind = iota
	ActionPassPriority
	ActionEndTurn
	ActionStartNextTurn
	ActionSelectCharacterTarget
	ActionSelectStackCardTarget
	ActionSelectVoidCardTarget
	ActionSelectHandCardTarget
	ActionSelectPromptChoice
	ActionSelectEnergyAdditionalCost
	ActionActivateAbility
)

// Action is a tagged struct mirroring BattleAction from legal_actions_data.rs.
type Action struct {
	Kind ActionKind

	HandCard    identifiers.HandCardId
	Character   identifiers.CharacterId
	StackCard   identifiers.StackCardId
	VoidCard    identifiers.VoidCardId
	ChoiceIndex int
	Energy      identifiers.Energy
	Ability     identifiers.AbilityNumber
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlayCardFromHand:
		return fmt.Sprintf("PlayCardFromHand(%d)", a.HandCard)
	case ActionPassPriority:
		return "PassPriority"
	case ActionEndTurn:
		return "EndTurn"
	case ActionStartNextTurn:
		return "StartNextTurn"
	case ActionSelectCharacterTarget:
		return fmt.Sprintf("SelectCharacterTarget(%d)", a.Character)
	case ActionSelectStackCardTarget:
		return fmt.Sprintf("SelectStackCardTarget(%d)", a.StackCard)
	case ActionSelectVoidCardTarget:
		return fmt.Sprintf("SelectVoidCardTarget(%d)", a.VoidCard)
	case ActionSelectHandCardTarget:
		return fmt.Sprintf("SelectHandCardTarget(%d)", a.HandCard)
	case ActionSelectPromptChoice:
		return fmt.Sprintf("SelectPromptChoice(%d)", a.ChoiceIndex)
	case ActionSelectEnergyAdditionalCost:
		return fmt.Sprintf("SelectEnergyAdditionalCost(%d)", a.Energy)
	case ActionActivateAbility:
		return fmt.Sprintf("ActivateAbility(%d, %d)", a.Character, a.Ability)
	default:
		return "UnknownAction"
	}
}

func PlayCardFromHand(id identifiers.HandCardId) Action {
	return Action{Kind: ActionPlayCardFromHand, HandCard: id}
}
func PassPriority() Action     { return Action{Kind: ActionPassPriority} }
func EndTurn() Action          { return Action{Kind: ActionEndTurn} }
func StartNextTurn() Action    { return Action{Kind: ActionStartNextTurn} }
func SelectCharacterTarget(id identifiers.CharacterId) Action {
	return Action{Kind: ActionSelectCharacterTarget, Character: id}
}
func SelectStackCardTarget(id identifiers.StackCardId) Action {
	return Action{Kind: ActionSelectStackCardTarget, StackCard: id}
}
func SelectVoidCardTarget(id identifiers.VoidCardId) Action {
	return Action{Kind: ActionSelectVoidCardTarget, VoidCard: id}
}
func SelectHandCardTarget(id identifiers.HandCardId) Action {
	return Action{Kind: ActionSelectHandCardTarget, HandCard: id}
}
func SelectPromptChoice(index int) Action {
	return Action{Kind: ActionSelectPromptChoice, ChoiceIndex: index}
}
func SelectEnergyAdditionalCost(energy identifiers.Energy) Action {
	return Action{Kind: ActionSelectEnergyAdditionalCost, Energy: energy}
}
func ActivateAbility(character identifiers.CharacterId, number identifiers.AbilityNumber) Action {
	return Action{Kind: ActionActivateAbility, Character: character, Ability: number}
}
