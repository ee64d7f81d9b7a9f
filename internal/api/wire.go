package api

import (
	"fmt"

	"github.com/dreamtides/battlecore/internal/engine/battle"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// playerWire renders a PlayerName the way the wire format spells it,
// distinct from identifiers.PlayerName.String() ("One"/"Two") which is
// meant for log lines, not JSON.
func playerWire(p identifiers.PlayerName) string {
	if p == identifiers.PlayerOne {
		return "one"
	}
	return "two"
}

func parsePlayerWire(s string) (identifiers.PlayerName, error) {
	switch s {
	case "one":
		return identifiers.PlayerOne, nil
	case "two":
		return identifiers.PlayerTwo, nil
	default:
		return 0, fmt.Errorf("api: unknown player %q", s)
	}
}

// ActionWire is the tagged-union JSON shape of one battle.Action (§6.1):
// a Kind string plus whichever of the optional fields that Kind uses.
// Unused fields are omitted on the wire rather than sent as zero values,
// since zero is a valid CardId/index in several of them.
type ActionWire struct {
	Kind string `json:"kind"`

	HandCard    *int32  `json:"hand_card,omitempty"`
	Character   *int32  `json:"character,omitempty"`
	StackCard   *int32  `json:"stack_card,omitempty"`
	VoidCard    *int32  `json:"void_card,omitempty"`
	ChoiceIndex *int    `json:"choice_index,omitempty"`
	Energy      *uint32 `json:"energy,omitempty"`
	Ability     *int    `json:"ability,omitempty"`
}

const (
	actionKindPlayCardFromHand           = "play_card_from_hand"
	actionKindPassPriority               = "pass_priority"
	actionKindEndTurn                    = "end_turn"
	actionKindStartNextTurn              = "start_next_turn"
	actionKindSelectCharacterTarget      = "select_character_target"
	actionKindSelectStackCardTarget      = "select_stack_card_target"
	actionKindSelectVoidCardTarget       = "select_void_card_target"
	actionKindSelectHandCardTarget       = "select_hand_card_target"
	actionKindSelectPromptChoice         = "select_prompt_choice"
	actionKindSelectEnergyAdditionalCost = "select_energy_additional_cost"
	actionKindActivateAbility            = "activate_ability"
)

// ToAction converts a wire action into the engine's battle.Action,
// rejecting a Kind that is missing the field it needs rather than silently
// defaulting to zero.
func (w ActionWire) ToAction() (battle.Action, error) {
	switch w.Kind {
	case actionKindPlayCardFromHand:
		id, err := w.requireHandCard()
		if err != nil {
			return battle.Action{}, err
		}
		return battle.PlayCardFromHand(id), nil
	case actionKindPassPriority:
		return battle.PassPriority(), nil
	case actionKindEndTurn:
		return battle.EndTurn(), nil
	case actionKindStartNextTurn:
		return battle.StartNextTurn(), nil
	case actionKindSelectCharacterTarget:
		if w.Character == nil {
			return battle.Action{}, fmt.Errorf("api: %s requires character", w.Kind)
		}
		return battle.SelectCharacterTarget(identifiers.CharacterId(*w.Character)), nil
	case actionKindSelectStackCardTarget:
		if w.StackCard == nil {
			return battle.Action{}, fmt.Errorf("api: %s requires stack_card", w.Kind)
		}
		return battle.SelectStackCardTarget(identifiers.StackCardId(*w.StackCard)), nil
	case actionKindSelectVoidCardTarget:
		if w.VoidCard == nil {
			return battle.Action{}, fmt.Errorf("api: %s requires void_card", w.Kind)
		}
		return battle.SelectVoidCardTarget(identifiers.VoidCardId(*w.VoidCard)), nil
	case actionKindSelectHandCardTarget:
		id, err := w.requireHandCard()
		if err != nil {
			return battle.Action{}, err
		}
		return battle.SelectHandCardTarget(id), nil
	case actionKindSelectPromptChoice:
		if w.ChoiceIndex == nil {
			return battle.Action{}, fmt.Errorf("api: %s requires choice_index", w.Kind)
		}
		return battle.SelectPromptChoice(*w.ChoiceIndex), nil
	case actionKindSelectEnergyAdditionalCost:
		if w.Energy == nil {
			return battle.Action{}, fmt.Errorf("api: %s requires energy", w.Kind)
		}
		return battle.SelectEnergyAdditionalCost(identifiers.Energy(*w.Energy)), nil
	case actionKindActivateAbility:
		if w.Character == nil || w.Ability == nil {
			return battle.Action{}, fmt.Errorf("api: %s requires character and ability", w.Kind)
		}
		return battle.ActivateAbility(identifiers.CharacterId(*w.Character), identifiers.AbilityNumber(*w.Ability)), nil
	default:
		return battle.Action{}, fmt.Errorf("api: unknown action kind %q", w.Kind)
	}
}

func (w ActionWire) requireHandCard() (identifiers.HandCardId, error) {
	if w.HandCard == nil {
		return 0, fmt.Errorf("api: %s requires hand_card", w.Kind)
	}
	return identifiers.HandCardId(*w.HandCard), nil
}

// legalActionWire renders one legal battle.Action back onto the wire, the
// inverse of ToAction, so a client can echo a LegalActions.All() entry
// straight back as its next submit_action.
func legalActionWire(a battle.Action) ActionWire {
	w := ActionWire{}
	switch a.Kind {
	case battle.ActionPlayCardFromHand:
		w.Kind = actionKindPlayCardFromHand
		w.HandCard = int32Ptr(int32(a.HandCard))
	case battle.ActionPassPriority:
		w.Kind = actionKindPassPriority
	case battle.ActionEndTurn:
		w.Kind = actionKindEndTurn
	case battle.ActionStartNextTurn:
		w.Kind = actionKindStartNextTurn
	case battle.ActionSelectCharacterTarget:
		w.Kind = actionKindSelectCharacterTarget
		w.Character = int32Ptr(int32(a.Character))
	case battle.ActionSelectStackCardTarget:
		w.Kind = actionKindSelectStackCardTarget
		w.StackCard = int32Ptr(int32(a.StackCard))
	case battle.ActionSelectVoidCardTarget:
		w.Kind = actionKindSelectVoidCardTarget
		w.VoidCard = int32Ptr(int32(a.VoidCard))
	case battle.ActionSelectHandCardTarget:
		w.Kind = actionKindSelectHandCardTarget
		w.HandCard = int32Ptr(int32(a.HandCard))
	case battle.ActionSelectPromptChoice:
		w.Kind = actionKindSelectPromptChoice
		w.ChoiceIndex = intPtr(a.ChoiceIndex)
	case battle.ActionSelectEnergyAdditionalCost:
		w.Kind = actionKindSelectEnergyAdditionalCost
		w.Energy = uint32Ptr(uint32(a.Energy))
	case battle.ActionActivateAbility:
		w.Kind = actionKindActivateAbility
		w.Character = int32Ptr(int32(a.Character))
		w.Ability = intPtr(int(a.Ability))
	}
	return w
}

func int32Ptr(v int32) *int32   { return &v }
func intPtr(v int) *int         { return &v }
func uint32Ptr(v uint32) *uint32 { return &v }

// CardViewWire is battle.CardView translated onto the wire: player keys
// spelled as "one"/"two" strings instead of identifiers.PlayerName, which
// has no JSON representation of its own (§6.1 keeps the engine core
// JSON-agnostic).
type CardViewWire struct {
	ID         int32             `json:"id"`
	Name       string            `json:"name,omitempty"`
	CardType   string            `json:"card_type,omitempty"`
	Controller string            `json:"controller"`
	EnergyCost *uint32           `json:"energy_cost,omitempty"`
	Spark      *uint32           `json:"spark,omitempty"`
	RulesText  string            `json:"rules_text,omitempty"`
	FaceDown   bool              `json:"face_down,omitempty"`
}

func cardViewWire(c battle.CardView) CardViewWire {
	w := CardViewWire{
		ID:         int32(c.ID),
		Name:       c.Name,
		CardType:   c.CardType,
		Controller: playerWire(c.Controller),
		RulesText:  c.RulesText,
		FaceDown:   c.FaceDown,
	}
	if c.EnergyCost != nil {
		w.EnergyCost = uint32Ptr(uint32(*c.EnergyCost))
	}
	if c.Spark != nil {
		w.Spark = uint32Ptr(uint32(*c.Spark))
	}
	return w
}

func cardViewsWire(cs []battle.CardView) []CardViewWire {
	out := make([]CardViewWire, len(cs))
	for i, c := range cs {
		out[i] = cardViewWire(c)
	}
	return out
}

// AnimationCommandWire is battle.AnimationCommand translated onto the wire.
type AnimationCommandWire struct {
	Kind   string `json:"kind"`
	Source int32  `json:"source"`
	Target int32  `json:"target"`
}

func animationCommandWire(a battle.AnimationCommand) AnimationCommandWire {
	return AnimationCommandWire{Kind: string(a.Kind), Source: int32(a.Source), Target: int32(a.Target)}
}

// StackViewWire is battle.StackView translated onto the wire.
type StackViewWire struct {
	Card    CardViewWire `json:"card"`
	Ability int          `json:"ability"`
	Targets []int32      `json:"targets,omitempty"`
}

func stackViewWire(s battle.StackView) StackViewWire {
	targets := make([]int32, len(s.Targets))
	for i, id := range s.Targets {
		targets[i] = int32(id)
	}
	return StackViewWire{Card: cardViewWire(s.Card), Ability: int(s.Ability), Targets: targets}
}

// PlayerViewWire is battle.PlayerView translated onto the wire.
type PlayerViewWire struct {
	Energy         uint32         `json:"energy"`
	ProducedEnergy uint32         `json:"produced_energy"`
	Points         uint32         `json:"points"`
	DeckCount      int            `json:"deck_count"`
	HandCount      int            `json:"hand_count"`
	Hand           []CardViewWire `json:"hand"`
}

func playerViewWire(p battle.PlayerView) PlayerViewWire {
	return PlayerViewWire{
		Energy:         uint32(p.Energy),
		ProducedEnergy: uint32(p.ProducedEnergy),
		Points:         uint32(p.Points),
		DeckCount:      p.DeckCount,
		HandCount:      p.HandCount,
		Hand:           cardViewsWire(p.Hand),
	}
}

// ViewWire is battle.View translated onto the wire: the response body of
// an MsgView frame.
type ViewWire struct {
	Phase          string                    `json:"phase"`
	Turn           uint32                    `json:"turn"`
	ActivePlayer   string                    `json:"active_player"`
	PriorityPlayer string                    `json:"priority_player"`
	Winner         *string                   `json:"winner,omitempty"`
	Players        map[string]PlayerViewWire `json:"players"`
	Battlefield    []CardViewWire            `json:"battlefield"`
	Stack          []StackViewWire           `json:"stack"`
	Void           map[string][]CardViewWire `json:"void"`
	Banished       map[string][]CardViewWire `json:"banished"`
	Animations     []AnimationCommandWire    `json:"animations,omitempty"`
	LegalActions   []ActionWire              `json:"legal_actions"`
}

// BuildViewWire converts an engine battle.View into its wire form for the
// player that requested it.
func BuildViewWire(v battle.View) ViewWire {
	w := ViewWire{
		Phase:          v.Phase,
		Turn:           uint32(v.Turn),
		ActivePlayer:   playerWire(v.ActivePlayer),
		PriorityPlayer: playerWire(v.PriorityPlayer),
		Players:        map[string]PlayerViewWire{},
		Battlefield:    cardViewsWire(v.Battlefield),
		Void:           map[string][]CardViewWire{},
		Banished:       map[string][]CardViewWire{},
	}
	if v.Winner != nil {
		winner := playerWire(*v.Winner)
		w.Winner = &winner
	}
	for player, pv := range v.Players {
		w.Players[playerWire(player)] = playerViewWire(pv)
	}
	for player, cards := range v.Void {
		w.Void[playerWire(player)] = cardViewsWire(cards)
	}
	for player, cards := range v.Banished {
		w.Banished[playerWire(player)] = cardViewsWire(cards)
	}
	for _, s := range v.Stack {
		w.Stack = append(w.Stack, stackViewWire(s))
	}
	for _, a := range v.Animations {
		w.Animations = append(w.Animations, animationCommandWire(a))
	}
	for _, a := range v.Legal.All() {
		w.LegalActions = append(w.LegalActions, legalActionWire(a))
	}
	return w
}
