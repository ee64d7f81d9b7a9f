package battle

import (
	"github.com/dreamtides/battlecore/internal/engine/battlerules"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
)

// View is the hidden-info projection of State for one requesting player:
// everything they are entitled to see, with the opponent's hand reduced to
// a face-down count. Grounded on the teacher's EngineGameView/GetGameView
// (mage_engine.go) — one view struct per zone/player, built fresh on every
// request rather than kept incrementally in sync with State.
type View struct {
	Phase          string
	Turn           identifiers.TurnId
	ActivePlayer   identifiers.PlayerName
	PriorityPlayer identifiers.PlayerName
	Winner         *identifiers.PlayerName

	Players     map[identifiers.PlayerName]PlayerView
	Battlefield []CardView
	Stack       []StackView
	Void        map[identifiers.PlayerName][]CardView
	Banished    map[identifiers.PlayerName][]CardView

	// Animations is the animation command sequence the effect executor
	// accumulated while resolving the action that produced this View (§2,
	// §6.1): it is the same for every requestingPlayer, since animations are
	// public information about what just happened on the battlefield.
	Animations []AnimationCommand

	Legal LegalActions
}

// PlayerView is one player's scalar state plus their hand, face-down unless
// requestingPlayer is the hand's owner.
type PlayerView struct {
	Energy         identifiers.Energy
	ProducedEnergy identifiers.Energy
	Points         identifiers.Points
	DeckCount      int
	HandCount      int
	Hand           []CardView
}

// CardView is one card's public face in whatever zone it occupies.
// Fields that don't apply to a card's CardType are left zero.
type CardView struct {
	ID         identifiers.CardId
	Name       string
	CardType   string
	Controller identifiers.PlayerName
	EnergyCost *identifiers.Energy
	Spark      *identifiers.Spark
	RulesText  string
	FaceDown   bool
}

// StackView is one stack entry: the card or ability occupying it, its
// controller, and the targets it has locked in (empty if targets haven't
// been gathered yet, e.g. mid cast-time prompt).
type StackView struct {
	Card    CardView
	Ability identifiers.AbilityNumber
	Targets []identifiers.CardId
}

// BuildView projects s from requestingPlayer's point of view (§4.11 /
// GLOSSARY "view"): both players' battlefields and voids are public (§3 —
// characters and void cards are always face-up), but only requestingPlayer's
// own hand is shown in full; the opponent's hand is reduced to a count of
// face-down placeholders, mirroring buildPlayerViews's "Only show hand to
// the owning player" branch.
func BuildView(s *State, requestingPlayer identifiers.PlayerName) View {
	view := View{
		Phase:          s.Turn.CurrentPhase().String(),
		Turn:           s.Turn.TurnID(),
		ActivePlayer:   s.Turn.ActivePlayer(),
		PriorityPlayer: s.Turn.PriorityPlayer(),
		Winner:         s.Winner,
		Players:        map[identifiers.PlayerName]PlayerView{},
		Void:           map[identifiers.PlayerName][]CardView{},
		Banished:       map[identifiers.PlayerName][]CardView{},
		Animations:     append([]AnimationCommand(nil), s.Animations...),
		Legal:          Enumerate(s, requestingPlayer),
	}

	for _, player := range []identifiers.PlayerName{identifiers.PlayerOne, identifiers.PlayerTwo} {
		view.Players[player] = buildPlayerView(s, player, requestingPlayer)
		view.Battlefield = append(view.Battlefield, buildCardViews(s, characterCardIds(s, player), player)...)
	}
	for _, player := range []identifiers.PlayerName{identifiers.PlayerOne, identifiers.PlayerTwo} {
		view.Void[player] = buildCardViews(s, voidCardIds(s, player), player)
		view.Banished[player] = buildCardViews(s, banishedCardIds(s, player), player)
	}
	view.Stack = buildStackViews(s)

	return view
}

func buildPlayerView(s *State, player, requestingPlayer identifiers.PlayerName) PlayerView {
	ps := s.Players[player]
	handIds := s.Zones.HandIds(player)
	ids := make([]identifiers.CardId, len(handIds))
	for i, id := range handIds {
		ids[i] = id.CardId()
	}

	pv := PlayerView{
		Energy:         ps.Energy,
		ProducedEnergy: ps.ProducedEnergy,
		Points:         ps.Points,
		DeckCount:      s.Zones.DeckLen(player),
		HandCount:      len(ids),
	}
	if player == requestingPlayer {
		pv.Hand = buildCardViews(s, ids, player)
	} else {
		pv.Hand = make([]CardView, len(ids))
		for i, id := range ids {
			pv.Hand[i] = CardView{ID: id, Controller: player, FaceDown: true}
		}
	}
	return pv
}

func characterCardIds(s *State, player identifiers.PlayerName) []identifiers.CardId {
	chars := s.Zones.CharacterIds(player)
	out := make([]identifiers.CardId, len(chars))
	for i, id := range chars {
		out[i] = id.CardId()
	}
	return out
}

func voidCardIds(s *State, player identifiers.PlayerName) []identifiers.CardId {
	voids := s.Zones.VoidIds(player)
	out := make([]identifiers.CardId, len(voids))
	for i, id := range voids {
		out[i] = id.CardId()
	}
	return out
}

func banishedCardIds(s *State, player identifiers.PlayerName) []identifiers.CardId {
	return s.Zones.BanishedIds(player)
}

func buildCardViews(s *State, ids []identifiers.CardId, controller identifiers.PlayerName) []CardView {
	out := make([]CardView, 0, len(ids))
	for _, id := range ids {
		out = append(out, buildCardView(s, id, controller))
	}
	return out
}

func buildCardView(s *State, id identifiers.CardId, controller identifiers.PlayerName) CardView {
	view := CardView{ID: id, Controller: controller}
	def, ok := cardDefinition(s, id)
	if !ok {
		return view
	}
	view.Name = def.Name
	view.CardType = def.CardType.String()
	view.EnergyCost = def.EnergyCost
	view.RulesText = def.RulesText
	if cs, ok := s.Zones.CharacterState(id); ok && def.CardType == content.CardTypeCharacter && def.Spark != nil {
		spark := def.Spark.Add(cs.SparkModifier)
		view.Spark = &spark
	} else {
		view.Spark = def.Spark
	}
	return view
}

func buildStackViews(s *State) []StackView {
	items := s.Stack.List()
	out := make([]StackView, 0, len(items))
	for _, item := range items {
		view := StackView{
			Ability: item.Ability,
			Targets: append([]identifiers.CardId(nil), item.Targets...),
		}
		if item.Kind == battlerules.StackItemCard {
			view.Card = buildCardView(s, item.SourceID, item.Controller)
		} else {
			view.Card = CardView{ID: item.SourceID, Controller: item.Controller, Name: item.Description}
		}
		out = append(out, view)
	}
	return out
}
