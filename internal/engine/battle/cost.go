package battle

import (
	"github.com/dreamtides/battlecore/internal/engine/ability"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/targeting"
	"github.com/dreamtides/battlecore/internal/engine/zones"
)

// canAffordCost reports whether player could pay cost right now, without
// mutating state. Enumerate uses this to gate which hand cards and
// activated abilities are offered (§4.2); payCost re-derives the same
// candidate pools when it actually collects the payment.
func canAffordCost(s *State, player identifiers.PlayerName, cost ability.Cost) bool {
	switch cost.Kind {
	case ability.CostPayEnergy, ability.CostLossOfMaximumEnergy:
		return s.Players[player].Energy >= cost.Energy
	case ability.CostSpendOneOrMoreEnergy:
		return s.Players[player].Energy > 0
	case ability.CostBanishCardsFromVoid:
		return s.Zones.VoidLen(player) >= cost.Count
	case ability.CostBanishAllCardsFromVoid:
		return true
	case ability.CostAbandonCharactersCount:
		return len(matchingCandidates(s, player, cost.Predicate)) >= cost.Count
	case ability.CostAbandonDreamscapes:
		return len(dreamscapeIds(s, player)) >= cost.Count
	case ability.CostDiscardCards:
		return len(matchingHandCards(s, player, cost.Predicate)) >= cost.Count
	case ability.CostDiscardHand:
		return true
	case ability.CostBanishFromHand:
		return len(matchingHandCards(s, player, cost.Predicate)) >= 1
	case ability.CostChoice:
		for _, alt := range cost.Alternatives {
			if canAffordCost(s, player, alt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func canAffordCosts(s *State, player identifiers.PlayerName, costs []ability.Cost) bool {
	for _, c := range costs {
		if !canAffordCost(s, player, c) {
			return false
		}
	}
	return true
}

func matchingCandidates(s *State, player identifiers.PlayerName, predicate ability.Predicate) []identifiers.CardId {
	return targeting.CandidateSet(targetingContext(s), player, predicate)
}

func matchingHandCards(s *State, player identifiers.PlayerName, predicate ability.Predicate) []identifiers.CardId {
	ctx := targetingContext(s)
	var out []identifiers.CardId
	for _, id := range s.Zones.HandIds(player) {
		if targeting.Matches(ctx, player, id.CardId(), predicate.Card) {
			out = append(out, id.CardId())
		}
	}
	return out
}

// dreamscapeIds returns player's battlefield permanents of CardTypeDream.
// The zone store's battlefield bitset does not distinguish characters from
// other permanent types (§4.1), so this filters CharacterIds by definition
// rather than reading a separate zone.
func dreamscapeIds(s *State, player identifiers.PlayerName) []identifiers.CardId {
	var out []identifiers.CardId
	for _, cid := range s.Zones.CharacterIds(player) {
		if def, ok := cardDefinition(s, cid.CardId()); ok && def.CardType == content.CardTypeDream {
			out = append(out, cid.CardId())
		}
	}
	return out
}

// payCosts pays costs in order, continuation-passing style like
// executeEffect: costs needing no player input (energy, banish-all) apply
// immediately; costs needing a choice (which characters to abandon, which
// void cards to banish) park a Prompt and resume the remaining cost list
// once answered. onComplete receives control once every cost is paid.
func payCosts(s *State, player identifiers.PlayerName, source identifiers.CardId, costs []ability.Cost, onComplete func(*State) error) error {
	if len(costs) == 0 {
		return onComplete(s)
	}
	rest := costs[1:]
	return payCost(s, player, source, costs[0], func(st *State) error {
		return payCosts(st, player, source, rest, onComplete)
	})
}

func payCost(s *State, player identifiers.PlayerName, source identifiers.CardId, cost ability.Cost, onComplete func(*State) error) error {
	switch cost.Kind {
	case ability.CostPayEnergy:
		s.Players[player].Energy = s.Players[player].Energy.Sub(cost.Energy)
		return onComplete(s)

	case ability.CostLossOfMaximumEnergy:
		s.Players[player].ProducedEnergy = s.Players[player].ProducedEnergy.Sub(cost.Energy)
		if s.Players[player].Energy > s.Players[player].ProducedEnergy {
			s.Players[player].Energy = s.Players[player].ProducedEnergy
		}
		return onComplete(s)

	case ability.CostSpendOneOrMoreEnergy:
		s.pushPrompt(Prompt{
			Kind:      PromptEnergyValue,
			Owner:     player,
			Source:    source,
			MinEnergy: 1,
			MaxEnergy: s.Players[player].Energy,
			Continuation: func(st *State, answer PromptAnswer) error {
				st.Players[player].Energy = st.Players[player].Energy.Sub(answer.Energy)
				return onComplete(st)
			},
		})
		return nil

	case ability.CostBanishAllCardsFromVoid:
		for _, id := range s.Zones.VoidIds(player) {
			s.Zones.MoveCard(player, id.CardId(), zones.ZoneVoid, zones.ZoneBanished)
		}
		return onComplete(s)

	case ability.CostDiscardHand:
		discardHand(s, player)
		return onComplete(s)

	case ability.CostBanishCardsFromVoid:
		return selectCardsSeq(s, player, source, s.Zones.VoidIds(player), cost.Count, PromptSelectVoidCard,
			func(id identifiers.CardId) { s.Zones.MoveCard(player, id, zones.ZoneVoid, zones.ZoneBanished) },
			onComplete)

	case ability.CostAbandonCharactersCount:
		candidates := matchingCandidates(s, player, cost.Predicate)
		return selectCandidatesSeq(s, player, source, candidates, cost.Count, PromptSelectCharacter,
			func(st *State, id identifiers.CardId) {
				def, _ := cardDefinition(st, id)
				unregisterCardTriggers(st, def, id)
				st.Zones.MoveCard(player, id, zones.ZoneBattlefield, zones.ZoneVoid)
			},
			onComplete)

	case ability.CostAbandonDreamscapes:
		candidates := dreamscapeIds(s, player)
		return selectCandidatesSeq(s, player, source, candidates, cost.Count, PromptSelectCharacter,
			func(st *State, id identifiers.CardId) {
				st.Zones.MoveCard(player, id, zones.ZoneBattlefield, zones.ZoneVoid)
			},
			onComplete)

	case ability.CostDiscardCards:
		candidates := matchingHandCards(s, player, cost.Predicate)
		return selectCandidatesSeq(s, player, source, candidates, cost.Count, PromptSelectHandCard,
			func(st *State, id identifiers.CardId) {
				st.Zones.MoveCard(player, id, zones.ZoneHand, zones.ZoneVoid)
				fireSimple(st, ability.TriggerDiscarded, player, id)
			},
			onComplete)

	case ability.CostBanishFromHand:
		candidates := matchingHandCards(s, player, cost.Predicate)
		return selectCandidatesSeq(s, player, source, candidates, 1, PromptSelectHandCard,
			func(st *State, id identifiers.CardId) {
				st.Zones.MoveCard(player, id, zones.ZoneHand, zones.ZoneBanished)
			},
			onComplete)

	case ability.CostChoice:
		var alternatives []int
		for i, alt := range cost.Alternatives {
			if canAffordCost(s, player, alt) {
				alternatives = append(alternatives, i)
			}
		}
		s.pushPrompt(Prompt{
			Kind:        PromptChoice,
			Owner:       player,
			Source:      source,
			ChoiceCount: len(cost.Alternatives),
			Continuation: func(st *State, answer PromptAnswer) error {
				return payCost(st, player, source, cost.Alternatives[answer.Choice], onComplete)
			},
		})
		return nil

	default:
		return onComplete(s)
	}
}

// selectCardsSeq collects up to count distinct CardIds out of pool via
// repeated single-choice prompts (used for void-card costs where the
// prompt's valid set is VoidCardId-shaped), applying apply immediately to
// each chosen id as it is confirmed.
func selectCardsSeq(s *State, player identifiers.PlayerName, source identifiers.CardId, pool []identifiers.VoidCardId, count int, kind PromptKind, apply func(identifiers.CardId), onComplete func(*State) error) error {
	ids := make([]identifiers.CardId, len(pool))
	for i, id := range pool {
		ids[i] = id.CardId()
	}
	return selectCandidatesSeq(s, player, source, ids, count, kind, func(_ *State, id identifiers.CardId) { apply(id) }, onComplete)
}

// selectCandidatesSeq prompts player once per remaining selection (up to
// count, or fewer if candidates runs out), applying each chosen card and
// excluding it from the next prompt's candidate set.
func selectCandidatesSeq(s *State, player identifiers.PlayerName, source identifiers.CardId, candidates []identifiers.CardId, count int, kind PromptKind, apply func(*State, identifiers.CardId), onComplete func(*State) error) error {
	if count <= 0 || len(candidates) == 0 {
		return onComplete(s)
	}
	prompt := Prompt{Kind: kind, Owner: player, Source: source}
	switch kind {
	case PromptSelectCharacter:
		chars := make([]identifiers.CharacterId, len(candidates))
		for i, id := range candidates {
			chars[i] = identifiers.CharacterId(id)
		}
		prompt.ValidCharacters = chars
	case PromptSelectVoidCard:
		voids := make([]identifiers.VoidCardId, len(candidates))
		for i, id := range candidates {
			voids[i] = identifiers.VoidCardId(id)
		}
		prompt.ValidVoidCards = voids
	case PromptSelectHandCard:
		hand := make([]identifiers.HandCardId, len(candidates))
		for i, id := range candidates {
			hand[i] = identifiers.HandCardId(id)
		}
		prompt.ValidHandCards = hand
	case PromptSelectStackCard:
		stack := make([]identifiers.StackCardId, len(candidates))
		for i, id := range candidates {
			stack[i] = identifiers.StackCardId(id)
		}
		prompt.ValidStackCards = stack
	}
	prompt.Continuation = func(st *State, answer PromptAnswer) error {
		var chosen identifiers.CardId
		switch kind {
		case PromptSelectCharacter:
			chosen = answer.Character.CardId()
		case PromptSelectVoidCard:
			chosen = answer.VoidCard.CardId()
		case PromptSelectHandCard:
			chosen = answer.HandCard.CardId()
		case PromptSelectStackCard:
			chosen = answer.StackCard.CardId()
		}
		apply(st, chosen)
		remaining := make([]identifiers.CardId, 0, len(candidates)-1)
		for _, id := range candidates {
			if id != chosen {
				remaining = append(remaining, id)
			}
		}
		return selectCandidatesSeq(st, player, source, remaining, count-1, kind, apply, onComplete)
	}
	s.pushPrompt(prompt)
	return nil
}
