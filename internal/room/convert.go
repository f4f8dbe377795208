package room

import (
	"bidwhist/internal/game"
	"bidwhist/internal/shared"
)

// toMessage maps an engine event to its wire message.
func toMessage(ev game.Event) (any, bool) {
	switch p := ev.Payload.(type) {
	case game.HandDealtPayload:
		return shared.HandDealt{Type: shared.TypeHandDealt, Hand: p.Hand}, true
	case game.BidRequestedPayload:
		return shared.RequestBid{Type: shared.TypeRequestBid, MinBid: p.MinBid}, true
	case game.Bid:
		return shared.BidUpdate{Type: shared.TypeBidUpdate, Seat: p.Seat, Val: p.Value}, true
	case game.Contract:
		return shared.ContractSet{Type: shared.TypeContractSet, Contract: p}, true
	case game.PublicState:
		return shared.GameState{Type: shared.TypeGameState, State: p}, true
	case game.Play:
		return shared.CardPlayed{Type: shared.TypeCardPlayed, Seat: p.Seat, Card: p.Card}, true
	case game.TrickResolvedPayload:
		return shared.TrickResolved{Type: shared.TypeTrickResolved, Winner: p.Winner}, true
	case game.HandScoredPayload:
		return shared.HandScored{
			Type:      shared.TypeHandScored,
			Contract:  p.Contract,
			TricksWon: p.TricksWon,
			Delta:     p.Delta,
			Scores:    p.Scores,
			Made:      p.Made,
		}, true
	}
	return nil, false
}
