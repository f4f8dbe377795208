package game

import "math/rand"

type EventKind string

const (
	EventHandDealt     EventKind = "HAND_DEALT"
	EventBidRequested  EventKind = "REQUEST_BID"
	EventBidPlaced     EventKind = "BID_UPDATE"
	EventContractSet   EventKind = "CONTRACT_SET"
	EventState         EventKind = "GAME_STATE"
	EventCardPlayed    EventKind = "CARD_PLAYED"
	EventTrickResolved EventKind = "TRICK_RESOLVED"
	EventHandScored    EventKind = "HAND_SCORED"

	// Internal signals, never sent to clients. The owner of the engine
	// schedules ResolveTrick and the next deal when it sees them.
	EventTrickComplete EventKind = "trick_complete"
	EventRedeal        EventKind = "redeal"
)

// Everyone addresses an event to all members of the room.
const Everyone = -1

// Event is an outbound intent produced by the engine. Seat is the private
// recipient, or Everyone.
type Event struct {
	Kind    EventKind
	Seat    int
	Payload any
}

type HandDealtPayload struct {
	Hand []Card
}

type BidRequestedPayload struct {
	MinBid int
}

type TrickResolvedPayload struct {
	Winner int
}

type HandScoredPayload struct {
	Contract  Contract
	TricksWon [2]int
	Delta     [2]int
	Scores    [2]int
	Made      bool
}

// BidWhist holds the authoritative state of one table. It is not safe for
// concurrent use; the owning room serialises access.
type BidWhist struct {
	rng *rand.Rand

	phase     Phase
	deck      []Card
	hands     [Seats][]Card
	bids      []Bid
	trick     []Play
	tricksWon [2]int
	scores    [2]int
	turn      int
	dealer    int
	contract  *Contract
}

func NewBidWhist(rng *rand.Rand) *BidWhist {
	return &BidWhist{
		rng:   rng,
		phase: PhaseWaiting,
		turn:  -1,
	}
}

// Start shuffles a fresh deck, deals the first five cards to every seat and
// opens bidding with the seat left of the dealer.
func (g *BidWhist) Start() ([]Event, error) {
	if g.phase != PhaseWaiting {
		return nil, ErrWrongPhase
	}
	g.resetHand()
	g.deck = NewDeck()
	Shuffle(g.deck, g.rng)

	g.phase = PhaseDealingFirst
	events := g.deal(FirstDeal)

	g.phase = PhaseBidding
	g.turn = g.leftOfDealer()
	events = append(events, g.stateEvent(), g.bidRequest())
	return events, nil
}

// Bid records value for seat. Zero is a pass.
func (g *BidWhist) Bid(seat, value int) ([]Event, error) {
	if g.phase != PhaseBidding {
		return nil, ErrWrongPhase
	}
	if seat != g.turn {
		return nil, ErrOutOfTurn
	}
	if value < 0 || value > MaxBid {
		return nil, ErrInvalidBid
	}

	bid := Bid{Seat: seat, Value: value}
	g.bids = append(g.bids, bid)
	events := []Event{{Kind: EventBidPlaced, Seat: Everyone, Payload: bid}}

	if len(g.bids) < Seats {
		g.turn = (g.turn + 1) % Seats
		return append(events, g.bidRequest()), nil
	}

	win, ok := WinningBid(g.bids)
	if !ok {
		return append(events, g.redeal()...), nil
	}

	g.contract = &Contract{Declarer: win.Seat, TricksBid: win.Value, Trump: DefaultTrump}
	events = append(events, Event{Kind: EventContractSet, Seat: Everyone, Payload: *g.contract})

	rest, err := g.DealRemainder()
	if err != nil {
		return events, err
	}
	return append(events, rest...), nil
}

// DealRemainder completes every hand to thirteen cards once a contract is
// set and opens play with the seat left of the dealer.
func (g *BidWhist) DealRemainder() ([]Event, error) {
	if g.phase != PhaseBidding || g.contract == nil {
		return nil, ErrWrongPhase
	}
	g.phase = PhaseDealingRest
	events := g.deal(SecondDeal)

	g.phase = PhasePlaying
	g.turn = g.leftOfDealer()
	return append(events, g.stateEvent()), nil
}

// Play puts the card with the given id from seat's hand on the table.
func (g *BidWhist) Play(seat int, cardID string) ([]Event, error) {
	if g.phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	if len(g.trick) == Seats {
		return nil, ErrTrickPending
	}
	if seat != g.turn {
		return nil, ErrOutOfTurn
	}
	i := indexOf(g.hands[seat], cardID)
	if i < 0 {
		return nil, ErrCardNotInHand
	}

	card := g.hands[seat][i]
	g.hands[seat] = removeAt(g.hands[seat], i)
	play := Play{Seat: seat, Card: card}
	g.trick = append(g.trick, play)
	events := []Event{{Kind: EventCardPlayed, Seat: Everyone, Payload: play}}

	if len(g.trick) == Seats {
		return append(events, Event{Kind: EventTrickComplete, Seat: Everyone}), nil
	}
	g.turn = (g.turn + 1) % Seats
	return append(events, g.stateEvent()), nil
}

// ResolveTrick awards a full trick and hands the lead to its winner. When the
// hands are exhausted the hand is scored.
func (g *BidWhist) ResolveTrick() ([]Event, error) {
	if g.phase != PhasePlaying || len(g.trick) != Seats {
		return nil, ErrWrongPhase
	}
	trump := g.contract.Trump
	winner := TrickWinner(g.trick, &trump)

	g.tricksWon[Team(winner)]++
	g.trick = nil
	g.turn = winner
	events := []Event{
		{Kind: EventTrickResolved, Seat: Everyone, Payload: TrickResolvedPayload{Winner: winner}},
	}

	if len(g.hands[winner]) == 0 {
		return append(events, g.score()...), nil
	}
	return append(events, g.stateEvent()), nil
}

// NextHand rotates the dealer after a scored hand and returns to WAITING.
func (g *BidWhist) NextHand() error {
	if g.phase != PhaseScoring {
		return ErrWrongPhase
	}
	g.dealer = (g.dealer + 1) % Seats
	g.resetHand()
	g.phase = PhaseWaiting
	return nil
}

func (g *BidWhist) Phase() Phase { return g.phase }

func (g *BidWhist) Turn() int { return g.turn }

func (g *BidWhist) Dealer() int { return g.dealer }

func (g *BidWhist) DeckSize() int { return len(g.deck) }

func (g *BidWhist) Contract() *Contract {
	if g.contract == nil {
		return nil
	}
	c := *g.contract
	return &c
}

func (g *BidWhist) Bids() []Bid {
	return append([]Bid(nil), g.bids...)
}

func (g *BidWhist) Trick() []Play {
	return append([]Play(nil), g.trick...)
}

// Hand returns a copy of one seat's cards, or nil for a seat outside the table.
func (g *BidWhist) Hand(seat int) []Card {
	if seat < 0 || seat >= Seats {
		return nil
	}
	return append([]Card{}, g.hands[seat]...)
}

func (g *BidWhist) PublicState() PublicState {
	st := PublicState{
		Phase:        g.phase,
		Turn:         g.turn,
		Dealer:       g.dealer,
		TricksWon:    g.tricksWon,
		Scores:       g.scores,
		Contract:     g.Contract(),
		CurrentTrick: append([]Play{}, g.trick...),
		Bids:         append([]Bid{}, g.bids...),
	}
	for i := range g.hands {
		st.HandSizes[i] = len(g.hands[i])
	}
	return st
}

func (g *BidWhist) deal(n int) []Event {
	events := make([]Event, 0, Seats)
	for seat := 0; seat < Seats; seat++ {
		g.hands[seat] = append(g.hands[seat], g.deck[:n]...)
		g.deck = g.deck[n:]
		events = append(events, Event{
			Kind:    EventHandDealt,
			Seat:    seat,
			Payload: HandDealtPayload{Hand: g.Hand(seat)},
		})
	}
	return events
}

func (g *BidWhist) score() []Event {
	g.phase = PhaseScoring
	g.turn = -1
	delta, made := ScoreHand(*g.contract, g.tricksWon)
	for t := range g.scores {
		g.scores[t] += delta[t]
	}
	return []Event{
		{Kind: EventHandScored, Seat: Everyone, Payload: HandScoredPayload{
			Contract:  *g.contract,
			TricksWon: g.tricksWon,
			Delta:     delta,
			Scores:    g.scores,
			Made:      made,
		}},
		g.stateEvent(),
		{Kind: EventRedeal, Seat: Everyone},
	}
}

// redeal throws in a hand nobody bid on.
func (g *BidWhist) redeal() []Event {
	g.dealer = (g.dealer + 1) % Seats
	g.resetHand()
	g.phase = PhaseWaiting
	return []Event{g.stateEvent(), {Kind: EventRedeal, Seat: Everyone}}
}

func (g *BidWhist) resetHand() {
	g.deck = nil
	for i := range g.hands {
		g.hands[i] = nil
	}
	g.bids = nil
	g.trick = nil
	g.tricksWon = [2]int{}
	g.contract = nil
	g.turn = -1
}

func (g *BidWhist) leftOfDealer() int {
	return (g.dealer + 1) % Seats
}

func (g *BidWhist) stateEvent() Event {
	return Event{Kind: EventState, Seat: Everyone, Payload: g.PublicState()}
}

// bidRequest hints the lowest bid that would take the lead. Bid does not
// enforce it: an equal or lower bid is recorded and loses to the earlier one.
func (g *BidWhist) bidRequest() Event {
	minBid := 1
	for _, b := range g.bids {
		if b.Value >= minBid {
			minBid = b.Value + 1
		}
	}
	return Event{Kind: EventBidRequested, Seat: g.turn, Payload: BidRequestedPayload{MinBid: minBid}}
}
