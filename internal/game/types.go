package game

type Suit string

const (
	Spade   Suit = "spade"
	Heart   Suit = "heart"
	Diamond Suit = "diamond"
	Club    Suit = "club"
)

// Suits lists the four suits in deck-building order.
var Suits = []Suit{Spade, Heart, Diamond, Club}

type Rank string

// Ranks lists ranks from lowest to highest.
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Strength orders ranks, 2 lowest and A highest. Unknown ranks are -1.
func (r Rank) Strength() int {
	for i, v := range Ranks {
		if v == r {
			return i
		}
	}
	return -1
}

type Card struct {
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
	ID   string `json:"id"`
}

// NewCard builds a card with its composite id (suit+rank).
func NewCard(s Suit, r Rank) Card {
	return Card{Suit: s, Rank: r, ID: string(s) + string(r)}
}

type Phase string

const (
	PhaseWaiting      Phase = "WAITING"
	PhaseDealingFirst Phase = "DEALING_FIRST"
	PhaseBidding      Phase = "BIDDING"
	PhaseDealingRest  Phase = "DEALING_REST"
	PhasePlaying      Phase = "PLAYING"
	PhaseScoring      Phase = "SCORING"
)

const (
	Seats        = 4
	FirstDeal    = 5
	SecondDeal   = 8
	HandSize     = FirstDeal + SecondDeal
	MaxBid       = 7
	BookTricks   = 6
	DefaultTrump = Spade
)

type Bid struct {
	Seat  int `json:"seat"`
	Value int `json:"val"`
}

type Play struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

type Contract struct {
	Declarer  int  `json:"declarer"`
	TricksBid int  `json:"tricksBid"`
	Trump     Suit `json:"trump"`
}

// PublicState is the projection every member may see. It never carries
// another seat's cards.
type PublicState struct {
	Phase        Phase      `json:"phase"`
	Turn         int        `json:"turn"`
	Dealer       int        `json:"dealer"`
	TricksWon    [2]int     `json:"tricksWon"`
	Scores       [2]int     `json:"scores"`
	Contract     *Contract  `json:"contract"`
	CurrentTrick []Play     `json:"currentTrick"`
	Bids         []Bid      `json:"bids"`
	HandSizes    [Seats]int `json:"handSizes"`
}

// Team returns the partnership a seat belongs to.
func Team(seat int) int {
	return seat % 2
}
