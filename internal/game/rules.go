package game

// TrickWinner returns the seat that wins the trick. With a nil trump only
// cards of the led suit compete; otherwise the highest trump, if any, wins.
func TrickWinner(plays []Play, trump *Suit) int {
	if len(plays) == 0 {
		return -1
	}
	lead := plays[0].Card.Suit
	best := 0
	for i := 1; i < len(plays); i++ {
		c := plays[i].Card
		b := plays[best].Card

		if trump != nil {
			if c.Suit == *trump && b.Suit != *trump {
				best = i
				continue
			}
			if c.Suit != *trump && b.Suit == *trump {
				continue
			}
		}

		if c.Suit == b.Suit {
			if c.Rank.Strength() > b.Rank.Strength() {
				best = i
			}
			continue
		}

		if b.Suit != lead && c.Suit == lead {
			best = i
		}
	}
	return plays[best].Seat
}

// WinningBid scans bids in submission order; ties go to the earliest bidder.
// ok is false when nobody bid above zero.
func WinningBid(bids []Bid) (Bid, bool) {
	var best Bid
	found := false
	for _, b := range bids {
		if !found || b.Value > best.Value {
			best = b
			found = true
		}
	}
	return best, found && best.Value > 0
}

// ScoreHand settles one hand against the contract. The declaring team scores
// the books it took over six when it makes the bid and loses the bid when it
// does not. Defenders score nothing.
func ScoreHand(c Contract, tricksWon [2]int) (delta [2]int, made bool) {
	team := Team(c.Declarer)
	taken := tricksWon[team]
	if taken >= BookTricks+c.TricksBid {
		delta[team] = taken - BookTricks
		return delta, true
	}
	delta[team] = -c.TricksBid
	return delta, false
}

// ChooseCard is the bot's play: the lowest card of the led suit when it can
// follow, otherwise its lowest card.
func ChooseCard(hand []Card, trick []Play) (Card, bool) {
	if len(hand) == 0 {
		return Card{}, false
	}
	candidates := hand
	if len(trick) > 0 {
		lead := trick[0].Card.Suit
		var follow []Card
		for _, c := range hand {
			if c.Suit == lead {
				follow = append(follow, c)
			}
		}
		if len(follow) > 0 {
			candidates = follow
		}
	}
	low := candidates[0]
	for _, c := range candidates[1:] {
		if c.Rank.Strength() < low.Rank.Strength() {
			low = c
		}
	}
	return low, true
}
