package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"bidwhist/internal/game"
)

// A single hand of Bid Whist in the terminal: you sit at seat 0, three
// bots take the other seats.
func main() {
	g := game.NewBidWhist(rand.New(rand.NewSource(time.Now().UnixNano())))
	reader := bufio.NewReader(os.Stdin)

	if _, err := g.Start(); err != nil {
		fmt.Println("start:", err)
		os.Exit(1)
	}

	var err error
	for g.Phase() != game.PhaseScoring {
		switch g.Phase() {
		case game.PhaseWaiting:
			fmt.Println("\nEveryone passed. Redealing.")
			if _, err := g.Start(); err != nil {
				fmt.Println("start:", err)
				os.Exit(1)
			}
		case game.PhaseBidding:
			err = bidTurn(g, reader)
		case game.PhasePlaying:
			err = playTurn(g, reader)
		}
		if err != nil {
			fmt.Println("\nInput closed:", err)
			os.Exit(1)
		}
	}

	fmt.Println("\nHand finished!")
	js, _ := json.MarshalIndent(g.PublicState(), "", "  ")
	fmt.Println(string(js))
}

// readLine returns the next input line. A final line without a newline is
// still returned; the read after it reports io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func bidTurn(g *game.BidWhist, reader *bufio.Reader) error {
	seat := g.Turn()
	if seat != 0 {
		fmt.Printf("Bot %d passes.\n", seat+1)
		_, _ = g.Bid(seat, 0)
		return nil
	}

	fmt.Printf("\nDealer: seat %d  Bids so far: %v\n", g.Dealer(), g.Bids())
	fmt.Printf("Hand: %s\n", handString(g.Hand(0)))
	fmt.Printf("Enter your bid (0 to pass, up to %d)\n", game.MaxBid)
	for {
		fmt.Print("> ")
		line, err := readLine(reader)
		if err != nil {
			return err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("Not a number. Try again.")
			continue
		}
		if _, err := g.Bid(0, v); err != nil {
			fmt.Println("Bid rejected:", err)
			continue
		}
		return nil
	}
}

func playTurn(g *game.BidWhist, reader *bufio.Reader) error {
	if len(g.Trick()) == game.Seats {
		events, _ := g.ResolveTrick()
		for _, ev := range events {
			if p, ok := ev.Payload.(game.TrickResolvedPayload); ok {
				fmt.Printf("Trick to seat %d. Tricks won: %v\n", p.Winner, g.PublicState().TricksWon)
			}
		}
		return nil
	}

	seat := g.Turn()
	if seat != 0 {
		card, ok := game.ChooseCard(g.Hand(seat), g.Trick())
		if !ok {
			return nil
		}
		fmt.Printf("Bot %d plays %s\n", seat+1, card.ID)
		_, _ = g.Play(seat, card.ID)
		return nil
	}

	fmt.Printf("\nContract: %+v  Table: %s\n", *g.Contract(), trickString(g.Trick()))
	fmt.Printf("Hand: %s\n", handString(g.Hand(0)))
	fmt.Println("Enter a card id (example: heartQ)")
	for {
		fmt.Print("> ")
		id, err := readLine(reader)
		if err != nil {
			return err
		}
		if _, err := game.ParseCard(id); err != nil {
			fmt.Println("Unknown card:", err)
			continue
		}
		if _, err := g.Play(0, id); err != nil {
			fmt.Println("Card rejected:", err)
			continue
		}
		return nil
	}
}

func handString(hand []game.Card) string {
	ids := make([]string, 0, len(hand))
	for _, c := range hand {
		ids = append(ids, c.ID)
	}
	return strings.Join(ids, " ")
}

func trickString(trick []game.Play) string {
	if len(trick) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(trick))
	for _, p := range trick {
		parts = append(parts, fmt.Sprintf("%d:%s", p.Seat, p.Card.ID))
	}
	return strings.Join(parts, " ")
}
