// Terminal playground: play a round of the bluffing game against two robots
// without running the server. Handy for trying out strategy tweaks.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bluff-card/internal/config"
	"bluff-card/internal/game"
	"bluff-card/internal/robot"
)

const humanID = "you"

func main() {
	cfg := config.Default()
	strat := robot.New(robot.Medium, cfg.GetRobot())

	seats := []string{humanID, "robot-1", "robot-2"}
	t := game.NewTable(seats, 1)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Bluff! Commands: play <rank> <card#...>, pass, challenge")

	for !t.Finished {
		cur := t.CurrentPlayerID()
		if cur == humanID {
			humanTurn(t, reader)
			continue
		}
		robotTurn(t, strat, cur)
	}

	fmt.Printf("\nGame over! Finish order: %v\n", t.Winners)
}

func humanTurn(t *game.Table, reader *bufio.Reader) {
	hand, _ := t.HandOf(humanID)
	fmt.Printf("\nYour hand (%d):", len(hand))
	for i, c := range hand {
		fmt.Printf(" %d:%s", i, c)
	}
	fmt.Println()
	if t.LastClaim != nil {
		fmt.Printf("Standing claim: %d x %d by %s (pile %d)\n",
			t.LastClaim.Count, t.LastClaim.Rank, t.LastClaim.PlayerID, len(t.Pile))
	}
	fmt.Print("> ")
	line, _ := reader.ReadString('\n')
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "pass":
		if _, err := t.Pass(humanID); err != nil {
			fmt.Println("can't pass:", err)
		}
	case "challenge":
		res, err := t.Challenge(humanID)
		if err != nil {
			fmt.Println("can't challenge:", err)
			return
		}
		printChallenge(res)
	case "play":
		if len(parts) < 3 {
			fmt.Println("usage: play <rank> <card#...>")
			return
		}
		rank, _ := strconv.Atoi(parts[1])
		cards := []game.Card{}
		for _, p := range parts[2:] {
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 || i >= len(hand) {
				fmt.Println("bad card index:", p)
				return
			}
			cards = append(cards, hand[i])
		}
		decl := game.Declaration{Count: len(cards), Rank: rank}
		if err := t.Play(humanID, cards, decl); err != nil {
			fmt.Println("invalid play:", err)
			return
		}
		fmt.Printf("You claim %d x %d.\n", decl.Count, decl.Rank)
	default:
		fmt.Println("unknown command:", parts[0])
	}
}

func robotTurn(t *game.Table, strat robot.Strategy, id string) {
	hand, _ := t.HandOf(id)

	if t.LastClaim != nil && t.LastClaim.PlayerID != id &&
		strat.DecideToChallenge(t.LastClaim, len(t.Pile), hand) {
		res, err := t.Challenge(id)
		if err == nil {
			fmt.Printf("%s challenges!\n", id)
			printChallenge(res)
			return
		}
	}

	selected := strat.SelectCardsToPlay(t.LastClaim, hand)
	if selected == nil {
		if _, err := t.Pass(id); err == nil {
			fmt.Printf("%s passes.\n", id)
		}
		return
	}
	decl := strat.GenerateClaim(selected, t.LastClaim)
	if err := t.Play(id, selected, decl); err != nil {
		_, _ = t.Pass(id)
		return
	}
	fmt.Printf("%s claims %d x %d.\n", id, decl.Count, decl.Rank)
}

func printChallenge(res game.ChallengeResult) {
	verdict := "truthful"
	if res.ClaimWasFalse {
		verdict = "a lie"
	}
	fmt.Printf("Revealed %v, the claim was %s. %s takes %d cards.\n",
		res.Revealed, verdict, res.LoserID, res.PileSize)
}
