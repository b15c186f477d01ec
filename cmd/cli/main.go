package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/KirkDiggler/rollit/internal/common/clock"
	"github.com/KirkDiggler/rollit/internal/dice"
	"github.com/KirkDiggler/rollit/internal/roll"
	"github.com/KirkDiggler/rollit/internal/store"
)

func main() {
	reducer, err := roll.New(&roll.Config{
		DiceRoller: dice.New(&dice.Config{}),
		Clock:      &clock.DefaultClock{},
	})
	if err != nil {
		log.Fatalf("Failed to create roll reducer: %v", err)
	}

	diceStore, err := store.New(&store.Config[roll.State, roll.Action]{
		InitialState: roll.State{},
		Reducer:      reducer,
	})
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}

	// Delayed roll results land on effect goroutines; announce them as
	// they arrive by watching the history grow.
	var mu sync.Mutex
	lastCount := 0
	diceStore.Subscribe(func(state roll.State) {
		mu.Lock()
		defer mu.Unlock()

		if len(state.History) > lastCount {
			fmt.Printf("🎲 You rolled a %d\n", state.CurrentRoll)
		}
		lastCount = len(state.History)
	})

	ctx := context.Background()

	fmt.Println("Dice roller. Commands: roll, undo, reset, history, back, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "roll":
			diceStore.Dispatch(ctx, roll.RequestRoll{})
			fmt.Println("Rolling...")

		case "undo":
			diceStore.Dispatch(ctx, roll.UndoLastRoll{})
			printState(diceStore.State())

		case "reset":
			diceStore.Dispatch(ctx, roll.ResetHistory{})
			fmt.Println("History cleared.")

		case "history":
			diceStore.Dispatch(ctx, roll.ShowHistory{})
			printHistory(diceStore.State())

		case "back":
			diceStore.Dispatch(ctx, roll.DismissHistory{})

		case "quit", "exit":
			diceStore.Wait()
			return

		case "":

		default:
			fmt.Println("Commands: roll, undo, reset, history, back, quit")
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
}

func printState(state roll.State) {
	if len(state.History) == 0 {
		fmt.Println("No rolls yet.")
		return
	}
	fmt.Printf("Current roll: %d (%d total)\n", state.CurrentRoll, len(state.History))
}

func printHistory(state roll.State) {
	if state.HistoryPanel == nil || len(state.HistoryPanel.Rolls) == 0 {
		fmt.Println("No rolls yet.")
		return
	}

	fmt.Println("Roll history (most recent first):")
	for n, value := range state.HistoryPanel.Rolls {
		fmt.Printf("  %d. %d\n", n+1, value)
	}
}
