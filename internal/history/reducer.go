package history

import "github.com/KirkDiggler/rollit/internal/store"

// State is a read-only snapshot of past rolls, taken when the history
// screen is presented. Most recent roll first. The snapshot is never
// mutated; the parent replaces the whole value to change what is shown.
type State struct {
	Rolls []int
}

// Action is the set of events the history screen can produce. It is
// empty today; the marker interface exists so actions can be added
// later without reshaping the parent's routing.
type Action interface {
	isHistoryAction()
}

// Reducer holds the history screen's state transitions. The screen is
// read-only, so every action leaves the snapshot untouched.
type Reducer struct{}

// New creates a new history reducer
func New() *Reducer {
	return &Reducer{}
}

// Reduce returns the state unchanged with no effects.
func (r *Reducer) Reduce(state State, _ Action) (State, []store.Effect[Action]) {
	return state, nil
}
