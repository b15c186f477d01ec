package roll

import (
	"context"
	"time"

	"github.com/KirkDiggler/rollit/internal/common/clock"
	"github.com/KirkDiggler/rollit/internal/dice"
	"github.com/KirkDiggler/rollit/internal/history"
	"github.com/KirkDiggler/rollit/internal/store"
)

// fullTurnDegrees is how far the die spins per animation step
const fullTurnDegrees = 360

// Reducer owns the state transitions for the dice screen.
type Reducer struct {
	roller    dice.Roller
	clock     clock.Clock
	rollDelay time.Duration
	dieSides  int

	historyPanel store.Reducer[*history.State, history.Action]
}

// New creates a new roll reducer
func New(cfg *Config) (*Reducer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	rollDelay := cfg.RollDelay
	if rollDelay <= 0 {
		rollDelay = DefaultRollDelay
	}

	dieSides := cfg.DieSides
	if dieSides < 1 {
		dieSides = DefaultDieSides
	}

	return &Reducer{
		roller:       cfg.DiceRoller,
		clock:        cfg.Clock,
		rollDelay:    rollDelay,
		dieSides:     dieSides,
		historyPanel: store.Optional[history.State, history.Action](history.New()),
	}, nil
}

// Reduce applies an action to the dice screen state and returns the
// next state plus any effects to schedule.
func (r *Reducer) Reduce(state State, action Action) (State, []store.Effect[Action]) {
	switch a := action.(type) {
	case RequestRoll:
		state.IsRolling = true
		return state, []store.Effect[Action]{
			r.animationEffect(),
			r.rollEffect(),
		}

	case RollCompleted:
		state.IsRolling = false
		state.CurrentRoll = a.Result
		state.History = append([]int{a.Result}, state.History...)
		return state, nil

	case BeginAnimation:
		state.AnimationAngle += fullTurnDegrees
		return state, nil

	case UndoLastRoll:
		if len(state.History) == 0 {
			return state, nil
		}

		state.History = state.History[1:]
		if len(state.History) == 0 {
			state.CurrentRoll = 0
		} else {
			state.CurrentRoll = state.History[0]
		}
		return state, nil

	case ResetHistory:
		state.History = nil
		state.CurrentRoll = 0
		return state, nil

	case ShowHistory:
		rolls := make([]int, len(state.History))
		copy(rolls, state.History)
		state.HistoryPanel = &history.State{Rolls: rolls}
		return state, nil

	case DismissHistory:
		state.HistoryPanel = nil
		return state, nil

	case HistoryPanelAction:
		panel, effects := r.historyPanel.Reduce(state.HistoryPanel, a.Action)
		state.HistoryPanel = panel
		return state, store.MapEffects(effects, func(inner history.Action) Action {
			return HistoryPanelAction{Action: inner}
		})
	}

	return state, nil
}

// animationEffect immediately kicks off one full turn of the die
func (r *Reducer) animationEffect() store.Effect[Action] {
	return func(_ context.Context) (Action, bool) {
		return BeginAnimation{}, true
	}
}

// rollEffect waits out the roll delay and delivers the result. The
// effect is never cancelled by undo or reset: a pending result still
// lands afterward and wins, matching the last-write-wins contract.
func (r *Reducer) rollEffect() store.Effect[Action] {
	return func(ctx context.Context) (Action, bool) {
		select {
		case <-ctx.Done():
			return nil, false
		case <-r.clock.After(r.rollDelay):
		}

		return RollCompleted{Result: r.roller.Roll(r.dieSides)}, true
	}
}
