package roll

import (
	"time"

	"github.com/KirkDiggler/rollit/internal/common/clock"
	"github.com/KirkDiggler/rollit/internal/dice"
	"github.com/KirkDiggler/rollit/internal/history"
)

const (
	// DefaultDieSides is the number of faces on the die
	DefaultDieSides = 6

	// DefaultRollDelay is how long a requested roll takes to resolve
	DefaultRollDelay = 500 * time.Millisecond
)

// State holds everything the dice screen needs to render.
type State struct {
	// CurrentRoll is the face currently shown. Zero means no roll yet;
	// otherwise it matches the head of History while no roll is pending.
	CurrentRoll int

	// IsRolling is true between a roll request and its delayed result
	IsRolling bool

	// History holds past results, most recent first
	History []int

	// AnimationAngle accumulates the die's rotation in degrees
	AnimationAngle float64

	// HistoryPanel is non-nil while the full-history screen is presented
	HistoryPanel *history.State
}

// Action is a tagged event processed by the roll reducer
type Action interface {
	isRollAction()
}

// RequestRoll starts a roll: the die begins animating and the result
// arrives after the configured delay.
type RequestRoll struct{}

// RollCompleted delivers the result of a requested roll
type RollCompleted struct {
	Result int
}

// BeginAnimation spins the die a full turn
type BeginAnimation struct{}

// UndoLastRoll removes the most recent result. A no-op when the
// history is empty.
type UndoLastRoll struct{}

// ResetHistory clears all results
type ResetHistory struct{}

// ShowHistory presents the full-history screen with a snapshot of the
// current history
type ShowHistory struct{}

// DismissHistory dismisses the full-history screen
type DismissHistory struct{}

// HistoryPanelAction forwards an action to the history screen. Dropped
// when the screen is not presented.
type HistoryPanelAction struct {
	Action history.Action
}

func (RequestRoll) isRollAction()        {}
func (RollCompleted) isRollAction()      {}
func (BeginAnimation) isRollAction()     {}
func (UndoLastRoll) isRollAction()       {}
func (ResetHistory) isRollAction()       {}
func (ShowHistory) isRollAction()        {}
func (DismissHistory) isRollAction()     {}
func (HistoryPanelAction) isRollAction() {}

// Config holds configuration for the roll reducer
type Config struct {
	// DiceRoller produces roll results
	DiceRoller dice.Roller

	// Clock drives the roll delay
	Clock clock.Clock

	// RollDelay is how long a roll takes to resolve; DefaultRollDelay
	// when zero
	RollDelay time.Duration

	// DieSides is the number of faces on the die; DefaultDieSides
	// when zero
	DieSides int
}
