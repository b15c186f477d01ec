package roll

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/rollit/internal/common/clock/mocks"
	diceMocks "github.com/KirkDiggler/rollit/internal/dice/mocks"
	"github.com/KirkDiggler/rollit/internal/store"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RollReducerTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *diceMocks.MockRoller
	mockClock  *clockMocks.MockClock
	reducer    *Reducer
	ctx        context.Context
}

func (s *RollReducerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	reducer, err := New(&Config{
		DiceRoller: s.mockRoller,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	s.reducer = reducer
}

func TestRollReducerTestSuite(t *testing.T) {
	suite.Run(t, new(RollReducerTestSuite))
}

// elapsedDelay returns a channel that already carries a tick, so the
// delayed roll effect resolves immediately under test
func elapsedDelay() <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func (s *RollReducerTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Clock: s.mockClock})
	s.ErrorIs(err, ErrNilDiceRoller)

	_, err = New(&Config{DiceRoller: s.mockRoller})
	s.ErrorIs(err, ErrNilClock)
}

func (s *RollReducerTestSuite) TestRequestRollMarksRolling() {
	state, effects := s.reducer.Reduce(State{}, RequestRoll{})

	s.True(state.IsRolling)
	s.Len(effects, 2)
}

func (s *RollReducerTestSuite) TestRequestRollSchedulesAnimationAndResult() {
	_, effects := s.reducer.Reduce(State{}, RequestRoll{})
	s.Require().Len(effects, 2)

	// The first effect kicks off the animation immediately
	action, ok := effects[0](s.ctx)
	s.True(ok)
	s.Equal(BeginAnimation{}, action)

	// The second waits out the delay and reports the result
	s.mockClock.EXPECT().After(DefaultRollDelay).Return(elapsedDelay())
	s.mockRoller.EXPECT().Roll(DefaultDieSides).Return(4)

	action, ok = effects[1](s.ctx)
	s.True(ok)
	s.Equal(RollCompleted{Result: 4}, action)
}

func (s *RollReducerTestSuite) TestRollEffectStopsOnCancelledContext() {
	_, effects := s.reducer.Reduce(State{}, RequestRoll{})
	s.Require().Len(effects, 2)

	// A nil channel never ticks; cancellation has to win
	s.mockClock.EXPECT().After(DefaultRollDelay).Return(nil)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, ok := effects[1](ctx)
	s.False(ok)
}

func (s *RollReducerTestSuite) TestRollCompletedPrependsResult() {
	state, effects := s.reducer.Reduce(State{
		IsRolling: true,
		History:   []int{3, 5},
	}, RollCompleted{Result: 2})

	s.Empty(effects)
	s.False(state.IsRolling)
	s.Equal(2, state.CurrentRoll)
	s.Equal([]int{2, 3, 5}, state.History)
}

func (s *RollReducerTestSuite) TestRollCompletedAppliesRegardlessOfRollingFlag() {
	// A pending result that lands after a reset still applies
	state, _ := s.reducer.Reduce(State{}, RollCompleted{Result: 6})

	s.False(state.IsRolling)
	s.Equal(6, state.CurrentRoll)
	s.Equal([]int{6}, state.History)
}

func (s *RollReducerTestSuite) TestBeginAnimationAddsFullTurn() {
	state, effects := s.reducer.Reduce(State{}, BeginAnimation{})
	s.Empty(effects)
	s.Equal(float64(360), state.AnimationAngle)

	state, _ = s.reducer.Reduce(state, BeginAnimation{})
	s.Equal(float64(720), state.AnimationAngle)
}

func (s *RollReducerTestSuite) TestUndoLastRoll() {
	state, effects := s.reducer.Reduce(State{
		CurrentRoll: 6,
		History:     []int{6, 2, 4},
	}, UndoLastRoll{})

	s.Empty(effects)
	s.Equal([]int{2, 4}, state.History)
	s.Equal(2, state.CurrentRoll)
}

func (s *RollReducerTestSuite) TestUndoLastRollToEmpty() {
	state, _ := s.reducer.Reduce(State{
		CurrentRoll: 4,
		History:     []int{4},
	}, UndoLastRoll{})

	s.Empty(state.History)
	s.Equal(0, state.CurrentRoll)
}

func (s *RollReducerTestSuite) TestUndoLastRollOnEmptyHistoryIsNoOp() {
	state, effects := s.reducer.Reduce(State{}, UndoLastRoll{})

	s.Empty(effects)
	s.Empty(state.History)
	s.Equal(0, state.CurrentRoll)
}

func (s *RollReducerTestSuite) TestResetHistory() {
	state, effects := s.reducer.Reduce(State{
		CurrentRoll: 3,
		History:     []int{3, 1, 5},
	}, ResetHistory{})

	s.Empty(effects)
	s.Empty(state.History)
	s.Equal(0, state.CurrentRoll)
}

func (s *RollReducerTestSuite) TestShowHistoryTakesSnapshot() {
	state, effects := s.reducer.Reduce(State{
		CurrentRoll: 3,
		History:     []int{3, 5},
	}, ShowHistory{})

	s.Empty(effects)
	s.Require().NotNil(state.HistoryPanel)
	s.Equal([]int{3, 5}, state.HistoryPanel.Rolls)
}

func (s *RollReducerTestSuite) TestShowHistorySnapshotIsolatedFromLaterRolls() {
	state, _ := s.reducer.Reduce(State{
		CurrentRoll: 3,
		History:     []int{3, 5},
	}, ShowHistory{})

	state, _ = s.reducer.Reduce(state, RollCompleted{Result: 2})

	s.Equal([]int{2, 3, 5}, state.History)
	s.Require().NotNil(state.HistoryPanel)
	s.Equal([]int{3, 5}, state.HistoryPanel.Rolls)
}

func (s *RollReducerTestSuite) TestShowThenDismissHistoryRoundTrip() {
	initial := State{
		CurrentRoll:    5,
		History:        []int{5, 1},
		AnimationAngle: 720,
	}

	state, _ := s.reducer.Reduce(initial, ShowHistory{})
	state, _ = s.reducer.Reduce(state, DismissHistory{})

	s.Nil(state.HistoryPanel)
	s.Equal(initial.CurrentRoll, state.CurrentRoll)
	s.Equal(initial.History, state.History)
	s.Equal(initial.AnimationAngle, state.AnimationAngle)
	s.Equal(initial.IsRolling, state.IsRolling)
}

func (s *RollReducerTestSuite) TestHistoryPanelActionDroppedWhenDismissed() {
	state, effects := s.reducer.Reduce(State{
		History: []int{3, 5},
	}, HistoryPanelAction{})

	s.Empty(effects)
	s.Nil(state.HistoryPanel)
	s.Equal([]int{3, 5}, state.History)
}

func (s *RollReducerTestSuite) TestHistoryPanelActionKeepsSnapshot() {
	state, _ := s.reducer.Reduce(State{
		History: []int{3, 5},
	}, ShowHistory{})

	state, effects := s.reducer.Reduce(state, HistoryPanelAction{})

	s.Empty(effects)
	s.Require().NotNil(state.HistoryPanel)
	s.Equal([]int{3, 5}, state.HistoryPanel.Rolls)
}

func (s *RollReducerTestSuite) TestRollLifecycleThroughStore() {
	s.mockClock.EXPECT().After(DefaultRollDelay).Return(elapsedDelay())
	s.mockRoller.EXPECT().Roll(DefaultDieSides).Return(4)

	diceStore, err := store.New(&store.Config[State, Action]{
		InitialState: State{},
		Reducer:      s.reducer,
	})
	s.Require().NoError(err)

	diceStore.Dispatch(s.ctx, RequestRoll{})
	diceStore.Wait()

	state := diceStore.State()
	s.Equal(4, state.CurrentRoll)
	s.False(state.IsRolling)
	s.Equal([]int{4}, state.History)
	s.Equal(float64(360), state.AnimationAngle)
}

func (s *RollReducerTestSuite) TestLateResultLandsAfterReset() {
	// Reset does not cancel the pending roll effect; the delayed
	// result re-seeds the history afterward.
	state, effects := s.reducer.Reduce(State{
		CurrentRoll: 3,
		History:     []int{3},
	}, RequestRoll{})
	s.Require().Len(effects, 2)

	state, _ = s.reducer.Reduce(state, ResetHistory{})
	s.Empty(state.History)

	s.mockClock.EXPECT().After(DefaultRollDelay).Return(elapsedDelay())
	s.mockRoller.EXPECT().Roll(DefaultDieSides).Return(2)

	action, ok := effects[1](s.ctx)
	s.Require().True(ok)

	state, _ = s.reducer.Reduce(state, action)
	s.Equal(2, state.CurrentRoll)
	s.Equal([]int{2}, state.History)
}
