package store

import (
	"context"
	"sync"
)

// Effect is a scheduled unit of asynchronous work. It runs concurrently
// with subsequent dispatches and reports a follow-up action when it
// completes. Returning false means no action (for example when the
// context was cancelled before the work finished).
type Effect[A any] func(ctx context.Context) (A, bool)

// Reducer computes the next state for an action along with any effects
// to schedule. Implementations must be pure: no I/O and no mutation
// outside the returned state.
type Reducer[S, A any] interface {
	Reduce(state S, action A) (S, []Effect[A])
}

// ReducerFunc adapts a plain function to the Reducer interface.
type ReducerFunc[S, A any] func(state S, action A) (S, []Effect[A])

// Reduce calls f.
func (f ReducerFunc[S, A]) Reduce(state S, action A) (S, []Effect[A]) {
	return f(state, action)
}

// Config holds configuration for a store.
type Config[S, A any] struct {
	// InitialState is the state before any action has been dispatched.
	InitialState S

	// Reducer processes every dispatched action.
	Reducer Reducer[S, A]
}

// Store owns a single state value and feeds every action through one
// reducer. Dispatch is serialized: one action is processed to completion
// before the next is accepted. Effects returned by the reducer run in
// their own goroutines and dispatch their results back into the store.
type Store[S, A any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S, A]

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(S)

	effects sync.WaitGroup
}

// New creates a store with the given initial state and reducer.
func New[S, A any](cfg *Config[S, A]) (*Store[S, A], error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Reducer == nil {
		return nil, ErrNilReducer
	}

	return &Store[S, A]{
		state:       cfg.InitialState,
		reducer:     cfg.Reducer,
		subscribers: make(map[int]func(S)),
	}, nil
}

// Dispatch runs the reducer against the current state, publishes the new
// state to subscribers, and schedules the returned effects. Each effect
// receives ctx; an effect that produces an action dispatches it back
// into the store with the same context.
func (s *Store[S, A]) Dispatch(ctx context.Context, action A) {
	s.mu.Lock()
	next, effects := s.reducer.Reduce(s.state, action)
	s.state = next
	s.mu.Unlock()

	s.notify(next)

	for _, effect := range effects {
		if effect == nil {
			continue
		}

		s.effects.Add(1)
		go func(run Effect[A]) {
			defer s.effects.Done()

			if followUp, ok := run(ctx); ok {
				s.Dispatch(ctx, followUp)
			}
		}(effect)
	}
}

// State returns the most recently reduced state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with every new state. The returned
// function removes the subscription.
func (s *Store[S, A]) Subscribe(fn func(S)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// Wait blocks until all effects scheduled so far have finished,
// including any follow-up dispatches they triggered.
func (s *Store[S, A]) Wait() {
	s.effects.Wait()
}

func (s *Store[S, A]) notify(state S) {
	s.subMu.Lock()
	fns := make([]func(S), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
