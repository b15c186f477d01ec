package store

import "context"

// Optional scopes a child reducer onto a parent-owned optional slice of
// state. While the slot is nil the child's actions are dropped, not an
// error; while it is populated the child runs against the inner value
// and its result replaces the slot. Mounting and unmounting the slot is
// the parent's job, never the child's.
func Optional[S, A any](child Reducer[S, A]) Reducer[*S, A] {
	return ReducerFunc[*S, A](func(state *S, action A) (*S, []Effect[A]) {
		if state == nil {
			return nil, nil
		}

		next, effects := child.Reduce(*state, action)
		return &next, effects
	})
}

// MapEffects lifts a child reducer's effects into the parent's action
// type, so the parent can re-wrap whatever the child produces.
func MapEffects[A, B any](effects []Effect[A], lift func(A) B) []Effect[B] {
	if len(effects) == 0 {
		return nil
	}

	lifted := make([]Effect[B], 0, len(effects))
	for _, effect := range effects {
		if effect == nil {
			continue
		}

		run := effect
		lifted = append(lifted, func(ctx context.Context) (B, bool) {
			action, ok := run(ctx)
			if !ok {
				var zero B
				return zero, false
			}

			return lift(action), true
		})
	}

	return lifted
}
