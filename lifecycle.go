package sluggable

import "fmt"

// State is a step of a single Assign call.
type State string

const (
	StateNotStarted    State = "not_started"
	StateBeforeHookRun State = "before_hook_run"
	StateSkipped       State = "skipped"
	StateGenerating    State = "generating"
	StateAssigned      State = "assigned"
	StateAfterHookRun  State = "after_hook_run"
	StateFailed        State = "failed"
)

func (s State) String() string { return string(s) }

// Terminal reports whether no further transition leaves s.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

var transitions = map[State][]State{
	StateNotStarted:    {StateBeforeHookRun, StateFailed},
	StateBeforeHookRun: {StateSkipped, StateGenerating, StateFailed},
	StateGenerating:    {StateAssigned, StateFailed},
	StateSkipped:       {StateAfterHookRun, StateFailed},
	StateAssigned:      {StateAfterHookRun, StateFailed},
}

// lifecycle tracks one Assign call. It is not shared between goroutines.
type lifecycle struct {
	state State
	trail []State
}

func newLifecycle() *lifecycle {
	return &lifecycle{state: StateNotStarted, trail: []State{StateNotStarted}}
}

func (l *lifecycle) can(to State) bool {
	for _, s := range transitions[l.state] {
		if s == to {
			return true
		}
	}
	return false
}

func (l *lifecycle) to(next State) error {
	if !l.can(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.state, next)
	}
	l.state = next
	l.trail = append(l.trail, next)
	return nil
}

// fail moves to StateFailed from any non-terminal state.
func (l *lifecycle) fail() {
	if l.can(StateFailed) {
		l.state = StateFailed
		l.trail = append(l.trail, StateFailed)
	}
}
