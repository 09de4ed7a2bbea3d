package engine

import "fmt"

// Action is a decision about the current pair.
type Action string

// Decisions a learner can make.
const (
	ActionSwap Action = "swap"
	ActionPass Action = "pass"
)

// ParseAction maps user input to an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionSwap, ActionPass:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action %q (want swap or pass)", s)
	}
}

// Pair describes one comparison.
type Pair struct {
	Left       int
	Right      int
	LeftValue  int
	RightValue int
}

// StepResult is the outcome of one comparison step.
type StepResult struct {
	Array        Array
	Cursor       Cursor
	Stats        Stats
	Pair         Pair
	Swapped      bool
	PassComplete bool
}

// Peek reports what the algorithm would do at cursor without committing anything.
func Peek(arr Array, c Cursor) (Action, Pair, error) {
	pair, err := pairAt(arr, c)
	if err != nil {
		return "", Pair{}, err
	}
	if pair.LeftValue > pair.RightValue {
		return ActionSwap, pair, nil
	}
	return ActionPass, pair, nil
}

// Step performs one comparison at cursor. Inputs are not modified; the returned
// result carries the next array, cursor and stats.
func Step(arr Array, c Cursor, st Stats) (StepResult, error) {
	action, pair, err := Peek(arr, c)
	if err != nil {
		return StepResult{}, err
	}
	return commit(arr, c, st, action, pair)
}

func commit(arr Array, c Cursor, st Stats, action Action, pair Pair) (StepResult, error) {
	next := arr.Clone()
	swapped := false
	if action == ActionSwap {
		if err := next.Swap(pair.Left, pair.Right); err != nil {
			return StepResult{}, err
		}
		swapped = true
		st.Swaps++
	}
	st.Comparisons++
	nc := Advance(c, len(arr))
	return StepResult{
		Array:        next,
		Cursor:       nc,
		Stats:        st,
		Pair:         pair,
		Swapped:      swapped,
		PassComplete: nc.IsTerminal() || nc.Outer > c.Outer,
	}, nil
}

func pairAt(arr Array, c Cursor) (Pair, error) {
	if c.IsTerminal() {
		return Pair{}, stateError("no pair to compare: array is fully sorted")
	}
	if !c.InRange(len(arr)) {
		return Pair{}, indexError(c.Right(), len(arr)-c.Outer)
	}
	left, err := arr.At(c.Left())
	if err != nil {
		return Pair{}, err
	}
	right, err := arr.At(c.Right())
	if err != nil {
		return Pair{}, err
	}
	return Pair{Left: c.Left(), Right: c.Right(), LeftValue: left, RightValue: right}, nil
}
