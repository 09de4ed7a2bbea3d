package engine

import "fmt"

// Score deltas applied by the validator.
const (
	CorrectPoints = 10
	MistakePoints = -5
)

// Verdict is the graded outcome of a learner decision.
type Verdict struct {
	Correct     bool
	Action      Action
	Expected    Action
	Explanation string
	ScoreDelta  int
	Step        StepResult
}

// Submit grades action against the algorithm at cursor. A correct decision is
// committed exactly like Step; an incorrect one leaves array and cursor as they were.
func Submit(action Action, arr Array, c Cursor, st Stats) (Verdict, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return Verdict{}, err
	}
	expected, pair, err := Peek(arr, c)
	if err != nil {
		return Verdict{}, err
	}
	v := Verdict{
		Action:      action,
		Expected:    expected,
		Explanation: Explain(pair),
	}
	if action != expected {
		st.AddScore(MistakePoints)
		st.Mistakes++
		v.ScoreDelta = MistakePoints
		v.Step = StepResult{Array: arr, Cursor: c, Stats: st, Pair: pair}
		return v, nil
	}
	res, err := commit(arr, c, st, action, pair)
	if err != nil {
		return Verdict{}, err
	}
	res.Stats.AddScore(CorrectPoints)
	v.Correct = true
	v.ScoreDelta = CorrectPoints
	v.Step = res
	return v, nil
}

// Explain cites the rule for pair.
func Explain(p Pair) string {
	if p.LeftValue > p.RightValue {
		return fmt.Sprintf("%d is greater than %d, so they must swap.", p.LeftValue, p.RightValue)
	}
	return fmt.Sprintf("%d is not greater than %d, so no swap.", p.LeftValue, p.RightValue)
}
