package session

import (
	"fmt"

	"github.com/verte-zerg/tuisort/internal/engine"
)

const (
	learnPassMessage = "Pass complete. Largest remaining item bubbled to end."
	playPassMessage  = "Pass complete! Largest item locked in."
	sortedMessage    = "Sorting complete! The array is fully sorted."
)

func learnMessage(res engine.StepResult) string {
	p := res.Pair
	var msg string
	if res.Swapped {
		msg = fmt.Sprintf("Swapped %d and %d because %d > %d.", p.LeftValue, p.RightValue, p.LeftValue, p.RightValue)
	} else {
		msg = fmt.Sprintf("%d <= %d, so no swap needed.", p.LeftValue, p.RightValue)
	}
	switch {
	case res.Cursor.IsTerminal():
		return msg + " " + sortedMessage
	case res.PassComplete:
		return msg + " " + learnPassMessage
	default:
		return msg
	}
}

func playMessage(v engine.Verdict) string {
	msg := "Correct! Items already in order."
	if v.Action == engine.ActionSwap {
		msg = "Correct! Swapping items."
	}
	if v.Step.PassComplete && !v.Step.Cursor.IsTerminal() {
		msg += " " + playPassMessage
	}
	return msg
}
