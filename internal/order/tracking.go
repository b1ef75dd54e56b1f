package order

import "time"

// StatusOrder is the fixed stepper sequence shown on the tracking page.
// Cancelled is deliberately absent: it replaces the stepper with a banner.
var StatusOrder = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

type StepState string

const (
	StepCompleted StepState = "completed"
	StepActive    StepState = "active"
	StepUpcoming  StepState = "upcoming"
)

// StepStateFor derives a step's visual state purely from index comparison
// against the order's current status. Callers must check IsCancelled first;
// a cancelled order has no stepper at all.
func StepStateFor(step, current Status) StepState {
	currentIdx := stepIndex(current)
	stepIdx := stepIndex(step)
	switch {
	case stepIdx < currentIdx:
		return StepCompleted
	case stepIdx == currentIdx:
		return StepActive
	default:
		return StepUpcoming
	}
}

func stepIndex(s Status) int {
	for i, st := range StatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Step is one rendered stepper entry.
type Step struct {
	Status    Status     `json:"status"`
	State     StepState  `json:"state"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Steps builds the full stepper for an order. Returns nil for cancelled
// orders; the caller renders the cancelled banner instead.
func Steps(o *Order) []Step {
	if o.Status == StatusCancelled {
		return nil
	}
	steps := make([]Step, 0, len(StatusOrder))
	for _, st := range StatusOrder {
		step := Step{Status: st, State: StepStateFor(st, o.Status)}
		if ts, found := historyTimestamp(o.StatusHistory, st); found {
			t := ts
			step.Timestamp = &t
		}
		steps = append(steps, step)
	}
	return steps
}

// historyTimestamp returns the latest history entry for the given status.
func historyTimestamp(history []HistoryEntry, s Status) (time.Time, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Status == s {
			return history[i].Timestamp, true
		}
	}
	return time.Time{}, false
}
