package driver

import "fmt"

// Status is the driver's own availability. It is toggled explicitly and never
// changes as a side effect of order actions.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
	StatusOffline   Status = "offline"
)

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusBusy, StatusOffline:
		return Status(s), nil
	}
	return "", fmt.Errorf("driver: unknown status %q", s)
}

// Action is something a driver can do to an assigned order.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionPickup  Action = "pickup"
	ActionDeliver Action = "deliver"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAccept, ActionDecline, ActionPickup, ActionDeliver:
		return Action(s), nil
	}
	return "", fmt.Errorf("driver: unknown action %q", s)
}

// Stats summarizes the dashboard strip.
type Stats struct {
	Assigned  int `json:"assigned"`
	InTransit int `json:"inTransit"`
	Delivered int `json:"delivered"`
}
