package order

import "fmt"

// Status is the backend-owned order lifecycle state. The client never computes
// transitions, it only validates what it is about to display or request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("order: unknown status %q", s)
}

// Terminal reports whether no further transition can happen.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Statuses only advance forward or divert to cancelled.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusProcessing: true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusShipped:   true,
		StatusCancelled: true,
	},
	StatusShipped: {
		StatusDelivered: true,
		StatusCancelled: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("order: unknown payment status %q", s)
}

type DeliveryMethod string

const (
	MethodDelivery DeliveryMethod = "delivery"
	MethodPickup   DeliveryMethod = "pickup"
)

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case MethodDelivery, MethodPickup:
		return DeliveryMethod(s), nil
	}
	return "", fmt.Errorf("order: unknown delivery method %q", s)
}

// PaymentMethod is informational only; the gateway integration is uniform.
type PaymentMethod string

const (
	PayMpesa PaymentMethod = "mpesa"
	PayCard  PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayMpesa, PayCard:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("order: unknown payment method %q", s)
}
