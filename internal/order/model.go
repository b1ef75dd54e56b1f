package order

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/kevinotieno/shamba-storefront/internal/geo"
)

// Acceptance is the driver-response tri-state: the backend sends null while a
// response is outstanding, then true/false.
type Acceptance int

const (
	AcceptancePending Acceptance = iota
	Accepted
	Declined
)

var nullLiteral = []byte("null")

func (a *Acceptance) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, nullLiteral) {
		*a = AcceptancePending
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v {
		*a = Accepted
	} else {
		*a = Declined
	}
	return nil
}

func (a Acceptance) MarshalJSON() ([]byte, error) {
	switch a {
	case Accepted:
		return json.Marshal(true)
	case Declined:
		return json.Marshal(false)
	default:
		return nullLiteral, nil
	}
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type HistoryEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type Item struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Size     string  `json:"size,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// Order is the server-owned order record as the storefront receives it.
type Order struct {
	ID                string           `json:"_id"`
	OrderNumber       string           `json:"orderNumber"`
	TrackingNumber    string           `json:"trackingNumber,omitempty"`
	Items             []Item           `json:"items"`
	Subtotal          float64          `json:"subtotal"`
	DeliveryFee       float64          `json:"deliveryFee"`
	TotalAmount       float64          `json:"totalAmount"`
	Status            Status           `json:"orderStatus"`
	PaymentStatus     PaymentStatus    `json:"paymentStatus"`
	DeliveryMethod    DeliveryMethod   `json:"deliveryMethod"`
	ShippingAddress   *ShippingAddress `json:"shippingAddress,omitempty"`
	StatusHistory     []HistoryEntry   `json:"statusHistory,omitempty"`
	DriverAccepted    Acceptance       `json:"driverAccepted"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery,omitempty"`
	ReceiptURL        string           `json:"receiptUrl,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// CreateRequest is the checkout submission payload.
type CreateRequest struct {
	DeliveryMethod        DeliveryMethod   `json:"deliveryMethod"`
	PaymentMethod         PaymentMethod    `json:"paymentMethod"`
	CalculatedDeliveryFee float64          `json:"calculatedDeliveryFee"`
	CustomerLocation      *geo.Coordinates `json:"customerLocation,omitempty"`
	ShippingAddress       *ShippingAddress `json:"shippingAddress,omitempty"`
}

// Created is the order-creation response: the order itself plus the payment
// reference and the redirect fallback URL for the gateway handoff.
type Created struct {
	Order      Order  `json:"order"`
	Reference  string `json:"reference"`
	PaymentURL string `json:"paymentUrl,omitempty"`
}
