// Package payment wraps the third-party gateway behind an injectable
// interface so the checkout flow is testable without the ambient widget.
package payment

import (
	"context"
	"errors"
	"math"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNoPaymentURL = errors.New("payment: backend provided no redirect URL")

// Charge is everything the gateway needs to collect one payment.
type Charge struct {
	Email       string
	Amount      float64 // whole shillings
	Reference   string  // backend-issued transaction reference
	PaymentURL  string  // backend-provided redirect fallback
	OrderNumber string
}

type Mode string

const (
	ModeInline   Mode = "inline"
	ModeRedirect Mode = "redirect"
)

// WidgetParams is the configuration handed to the embedded payment widget.
// Amount is in subunits (cents of a shilling), as the widget requires.
type WidgetParams struct {
	Key            string `json:"key"`
	Email          string `json:"email"`
	AmountSubunits int64  `json:"amount"`
	Currency       string `json:"currency"`
	Reference      string `json:"ref"`
	CallbackURL    string `json:"callbackUrl"`
	CancelURL      string `json:"cancelUrl"`
}

// Handoff tells the caller how to continue collecting payment: open the
// inline widget, or redirect to the hosted page.
type Handoff struct {
	Mode        Mode          `json:"mode"`
	Reference   string        `json:"reference"`
	RedirectURL string        `json:"redirectUrl,omitempty"`
	Widget      *WidgetParams `json:"widget,omitempty"`
}

type Gateway interface {
	Begin(ctx context.Context, c Charge) (*Handoff, error)
}

// InlineGateway drives the embedded popup widget.
type InlineGateway struct {
	PublicKey   string
	CallbackURL string // route receiving ?reference= after a completed payment
	CancelURL   string // pending-payment route for an aborted widget
}

func (g *InlineGateway) Begin(ctx context.Context, c Charge) (*Handoff, error) {
	ref := c.Reference
	if ref == "" {
		// The backend always issues one; generate a local reference only as a
		// belt-and-braces fallback so the widget is never opened without one.
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		ref = id.String()
		log.Warn().Str("order_number", c.OrderNumber).Str("reference", ref).Msg("payment: backend sent no reference, generated one")
	}
	return &Handoff{
		Mode:      ModeInline,
		Reference: ref,
		Widget: &WidgetParams{
			Key:            g.PublicKey,
			Email:          c.Email,
			AmountSubunits: int64(math.Round(c.Amount * 100)),
			Currency:       "KES",
			Reference:      ref,
			CallbackURL:    g.CallbackURL,
			CancelURL:      g.CancelURL,
		},
	}, nil
}

// RedirectGateway falls back to the backend-provided hosted payment page,
// used when the widget is unavailable.
type RedirectGateway struct{}

func (g *RedirectGateway) Begin(ctx context.Context, c Charge) (*Handoff, error) {
	if c.PaymentURL == "" {
		return nil, ErrNoPaymentURL
	}
	return &Handoff{
		Mode:        ModeRedirect,
		Reference:   c.Reference,
		RedirectURL: c.PaymentURL,
	}, nil
}

// Select picks the inline widget when a public key is configured, mirroring
// the widget-availability check, and the redirect fallback otherwise.
func Select(publicKey, callbackURL, cancelURL string) Gateway {
	if publicKey == "" {
		return &RedirectGateway{}
	}
	return &InlineGateway{PublicKey: publicKey, CallbackURL: callbackURL, CancelURL: cancelURL}
}
