// Package checkout implements the two-step delivery/payment state machine
// between the cart and the payment gateway.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/kevinotieno/shamba-storefront/internal/cart"
	"github.com/kevinotieno/shamba-storefront/internal/geo"
	"github.com/kevinotieno/shamba-storefront/internal/money"
	"github.com/kevinotieno/shamba-storefront/internal/order"
	"github.com/kevinotieno/shamba-storefront/internal/payment"
)

type Step int

const (
	StepDelivery Step = iota + 1
	StepPayment
)

var (
	ErrIncompleteAddress  = errors.New("checkout: required delivery details are missing")
	ErrOutsideServiceArea = errors.New("checkout: location is outside the delivery area")
	ErrWrongStep          = errors.New("checkout: action not available on this step")
	ErrEmptyCart          = errors.New("checkout: cart is empty")
)

// OrderCreator is the slice of the order repository the flow needs.
type OrderCreator interface {
	Create(ctx context.Context, req order.CreateRequest) (*order.Created, error)
}

// Geocoder fills address fields from coordinates, best-effort only.
type Geocoder interface {
	Reverse(ctx context.Context, c geo.Coordinates) (*geo.Address, error)
}

// Flow is one checkout session. It is created when the customer enters
// checkout and discarded afterwards; nothing survives the process.
type Flow struct {
	repo     Repository
	orders   OrderCreator
	cart     *cart.Service
	gateway  payment.Gateway
	geocoder Geocoder
	email    string // authenticated session identity, handed to the gateway

	mu            sync.Mutex
	step          Step
	settings      *Settings
	method        order.DeliveryMethod
	payMethod     order.PaymentMethod
	address       order.ShippingAddress
	location      *geo.Coordinates
	fee           float64
	distance      float64
	locationError string
}

func NewFlow(repo Repository, orders OrderCreator, cartSvc *cart.Service, gw payment.Gateway, gc Geocoder, email string) *Flow {
	return &Flow{
		repo:      repo,
		orders:    orders,
		cart:      cartSvc,
		gateway:   gw,
		geocoder:  gc,
		email:     email,
		step:      StepDelivery,
		method:    order.MethodDelivery,
		payMethod: order.PayMpesa,
		address:   order.ShippingAddress{Country: "Kenya"},
	}
}

// Init refreshes the cart and loads delivery settings. A settings failure is
// logged and tolerated, matching the page's behavior.
func (f *Flow) Init(ctx context.Context) error {
	if res := f.cart.Refresh(ctx); !res.Success {
		return fmt.Errorf("checkout: init: %s", res.Message)
	}
	settings, err := f.repo.Settings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("checkout: failed to fetch delivery settings")
		settings = &Settings{}
	}
	f.mu.Lock()
	f.settings = settings
	f.mu.Unlock()
	return nil
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Settings() Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settings == nil {
		return Settings{}
	}
	return *f.settings
}

// SetDeliveryMethod switches between delivery and pickup. Pickup zeroes the
// fee immediately.
func (f *Flow) SetDeliveryMethod(m order.DeliveryMethod) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.method = m
	if m == order.MethodPickup {
		f.fee = 0
	}
}

func (f *Flow) DeliveryMethod() order.DeliveryMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.method
}

func (f *Flow) SetPaymentMethod(m order.PaymentMethod) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payMethod = m
}

// SetAddress replaces the manually editable address fields. Manual entry is
// always available regardless of geolocation.
func (f *Flow) SetAddress(a order.ShippingAddress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.Country == "" {
		a.Country = f.address.Country
	}
	f.address = a
}

func (f *Flow) Address() order.ShippingAddress {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

func (f *Flow) LocationError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locationError
}

// UseLocation records the customer's coordinates, asks the backend for a fee
// quote, and best-effort prefills the address from the reverse geocoder. An
// out-of-area response sets the location error; a later successful quote
// clears it.
func (f *Flow) UseLocation(ctx context.Context, loc geo.Coordinates) {
	f.mu.Lock()
	f.location = &loc
	f.locationError = ""
	f.mu.Unlock()

	quote, err := f.repo.QuoteFee(ctx, loc, f.cart.Subtotal())
	if err != nil {
		msg := api.UserMessage(err, "Failed to calculate delivery fee")
		log.Warn().Err(err).Msg("checkout: fee quote failed")
		f.mu.Lock()
		f.locationError = msg
		f.fee = 0
		f.distance = 0
		f.mu.Unlock()
		return
	}

	f.mu.Lock()
	f.fee = quote.DeliveryFee
	f.distance = quote.Distance
	f.mu.Unlock()
	if quote.IsFreeDelivery {
		log.Info().Msg("checkout: order qualifies for free delivery")
	}

	f.prefillAddress(ctx, loc)
}

// prefillAddress never blocks checkout: any geocoder failure is logged and
// dropped.
func (f *Flow) prefillAddress(ctx context.Context, loc geo.Coordinates) {
	if f.geocoder == nil {
		return
	}
	addr, err := f.geocoder.Reverse(ctx, loc)
	if err != nil {
		log.Debug().Err(err).Msg("checkout: reverse geocode failed")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if addr.Street != "" {
		f.address.Address = addr.Street
	}
	if addr.City != "" {
		f.address.City = addr.City
	}
	if addr.PostalCode != "" {
		f.address.PostalCode = addr.PostalCode
	}
}

// CanContinue reports whether the delivery step may advance: always for
// pickup, and for delivery only with a complete address and no location
// error.
func (f *Flow) CanContinue() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.method != order.MethodDelivery {
		return true
	}
	if f.locationError != "" {
		return false
	}
	return f.address.FullName != "" && f.address.Phone != "" && f.address.Address != "" && f.address.City != ""
}

// Continue advances to the payment step, or reports why it cannot.
func (f *Flow) Continue() error {
	f.mu.Lock()
	if f.step != StepDelivery {
		f.mu.Unlock()
		return ErrWrongStep
	}
	if f.method == order.MethodDelivery {
		if f.locationError != "" {
			f.mu.Unlock()
			return ErrOutsideServiceArea
		}
		if f.address.FullName == "" || f.address.Phone == "" || f.address.Address == "" || f.address.City == "" {
			f.mu.Unlock()
			return ErrIncompleteAddress
		}
	}
	f.step = StepPayment
	f.mu.Unlock()
	return nil
}

// Back returns to the delivery step.
func (f *Flow) Back() {
	f.mu.Lock()
	f.step = StepDelivery
	f.mu.Unlock()
}

// Submit creates the order and hands off to the payment gateway. On any
// failure the flow stays on the payment step; no partial order is assumed
// client-side.
func (f *Flow) Submit(ctx context.Context) (*payment.Handoff, error) {
	f.mu.Lock()
	if f.step != StepPayment {
		f.mu.Unlock()
		return nil, ErrWrongStep
	}
	req := order.CreateRequest{
		DeliveryMethod: f.method,
		PaymentMethod:  f.payMethod,
	}
	if f.method == order.MethodDelivery {
		req.CalculatedDeliveryFee = f.fee
		addr := f.address
		req.ShippingAddress = &addr
		if f.location != nil {
			loc := *f.location
			req.CustomerLocation = &loc
		}
	}
	f.mu.Unlock()

	if f.cart.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}

	created, err := f.orders.Create(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("checkout: order creation failed")
		return nil, fmt.Errorf("checkout: submit: %w", err)
	}
	log.Info().Str("order_number", created.Order.OrderNumber).Str("reference", created.Reference).Msg("checkout: order created")

	handoff, err := f.gateway.Begin(ctx, payment.Charge{
		Email:       f.email,
		Amount:      created.Order.TotalAmount,
		Reference:   created.Reference,
		PaymentURL:  created.PaymentURL,
		OrderNumber: created.Order.OrderNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: payment handoff: %w", err)
	}
	return handoff, nil
}

// Summary is the totals panel. Subtotal is the server cart total verbatim.
type Summary struct {
	Subtotal         float64 `json:"subtotal"`
	DeliveryFee      float64 `json:"deliveryFee"`
	Total            float64 `json:"total"`
	Distance         float64 `json:"distance,omitempty"`
	SubtotalDisplay  string  `json:"subtotalDisplay"`
	DeliveryDisplay  string  `json:"deliveryDisplay"`
	TotalDisplay     string  `json:"totalDisplay"`
	FreeDeliveryHint string  `json:"freeDeliveryHint,omitempty"`
}

func (f *Flow) Summary() Summary {
	subtotal := f.cart.Subtotal()

	f.mu.Lock()
	defer f.mu.Unlock()

	fee := 0.0
	if f.method == order.MethodDelivery {
		fee = f.fee
	}
	s := Summary{
		Subtotal:        subtotal,
		DeliveryFee:     fee,
		Total:           subtotal + fee,
		Distance:        f.distance,
		SubtotalDisplay: money.Format(subtotal),
		TotalDisplay:    money.Format(subtotal + fee),
	}
	if f.method == order.MethodPickup {
		s.DeliveryDisplay = "Free (Pickup)"
	} else {
		s.DeliveryDisplay = money.Format(fee)
	}
	if f.settings != nil && f.settings.FreeDeliveryThreshold > 0 &&
		subtotal < f.settings.FreeDeliveryThreshold && f.method == order.MethodDelivery {
		s.FreeDeliveryHint = fmt.Sprintf("Add %s more for free delivery!", money.Format(f.settings.FreeDeliveryThreshold-subtotal))
	}
	return s
}
