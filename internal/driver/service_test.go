package driver_test

import (
	"context"
	"testing"

	"github.com/kevinotieno/shamba-storefront/internal/driver"
	"github.com/kevinotieno/shamba-storefront/internal/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	ordersFunc    func(ctx context.Context) ([]order.Order, error)
	respondFunc   func(ctx context.Context, orderID string, action driver.Action) error
	advanceFunc   func(ctx context.Context, orderID string, action driver.Action, note string) (*order.Order, error)
	setStatusFunc func(ctx context.Context, s driver.Status) error
}

func (m *mockRepository) Orders(ctx context.Context) ([]order.Order, error) {
	return m.ordersFunc(ctx)
}

func (m *mockRepository) Respond(ctx context.Context, orderID string, action driver.Action) error {
	return m.respondFunc(ctx, orderID, action)
}

func (m *mockRepository) Advance(ctx context.Context, orderID string, action driver.Action, note string) (*order.Order, error) {
	return m.advanceFunc(ctx, orderID, action, note)
}

func (m *mockRepository) SetStatus(ctx context.Context, s driver.Status) error {
	return m.setStatusFunc(ctx, s)
}

func TestActionsFor(t *testing.T) {
	tests := []struct {
		name     string
		order    order.Order
		expected []driver.Action
	}{
		{
			name:     "pending_response_only_accept_decline",
			order:    order.Order{Status: order.StatusProcessing, DriverAccepted: order.AcceptancePending},
			expected: []driver.Action{driver.ActionAccept, driver.ActionDecline},
		},
		{
			name:     "accepted_processing_exposes_pickup",
			order:    order.Order{Status: order.StatusProcessing, DriverAccepted: order.Accepted},
			expected: []driver.Action{driver.ActionPickup},
		},
		{
			name:     "accepted_shipped_exposes_deliver",
			order:    order.Order{Status: order.StatusShipped, DriverAccepted: order.Accepted},
			expected: []driver.Action{driver.ActionDeliver},
		},
		{
			name:     "declined_offers_nothing",
			order:    order.Order{Status: order.StatusProcessing, DriverAccepted: order.Declined},
			expected: nil,
		},
		{
			name:     "accepted_delivered_offers_nothing",
			order:    order.Order{Status: order.StatusDelivered, DriverAccepted: order.Accepted},
			expected: nil,
		},
		{
			name:     "accepted_cancelled_offers_nothing",
			order:    order.Order{Status: order.StatusCancelled, DriverAccepted: order.Accepted},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, driver.ActionsFor(tt.order))
		})
	}
}

func TestService_Advance_GatedUntilAccepted(t *testing.T) {
	repo := &mockRepository{
		ordersFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{
				{ID: "o1", Status: order.StatusProcessing, DriverAccepted: order.AcceptancePending},
			}, nil
		},
		advanceFunc: func(ctx context.Context, orderID string, action driver.Action, note string) (*order.Order, error) {
			t.Fatal("no request may be issued while acceptance is pending")
			return nil, nil
		},
	}
	svc := driver.NewService(repo)
	require.NoError(t, svc.LoadOrders(context.Background()))

	err := svc.Advance(context.Background(), "o1", driver.ActionPickup, "")
	assert.ErrorIs(t, err, driver.ErrActionUnavailable)
}

func TestService_RespondThenPickup(t *testing.T) {
	accepted := false
	repo := &mockRepository{
		ordersFunc: func(ctx context.Context) ([]order.Order, error) {
			acc := order.AcceptancePending
			if accepted {
				acc = order.Accepted
			}
			return []order.Order{
				{ID: "o1", Status: order.StatusProcessing, DriverAccepted: acc},
			}, nil
		},
		respondFunc: func(ctx context.Context, orderID string, action driver.Action) error {
			accepted = action == driver.ActionAccept
			return nil
		},
		advanceFunc: func(ctx context.Context, orderID string, action driver.Action, note string) (*order.Order, error) {
			assert.Equal(t, driver.ActionPickup, action)
			assert.Equal(t, "picked from the farm gate", note)
			return &order.Order{ID: "o1", Status: order.StatusShipped, DriverAccepted: order.Accepted}, nil
		},
	}
	svc := driver.NewService(repo)
	require.NoError(t, svc.LoadOrders(context.Background()))

	require.NoError(t, svc.Respond(context.Background(), "o1", driver.ActionAccept))
	require.NoError(t, svc.Advance(context.Background(), "o1", driver.ActionPickup, "picked from the farm gate"))

	orders := svc.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusShipped, orders[0].Status, "mirror reflects the backend's updated order")
}

func TestService_Respond_UnknownOrder(t *testing.T) {
	repo := &mockRepository{
		ordersFunc: func(ctx context.Context) ([]order.Order, error) { return nil, nil },
	}
	svc := driver.NewService(repo)
	require.NoError(t, svc.LoadOrders(context.Background()))

	err := svc.Respond(context.Background(), "ghost", driver.ActionAccept)
	assert.ErrorIs(t, err, driver.ErrOrderNotAssigned)
}

func TestService_SetStatus_IndependentOfOrders(t *testing.T) {
	var sent driver.Status
	repo := &mockRepository{
		setStatusFunc: func(ctx context.Context, s driver.Status) error {
			sent = s
			return nil
		},
	}
	svc := driver.NewService(repo)
	assert.Equal(t, driver.StatusOffline, svc.Status())

	require.NoError(t, svc.SetStatus(context.Background(), driver.StatusAvailable))
	assert.Equal(t, driver.StatusAvailable, sent)
	assert.Equal(t, driver.StatusAvailable, svc.Status())
}

func TestService_Stats(t *testing.T) {
	repo := &mockRepository{
		ordersFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{
				{ID: "a", Status: order.StatusProcessing},
				{ID: "b", Status: order.StatusShipped},
				{ID: "c", Status: order.StatusShipped},
				{ID: "d", Status: order.StatusDelivered},
				{ID: "e", Status: order.StatusCancelled},
			}, nil
		},
	}
	svc := driver.NewService(repo)
	require.NoError(t, svc.LoadOrders(context.Background()))

	st := svc.Stats()
	assert.Equal(t, 3, st.Assigned)
	assert.Equal(t, 2, st.InTransit)
	assert.Equal(t, 1, st.Delivered)
}
