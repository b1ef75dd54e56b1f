package order_test

import (
	"testing"
	"time"

	"github.com/kevinotieno/shamba-storefront/internal/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepStateFor_Shipped(t *testing.T) {
	assert.Equal(t, order.StepCompleted, order.StepStateFor(order.StatusPending, order.StatusShipped))
	assert.Equal(t, order.StepCompleted, order.StepStateFor(order.StatusProcessing, order.StatusShipped))
	assert.Equal(t, order.StepActive, order.StepStateFor(order.StatusShipped, order.StatusShipped))
	assert.Equal(t, order.StepUpcoming, order.StepStateFor(order.StatusDelivered, order.StatusShipped))
}

func TestSteps_CancelledSuppressesStepper(t *testing.T) {
	o := &order.Order{
		Status: order.StatusCancelled,
		StatusHistory: []order.HistoryEntry{
			{Status: order.StatusPending, Timestamp: time.Now()},
			{Status: order.StatusCancelled, Timestamp: time.Now()},
		},
	}
	assert.Nil(t, order.Steps(o), "cancelled orders render a banner, never a stepper")
}

func TestSteps_TimestampsComeFromLatestHistoryEntry(t *testing.T) {
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	o := &order.Order{
		Status: order.StatusProcessing,
		StatusHistory: []order.HistoryEntry{
			{Status: order.StatusPending, Timestamp: first},
			{Status: order.StatusProcessing, Timestamp: first.Add(time.Hour)},
			{Status: order.StatusProcessing, Timestamp: second, Note: "packed"},
		},
	}

	steps := order.Steps(o)
	require.Len(t, steps, 4)

	assert.Equal(t, order.StepCompleted, steps[0].State)
	require.NotNil(t, steps[0].Timestamp)
	assert.Equal(t, first, *steps[0].Timestamp)

	assert.Equal(t, order.StepActive, steps[1].State)
	require.NotNil(t, steps[1].Timestamp)
	assert.Equal(t, second, *steps[1].Timestamp, "latest entry for a status wins")

	assert.Equal(t, order.StepUpcoming, steps[2].State)
	assert.Nil(t, steps[2].Timestamp)
	assert.Equal(t, order.StepUpcoming, steps[3].State)
}
