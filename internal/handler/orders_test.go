package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinotieno/shamba-storefront/internal/order"
)

type mockOrderRepository struct {
	listFunc   func(ctx context.Context) ([]order.Order, error)
	getFunc    func(ctx context.Context, id string) (*order.Order, error)
	trackFunc  func(ctx context.Context, number string) (*order.Order, error)
	createFunc func(ctx context.Context, req order.CreateRequest) (*order.Created, error)
}

func (m *mockOrderRepository) List(ctx context.Context) ([]order.Order, error) {
	return m.listFunc(ctx)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	return m.getFunc(ctx, id)
}

func (m *mockOrderRepository) TrackByNumber(ctx context.Context, number string) (*order.Order, error) {
	return m.trackFunc(ctx, number)
}

func (m *mockOrderRepository) Create(ctx context.Context, req order.CreateRequest) (*order.Created, error) {
	return m.createFunc(ctx, req)
}

func newOrderRouter(repo order.Repository) *chi.Mux {
	h := NewOrderHandler(order.NewService(repo))
	r := chi.NewRouter()
	r.Get("/orders", h.List)
	r.Get("/orders/{orderID}", h.Get)
	r.Get("/track/{number}", h.Track)
	return r
}

func TestOrderHandler_Track(t *testing.T) {
	tests := []struct {
		name           string
		track          func(ctx context.Context, number string) (*order.Order, error)
		expectedStatus int
		check          func(t *testing.T, body map[string]any)
	}{
		{
			name: "shipped order carries progress steps",
			track: func(ctx context.Context, number string) (*order.Order, error) {
				return &order.Order{TrackingNumber: number, Status: order.StatusShipped}, nil
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				data := body["data"].(map[string]any)
				assert.Equal(t, false, data["cancelled"])
				steps := data["steps"].([]any)
				require.Len(t, steps, 4)
			},
		},
		{
			name: "cancelled order has no steps",
			track: func(ctx context.Context, number string) (*order.Order, error) {
				return &order.Order{TrackingNumber: number, Status: order.StatusCancelled}, nil
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				data := body["data"].(map[string]any)
				assert.Equal(t, true, data["cancelled"])
				assert.Nil(t, data["steps"])
			},
		},
		{
			name: "unknown number",
			track: func(ctx context.Context, number string) (*order.Order, error) {
				return nil, order.ErrOrderNotFound
			},
			expectedStatus: http.StatusNotFound,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "error", body["status"])
				assert.Equal(t, "Order not found", body["message"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOrderRouter(&mockOrderRepository{trackFunc: tt.track})

			req := httptest.NewRequest(http.MethodGet, "/track/ORD-2024-001", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.check(t, body)
		})
	}
}

func TestOrderHandler_ListIncludesStats(t *testing.T) {
	repo := &mockOrderRepository{
		listFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{
				{ID: "o1", Status: order.StatusDelivered, PaymentStatus: order.PaymentPaid, TotalAmount: 400},
				{ID: "o2", Status: order.StatusShipped, PaymentStatus: order.PaymentPending, TotalAmount: 150},
			}, nil
		},
	}
	router := newOrderRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats["delivered"])
	assert.Equal(t, float64(1), stats["open"])
	assert.Equal(t, float64(400), stats["spent"])
}

func TestOrderHandler_ListBackendDown(t *testing.T) {
	repo := &mockOrderRepository{
		listFunc: func(ctx context.Context) ([]order.Order, error) {
			return nil, context.DeadlineExceeded
		},
	}
	router := newOrderRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to load orders", body["message"])
}
