package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kevinotieno/shamba-storefront/internal/handler"
)

type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Orders   *handler.OrderHandler
	Driver   *handler.DriverHandler
	Content  *handler.ContentHandler
}

func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Cart.GetCart)
		r.Post("/", h.Cart.AddItem)
		r.Patch("/{itemID}", h.Cart.UpdateItem)
		r.Delete("/{itemID}", h.Cart.RemoveItem)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/", h.Checkout.Init)
		r.Post("/delivery-method", h.Checkout.SetDeliveryMethod)
		r.Post("/payment-method", h.Checkout.SetPaymentMethod)
		r.Post("/address", h.Checkout.SetAddress)
		r.Post("/location", h.Checkout.UseLocation)
		r.Post("/continue", h.Checkout.Continue)
		r.Post("/back", h.Checkout.Back)
		r.Post("/submit", h.Checkout.Submit)
	})
	r.Get("/payment/verify", h.Checkout.Verify)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Orders.List)
		r.Get("/{orderID}", h.Orders.Get)
	})
	r.Get("/track/{number}", h.Orders.Track)

	r.Route("/driver", func(r chi.Router) {
		r.Get("/orders", h.Driver.Orders)
		r.Post("/orders/{orderID}/respond/{action}", h.Driver.Respond)
		r.Post("/orders/{orderID}/progress/{action}", h.Driver.Advance)
		r.Patch("/status", h.Driver.SetStatus)
	})

	r.Get("/categories", h.Content.Categories)
	r.Get("/categories/{slug}", h.Content.CategoryBySlug)
	r.Get("/blogs", h.Content.Blogs)
	r.Get("/blogs/{slug}", h.Content.BlogBySlug)
	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/", h.Content.Testimonials)
		r.Post("/", h.Content.CreateTestimonial)
		r.Get("/can-submit/{orderID}", h.Content.CanSubmitTestimonial)
		r.Delete("/{testimonialID}", h.Content.DeleteTestimonial)
	})
	r.Get("/adverts", h.Content.Adverts)
	r.Get("/adverts/placement/{placement}", h.Content.AdvertByPlacement)

	return r
}
