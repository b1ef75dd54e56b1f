package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kevinotieno/shamba-storefront/internal/advert"
	"github.com/kevinotieno/shamba-storefront/internal/blog"
	"github.com/kevinotieno/shamba-storefront/internal/catalog"
	"github.com/kevinotieno/shamba-storefront/internal/testimonial"
)

// ContentHandler serves the marketing surfaces: categories, blog posts,
// testimonials and advert placements.
type ContentHandler struct {
	catalog      *catalog.Store
	blog         *blog.Store
	testimonials *testimonial.Store
	adverts      *advert.Store
}

func NewContentHandler(c *catalog.Store, b *blog.Store, t *testimonial.Store, a *advert.Store) *ContentHandler {
	return &ContentHandler{catalog: c, blog: b, testimonials: t, adverts: a}
}

func (h *ContentHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Refresh(r.Context()); err != nil {
		respondFromError(w, err, "Failed to load categories")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"categories": h.catalog.Categories()})
}

func (h *ContentHandler) CategoryBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondFromError(w, err, "Category not found")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"category": c})
}

func (h *ContentHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if err := h.blog.Refresh(r.Context(), page, limit); err != nil {
		respondFromError(w, err, "Failed to load posts")
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"blogs":      h.blog.Posts(),
		"pagination": h.blog.Pagination(),
	})
}

func (h *ContentHandler) BlogBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.blog.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondFromError(w, err, "Post not found")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"blog": p})
}

func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Refresh(r.Context()); err != nil {
		respondFromError(w, err, "Failed to load testimonials")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"testimonials": h.testimonials.Testimonials()})
}

func (h *ContentHandler) CanSubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	ok, err := h.testimonials.CanSubmit(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondFromError(w, err, "Failed to check review eligibility")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"canSubmit": ok})
}

// CreateTestimonial accepts a multipart form with rating, comment, orderId
// and an optional image file.
func (h *ContentHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		respondError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	comment := strings.TrimSpace(r.FormValue("comment"))
	if comment == "" {
		respondError(w, http.StatusBadRequest, "Please write a short review")
		return
	}
	in := testimonial.CreateInput{
		OrderID: r.FormValue("orderId"),
		Rating:  rating,
		Comment: comment,
	}
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		in.Image = file
		in.ImageName = header.Filename
	}
	if err := h.testimonials.Create(r.Context(), in); err != nil {
		respondFromError(w, err, "Failed to submit review")
		return
	}
	respondMessage(w, http.StatusCreated, "Thank you for your review!")
}

func (h *ContentHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Delete(r.Context(), chi.URLParam(r, "testimonialID")); err != nil {
		respondFromError(w, err, "Failed to delete review")
		return
	}
	respondMessage(w, http.StatusOK, "Review deleted")
}

func (h *ContentHandler) Adverts(w http.ResponseWriter, r *http.Request) {
	if err := h.adverts.Refresh(r.Context()); err != nil {
		respondFromError(w, err, "Failed to load adverts")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"adverts": h.adverts.Adverts()})
}

func (h *ContentHandler) AdvertByPlacement(w http.ResponseWriter, r *http.Request) {
	a, err := h.adverts.ByPlacement(r.Context(), chi.URLParam(r, "placement"))
	if err != nil {
		respondFromError(w, err, "No advert for this placement")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"advert": a})
}
