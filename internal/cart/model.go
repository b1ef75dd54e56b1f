package cart

// Product is the denormalized snapshot the backend embeds in each cart line
// for display purposes.
type Product struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Images []string `json:"images,omitempty"`
}

type Item struct {
	ID       string  `json:"_id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Size     string  `json:"size,omitempty"`
}

// Cart mirrors the server-owned cart. TotalAmount is computed server-side and
// is never recomputed here.
type Cart struct {
	Items       []Item  `json:"items"`
	TotalAmount float64 `json:"totalAmount"`
}
