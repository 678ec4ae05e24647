package model

// Product represents an inventory item
type Product struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"` // stored with original case, compared case-insensitively
	Quantity  int     `json:"quantity"`
	Location  *string `json:"location"` // nil when not set
	CreatedAt int64   `json:"created_at"`
}

// ProductRequest is used for both creating and updating a product; every
// mutable field is replaced on update.
type ProductRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=120"`
	SKU      string  `json:"sku" binding:"required,min=2,max=40"`
	Quantity *int    `json:"quantity" binding:"required,gte=0"`
	Location *string `json:"location" binding:"omitempty,max=80"`
}
