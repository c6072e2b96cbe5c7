package cart

import "github.com/huellitas/pet-shop-backend/internal/product"

// CartItem pairs a catalog product with the quantity in the user's cart.
type CartItem struct {
	product.Product
	Quantity int `json:"quantity"`
}
