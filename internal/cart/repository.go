package cart

// Repository defines persistence operations for the server-synced cart.
// The cart lives as a product->quantity map on the user row.
type Repository interface {
	// AddToCart adjusts the quantity for one product (negative values
	// remove) and returns the enriched cart.
	AddToCart(userID int, productID int, qty int, updatedAt string) ([]CartItem, error)
	GetCart(userID int) ([]CartItem, error)
	Clear(userID int, updatedAt string) error
}
