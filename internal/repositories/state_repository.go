package repositories

// StateRepository is the durable key-value pair that backs shopper carts and
// wishlists. It satisfies cart.Storage.
type StateRepository interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}
