// Package cart holds a shopper's in-progress selections: cart lines and a
// wishlist. A Store is the only write surface for that state; it rehydrates
// from durable storage when opened and writes back after every mutation.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"yaraan/internal/models"
)

// DefaultNamespace prefixes persisted keys when no session namespace is given.
const DefaultNamespace = "yaraan"

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 99

var (
	// ErrInvalidQuantity is returned when a line quantity would fall outside 1..MaxLineQuantity.
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
	// ErrMissingProduct is returned by AddItem when the candidate has no product id.
	ErrMissingProduct = errors.New("cart line has no product")
)

// Storage is the durable key-value pair the store persists through.
// Load reports ok=false when nothing was stored under key.
type Storage interface {
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
}

// Confirmation describes the outcome of an AddItem call.
type Confirmation struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Added       int    `json:"added"`
	Quantity    int    `json:"quantity"` // resulting line quantity
	Merged      bool   `json:"merged"`
}

// Message is the shopper-facing confirmation text.
func (c Confirmation) Message() string {
	return fmt.Sprintf("%s added to cart!", c.ProductName)
}

// Notifier receives a signal for every successful AddItem.
type Notifier interface {
	ItemAdded(c Confirmation)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(c Confirmation)

func (f NotifierFunc) ItemAdded(c Confirmation) { f(c) }

// Option configures a Store.
type Option func(*Store)

// WithNamespace scopes persisted keys, e.g. to a shopper session.
func WithNamespace(namespace string) Option {
	return func(s *Store) { s.namespace = namespace }
}

// WithNotifier registers the add-to-cart confirmation receiver.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger.With().Str("component", "CartStore").Logger()
	}
}

// Store owns one shopper's cart lines and wishlist.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	namespace string
	notifier  Notifier
	logger    zerolog.Logger

	lines    []models.CartLine
	wishlist []string

	totalItems int
	totalPrice int64
}

// Open creates a store and rehydrates it from storage. Missing or corrupt
// stored data yields an empty cart or wishlist; it is never an error.
func Open(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:   storage,
		namespace: DefaultNamespace,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.lines = s.loadLines()
	s.wishlist = s.loadWishlist()
	s.recompute()
	return s
}

// CartKey is the storage key holding the cart lines.
func (s *Store) CartKey() string { return s.namespace + "-cart" }

// WishlistKey is the storage key holding the wishlist.
func (s *Store) WishlistKey() string { return s.namespace + "-wishlist" }

// AddItem merges line into the cart. A line with the same product, color and
// size gains the candidate's quantity and keeps its stored note; otherwise the
// candidate is appended.
func (s *Store) AddItem(line models.CartLine) (Confirmation, error) {
	if line.Product.ID == "" {
		return Confirmation{}, ErrMissingProduct
	}
	if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
		return Confirmation{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, line.Quantity)
	}

	s.mu.Lock()
	conf := Confirmation{
		ProductID:   line.Product.ID,
		ProductName: line.Product.Name,
		Added:       line.Quantity,
	}
	key := line.Key()
	merged := false
	for i := range s.lines {
		if s.lines[i].Key() == key {
			if s.lines[i].Quantity > MaxLineQuantity-line.Quantity {
				s.mu.Unlock()
				return Confirmation{}, fmt.Errorf("%w: %d already in cart", ErrInvalidQuantity, s.lines[i].Quantity)
			}
			s.lines[i].Quantity += line.Quantity
			conf.Quantity = s.lines[i].Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, line)
		conf.Quantity = line.Quantity
	}
	conf.Merged = merged
	s.recompute()
	s.saveLines()
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.ItemAdded(conf)
	}
	return conf, nil
}

// RemoveItem drops every line for productID, whatever its variant.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

// UpdateQuantity sets the quantity of every line for productID. A quantity
// below 1 removes those lines, exactly like RemoveItem. A quantity above
// MaxLineQuantity is rejected and leaves the cart unchanged.
func (s *Store) UpdateQuantity(productID string, quantity int) error {
	if quantity > MaxLineQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.removeLocked(productID)
		return nil
	}
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = quantity
		}
	}
	s.recompute()
	s.saveLines()
	return nil
}

// Clear empties the cart. The wishlist is untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.recompute()
	s.saveLines()
}

// ToggleWishlist flips membership of productID and reports whether it is now present.
// Each call flips, so callers invoke it once per shopper intent.
func (s *Store) ToggleWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.wishlist {
		if id == productID {
			s.wishlist = append(s.wishlist[:i:i], s.wishlist[i+1:]...)
			s.saveWishlist()
			return false
		}
	}
	s.wishlist = append(s.wishlist, productID)
	s.saveWishlist()
	return true
}

// InWishlist reports whether productID is in the wishlist.
func (s *Store) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Wishlist returns a copy of the wishlist ids in the order they were added.
func (s *Store) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// TotalItems is the sum of line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

// TotalPrice is the sum of captured price × quantity.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Store) removeLocked(productID string) {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.recompute()
	s.saveLines()
}

func (s *Store) recompute() {
	s.totalItems = 0
	s.totalPrice = 0
	for _, line := range s.lines {
		s.totalItems += line.Quantity
		s.totalPrice += line.Subtotal()
	}
}

// Persistence failures never reach the caller: in-memory state stays
// authoritative for the session.

func (s *Store) saveLines() {
	data, err := EncodeLines(s.lines)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.CartKey()).Msg("Could not encode cart")
		return
	}
	if err := s.storage.Save(s.CartKey(), data); err != nil {
		s.logger.Warn().Err(err).Str("key", s.CartKey()).Msg("Could not persist cart")
	}
}

func (s *Store) saveWishlist() {
	data, err := EncodeWishlist(s.wishlist)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.WishlistKey()).Msg("Could not encode wishlist")
		return
	}
	if err := s.storage.Save(s.WishlistKey(), data); err != nil {
		s.logger.Warn().Err(err).Str("key", s.WishlistKey()).Msg("Could not persist wishlist")
	}
}

func (s *Store) loadLines() []models.CartLine {
	data, ok, err := s.storage.Load(s.CartKey())
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.CartKey()).Msg("Could not load cart, starting empty")
		return nil
	}
	if !ok {
		return nil
	}
	lines, err := DecodeLines(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.CartKey()).Msg("Discarding stored cart")
		return nil
	}
	return lines
}

func (s *Store) loadWishlist() []string {
	data, ok, err := s.storage.Load(s.WishlistKey())
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.WishlistKey()).Msg("Could not load wishlist, starting empty")
		return nil
	}
	if !ok {
		return nil
	}
	ids, err := DecodeWishlist(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.WishlistKey()).Msg("Discarding stored wishlist")
		return nil
	}
	return ids
}
