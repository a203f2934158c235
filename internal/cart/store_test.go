package cart

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yaraan/internal/models"
)

// memoryStorage is a Storage backed by a map.
type memoryStorage struct {
	mu      sync.Mutex
	entries map[string][]byte
	saves   int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{entries: make(map[string][]byte)}
}

func (m *memoryStorage) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	return data, ok, nil
}

func (m *memoryStorage) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), data...)
	m.saves++
	return nil
}

// brokenStorage fails every call.
type brokenStorage struct{}

func (brokenStorage) Load(string) ([]byte, bool, error) { return nil, false, errors.New("disk unavailable") }
func (brokenStorage) Save(string, []byte) error         { return errors.New("disk full") }

func product(id string, price int64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price}
}

func line(p models.Product, qty int, color, size string) models.CartLine {
	return models.CartLine{Product: p, Quantity: qty, SelectedColor: color, SelectedSize: size}
}

func assertTotals(t *testing.T, s *Store) {
	t.Helper()
	var items int
	var price int64
	for _, l := range s.Items() {
		assert.GreaterOrEqual(t, l.Quantity, 1)
		items += l.Quantity
		price += l.Product.Price * int64(l.Quantity)
	}
	assert.Equal(t, items, s.TotalItems())
	assert.Equal(t, price, s.TotalPrice())
}

func TestStore_AddItemMergesOnVariantKey(t *testing.T) {
	s := Open(newMemoryStorage())
	a := product("A", 1200)

	_, err := s.AddItem(line(a, 2, "Sage", ""))
	require.NoError(t, err)

	conf, err := s.AddItem(line(a, 1, "Sage", ""))
	require.NoError(t, err)
	assert.True(t, conf.Merged)
	assert.Equal(t, 1, conf.Added)
	assert.Equal(t, 3, conf.Quantity)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 3, s.Items()[0].Quantity)

	conf, err = s.AddItem(line(a, 1, "Cream", ""))
	require.NoError(t, err)
	assert.False(t, conf.Merged)
	assert.Len(t, s.Items(), 2)
	assertTotals(t, s)

	s.RemoveItem("A")
	assert.True(t, s.Empty())
	assertTotals(t, s)
}

func TestStore_AddItemSumsQuantitiesForSameKey(t *testing.T) {
	s := Open(newMemoryStorage())
	p := product("P", 500)

	quantities := []int{1, 4, 2, 7, 3}
	sum := 0
	for _, q := range quantities {
		_, err := s.AddItem(line(p, q, "Blue", "M"))
		require.NoError(t, err)
		sum += q
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, sum, items[0].Quantity)
	assert.Equal(t, int64(sum*500), s.TotalPrice())
}

func TestStore_AddItemKeepsStoredNote(t *testing.T) {
	s := Open(newMemoryStorage())
	p := product("P", 100)

	first := line(p, 1, "", "")
	first.Notes = "gift wrap please"
	_, err := s.AddItem(first)
	require.NoError(t, err)

	second := line(p, 2, "", "")
	second.Notes = "different note"
	_, err = s.AddItem(second)
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "gift wrap please", items[0].Notes)
}

func TestStore_AddItemPreservesInsertionOrder(t *testing.T) {
	s := Open(newMemoryStorage())
	for _, id := range []string{"C", "A", "B"} {
		_, err := s.AddItem(line(product(id, 10), 1, "", ""))
		require.NoError(t, err)
	}
	_, err := s.AddItem(line(product("A", 10), 1, "", ""))
	require.NoError(t, err)

	var ids []string
	for _, l := range s.Items() {
		ids = append(ids, l.Product.ID)
	}
	assert.Equal(t, []string{"C", "A", "B"}, ids)
}

func TestStore_AddItemRejectsInvalidCandidates(t *testing.T) {
	storage := newMemoryStorage()
	s := Open(storage)

	_, err := s.AddItem(line(product("P", 10), 0, "", ""))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.AddItem(models.CartLine{Quantity: 1})
	assert.ErrorIs(t, err, ErrMissingProduct)

	assert.True(t, s.Empty())
	assert.Equal(t, 0, storage.saves)
}

func TestStore_AddItemNotifies(t *testing.T) {
	var got []Confirmation
	s := Open(newMemoryStorage(), WithNotifier(NotifierFunc(func(c Confirmation) {
		got = append(got, c)
	})))

	_, err := s.AddItem(line(models.Product{ID: "P", Name: "Crochet Tote", Price: 10}, 2, "", ""))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Crochet Tote added to cart!", got[0].Message())
	assert.Equal(t, 2, got[0].Added)
}

func TestStore_UpdateQuantity(t *testing.T) {
	s := Open(newMemoryStorage())
	a := product("A", 1000)
	b := product("B", 250)
	_, _ = s.AddItem(line(a, 1, "Sage", ""))
	_, _ = s.AddItem(line(a, 2, "Cream", ""))
	_, _ = s.AddItem(line(b, 1, "", ""))

	t.Run("sets every line of the product", func(t *testing.T) {
		s.UpdateQuantity("A", 5)
		for _, l := range s.Items() {
			if l.Product.ID == "A" {
				assert.Equal(t, 5, l.Quantity)
			}
		}
		assert.Equal(t, 11, s.TotalItems())
		assertTotals(t, s)
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		before := s.Items()
		s.UpdateQuantity("missing", 3)
		assert.Equal(t, before, s.Items())
	})

	t.Run("below one removes like RemoveItem", func(t *testing.T) {
		s.UpdateQuantity("A", 0)
		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "B", items[0].Product.ID)
		assertTotals(t, s)
	})
}

func TestStore_UpdateQuantityBelowOneMatchesRemoveItem(t *testing.T) {
	build := func() *Store {
		s := Open(newMemoryStorage())
		_, _ = s.AddItem(line(product("A", 300), 2, "Sage", "S"))
		_, _ = s.AddItem(line(product("A", 300), 1, "Sage", "L"))
		_, _ = s.AddItem(line(product("B", 700), 1, "", ""))
		return s
	}

	for _, q := range []int{0, -1, -42} {
		updated := build()
		updated.UpdateQuantity("A", q)
		removed := build()
		removed.RemoveItem("A")

		assert.Equal(t, removed.Items(), updated.Items(), "quantity %d", q)
		assert.Equal(t, removed.TotalPrice(), updated.TotalPrice())
	}
}

func TestStore_QuantityCap(t *testing.T) {
	t.Run("add above cap is rejected", func(t *testing.T) {
		s := Open(newMemoryStorage())
		_, err := s.AddItem(line(product("A", 100), MaxLineQuantity+1, "", ""))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		_, err = s.AddItem(line(product("A", 100), math.MaxInt, "", ""))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.True(t, s.Empty())
	})

	t.Run("merge past cap leaves the line unchanged", func(t *testing.T) {
		storage := newMemoryStorage()
		s := Open(storage)
		conf, err := s.AddItem(line(product("A", 100), MaxLineQuantity, "Sage", ""))
		require.NoError(t, err)
		assert.Equal(t, MaxLineQuantity, conf.Quantity)
		saves := storage.saves

		_, err = s.AddItem(line(product("A", 100), 1, "Sage", ""))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		require.Len(t, s.Items(), 1)
		assert.Equal(t, MaxLineQuantity, s.Items()[0].Quantity)
		assert.Equal(t, int64(MaxLineQuantity*100), s.TotalPrice())
		assert.Equal(t, saves, storage.saves)
		assertTotals(t, s)

		// Another variant is a separate line with its own cap.
		_, err = s.AddItem(line(product("A", 100), 1, "Cream", ""))
		require.NoError(t, err)
	})

	t.Run("update above cap is rejected", func(t *testing.T) {
		s := Open(newMemoryStorage())
		_, _ = s.AddItem(line(product("A", 100), 2, "", ""))

		assert.ErrorIs(t, s.UpdateQuantity("A", MaxLineQuantity+1), ErrInvalidQuantity)
		assert.Equal(t, 2, s.Items()[0].Quantity)
		assert.NoError(t, s.UpdateQuantity("A", MaxLineQuantity))
		assert.Equal(t, MaxLineQuantity, s.Items()[0].Quantity)
	})
}

func TestStore_ClearKeepsWishlist(t *testing.T) {
	s := Open(newMemoryStorage())
	_, _ = s.AddItem(line(product("A", 300), 2, "", ""))
	s.ToggleWishlist("A")

	s.Clear()

	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, int64(0), s.TotalPrice())
	assert.True(t, s.InWishlist("A"))
}

func TestStore_TotalsHoldAcrossInterleavings(t *testing.T) {
	s := Open(newMemoryStorage())
	a, b, c := product("A", 1500), product("B", 2300), product("C", 99)

	steps := []func(){
		func() { _, _ = s.AddItem(line(a, 2, "", "")) },
		func() { _, _ = s.AddItem(line(b, 1, "Red", "")) },
		func() { _, _ = s.AddItem(line(b, 3, "Blue", "")) },
		func() { s.UpdateQuantity("B", 4) },
		func() { _, _ = s.AddItem(line(c, 10, "", "")) },
		func() { s.RemoveItem("A") },
		func() { s.UpdateQuantity("C", -1) },
		func() { _, _ = s.AddItem(line(a, 1, "", "")) },
		func() { s.Clear() },
		func() { _, _ = s.AddItem(line(c, 2, "", "")) },
	}
	for _, step := range steps {
		step()
		assertTotals(t, s)
	}
}

func TestStore_ToggleWishlist(t *testing.T) {
	s := Open(newMemoryStorage())

	assert.True(t, s.ToggleWishlist("A"))
	assert.True(t, s.InWishlist("A"))
	assert.Equal(t, []string{"A"}, s.Wishlist())

	assert.False(t, s.ToggleWishlist("A"))
	assert.False(t, s.InWishlist("A"))
	assert.Empty(t, s.Wishlist())

	s.ToggleWishlist("B")
	s.ToggleWishlist("C")
	s.ToggleWishlist("B")
	s.ToggleWishlist("D")
	assert.Equal(t, []string{"C", "D"}, s.Wishlist())
}

func TestStore_RehydratesAfterReload(t *testing.T) {
	storage := newMemoryStorage()
	s := Open(storage, WithNamespace("session-1"))
	_, _ = s.AddItem(line(product("A", 1200), 2, "Sage", "M"))
	_, _ = s.AddItem(line(product("B", 450), 1, "", ""))
	s.ToggleWishlist("X")
	s.ToggleWishlist("Y")

	reloaded := Open(storage, WithNamespace("session-1"))
	assert.Equal(t, s.Items(), reloaded.Items())
	assert.Equal(t, s.Wishlist(), reloaded.Wishlist())
	assert.Equal(t, s.TotalItems(), reloaded.TotalItems())
	assert.Equal(t, s.TotalPrice(), reloaded.TotalPrice())

	other := Open(storage, WithNamespace("session-2"))
	assert.True(t, other.Empty())
	assert.Empty(t, other.Wishlist())
}

func TestStore_KeysAreNamespaced(t *testing.T) {
	assert.Equal(t, "yaraan-cart", Open(newMemoryStorage()).CartKey())
	s := Open(newMemoryStorage(), WithNamespace("abc"))
	assert.Equal(t, "abc-cart", s.CartKey())
	assert.Equal(t, "abc-wishlist", s.WishlistKey())
}

func TestStore_CorruptStateStartsEmpty(t *testing.T) {
	valid, err := EncodeLines([]models.CartLine{line(product("A", 10), 1, "", "")})
	require.NoError(t, err)

	tests := []struct {
		name     string
		cart     string
		wishlist string
	}{
		{name: "not json", cart: "{{{", wishlist: "nope"},
		{name: "wrong shape", cart: `{"product":"A"}`, wishlist: `{"ids":["A"]}`},
		{name: "zero quantity", cart: `[{"product":{"id":"A","price":10},"quantity":0}]`, wishlist: `[""]`},
		{name: "duplicate keys", cart: `[{"product":{"id":"A"},"quantity":1},{"product":{"id":"A"},"quantity":2}]`, wishlist: `["A","A"]`},
		{name: "negative price", cart: `[{"product":{"id":"A","price":-5},"quantity":1}]`, wishlist: `[1,2]`},
		{name: "quantity over cap", cart: `[{"product":{"id":"A","price":10},"quantity":100}]`, wishlist: `["A"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newMemoryStorage()
			storage.entries["yaraan-cart"] = []byte(tt.cart)
			storage.entries["yaraan-wishlist"] = []byte(tt.wishlist)

			s := Open(storage)
			assert.True(t, s.Empty())
			assert.Empty(t, s.Wishlist())
			assert.Equal(t, 0, s.TotalItems())

			// The store keeps working and overwrites the corrupt blob.
			_, err := s.AddItem(line(product("A", 10), 1, "", ""))
			require.NoError(t, err)
			assert.JSONEq(t, string(valid), string(storage.entries["yaraan-cart"]))
		})
	}
}

func TestStore_StorageFailuresAreSwallowed(t *testing.T) {
	s := Open(brokenStorage{})
	assert.True(t, s.Empty())

	conf, err := s.AddItem(line(product("A", 800), 2, "", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, conf.Quantity)

	assert.True(t, s.ToggleWishlist("A"))
	s.UpdateQuantity("A", 3)

	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, int64(2400), s.TotalPrice())
	assert.True(t, s.InWishlist("A"))
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	s := Open(newMemoryStorage())
	_, _ = s.AddItem(line(product("A", 10), 1, "", ""))

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestStore_SavesAfterEveryMutation(t *testing.T) {
	storage := newMemoryStorage()
	s := Open(storage)

	_, _ = s.AddItem(line(product("A", 10), 1, "", ""))
	s.UpdateQuantity("A", 2)
	s.ToggleWishlist("A")
	s.RemoveItem("A")
	s.Clear()

	assert.Equal(t, 5, storage.saves)
}
