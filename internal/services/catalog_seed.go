package services

import (
	"time"

	"yaraan/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

// launchCatalog is the collection the shop opened with.
func launchCatalog() []models.Product {
	return []models.Product{
		{
			Name:             "Sage Bucket Hat",
			Description:      "A beautifully handcrafted crochet bucket hat in calming sage green. Perfect for sunny days and casual outings.",
			Price:            2500,
			Category:         models.CategoryAccessories,
			Images:           []string{"/assets/crochet-bucket-hat.jpg"},
			IsNew:            true,
			Colors:           []string{"Sage Green", "Cream", "Blush Pink"},
			Stock:            8,
			CareInstructions: []string{"Hand wash cold", "Lay flat to dry", "Do not bleach"},
			DeliveryDays:     5,
		},
		{
			Name:             "Blush Tote Bag",
			Description:      "A crochet tote bag in soft blush pink, handmade with premium cotton yarn for everyday use.",
			Price:            3200,
			OriginalPrice:    int64Ptr(3800),
			Category:         models.CategoryAccessories,
			Images:           []string{"/assets/crochet-tote-bag.jpg"},
			IsLimited:        true,
			Colors:           []string{"Blush Pink", "Sage Green", "Natural"},
			Stock:            3,
			CareInstructions: []string{"Spot clean only", "Store in dust bag", "Avoid direct sunlight"},
			DeliveryDays:     7,
		},
		{
			Name:             "Chunky Infinity Scarf",
			Description:      "A cozy chunky infinity scarf in soft premium yarn, in a timeless cream that goes with everything.",
			Price:            2800,
			Category:         models.CategoryWearables,
			Images:           []string{"/assets/crochet-infinity-scarf.jpg"},
			IsNew:            true,
			Colors:           []string{"Cream", "Oatmeal", "Dusty Rose"},
			Stock:            12,
			CareInstructions: []string{"Hand wash gently", "Reshape while damp", "Air dry flat"},
			DeliveryDays:     5,
		},
		{
			Name:             "Flower Cardigan",
			Description:      "A crochet cardigan adorned with flower details, made for layering.",
			Price:            3800,
			OriginalPrice:    int64Ptr(4500),
			Category:         models.CategoryWearables,
			Images:           []string{"/assets/crochet-cardigan.jpg"},
			Sizes:            []string{"XS", "S", "M", "L", "XL"},
			Colors:           []string{"Blush Pink", "Sage", "Cream"},
			Stock:            5,
			CareInstructions: []string{"Dry clean recommended", "Store folded", "Handle with care"},
			DeliveryDays:     10,
		},
		{
			Name:             "Cozy Beanie",
			Description:      "A handcrafted cable pattern beanie in warm mustard yellow. Soft, stretchy and warm.",
			Price:            2000,
			Category:         models.CategoryAccessories,
			Images:           []string{"/assets/crochet-beanie.jpg"},
			IsNew:            true,
			Colors:           []string{"Mustard", "Forest Green", "Burgundy"},
			Stock:            15,
			CareInstructions: []string{"Hand wash cold", "Lay flat to dry"},
			DeliveryDays:     4,
		},
		{
			Name:             "Amigurumi Bunny",
			Description:      "A cuddly handmade amigurumi bunny crocheted in soft cotton yarn.",
			Price:            2200,
			Category:         models.CategoryCustom,
			Images:           []string{"/assets/crochet-bunny.jpg"},
			IsNew:            true,
			Colors:           []string{"Pastel Pink", "Lavender", "Mint Green"},
			Stock:            10,
			CareInstructions: []string{"Surface wash only", "Keep away from heat", "Suitable for ages 3+"},
			DeliveryDays:     6,
		},
		{
			Name:             "Boho Coaster Set",
			Description:      "A set of 4 crochet coasters with a mandala design in terracotta and cream.",
			Price:            1800,
			Category:         models.CategoryAccessories,
			Images:           []string{"/assets/crochet-coasters.jpg"},
			Colors:           []string{"Terracotta & Cream", "Sage & Natural", "Navy & White"},
			Stock:            20,
			CareInstructions: []string{"Machine wash cold", "Tumble dry low", "Iron on low if needed"},
			DeliveryDays:     3,
		},
		{
			Name:             "Pastel Scrunchie Set",
			Description:      "A set of 4 handmade crochet scrunchies, soft and gentle on hair.",
			Price:            1500,
			Category:         models.CategoryAccessories,
			Images:           []string{"/assets/crochet-scrunchies.jpg"},
			IsNew:            true,
			Colors:           []string{"Pastel Mix", "Earth Tones", "Rainbow"},
			Stock:            25,
			CareInstructions: []string{"Hand wash gently", "Air dry", "Do not wring"},
			DeliveryDays:     3,
		},
	}
}

// SeedCatalog inserts the launch collection when the catalog is empty and
// returns how many products were created.
func (s *ProductService) SeedCatalog() (int, error) {
	existing, err := s.repo.GetAll()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	products := launchCatalog()
	// Stagger creation times so newest-first listing keeps the launch order.
	base := time.Now().Add(-time.Duration(len(products)) * time.Minute)
	created := 0
	for i := range products {
		products[i].IsActive = true
		products[i].CreatedAt = base.Add(time.Duration(len(products)-i) * time.Minute)
		if err := s.CreateProduct(&products[i]); err != nil {
			s.logger.Error().Err(err).Str("name", products[i].Name).Msg("Error seeding product")
			continue
		}
		created++
	}
	return created, nil
}
