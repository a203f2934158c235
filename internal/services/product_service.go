package services

import (
	"fmt"
	"sort"
	"strings"

	"yaraan/internal/models"
	"yaraan/internal/repositories"

	"github.com/rs/zerolog"
)

// CatalogSort orders the storefront product listing.
type CatalogSort string

const (
	SortFeatured  CatalogSort = "featured"
	SortPriceLow  CatalogSort = "price-low"
	SortPriceHigh CatalogSort = "price-high"
	SortNew       CatalogSort = "new"
)

// ParseCatalogSort converts s into a CatalogSort; empty means featured.
func ParseCatalogSort(s string) (CatalogSort, error) {
	switch CatalogSort(s) {
	case "":
		return SortFeatured, nil
	case SortFeatured, SortPriceLow, SortPriceHigh, SortNew:
		return CatalogSort(s), nil
	}
	return "", fmt.Errorf("invalid sort order: %q", s)
}

// CatalogQuery narrows the storefront listing. An empty or "all" category matches everything.
type CatalogQuery struct {
	Category string
	Sort     CatalogSort
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, logger *zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger.With().Str("component", "ProductService").Logger(),
	}
}

// GetAllProducts retrieves all products, active or not, newest first.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// ListCatalog returns the active products shoppers can see.
func (s *ProductService) ListCatalog(q CatalogQuery) ([]models.Product, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	result := make([]models.Product, 0, len(all))
	for _, p := range all {
		if !p.IsActive {
			continue
		}
		if q.Category != "" && q.Category != "all" && string(p.Category) != q.Category {
			continue
		}
		result = append(result, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortNew:
		sort.SliceStable(result, func(i, j int) bool { return result[i].IsNew && !result[j].IsNew })
	}
	return result, nil
}

// GetActiveProduct returns a product only if shoppers may see it.
func (s *ProductService) GetActiveProduct(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product with ID %s %w", id, repositories.ErrNotFound)
	}
	return product, nil
}

// CreateProduct normalizes and stores a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	NormalizeProduct(product)
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.logger.Info().Str("product", product.ID).Str("name", product.Name).Msg("Product created")
	return nil
}

// UpdateProduct normalizes and overwrites an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	NormalizeProduct(product)
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.logger.Info().Str("product", product.ID).Msg("Product updated")
	return nil
}

// SetProductActive shows or hides a product from shoppers.
func (s *ProductService) SetProductActive(id string, active bool) error {
	if err := s.repo.SetActive(id, active); err != nil {
		return err
	}
	s.logger.Info().Str("product", id).Bool("active", active).Msg("Product visibility changed")
	return nil
}

// DeleteProduct permanently deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info().Str("product", id).Msg("Product deleted")
	return nil
}

// NormalizeProduct trims text fields and drops blank entries from list fields.
func NormalizeProduct(p *models.Product) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Images = cleanList(p.Images)
	p.Colors = cleanList(p.Colors)
	p.Sizes = cleanList(p.Sizes)
	p.CareInstructions = cleanList(p.CareInstructions)
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
