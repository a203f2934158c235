package repositories

import (
	"errors"
	"fmt"

	"yaraan/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStateRepository keeps cart and wishlist blobs in the cart_states table.
type GORMStateRepository struct {
	db *gorm.DB
}

// NewGORMStateRepository creates a new instance of GORMStateRepository.
func NewGORMStateRepository(db *gorm.DB) *GORMStateRepository {
	return &GORMStateRepository{
		db: db,
	}
}

// Load retrieves the blob stored under key.
func (r *GORMStateRepository) Load(key string) ([]byte, bool, error) {
	var state models.CartState
	if err := r.db.First(&state, "state_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load state %s: %w", key, err)
	}
	return state.Data, true, nil
}

// Save upserts the blob stored under key.
func (r *GORMStateRepository) Save(key string, data []byte) error {
	state := models.CartState{Key: key, Data: data}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}
