package repositories

import "yaraan/internal/models"

// UserRepository stores admin console accounts. Lookups of a missing
// account wrap ErrNotFound.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
