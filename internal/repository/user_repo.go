package repository

import (
	"context"
	"strings"

	"recortes/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreateByGoogleID resolves the local user for a provider subject,
// creating one on first authentication. The google_id unique index makes
// repeated authentications with the same subject idempotent.
func (r *UserRepository) GetOrCreateByGoogleID(ctx context.Context, googleID, email, name string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where(&domain.User{GoogleID: googleID}).
		Attrs(&domain.User{Email: strings.TrimSpace(strings.ToLower(email)), Name: name}).
		FirstOrCreate(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
