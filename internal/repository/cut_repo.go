package repository

import (
	"context"

	"recortes/internal/domain"

	"gorm.io/gorm"
)

// CutFilter carries the list predicates and pagination for cut queries.
// UserID is always set by the caller; the other filters are optional and
// AND-combined.
type CutFilter struct {
	UserID  int64
	SKU     string
	CutType string
	Status  string
	SortBy  string
	Page    int
	PerPage int
}

// sortColumns whitelists the API-level sort fields against their
// database columns. Unknown fields fall back to display_order.
var sortColumns = map[string]string{
	"id":            "id",
	"sku":           "sku",
	"modelName":     "model_name",
	"cutType":       "cut_type",
	"position":      "position",
	"productType":   "product_type",
	"material":      "material",
	"materialColor": "material_color",
	"displayOrder":  "display_order",
	"status":        "status",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

type CutRepository struct {
	db *gorm.DB
}

func NewCutRepository(db *gorm.DB) *CutRepository {
	return &CutRepository{db: db}
}

func (r *CutRepository) Create(ctx context.Context, cut *domain.Cut) error {
	return r.db.WithContext(ctx).Create(cut).Error
}

// GetByIDForUser looks a cut up by {id, userId}. A cut owned by another
// user is indistinguishable from an absent one: both return
// gorm.ErrRecordNotFound.
func (r *CutRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Cut, error) {
	var cut domain.Cut
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cut).Error
	if err != nil {
		return nil, err
	}
	return &cut, nil
}

// List returns one page of matching cuts plus the total match count.
// Sorting is ascending only.
func (r *CutRepository) List(ctx context.Context, f CutFilter) ([]domain.Cut, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Cut{}).Where("user_id = ?", f.UserID)
	if f.SKU != "" {
		q = q.Where("sku = ?", f.SKU)
	}
	if f.CutType != "" {
		q = q.Where("cut_type = ?", f.CutType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "display_order"
	}

	var cuts []domain.Cut
	err := q.Order(column + " ASC").
		Limit(f.PerPage).
		Offset((f.Page - 1) * f.PerPage).
		Find(&cuts).Error
	if err != nil {
		return nil, 0, err
	}
	return cuts, total, nil
}

func (r *CutRepository) Update(ctx context.Context, cut *domain.Cut) error {
	return r.db.WithContext(ctx).Save(cut).Error
}

// Delete removes the row scoped by {id, userId}. Deleting a row that is
// absent or owned by another user returns gorm.ErrRecordNotFound.
func (r *CutRepository) Delete(ctx context.Context, id, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Cut{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
