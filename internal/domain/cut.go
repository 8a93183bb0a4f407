package domain

import "time"

type CutStatus string

const (
	CutStatusActive  CutStatus = "ACTIVE"
	CutStatusExpired CutStatus = "EXPIRED"
	CutStatusPending CutStatus = "PENDING"
)

func (s CutStatus) Valid() bool {
	switch s {
	case CutStatusActive, CutStatusExpired, CutStatusPending:
		return true
	}
	return false
}

// Cut represents one product-cutting pattern variant with an associated
// image stored in the blob bucket. Every cut belongs to exactly one user;
// the owner is assigned at creation and never reassigned.
type Cut struct {
	ID            int64     `gorm:"column:id;primaryKey" json:"id"`
	SKU           string    `gorm:"column:sku;index" json:"sku"`
	ModelName     string    `gorm:"column:model_name" json:"modelName"`
	CutType       string    `gorm:"column:cut_type;index" json:"cutType"`
	Position      string    `gorm:"column:position" json:"position"`
	ProductType   string    `gorm:"column:product_type" json:"productType"`
	Material      string    `gorm:"column:material" json:"material"`
	MaterialColor string    `gorm:"column:material_color" json:"materialColor"`
	DisplayOrder  int       `gorm:"column:display_order" json:"displayOrder"`
	Status        CutStatus `gorm:"column:status;default:ACTIVE" json:"status"`
	ImageURL      string    `gorm:"column:image_url" json:"imageUrl"`
	UserID        int64     `gorm:"column:user_id;index" json:"userId"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Cut) TableName() string { return "cuts" }
