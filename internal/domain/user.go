package domain

import "time"

// User is a local identity record keyed by the external provider's
// subject identifier. Users are created lazily on first successful
// authentication and never deleted by this service.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	GoogleID  string    `gorm:"column:google_id;uniqueIndex" json:"-"`
	Email     string    `gorm:"column:email" json:"email"`
	Name      string    `gorm:"column:name" json:"name,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Identity is the request-scoped value produced by successful
// authentication. Handlers read it from the gin context; it is never
// assumed present.
type Identity struct {
	ID    int64
	Email string
	Name  string
}
