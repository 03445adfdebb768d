package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is referenced, not owned, by inventory items. Deleting one only
// orphans the item reference; items then render as "Uncategorized".
type Category struct {
	ID          string         `json:"id" gorm:"primaryKey;size:36"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CategoryNameTaken checks name uniqueness case-insensitively, optionally
// excluding one category (for updates).
func CategoryNameTaken(db *gorm.DB, name string, excludeID string) (bool, error) {
	var count int64
	query := db.Model(&Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
