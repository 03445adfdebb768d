package Models

import "gorm.io/gorm"

// Permission levels. Viewers can read, managers can mutate inventory,
// admins can manage users.
const (
	PermissionViewer  = 1
	PermissionManager = 3
	PermissionAdmin   = 4
)

type User struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email" gorm:"not null;uniqueIndex"`
	Password   []byte `json:"-" gorm:"not null"`
	Permission int    `json:"permission" gorm:"not null;default:1"`
}
