package Models

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsRowID is the fixed primary key for the singleton settings rows.
// They are upserted in place, never multiplied.
const SettingsRowID = 1

type StoreSettings struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	StoreName     string         `json:"store_name"`
	Address       string         `json:"address" gorm:"type:text"`
	Phone         string         `json:"phone" gorm:"size:50"`
	Email         string         `json:"email"`
	BusinessHours datatypes.JSON `json:"business_hours"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type CurrencySettings struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CurrencyCode string    `json:"currency_code" gorm:"size:3;not null;default:USD"`
	UpdatedAt    time.Time `json:"updated_at"`
}
