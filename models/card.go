package models

import "time"

type Card struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `gorm:"foreignKey:UserID;references:ID" json:"-"`
	// MaskedNumber keeps only the last four digits, e.g. "**** 4242".
	MaskedNumber string    `gorm:"type:varchar(32);not null" json:"maskedNumber"`
	Brand        string    `gorm:"type:varchar(50)" json:"brand"`
	IsDefault    bool      `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}
